package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeValid(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, typ.Valid(), typ)
	}
	assert.False(t, Type("carousel").Valid())
	assert.False(t, Type("").Valid())
	assert.False(t, Type("Header").Valid())
}

func TestDecodeDefaults(t *testing.T) {
	p, ok := Decode(Header, nil)
	require.True(t, ok)
	assert.Equal(t, HeaderProps{Level: 1, Text: "", Style: Style{}}, p)

	p, ok = Decode(Button, map[string]any{"text": ""})
	require.True(t, ok)
	assert.Equal(t, "Button", p.(ButtonProps).Text)

	p, ok = Decode(Image, map[string]any{})
	require.True(t, ok)
	assert.Equal(t, ImageProps{Src: "", Alt: "Image", Style: Style{}}, p)

	_, ok = Decode("carousel", map[string]any{})
	assert.False(t, ok)
}

func TestDecodeCoercesScalars(t *testing.T) {
	p, ok := Decode(Header, map[string]any{
		"level": "2",
		"text":  float64(42),
		"style": map[string]any{
			"fontSize": float64(30),
			"bold":     true,
			"nested":   map[string]any{"x": "y"},
			"list":     []any{"a"},
			"none":     nil,
		},
	})
	require.True(t, ok)

	h := p.(HeaderProps)
	assert.Equal(t, 2, h.Level)
	assert.Equal(t, "42", h.Text)
	assert.Equal(t, Style{"fontSize": "30", "bold": "true"}, h.Style)
}

func TestDecodeIgnoresMalformedLevel(t *testing.T) {
	for _, level := range []any{"two", float64(1.5), []any{1}, nil} {
		p, _ := Decode(Header, map[string]any{"level": level})
		assert.Equal(t, DefaultHeaderLevel, p.(HeaderProps).Level, "level %v", level)
	}
}

func TestStyleGet(t *testing.T) {
	s := Style{"color": "red", "margin": "  "}
	assert.Equal(t, "red", s.Get("color", "blue"))
	assert.Equal(t, "0", s.Get("margin", "0"))
	assert.Equal(t, "x", s.Get("missing", "x"))

	var empty Style
	assert.Equal(t, "x", empty.Get("color", "x"))
}

func TestPropsKind(t *testing.T) {
	for _, typ := range Types {
		p, ok := Decode(typ, nil)
		require.True(t, ok)
		assert.Equal(t, typ, p.Kind())
		assert.NotNil(t, p.StyleMap())
	}
}
