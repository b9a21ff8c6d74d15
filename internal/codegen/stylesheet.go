package codegen

import (
	"fmt"
	"strings"

	"github.com/localnerve/sitebuilder/internal/component"
)

// Site setting defaults, applied when a key is absent from settings.
const (
	DefaultBackgroundColor = "#ffffff"
	DefaultFontFamily      = "Arial, sans-serif"
	DefaultMaxWidth        = "1200px"
	DefaultMargin          = "0 auto"
	DefaultLang            = "en"
)

// DefaultSettings returns the settings a new site starts with.
func DefaultSettings() map[string]any {
	return map[string]any{
		"backgroundColor": DefaultBackgroundColor,
		"fontFamily":      DefaultFontFamily,
		"maxWidth":        DefaultMaxWidth,
		"margin":          DefaultMargin,
	}
}

// GenerateCSS renders the stylesheet for site: the base rules parameterized by
// site settings, then one rule block per component of a known type, in
// position order.
func GenerateCSS(site Site) string {
	settings := component.DecodeStyle(site.Settings)

	var b strings.Builder
	b.WriteString(`
* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}
`)
	writeRule(&b, "body", []component.Declaration{
		{Property: "font-family", Value: settings.Get("fontFamily", DefaultFontFamily)},
		{Property: "background-color", Value: settings.Get("backgroundColor", DefaultBackgroundColor)},
		{Property: "color", Value: "#333333"},
		{Property: "line-height", Value: "1.6"},
	})
	writeRule(&b, ".site-container", []component.Declaration{
		{Property: "max-width", Value: settings.Get("maxWidth", DefaultMaxWidth)},
		{Property: "margin", Value: settings.Get("margin", DefaultMargin)},
		{Property: "padding", Value: "20px"},
	})

	for _, c := range ordered(site.Components) {
		b.WriteString(ComponentCSS(c))
	}

	return b.String()
}

// ComponentCSS renders the rule block of a single component, or "" for
// unknown types.
func ComponentCSS(c Component) string {
	props, ok := component.Decode(c.Type, c.Props)
	if !ok {
		return ""
	}

	selector := fmt.Sprintf("#%s.%s", cssIdent(ElementID(c.ID)), ElementClass(c.Type))
	style := props.StyleMap()

	var b strings.Builder
	writeRule(&b, selector, component.Declarations(c.Type, style))

	if c.Type == component.Button {
		hover := component.HoverBackground
		writeRule(&b, selector+":hover", []component.Declaration{
			{Property: hover.CSS, Value: style.Get(hover.Key, hover.Default)},
		})
	}

	return b.String()
}

// writeRule writes a blank-line separated rule block.
func writeRule(b *strings.Builder, selector string, decls []component.Declaration) {
	b.WriteString("\n")
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, d := range decls {
		fmt.Fprintf(b, "    %s: %s;\n", d.Property, cssValue(d.Value))
	}
	b.WriteString("}\n")
}

// cssValue drops the characters that could end a declaration, a rule block or
// the enclosing style element.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 0, '{', '}', ';', '<', '>':
			return -1
		}
		return r
	}, v)
}

// cssIdent escapes an identifier for use in an id selector.
func cssIdent(id string) string {
	var b strings.Builder
	for i, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-', r >= 0x80:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				fmt.Fprintf(&b, "\\%x ", r)
			} else {
				b.WriteRune(r)
			}
		default:
			fmt.Fprintf(&b, "\\%x ", r)
		}
	}
	return b.String()
}
