package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"My Site":        "My Site",
		"":               "site",
		"  ..  ":         "site",
		"a/b\\c:d":       "a-b-c-d",
		"new\x00line\n":  "newline",
		"Сайт портфолио": "Сайт портфолио",
	}
	for in, want := range tests {
		assert.Equal(t, want, BaseName(in), "BaseName(%q)", in)
	}
}

func TestGenerate(t *testing.T) {
	site := sampleSite()
	export := Generate(site)

	assert.Equal(t, GenerateHTML(site), export.HTML)
	assert.Equal(t, GenerateCSS(site), export.CSS)
	assert.Equal(t, "Portfolio.html", export.HTMLFilename())
	assert.Equal(t, "Portfolio.css", export.CSSFilename())
}
