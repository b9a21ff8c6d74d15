package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/localnerve/sitebuilder/internal/codegen"
	"github.com/localnerve/sitebuilder/internal/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSiteDocumentYAML(t *testing.T) {
	site, err := parseSiteDocument([]byte(`
name: Landing
settings:
  maxWidth: 960px
components:
  - id: 7
    type: header
    sortOrder: 1
    props:
      text: Welcome
      level: 2
  - type: divider
    sortOrder: 0
`))
	require.NoError(t, err)

	assert.Equal(t, "Landing", site.Name)
	assert.Equal(t, "960px", site.Settings["maxWidth"])
	require.Len(t, site.Components, 2)
	assert.Equal(t, "7", site.Components[0].ID)
	assert.Equal(t, component.Header, site.Components[0].Type)
	assert.Equal(t, 1, site.Components[0].SortOrder)
	assert.Equal(t, "2", site.Components[1].ID)

	html := codegen.GenerateHTML(site)
	assert.Contains(t, html, `<h2 id="component-7" class="component-header">Welcome</h2>`)
	assert.Less(t, strings.Index(html, "component-2"), strings.Index(html, "component-7"))
}

func TestParseSiteDocumentJSON(t *testing.T) {
	site, err := parseSiteDocument([]byte(`{
		"site_id": 3,
		"name": "From API",
		"settings": {"fontFamily": "Georgia"},
		"components": [
			{"id": 11, "type": "button", "props": {"text": "Go"}, "sortOrder": 0}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "From API", site.Name)
	require.Len(t, site.Components, 1)
	assert.Equal(t, "11", site.Components[0].ID)
	assert.Equal(t, "Go", site.Components[0].Props["text"])
}

func TestParseSiteDocumentInvalid(t *testing.T) {
	_, err := parseSiteDocument([]byte("name: [unclosed"))
	assert.Error(t, err)
}

func TestRenderFileWritesExport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(input, []byte("name: My Site\ncomponents:\n  - type: paragraph\n    props:\n      text: hi\n"), 0o600))

	export, err := renderFile(input)
	require.NoError(t, err)

	out := filepath.Join(dir, "out")
	htmlPath, cssPath, err := writeExport(out, export)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "My Site.html"), htmlPath)
	assert.Equal(t, filepath.Join(out, "My Site.css"), cssPath)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, export.HTML, string(html))

	css, err := os.ReadFile(cssPath)
	require.NoError(t, err)
	assert.Equal(t, export.CSS, string(css))

	_, err = renderFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
