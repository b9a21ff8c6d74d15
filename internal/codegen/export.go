package codegen

import (
	"strings"
	"unicode"
)

// Export is the pair of downloadable artifacts for a site.
type Export struct {
	HTML     string `json:"html"`
	CSS      string `json:"css"`
	BaseName string `json:"baseName"`
}

// HTMLFilename is the download name of the HTML document.
func (e Export) HTMLFilename() string { return e.BaseName + ".html" }

// CSSFilename is the download name of the stylesheet.
func (e Export) CSSFilename() string { return e.BaseName + ".css" }

// Generate produces both artifacts for site.
func Generate(site Site) Export {
	return Export{
		HTML:     GenerateHTML(site),
		CSS:      GenerateCSS(site),
		BaseName: BaseName(site.Name),
	}
}

// BaseName derives a file name stem from a site name, replacing path
// separators and characters that are reserved on common filesystems.
// An empty result falls back to "site".
func BaseName(name string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '-'
		}
		return r
	}, name)

	stem = strings.Trim(stem, " .")
	if stem == "" {
		return "site"
	}
	return stem
}
