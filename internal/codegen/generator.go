// generator.go
//
// A site builder data service: ordered site components and static HTML/CSS export
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of sitebuilder.
// sitebuilder is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// sitebuilder is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with sitebuilder.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package codegen turns a materialized site into standalone HTML and CSS.
//
// Every function here is pure: output depends only on the argument, identical
// input yields byte-identical output, and missing or malformed props fall back
// to the per-type defaults of package component instead of failing.
package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/localnerve/sitebuilder/internal/component"
	"golang.org/x/net/html"
)

// Component is one positioned component of a site.
type Component struct {
	ID        string
	Type      component.Type
	Props     map[string]any
	SortOrder int
}

// Site is the generator input: settings plus the component list.
type Site struct {
	Name       string
	Settings   map[string]any
	Components []Component
}

const fragmentIndent = "        "

// GenerateHTML renders the full HTML document for site, with the stylesheet
// from GenerateCSS inlined in a single style element.
func GenerateHTML(site Site) string {
	settings := component.DecodeStyle(site.Settings)
	css := GenerateCSS(site)

	fragments := make([]string, 0, len(site.Components))
	for _, c := range ordered(site.Components) {
		fragments = append(fragments, RenderComponent(c))
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&b, "<html lang=\"%s\">\n", html.EscapeString(clean(settings.Get("lang", DefaultLang))))
	b.WriteString("<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", html.EscapeString(clean(site.Name)))
	b.WriteString("    <style>\n")
	b.WriteString(css)
	b.WriteString("\n    </style>\n")
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString("    <div class=\"site-container\">\n")
	b.WriteString(strings.Join(fragments, "\n"))
	b.WriteString("\n    </div>\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>")

	return b.String()
}

// RenderComponent renders one component as an indented HTML fragment. Unknown
// types render as a comment naming the type.
func RenderComponent(c Component) string {
	var b strings.Builder
	b.WriteString(fragmentIndent)
	// Writes to a strings.Builder cannot fail.
	_ = html.Render(&b, componentNode(c))
	return b.String()
}

// ElementID is the id attribute GenerateHTML gives the element of the
// component with the given identifier. GenerateCSS targets the same id.
func ElementID(id string) string {
	return "component-" + clean(id)
}

// ElementClass is the class attribute shared by every element of a type.
func ElementClass(t component.Type) string {
	return "component-" + string(t)
}

func componentNode(c Component) *html.Node {
	props, ok := component.Decode(c.Type, c.Props)
	if !ok {
		return &html.Node{
			Type: html.CommentNode,
			Data: " Unknown component: " + commentText(string(c.Type)) + " ",
		}
	}

	attrs := []html.Attribute{
		{Key: "id", Val: ElementID(c.ID)},
		{Key: "class", Val: ElementClass(c.Type)},
	}

	switch p := props.(type) {
	case component.HeaderProps:
		n := element("h"+strconv.Itoa(p.Level), attrs)
		appendText(n, p.Text)
		return n

	case component.ParagraphProps:
		n := element("p", attrs)
		for i, line := range strings.Split(p.Text, "\n") {
			if i > 0 {
				n.AppendChild(element("br", nil))
			}
			appendText(n, line)
		}
		return n

	case component.ButtonProps:
		n := element("button", append(attrs, html.Attribute{Key: "type", Val: "button"}))
		appendText(n, p.Text)
		return n

	case component.ImageProps:
		return element("img", append(attrs,
			html.Attribute{Key: "src", Val: clean(p.Src)},
			html.Attribute{Key: "alt", Val: clean(p.Alt)},
		))

	default:
		return element("hr", attrs)
	}
}

func element(tag string, attrs []html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, Attr: attrs}
}

func appendText(n *html.Node, text string) {
	if text = clean(text); text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// ordered returns a copy of components stable-sorted by position. The input
// is never assumed to be ordered and never mutated.
func ordered(components []Component) []Component {
	out := make([]Component, len(components))
	copy(out, components)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// commentText keeps a value from closing the comment it is written into.
func commentText(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, clean(s))
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// clean strips NUL bytes, which are never valid in the generated files.
func clean(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
