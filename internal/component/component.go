// component.go
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

package component

import (
	"strconv"
	"strings"
)

// Type identifies the kind of a site component.
type Type string

const (
	Header    Type = "header"
	Paragraph Type = "paragraph"
	Button    Type = "button"
	Image     Type = "image"
	Divider   Type = "divider"
)

// Types lists every supported component type in palette order.
var Types = []Type{Header, Paragraph, Button, Image, Divider}

// Valid reports whether t is one of the supported component types.
func (t Type) Valid() bool {
	switch t {
	case Header, Paragraph, Button, Image, Divider:
		return true
	}
	return false
}

// Style is the CSS-like key/value map found under props.style.
type Style map[string]string

// Get returns the style value for key, or def when the key is absent or blank.
func (s Style) Get(key, def string) string {
	if v, ok := s[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

// Props is the decoded, fully defaulted view of a component's props bag.
type Props interface {
	Kind() Type
	StyleMap() Style
}

// HeaderProps are the props of a header component.
type HeaderProps struct {
	Level int
	Text  string
	Style Style
}

// ParagraphProps are the props of a paragraph component.
type ParagraphProps struct {
	Text  string
	Style Style
}

// ButtonProps are the props of a button component.
type ButtonProps struct {
	Text  string
	Style Style
}

// ImageProps are the props of an image component.
type ImageProps struct {
	Src   string
	Alt   string
	Style Style
}

// DividerProps are the props of a divider component.
type DividerProps struct {
	Style Style
}

func (HeaderProps) Kind() Type    { return Header }
func (ParagraphProps) Kind() Type { return Paragraph }
func (ButtonProps) Kind() Type    { return Button }
func (ImageProps) Kind() Type     { return Image }
func (DividerProps) Kind() Type   { return Divider }

func (p HeaderProps) StyleMap() Style    { return p.Style }
func (p ParagraphProps) StyleMap() Style { return p.Style }
func (p ButtonProps) StyleMap() Style    { return p.Style }
func (p ImageProps) StyleMap() Style     { return p.Style }
func (p DividerProps) StyleMap() Style   { return p.Style }

// Content defaults used when a prop is missing or malformed.
const (
	DefaultHeaderLevel = 1
	DefaultButtonText  = "Button"
	DefaultImageAlt    = "Image"
)

// Decode maps a raw props bag onto the typed props for t. Every field is
// defaulted, so Decode never fails on a known type. The second result is false
// when t is not a known component type.
func Decode(t Type, raw map[string]any) (Props, bool) {
	style := DecodeStyle(raw["style"])

	switch t {
	case Header:
		return HeaderProps{
			Level: intValue(raw["level"], DefaultHeaderLevel),
			Text:  stringValue(raw["text"], ""),
			Style: style,
		}, true
	case Paragraph:
		return ParagraphProps{
			Text:  stringValue(raw["text"], ""),
			Style: style,
		}, true
	case Button:
		return ButtonProps{
			Text:  stringValue(raw["text"], DefaultButtonText),
			Style: style,
		}, true
	case Image:
		return ImageProps{
			Src:   stringValue(raw["src"], ""),
			Alt:   stringValue(raw["alt"], DefaultImageAlt),
			Style: style,
		}, true
	case Divider:
		return DividerProps{Style: style}, true
	}

	return nil, false
}

// DecodeStyle reads a CSS-like map from a JSON value. Non-scalar entries are
// dropped and anything that is not an object yields an empty Style.
func DecodeStyle(v any) Style {
	style := Style{}
	m, ok := v.(map[string]any)
	if !ok {
		return style
	}
	for key, value := range m {
		if s, ok := scalarString(value); ok {
			style[key] = s
		}
	}
	return style
}

// stringValue treats an empty string like a missing value.
func stringValue(v any, def string) string {
	if s, ok := scalarString(v); ok && s != "" {
		return s
	}
	return def
}

func intValue(v any, def int) int {
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case int:
		return n
	case int64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return def
}

// scalarString stringifies JSON scalars. Objects, arrays and null are rejected.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}
