package component

// StyleProperty binds a props.style key to the CSS property it renders as.
// A property with an empty Key is fixed: it always renders Default.
type StyleProperty struct {
	CSS     string `json:"css"`
	Key     string `json:"key"`
	Default string `json:"default"`
}

// styleTable holds the declarations of each type's rule, in render order.
var styleTable = map[Type][]StyleProperty{
	Header: {
		{CSS: "margin", Key: "margin", Default: "10px 0"},
		{CSS: "text-align", Key: "textAlign", Default: "left"},
		{CSS: "color", Key: "color", Default: "#333333"},
		{CSS: "font-size", Key: "fontSize", Default: "24px"},
		{CSS: "font-weight", Key: "fontWeight", Default: "bold"},
	},
	Paragraph: {
		{CSS: "margin", Key: "margin", Default: "10px 0"},
		{CSS: "color", Key: "color", Default: "#666666"},
		{CSS: "font-size", Key: "fontSize", Default: "16px"},
		{CSS: "line-height", Key: "lineHeight", Default: "1.5"},
		{CSS: "text-align", Key: "textAlign", Default: "left"},
	},
	Button: {
		{CSS: "margin", Key: "margin", Default: "10px 0"},
		{CSS: "padding", Key: "padding", Default: "10px 20px"},
		{CSS: "background-color", Key: "backgroundColor", Default: "#007bff"},
		{CSS: "color", Key: "color", Default: "#ffffff"},
		{CSS: "border", Key: "border", Default: "none"},
		{CSS: "border-radius", Key: "borderRadius", Default: "4px"},
		{CSS: "font-size", Key: "fontSize", Default: "16px"},
		{CSS: "cursor", Default: "pointer"},
		{CSS: "transition", Default: "background-color 0.3s"},
	},
	Image: {
		{CSS: "margin", Key: "margin", Default: "10px 0"},
		{CSS: "width", Key: "width", Default: "300px"},
		{CSS: "height", Key: "height", Default: "200px"},
		{CSS: "max-width", Default: "100%"},
		{CSS: "object-fit", Key: "objectFit", Default: "cover"},
		{CSS: "display", Default: "block"},
	},
	Divider: {
		{CSS: "margin", Key: "margin", Default: "20px 0"},
		{CSS: "border", Default: "none"},
		{CSS: "height", Key: "height", Default: "1px"},
		{CSS: "background-color", Key: "backgroundColor", Default: "#dddddd"},
		{CSS: "width", Default: "100%"},
	},
}

// HoverBackground is the button hover rule's style key and default.
var HoverBackground = StyleProperty{CSS: "background-color", Key: "hoverBackgroundColor", Default: "#0056b3"}

// Declaration is one resolved CSS declaration.
type Declaration struct {
	Property string
	Value    string
}

// Declarations resolves the CSS declarations for a component of type t against
// its style, in a fixed order. It returns nil for unknown types.
func Declarations(t Type, style Style) []Declaration {
	table, ok := styleTable[t]
	if !ok {
		return nil
	}

	decls := make([]Declaration, 0, len(table))
	for _, p := range table {
		value := p.Default
		if p.Key != "" {
			value = style.Get(p.Key, p.Default)
		}
		decls = append(decls, Declaration{Property: p.CSS, Value: value})
	}
	return decls
}

// StyleProperties lists the props.style keys a component type supports.
func StyleProperties(t Type) []StyleProperty {
	var props []StyleProperty
	for _, p := range styleTable[t] {
		if p.Key != "" {
			props = append(props, p)
		}
	}
	if t == Button {
		props = append(props, HoverBackground)
	}
	return props
}

// DefaultProps returns the seed props a visual editor fills in for a new
// component of type t. Unknown types get an empty bag.
func DefaultProps(t Type) map[string]any {
	switch t {
	case Header:
		return map[string]any{
			"text":  "New heading",
			"level": DefaultHeaderLevel,
			"style": seedStyle(t),
		}
	case Paragraph:
		return map[string]any{
			"text":  "Enter your text here",
			"style": seedStyle(t),
		}
	case Button:
		return map[string]any{
			"text":  DefaultButtonText,
			"style": seedStyle(t),
		}
	case Image:
		return map[string]any{
			"src":   "",
			"alt":   DefaultImageAlt,
			"style": seedStyle(t),
		}
	case Divider:
		return map[string]any{
			"style": seedStyle(t),
		}
	}
	return map[string]any{}
}

func seedStyle(t Type) map[string]any {
	style := make(map[string]any)
	for _, p := range StyleProperties(t) {
		style[p.Key] = p.Default
	}
	return style
}
