package attrs

import "strings"

// Kind is the directive type discriminator.
type Kind uint8

const (
	KindFullAttr        Kind = iota // Sets an attribute's entire value
	KindClassToggle                 // Conditionally contributes one class token
	KindClassListToggle             // Conditionally contributes a list of class tokens
	KindStyleProp                   // Sets one style property
	KindEventHandler                // Attaches an event handler
	KindSpread                      // Unions a nested bundle
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindFullAttr:
		return "FullAttr"
	case KindClassToggle:
		return "ClassToggle"
	case KindClassListToggle:
		return "ClassListToggle"
	case KindStyleProp:
		return "StyleProp"
	case KindEventHandler:
		return "EventHandler"
	case KindSpread:
		return "Spread"
	default:
		return "Unknown"
	}
}

// Directive is one attribute-affecting instruction.
type Directive struct {
	// Name is the attribute name, class token, style property, or event
	// name, depending on Kind. Empty for Spread and ClassListToggle.
	Name string

	// Kind is the directive type.
	Kind Kind

	// Value is the directive's value source: the attribute value, the
	// toggle condition, the style value, or the event handler.
	Value ValueSource

	// Names holds the class tokens of a ClassListToggle, in declared order.
	Names []string

	// Sub is the wrapped bundle of a Spread directive.
	Sub *Bundle

	// OriginDepth counts the component boundaries this directive has
	// crossed since its declaration site. Zero means it was declared
	// directly on its target.
	OriginDepth uint32
}

// IsEmpty returns true if this is an empty/nil directive.
func (d Directive) IsEmpty() bool {
	return d.Kind != KindSpread && d.Kind != KindClassListToggle && d.Name == ""
}

// IsDynamic reports whether the directive's value comes from a reactive
// source rather than a static literal.
func (d Directive) IsDynamic() bool {
	return d.Value != nil && !IsStatic(d.Value)
}

// source normalizes a constructor's value argument: a ValueSource passes
// through, anything else is wrapped as a static literal.
func source(value any) ValueSource {
	if s, ok := value.(ValueSource); ok {
		return s
	}
	return Static(value)
}

// Attr sets an attribute's entire value, overriding partial contributions
// addressing the same name.
func Attr(name string, value any) Directive {
	return Directive{Name: name, Kind: KindFullAttr, Value: source(value)}
}

// Class sets the class attribute to the joined tokens, as a full value.
func Class(tokens ...string) Directive {
	return Attr("class", strings.Join(tokens, " "))
}

// Style sets the style attribute to the given CSS text, as a full value.
func Style(css string) Directive {
	return Attr("style", css)
}

// ClassToggle contributes the class token while cond evaluates true.
func ClassToggle(token string, cond any) Directive {
	return Directive{Name: token, Kind: KindClassToggle, Value: source(cond)}
}

// ClassList contributes every token in order while cond evaluates true.
// Only valid on a concrete leaf element; composing a class list onto a
// component boundary is rejected at composition time.
func ClassList(tokens []string, cond any) Directive {
	return Directive{Kind: KindClassListToggle, Names: tokens, Value: source(cond)}
}

// StyleProp sets one style property, keyed by property name.
func StyleProp(property string, value any) Directive {
	return Directive{Name: property, Kind: KindStyleProp, Value: source(value)}
}

// On attaches an event handler, keyed by event name ("click", "input", ...).
func On(event string, handler any) Directive {
	return Directive{Name: event, Kind: KindEventHandler, Value: source(handler)}
}

// SpreadOf unions the bundle's directives into the composition at the spread
// site. The directive wraps an independent clone, so the original bundle
// stays reusable across destinations.
func SpreadOf(b *Bundle) Directive {
	return Directive{Kind: KindSpread, Sub: b.Clone()}
}
