package merge

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/vango-dev/attrmerge/pkg/attrs"
)

// SlotKind identifies which part of a snapshot a dynamic slot feeds.
type SlotKind uint8

const (
	// SlotAttr updates a full attribute value keyed by attribute name.
	SlotAttr SlotKind = iota
	// SlotClass toggles membership of a single class token.
	SlotClass
	// SlotStyle updates a single style property keyed by property name.
	SlotStyle
)

func (k SlotKind) String() string {
	switch k {
	case SlotAttr:
		return "attr"
	case SlotClass:
		return "class"
	case SlotStyle:
		return "style"
	default:
		return "unknown"
	}
}

// Slot is a surviving reactive binding: a single attribute, class token, or
// style property whose value is read from Source. Slots are recorded in the
// order the resolver encountered their directives, so re-evaluating them in
// sequence reproduces the merge deterministically.
type Slot struct {
	Kind   SlotKind
	Key    string
	Source attrs.ValueSource
}

// Snapshot is the fully resolved attribute state of one render node. All
// precedence and suppression decisions have already been applied; consumers
// only read.
type Snapshot struct {
	// Attrs holds resolved full attribute values, excluding class and style
	// which are tracked structurally below.
	Attrs map[string]string

	// Classes is the ordered, deduplicated class token list.
	Classes []string

	// Styles maps style property names to their resolved values.
	Styles map[string]string

	// Handlers maps lowercase event names to their handler values.
	Handlers map[string]any

	// Dynamic lists the reactive slots that survived the merge. Suppressed
	// contributions never appear here; they can never become visible.
	Dynamic []Slot
}

// ClassAttr renders the class list as a single attribute value.
func (s *Snapshot) ClassAttr() string {
	return strings.Join(s.Classes, " ")
}

// StyleAttr renders the style map as a single attribute value with keys in
// sorted order.
func (s *Snapshot) StyleAttr() string {
	return renderStyles(s.Styles)
}

// HasClass reports whether token is present in the class list.
func (s *Snapshot) HasClass(token string) bool {
	for _, c := range s.Classes {
		if c == token {
			return true
		}
	}
	return false
}

var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"inert":           true,
	"ismap":           true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"novalidate":      true,
	"open":            true,
	"playsinline":     true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

// FormatValue renders an attribute value for the wire. The second return is
// false when the attribute should be absent entirely, which is how boolean
// attributes like `disabled` switch off.
func FormatValue(key string, value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		if booleanAttrs[strings.ToLower(key)] {
			if v {
				return "", true
			}
			return "", false
		}
		if v {
			return "true", true
		}
		return "false", true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		rv := reflect.ValueOf(value)
		if rv.IsValid() && rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), true
		}
		return "", false
	}
}

// Truthy reports whether a toggle condition value activates its class token.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

// splitTokens splits a whitespace-separated class value into tokens.
func splitTokens(value string) []string {
	return strings.Fields(value)
}

// parseStyle decomposes an inline style string into property/value pairs,
// preserving declaration order.
func parseStyle(css string) []styleDecl {
	var out []styleDecl
	for _, part := range strings.Split(css, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.Index(part, ":")
		if idx <= 0 {
			continue
		}
		name := strings.TrimSpace(part[:idx])
		val := strings.TrimSpace(part[idx+1:])
		if name == "" {
			continue
		}
		out = append(out, styleDecl{name: name, value: val})
	}
	return out
}

type styleDecl struct {
	name  string
	value string
}
