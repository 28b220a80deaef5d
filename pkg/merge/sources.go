package merge

import (
	"sort"
	"strings"

	"github.com/vango-dev/attrmerge/pkg/attrs"
)

// toggleRef is one surviving class toggle, kept alongside a dynamic
// full-class winner so the merged token list can be recomputed at any time.
type toggleRef struct {
	token string
	cond  attrs.ValueSource
}

// classAttrSource wraps the dynamic full-class winner. Current returns the
// merged class value, full-value tokens followed by whichever toggles are
// active, so a slot reading it always matches a fresh resolution.
type classAttrSource struct {
	full    attrs.ValueSource
	toggles []toggleRef
}

func (s *classAttrSource) Current() any {
	seen := make(map[string]bool)
	var tokens []string
	add := func(token string) {
		if token != "" && !seen[token] {
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	if v, ok := FormatValue("class", s.full.Current()); ok {
		for _, t := range splitTokens(v) {
			add(t)
		}
	}
	for _, r := range s.toggles {
		if r.cond != nil && Truthy(r.cond.Current()) {
			add(r.token)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return strings.Join(tokens, " ")
}

func (s *classAttrSource) OnChange(fn func()) func() {
	return s.full.OnChange(fn)
}

// propRef is one surviving style property, ordered after the properties
// declared before it so later declarations still win on recompute.
type propRef struct {
	name  string
	value attrs.ValueSource
}

// styleAttrSource wraps the dynamic full-style winner, overlaying the
// surviving style properties on top of its parsed declarations.
type styleAttrSource struct {
	full  attrs.ValueSource
	props []propRef
}

func (s *styleAttrSource) Current() any {
	styles := make(map[string]string)
	if v, ok := FormatValue("style", s.full.Current()); ok {
		for _, decl := range parseStyle(v) {
			styles[decl.name] = decl.value
		}
	}
	for _, p := range s.props {
		if p.value == nil {
			continue
		}
		if v, ok := FormatValue(p.name, p.value.Current()); ok {
			styles[p.name] = v
		}
	}
	if len(styles) == 0 {
		return nil
	}
	return renderStyles(styles)
}

func (s *styleAttrSource) OnChange(fn func()) func() {
	return s.full.OnChange(fn)
}

// renderStyles renders a style map as a single attribute value with keys in
// sorted order.
func renderStyles(styles map[string]string) string {
	if len(styles) == 0 {
		return ""
	}
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+styles[k])
	}
	return strings.Join(parts, "; ")
}
