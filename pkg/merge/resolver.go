package merge

import (
	"github.com/vango-dev/attrmerge/pkg/attrs"
)

// contribution is one flattened directive tagged with its origin. Spread
// directives are unioned in place before precedence runs, so by the time
// precedence is decided only leaf kinds remain.
type contribution struct {
	d         attrs.Directive
	forwarded bool
}

// Resolve merges a node's local bundle with the bundle forwarded from its
// call site and returns the resolved snapshot. Either bundle may be nil.
//
// Precedence:
//   - Full attributes are keyed last-wins, with every forwarded entry ranked
//     after every local entry. A forwarded winner additionally suppresses the
//     node's local partial contributions (class toggles, style properties)
//     for that attribute name; suppressed entries produce no dynamic slots.
//   - Class tokens accumulate as an ordered set: full-value tokens first,
//     then active local toggles, then active forwarded toggles.
//   - Style properties and event handlers are keyed last-wins within the same
//     local-before-forwarded ordering.
//
// Resolve never consumes its inputs and never mutates them; ownership
// transfer happens in the composition layer before resolution runs.
func Resolve(local, forwarded *attrs.Bundle) *Snapshot {
	contribs := flatten(local, false, nil)
	contribs = flatten(forwarded, true, contribs)

	snap := &Snapshot{
		Attrs:    make(map[string]string),
		Styles:   make(map[string]string),
		Handlers: make(map[string]any),
	}

	// Full-attribute winners, keyed by name. Locals precede forwarded in
	// contribs, so plain last-wins encodes the whole precedence order.
	winners := make(map[string]contribution)
	var fullOrder []string
	for _, c := range contribs {
		if c.d.Kind != attrs.KindFullAttr {
			continue
		}
		if _, ok := winners[c.d.Name]; !ok {
			fullOrder = append(fullOrder, c.d.Name)
		}
		winners[c.d.Name] = c
	}

	resolveClasses(snap, contribs, winners)
	resolveStyles(snap, contribs, winners)

	for _, name := range fullOrder {
		if name == "class" || name == "style" {
			continue
		}
		w := winners[name]
		if s, ok := FormatValue(name, w.d.Value.Current()); ok {
			snap.Attrs[name] = s
		}
		if w.d.IsDynamic() {
			snap.Dynamic = append(snap.Dynamic, Slot{Kind: SlotAttr, Key: name, Source: w.d.Value})
		}
	}

	for _, c := range contribs {
		if c.d.Kind != attrs.KindEventHandler {
			continue
		}
		snap.Handlers[c.d.Name] = c.d.Value.Current()
	}

	return snap
}

func resolveClasses(snap *Snapshot, contribs []contribution, winners map[string]contribution) {
	winner, hasFull := winners["class"]
	localSuppressed := hasFull && winner.forwarded

	// Surviving toggles in precedence order, locals before forwarded.
	// Suppressed locals never make it here, so they can never resurface
	// through a later recompute either.
	var toggles []toggleRef
	for _, c := range contribs {
		if c.d.Kind != attrs.KindClassToggle || c.forwarded || localSuppressed {
			continue
		}
		toggles = append(toggles, toggleRef{token: c.d.Name, cond: c.d.Value})
	}
	for _, c := range contribs {
		if c.d.Kind != attrs.KindClassToggle || !c.forwarded {
			continue
		}
		toggles = append(toggles, toggleRef{token: c.d.Name, cond: c.d.Value})
	}

	seen := make(map[string]bool)
	add := func(token string) {
		if token != "" && !seen[token] {
			seen[token] = true
			snap.Classes = append(snap.Classes, token)
		}
	}

	if hasFull {
		if s, ok := FormatValue("class", winner.d.Value.Current()); ok {
			for _, t := range splitTokens(s) {
				add(t)
			}
		}
		if winner.d.IsDynamic() {
			// The slot carries the surviving toggles so a change to the
			// full value re-emits the merged list, not the raw source.
			snap.Dynamic = append(snap.Dynamic, Slot{
				Kind:   SlotAttr,
				Key:    "class",
				Source: &classAttrSource{full: winner.d.Value, toggles: toggles},
			})
		}
	}

	slotSeen := make(map[string]bool)
	for _, r := range toggles {
		if Truthy(r.cond.Current()) {
			add(r.token)
		}
		if r.cond != nil && !attrs.IsStatic(r.cond) && !slotSeen[r.token] {
			slotSeen[r.token] = true
			snap.Dynamic = append(snap.Dynamic, Slot{Kind: SlotClass, Key: r.token, Source: r.cond})
		}
	}
}

func resolveStyles(snap *Snapshot, contribs []contribution, winners map[string]contribution) {
	winner, hasFull := winners["style"]
	localSuppressed := hasFull && winner.forwarded

	var props []propRef
	for _, c := range contribs {
		if c.d.Kind != attrs.KindStyleProp {
			continue
		}
		if !c.forwarded && localSuppressed {
			continue
		}
		props = append(props, propRef{name: c.d.Name, value: c.d.Value})
	}

	if hasFull {
		if s, ok := FormatValue("style", winner.d.Value.Current()); ok {
			for _, decl := range parseStyle(s) {
				snap.Styles[decl.name] = decl.value
			}
		}
		if winner.d.IsDynamic() {
			snap.Dynamic = append(snap.Dynamic, Slot{
				Kind:   SlotAttr,
				Key:    "style",
				Source: &styleAttrSource{full: winner.d.Value, props: props},
			})
		}
	}

	for _, p := range props {
		if s, ok := FormatValue(p.name, p.value.Current()); ok {
			snap.Styles[p.name] = s
		}
		if p.value != nil && !attrs.IsStatic(p.value) {
			snap.Dynamic = append(snap.Dynamic, Slot{Kind: SlotStyle, Key: p.name, Source: p.value})
		}
	}
}

// flatten appends b's directives to dst, expanding spreads in place and
// splitting class-list toggles into one contribution per token.
func flatten(b *attrs.Bundle, forwarded bool, dst []contribution) []contribution {
	if b == nil {
		return dst
	}
	for _, d := range b.Directives() {
		switch d.Kind {
		case attrs.KindSpread:
			dst = flatten(d.Sub, forwarded, dst)
		case attrs.KindClassListToggle:
			for _, token := range d.Names {
				dst = append(dst, contribution{
					d: attrs.Directive{
						Name:        token,
						Kind:        attrs.KindClassToggle,
						Value:       d.Value,
						OriginDepth: d.OriginDepth,
					},
					forwarded: forwarded,
				})
			}
		default:
			dst = append(dst, contribution{d: d, forwarded: forwarded})
		}
	}
	return dst
}
