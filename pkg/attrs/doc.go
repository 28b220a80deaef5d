// Package attrs provides the attribute directive and bundle model for attrmerge.
//
// A Directive is one attribute-affecting instruction: a full-value attribute,
// a conditional class toggle, a class-list toggle, a style property, an event
// handler, or a spread of a nested bundle. A Bundle is the ordered sequence of
// directives declared at one call site; insertion order is significant and is
// used as the tie-break for class token ordering during merge.
//
// # Ownership
//
// A bundle is exclusively owned by whichever scope is currently composing it.
// Ownership transfers on each composition step via Take; handing the same
// bundle to two composition targets is a composition error. The only legal
// aliasing path is SpreadOf, which wraps an independent clone.
//
// # Directive API
//
// Directives are created using constructor functions:
//
//	b := attrs.NewBundle(
//	    attrs.Class("card", "active"),
//	    attrs.ClassToggle("highlight", attrs.Static(true)),
//	    attrs.StyleProp("border", attrs.Static("1px solid blue")),
//	    attrs.On("click", func() { ... }),
//	)
//
// # Value sources
//
// Every directive value is a ValueSource: either a static literal or a handle
// into an external reactive runtime exposing the current value and change
// notification. This package never inspects a reactive source's internals.
//
// # Capacity
//
// Bundles composed through a typed boundary are checked against a capacity
// constant (DefaultCapacity, 26). The bound is an encoding artifact, not a
// semantic requirement; it is a single configurable constant enforced
// uniformly at every typed boundary, at composition time.
package attrs
