// Package playground holds the concrete component trees the engine was
// designed around, expressed as named scenarios. They double as executable
// documentation and as the acceptance fixtures for the merge rules.
package playground

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/attrmerge/internal/errors"
	"github.com/vango-dev/attrmerge/pkg/attrs"
	"github.com/vango-dev/attrmerge/pkg/tree"
)

// Scenario is one named, self-contained composition.
type Scenario struct {
	Name        string
	Description string

	// Build constructs and finalizes the scenario's tree. Scenarios whose
	// point is a composition failure return the error alongside a nil
	// composition.
	Build func(opts ...tree.Option) (*Composition, error)
}

// Composition is a built scenario: the finalized tree plus the signals
// driving its dynamic directives, keyed by the name they toggle. Callers
// flip the signals to exercise the change stream.
type Composition struct {
	Root    *tree.Node
	Signals map[string]*Signal
}

var scenarios = []Scenario{
	{
		Name:        "pass-through",
		Description: "transparent wrapper relays a caller toggle onto a statically classed leaf",
		Build:       buildPassThrough,
	},
	{
		Name:        "caller-override",
		Description: "caller's full class value replaces the leaf's local toggle",
		Build:       buildCallerOverride,
	},
	{
		Name:        "class-list-relay",
		Description: "class list threads through a relay onto a leaf, local tokens first",
		Build:       buildClassListRelay,
	},
	{
		Name:        "opaque-drop",
		Description: "bundle addressed past an erased conditional never reaches the branch",
		Build:       buildOpaqueDrop,
	},
	{
		Name:        "typed-show",
		Description: "shape-preserving conditional relays the bundle to the active branch",
		Build:       buildTypedShow,
	},
	{
		Name:        "interceptor-table",
		Description: "table wrapper captures the caller bundle and spreads it onto the header cell",
		Build:       buildInterceptorTable,
	},
	{
		Name:        "capacity-stress",
		Description: "composes exactly the capacity through a typed boundary",
		Build:       buildCapacityStress,
	},
	{
		Name:        "capacity-overflow",
		Description: "composes one directive past the capacity and fails",
		Build:       buildCapacityOverflow,
	},
	{
		Name:        "deep-nesting",
		Description: "origin depth accumulates across a five-level relay chain",
		Build:       buildDeepNesting,
	},
	{
		Name:        "dynamic-parent-child",
		Description: "parent and child signals drive independent class toggles on one leaf",
		Build:       buildDynamicParentChild,
	},
}

// All returns every scenario in registration order.
func All() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// Get returns the named scenario or an E140 error listing what exists.
func Get(name string) (Scenario, error) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	return Scenario{}, errors.New("E140").
		WithDetail(fmt.Sprintf("no scenario named %q", name)).
		WithSuggestion("known scenarios: " + strings.Join(names, ", "))
}

// finalized runs Finalize on root and packages the result.
func finalized(root *tree.Node, signals map[string]*Signal, opts ...tree.Option) (*Composition, error) {
	if err := tree.Finalize(root, opts...); err != nil {
		return nil, err
	}
	return &Composition{Root: root, Signals: signals}, nil
}

func buildPassThrough(opts ...tree.Option) (*Composition, error) {
	leaf := tree.Element("div", attrs.NewBundle(attrs.Class("bar", "baz")))
	wrapper := tree.Component("PassThrough", tree.Transparent, leaf)

	if err := tree.Compose(attrs.NewBundle(attrs.ClassToggle("foo", true)), wrapper, opts...); err != nil {
		return nil, err
	}
	return finalized(wrapper, nil, opts...)
}

func buildCallerOverride(opts ...tree.Option) (*Composition, error) {
	leaf := tree.Element("div", attrs.NewBundle(attrs.ClassToggle("foo", true)))
	wrapper := tree.Component("PassThrough", tree.Transparent, leaf)

	if err := tree.Compose(attrs.NewBundle(attrs.Attr("class", "bar baz")), wrapper, opts...); err != nil {
		return nil, err
	}
	return finalized(wrapper, nil, opts...)
}

func buildClassListRelay(opts ...tree.Option) (*Composition, error) {
	leaf := tree.Element("div", attrs.NewBundle(attrs.Class("bar", "baz")))
	relay := tree.Component("Relay", tree.Transparent, leaf)

	bundle := attrs.NewBundle(attrs.ClassList([]string{"foo", "qux", "quux"}, true))
	if err := tree.Compose(bundle, relay, opts...); err != nil {
		return nil, err
	}
	return finalized(relay, nil, opts...)
}

func buildOpaqueDrop(opts ...tree.Option) (*Composition, error) {
	content := tree.Element("p", attrs.NewBundle(attrs.Class("content")))
	fallback := tree.Element("p", attrs.NewBundle(attrs.Class("fallback")))
	cond := tree.Show(true, content, fallback)

	bundle := attrs.NewBundle(
		attrs.ClassToggle("forwarded", true),
		attrs.Attr("title", "never arrives"),
	)
	if err := tree.Compose(bundle, cond, opts...); err != nil {
		return nil, err
	}
	return finalized(cond, nil, opts...)
}

func buildTypedShow(opts ...tree.Option) (*Composition, error) {
	content := tree.Element("p", attrs.NewBundle(attrs.Class("content")))
	fallback := tree.Element("p", attrs.NewBundle(attrs.Class("fallback")))
	cond := tree.TypedShow(true, content, fallback)

	if err := tree.Compose(attrs.NewBundle(attrs.ClassToggle("forwarded", true)), cond, opts...); err != nil {
		return nil, err
	}
	return finalized(cond, nil, opts...)
}

func buildInterceptorTable(opts ...tree.Option) (*Composition, error) {
	header := tree.Element("th", attrs.NewBundle(attrs.Class("col-header")))
	body := tree.Element("td", attrs.NewBundle(attrs.Class("col-body")))
	table := tree.Element("table", nil, header, body)
	wrapper, handle := tree.Intercept("Column", table)

	bundle := attrs.NewBundle(
		attrs.ClassToggle("sortable", true),
		attrs.Attr("data-col", "name"),
	)
	if err := tree.Compose(bundle, wrapper, opts...); err != nil {
		return nil, err
	}
	if err := handle.Spread(header, opts...); err != nil {
		return nil, err
	}
	return finalized(wrapper, nil, opts...)
}

func buildCapacityStress(opts ...tree.Option) (*Composition, error) {
	return composeN(attrs.DefaultCapacity, opts...)
}

func buildCapacityOverflow(opts ...tree.Option) (*Composition, error) {
	return composeN(attrs.DefaultCapacity+1, opts...)
}

func composeN(n int, opts ...tree.Option) (*Composition, error) {
	leaf := tree.Element("div", nil)
	wrapper := tree.Component("Wide", tree.Transparent, leaf)

	bundle := attrs.NewBundle()
	for i := 0; i < n; i++ {
		bundle.Push(attrs.Attr(fmt.Sprintf("data-a%d", i), fmt.Sprintf("v%d", i)))
	}
	if err := tree.Compose(bundle, wrapper, opts...); err != nil {
		return nil, err
	}
	return finalized(wrapper, nil, opts...)
}

func buildDeepNesting(opts ...tree.Option) (*Composition, error) {
	leaf := tree.Element("span", attrs.NewBundle(attrs.Class("leaf")))
	node := leaf
	for i := 5; i >= 1; i-- {
		node = tree.Component(fmt.Sprintf("Level%d", i), tree.Transparent, node)
	}

	if err := tree.Compose(attrs.NewBundle(attrs.ClassToggle("deep", true)), node, opts...); err != nil {
		return nil, err
	}
	return finalized(node, nil, opts...)
}

func buildDynamicParentChild(opts ...tree.Option) (*Composition, error) {
	childCond := NewSignal(true)
	parentCond := NewSignal(false)

	leaf := tree.Element("button", attrs.NewBundle(
		attrs.Class("btn"),
		attrs.ClassToggle("child-on", childCond),
	))
	wrapper := tree.Component("Toggle", tree.Transparent, leaf)

	if err := tree.Compose(attrs.NewBundle(attrs.ClassToggle("parent-on", parentCond)), wrapper, opts...); err != nil {
		return nil, err
	}
	return finalized(wrapper, map[string]*Signal{
		"child-on":  childCond,
		"parent-on": parentCond,
	}, opts...)
}

// Render formats every resolved element of a finalized tree, one line per
// element, for terminal output.
func Render(root *tree.Node) string {
	var b strings.Builder
	tree.Walk(root, func(n *tree.Node) {
		snap := n.Snapshot()
		if snap == nil {
			return
		}
		fmt.Fprintf(&b, "%s <%s", n.ID, n.Tag)
		if class := snap.ClassAttr(); class != "" {
			fmt.Fprintf(&b, " class=%q", class)
		}
		if style := snap.StyleAttr(); style != "" {
			fmt.Fprintf(&b, " style=%q", style)
		}
		keys := make([]string, 0, len(snap.Attrs))
		for k := range snap.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%q", k, snap.Attrs[k])
		}
		b.WriteString(">\n")
	})
	return b.String()
}
