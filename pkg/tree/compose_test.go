package tree

import (
	stderrors "errors"
	"testing"

	merrors "github.com/vango-dev/attrmerge/internal/errors"
	"github.com/vango-dev/attrmerge/pkg/attrs"
	"github.com/vango-dev/attrmerge/pkg/merge"
)

// recorder captures observer events for assertions.
type recorder struct {
	merges   []string
	drops    []DropReason
	rejected []error
}

func (r *recorder) MergeResolved(nodeID string, _ *merge.Snapshot) {
	r.merges = append(r.merges, nodeID)
}

func (r *recorder) BundleDropped(reason DropReason, _ int) {
	r.drops = append(r.drops, reason)
}

func (r *recorder) CompositionRejected(err error) {
	r.rejected = append(r.rejected, err)
}

func TestComposeThroughTransparentRelay(t *testing.T) {
	leaf := Element("div", attrs.NewBundle(attrs.Class("bar", "baz")))
	relay := Component("Relay", Transparent, leaf)

	if err := Compose(attrs.NewBundle(attrs.ClassToggle("foo", true)), relay); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if err := Finalize(relay); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if got := leaf.Snapshot().ClassAttr(); got != "bar baz foo" {
		t.Errorf("ClassAttr() = %q, want %q", got, "bar baz foo")
	}
}

func TestComposeDirectToElement(t *testing.T) {
	leaf := Element("input", attrs.NewBundle(attrs.Attr("placeholder", "inner")))

	if err := Compose(attrs.NewBundle(attrs.Attr("placeholder", "outer")), leaf); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if err := Finalize(leaf); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if got := leaf.Snapshot().Attrs["placeholder"]; got != "outer" {
		t.Errorf("Attrs[placeholder] = %q, want %q", got, "outer")
	}
}

func TestComposeDroppedAtOpaqueBoundary(t *testing.T) {
	leaf := Element("div", attrs.NewBundle(attrs.Class("inner")))
	boxed := Component("Boxed", Opaque, leaf)
	rec := &recorder{}

	err := Compose(attrs.NewBundle(
		attrs.ClassToggle("foo", true),
		attrs.Attr("title", "t"),
	), boxed, WithObserver(rec))
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if err := Finalize(boxed); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	snap := leaf.Snapshot()
	if snap.HasClass("foo") {
		t.Error("directives crossed an opaque boundary")
	}
	if _, ok := snap.Attrs["title"]; ok {
		t.Error("attribute crossed an opaque boundary")
	}
	if len(rec.drops) != 1 || rec.drops[0] != DropOpaqueBoundary {
		t.Errorf("drops = %v, want one opaque-boundary drop", rec.drops)
	}
}

func TestComposeOpaqueDropAtAnyDepth(t *testing.T) {
	leaf := Element("span", nil)
	inner := Component("Inner", Transparent, leaf)
	boxed := Component("Boxed", Opaque, inner)
	outer := Component("Outer", Transparent, boxed)

	if err := Compose(attrs.NewBundle(attrs.ClassToggle("foo", true)), outer); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if err := Finalize(outer); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if leaf.Snapshot().HasClass("foo") {
		t.Error("bundle crossed an opaque boundary two levels in")
	}
}

func TestShowIsOpaque(t *testing.T) {
	content := Element("p", attrs.NewBundle(attrs.Class("shown")))
	fallback := Element("p", attrs.NewBundle(attrs.Class("hidden")))
	cond := Show(true, content, fallback)

	if err := Compose(attrs.NewBundle(attrs.ClassToggle("forwarded", true)), cond); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if err := Finalize(cond); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if content.Snapshot().HasClass("forwarded") {
		t.Error("Show should drop forwarded bundles before branch selection")
	}
	if !content.Snapshot().HasClass("shown") {
		t.Error("selected branch should keep its local classes")
	}
}

func TestTypedShowIsTransparent(t *testing.T) {
	content := Element("p", attrs.NewBundle(attrs.Class("shown")))
	fallback := Element("p", attrs.NewBundle(attrs.Class("hidden")))
	cond := TypedShow(false, content, fallback)

	if err := Compose(attrs.NewBundle(attrs.ClassToggle("forwarded", true)), cond); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if err := Finalize(cond); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if !fallback.Snapshot().HasClass("forwarded") {
		t.Error("TypedShow should relay to the active branch")
	}
	if !fallback.Snapshot().HasClass("hidden") {
		t.Error("active branch should keep its local classes")
	}
}

func TestComposeClassListThroughRelay(t *testing.T) {
	leaf := Element("div", attrs.NewBundle(attrs.Class("bar", "baz")))
	relay := Component("Relay", Transparent, leaf)

	err := Compose(attrs.NewBundle(
		attrs.ClassList([]string{"foo", "qux", "quux"}, true),
	), relay)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if err := Finalize(relay); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if got := leaf.Snapshot().ClassAttr(); got != "bar baz foo qux quux" {
		t.Errorf("ClassAttr() = %q, want %q", got, "bar baz foo qux quux")
	}
}

func TestComposeClassListOntoNonLeaf(t *testing.T) {
	leaf := Element("div", nil)
	boxed := Component("Boxed", Opaque, leaf)

	err := Compose(attrs.NewBundle(attrs.ClassList([]string{"a", "b"}, true)), boxed)
	if !stderrors.Is(err, merrors.New("E002")) {
		t.Errorf("class-list onto erased boundary: got %v, want E002", err)
	}
}

func TestComposeCapacityAtTypedBoundary(t *testing.T) {
	build := func(n int) *attrs.Bundle {
		b := attrs.NewBundle()
		for i := 0; i < n; i++ {
			b.Push(attrs.ClassToggle(token(i), true))
		}
		return b
	}

	leaf := Element("div", nil)
	relay := Component("Relay", Transparent, leaf)
	if err := Compose(build(attrs.DefaultCapacity), relay); err != nil {
		t.Fatalf("composing exactly %d directives: %v", attrs.DefaultCapacity, err)
	}

	leaf2 := Element("div", nil)
	relay2 := Component("Relay", Transparent, leaf2)
	rec := &recorder{}
	err := Compose(build(attrs.DefaultCapacity+1), relay2, WithObserver(rec))
	if !stderrors.Is(err, merrors.New("E001")) {
		t.Fatalf("composing %d directives: got %v, want E001", attrs.DefaultCapacity+1, err)
	}
	if len(rec.rejected) != 1 {
		t.Errorf("rejections observed = %d, want 1", len(rec.rejected))
	}

	// Direct element composition has no typed boundary to encode through.
	leaf3 := Element("div", nil)
	if err := Compose(build(attrs.DefaultCapacity+5), leaf3); err != nil {
		t.Errorf("direct element composition should not be capacity-checked: %v", err)
	}
}

func TestComposeReusedBundle(t *testing.T) {
	b := attrs.NewBundle(attrs.ClassToggle("x", true))
	first := Element("div", nil)
	second := Element("div", nil)

	if err := Compose(b, first); err != nil {
		t.Fatalf("first Compose() error: %v", err)
	}
	err := Compose(b, second)
	if !stderrors.Is(err, merrors.New("E004")) {
		t.Errorf("second Compose() = %v, want E004", err)
	}
}

func TestFinalizeDetectsSharedLocalBundle(t *testing.T) {
	b := attrs.NewBundle(attrs.Class("x"))
	el := Element("div", b)
	if err := Compose(b, Element("span", nil)); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	err := Finalize(el)
	if !stderrors.Is(err, merrors.New("E004")) {
		t.Errorf("Finalize() = %v, want E004", err)
	}
}

func TestComposeIncrementsOriginDepth(t *testing.T) {
	leaf := Element("div", nil)
	inner := Component("Inner", Transparent, leaf)
	outer := Component("Outer", Transparent, inner)

	if err := Compose(attrs.NewBundle(attrs.ClassToggle("deep", true)), outer); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	ds := leaf.forwarded.Directives()
	if len(ds) != 1 {
		t.Fatalf("forwarded directives = %d, want 1", len(ds))
	}
	if ds[0].OriginDepth != 2 {
		t.Errorf("OriginDepth = %d, want 2", ds[0].OriginDepth)
	}
}

func TestFinalizeAssignsIDsDepthFirst(t *testing.T) {
	a := Element("span", nil)
	b := Element("span", nil)
	root := Element("div", nil, a, b)
	rec := &recorder{}

	if err := Finalize(root, WithObserver(rec)); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if root.ID != "n1" || a.ID != "n2" || b.ID != "n3" {
		t.Errorf("IDs = %q %q %q, want n1 n2 n3", root.ID, a.ID, b.ID)
	}
	if len(rec.merges) != 3 {
		t.Errorf("merges observed = %d, want 3", len(rec.merges))
	}
}

func token(i int) string {
	return "c" + string(rune('a'+i%26)) + string(rune('a'+i/26))
}
