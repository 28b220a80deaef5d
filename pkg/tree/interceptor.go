package tree

import (
	"github.com/vango-dev/attrmerge/internal/errors"
	"github.com/vango-dev/attrmerge/pkg/attrs"
)

// InterceptorHandle wraps a bundle captured at a component boundary for
// manual placement. The handle is single-use: exactly one Spread consumes
// it, and a handle never spread discards its directives at finalization
// without error.
type InterceptorHandle struct {
	captured *attrs.Bundle
	spread   bool
}

// Intercept creates a capturing component boundary. Bundles composed onto
// the returned node are bound into the handle instead of auto-forwarding to
// the child.
func Intercept(name string, child *Node) (*Node, *InterceptorHandle) {
	h := &InterceptorHandle{}
	n := &Node{
		Kind:     KindComponent,
		Name:     name,
		Boundary: Transparent,
		handle:   h,
	}
	if child != nil {
		n.Children = []*Node{child}
	}
	return n, h
}

// Spread applies the captured directives to target under the usual merge
// rules, as if composed there directly. A second Spread is a composition
// error (E003). Spread before Finalize; a later spread cannot reach
// already-resolved snapshots.
func (h *InterceptorHandle) Spread(target *Node, opts ...Option) error {
	if h.spread {
		return errors.New("E003").WithCallSite(1)
	}
	h.spread = true

	b := h.captured
	h.captured = nil
	if b.IsEmpty() {
		return nil
	}
	return Compose(b, target, opts...)
}

// Consumed reports whether the handle has been spread.
func (h *InterceptorHandle) Consumed() bool {
	return h.spread
}

// capture binds an arriving owned bundle into the handle, concatenating
// onto any earlier capture.
func (h *InterceptorHandle) capture(b *attrs.Bundle) error {
	if h.captured == nil {
		h.captured = b
		return nil
	}
	combined, err := h.captured.Concat(b)
	if err != nil {
		return err
	}
	h.captured = combined
	return nil
}

// discard drops an unconsumed capture and returns how many directive slots
// it held. Called at finalization; dropping is not an error.
func (h *InterceptorHandle) discard() int {
	if h.spread || h.captured.IsEmpty() {
		return 0
	}
	n := h.captured.ExpandedLen()
	h.captured = nil
	return n
}
