package tree

import (
	"fmt"

	"github.com/vango-dev/attrmerge/internal/errors"
	"github.com/vango-dev/attrmerge/pkg/attrs"
	"github.com/vango-dev/attrmerge/pkg/merge"
)

// Options configure a composition path.
type Options struct {
	capacity int
	observer Observer
}

// Option configures composition and finalization.
type Option func(*Options)

// WithCapacity overrides the directive capacity checked at typed boundaries.
// Zero or negative falls back to attrs.DefaultCapacity.
func WithCapacity(n int) Option {
	return func(o *Options) { o.capacity = n }
}

// WithObserver registers an observer for merges, drops, and rejections.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func buildOptions(opts []Option) *Options {
	o := &Options{observer: nopObserver{}}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// Compose hands the bundle to the target, transferring ownership. The bundle
// threads inward through transparent boundaries, incrementing each
// directive's origin depth per boundary crossed, and is discarded silently
// at an opaque boundary.
//
// Composition-time rejections, always returned and never recovered:
//   - E001: the bundle's expanded directive count exceeds the capacity of a
//     typed boundary it crosses.
//   - E002: the bundle carries a class-list toggle but terminates at a
//     non-leaf target.
//   - E004: the bundle was already handed to a composition target.
func Compose(bundle *attrs.Bundle, target *Node, opts ...Option) error {
	o := buildOptions(opts)

	count := bundle.ExpandedLen()
	ds, err := bundle.Take()
	if err != nil {
		o.observer.CompositionRejected(err)
		return err
	}
	if len(ds) == 0 || target == nil {
		return nil
	}
	owned := attrs.NewBundle(ds...)

	if err := thread(owned, count, target, o); err != nil {
		o.observer.CompositionRejected(err)
		return err
	}
	return nil
}

// thread routes an owned bundle toward its terminal target.
func thread(b *attrs.Bundle, count int, target *Node, o *Options) error {
	for target != nil {
		switch {
		case target.Kind == KindElement:
			return attach(target, b)

		case target.handle != nil:
			if err := attrs.CheckCapacity(count, o.capacity); err != nil {
				return err
			}
			b.Descend()
			return target.handle.capture(b)

		case target.Boundary == Opaque:
			if hasClassList(b) {
				return errors.New("E002").
					WithCallSite(2).
					WithDetail(fmt.Sprintf("class-list toggle addressed past the erased boundary %q", boundaryName(target)))
			}
			o.observer.BundleDropped(DropOpaqueBoundary, count)
			return nil

		default:
			// Transparent typed boundary.
			if err := attrs.CheckCapacity(count, o.capacity); err != nil {
				return err
			}
			b.Descend()
			next := target.ForwardTarget()
			if next == nil {
				if hasClassList(b) {
					return errors.New("E002").
						WithCallSite(2).
						WithDetail(fmt.Sprintf("boundary %q has no concrete render target", boundaryName(target)))
				}
				o.observer.BundleDropped(DropOpaqueBoundary, count)
				return nil
			}
			target = next
		}
	}
	return nil
}

// attach concatenates an arriving bundle onto the element's forwarded
// bundle. Later arrivals sit after earlier ones, so the outermost caller's
// directives win keyed overrides.
func attach(el *Node, b *attrs.Bundle) error {
	if el.forwarded == nil {
		el.forwarded = b
		return nil
	}
	combined, err := el.forwarded.Concat(b)
	if err != nil {
		return err
	}
	el.forwarded = combined
	return nil
}

func hasClassList(b *attrs.Bundle) bool {
	for _, d := range b.Directives() {
		switch d.Kind {
		case attrs.KindClassListToggle:
			return true
		case attrs.KindSpread:
			if hasClassList(d.Sub) {
				return true
			}
		}
	}
	return false
}

func boundaryName(n *Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.Kind.String()
}

// Finalize walks the composed tree once: assigns stable node IDs in
// depth-first order, resolves every element's snapshot, and reports
// unconsumed interceptor captures to the observer. Run it exactly once per
// constructed tree.
func Finalize(root *Node, opts ...Option) error {
	o := buildOptions(opts)
	id := 0
	return finalizeNode(root, &id, o)
}

func finalizeNode(n *Node, id *int, o *Options) error {
	if n == nil {
		return nil
	}
	*id++
	n.ID = fmt.Sprintf("n%d", *id)

	if n.Kind == KindElement {
		if !n.localTaken {
			ds, err := n.local.Take()
			if err != nil {
				o.observer.CompositionRejected(err)
				return err
			}
			n.local = attrs.NewBundle(ds...)
			n.localTaken = true
		}
		n.snapshot = merge.Resolve(n.local, n.forwarded)
		o.observer.MergeResolved(n.ID, n.snapshot)
	}

	if n.handle != nil {
		if dropped := n.handle.discard(); dropped > 0 {
			o.observer.BundleDropped(DropUnspreadInterceptor, dropped)
		}
	}

	for _, c := range n.Children {
		if err := finalizeNode(c, id, o); err != nil {
			return err
		}
	}
	return nil
}
