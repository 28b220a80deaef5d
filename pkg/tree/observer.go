package tree

import "github.com/vango-dev/attrmerge/pkg/merge"

// DropReason says why a bundle's directives never reached a render node.
type DropReason uint8

const (
	// DropOpaqueBoundary: the bundle was addressed past a shape-erased
	// boundary and was discarded before branch content.
	DropOpaqueBoundary DropReason = iota
	// DropUnspreadInterceptor: an interceptor captured the bundle but was
	// never spread before finalization.
	DropUnspreadInterceptor
)

// String returns the string representation of the DropReason.
func (r DropReason) String() string {
	switch r {
	case DropOpaqueBoundary:
		return "opaque-boundary"
	case DropUnspreadInterceptor:
		return "unspread-interceptor"
	default:
		return "unknown"
	}
}

// Observer receives composition events. Drops at opaque boundaries and
// unconsumed interceptors are silent by contract; the observer is how
// tooling sees them anyway.
type Observer interface {
	// MergeResolved fires once per element when Finalize resolves it.
	MergeResolved(nodeID string, snap *merge.Snapshot)
	// BundleDropped fires when directives are silently discarded.
	BundleDropped(reason DropReason, directives int)
	// CompositionRejected fires when a composition-time check fails. The
	// error is also returned to the caller.
	CompositionRejected(err error)
}

type nopObserver struct{}

func (nopObserver) MergeResolved(string, *merge.Snapshot) {}
func (nopObserver) BundleDropped(DropReason, int)         {}
func (nopObserver) CompositionRejected(error)             {}
