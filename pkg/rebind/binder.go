// Package rebind connects the dynamic slots of resolved snapshots to their
// external reactive sources. When a source fires, the binder recomputes only
// the affected leaf entry and emits a single patch; the merge never re-runs.
package rebind

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/attrmerge/pkg/merge"
	"github.com/vango-dev/attrmerge/pkg/stream"
)

// Sink receives patches as sources fire. Calls happen synchronously on the
// goroutine of the notifying source and may re-enter the binder.
type Sink func(stream.Patch)

// Option configures a Binder.
type Option func(*Binder)

// WithLogger sets the binder's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Binder owns the subscriptions of one finalized tree. Bind is called once
// per element after its merge resolves, so no notification can ever observe
// a half-merged snapshot. Teardown releases every subscription; a source
// that fires anyway afterwards is a no-op.
type Binder struct {
	mu       sync.Mutex
	closed   bool
	releases []func()
	sink     Sink
	logger   *slog.Logger
	bound    int
}

// NewBinder creates a binder emitting patches to sink.
func NewBinder(sink Sink, opts ...Option) *Binder {
	b := &Binder{
		sink:   sink,
		logger: slog.Default().With("component", "rebind"),
	}
	for _, fn := range opts {
		fn(b)
	}
	return b
}

// Bind subscribes every dynamic slot of the element's snapshot. The
// snapshot itself is left untouched; patches describe the divergence from
// it as sources fire.
func (b *Binder) Bind(nodeID string, snap *merge.Snapshot) {
	if snap == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, slot := range snap.Dynamic {
		slot := slot
		release := slot.Source.OnChange(func() {
			b.fire(nodeID, slot)
		})
		if release != nil {
			b.releases = append(b.releases, release)
		}
		b.bound++
	}
}

// Bound returns how many slots have active subscriptions.
func (b *Binder) Bound() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bound
}

// Teardown releases every subscription. Safe to call more than once.
func (b *Binder) Teardown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	releases := b.releases
	b.releases = nil
	b.bound = 0
	b.mu.Unlock()

	for _, release := range releases {
		release()
	}
}

// fire recomputes one slot and emits the resulting patch. The patch is built
// and the sink invoked outside the lock, so a sink may call back into the
// binder without deadlocking.
func (b *Binder) fire(nodeID string, slot merge.Slot) {
	b.mu.Lock()
	if b.closed {
		// Stale notification from a source released during teardown.
		b.mu.Unlock()
		return
	}
	sink := b.sink
	b.mu.Unlock()

	var patch stream.Patch
	switch slot.Kind {
	case merge.SlotAttr:
		if v, ok := merge.FormatValue(slot.Key, slot.Source.Current()); ok {
			patch = stream.Patch{Op: stream.PatchSetAttr, NodeID: nodeID, Key: slot.Key, Value: v}
		} else {
			patch = stream.Patch{Op: stream.PatchRemoveAttr, NodeID: nodeID, Key: slot.Key}
		}
	case merge.SlotClass:
		if merge.Truthy(slot.Source.Current()) {
			patch = stream.Patch{Op: stream.PatchAddClass, NodeID: nodeID, Key: slot.Key}
		} else {
			patch = stream.Patch{Op: stream.PatchRemoveClass, NodeID: nodeID, Key: slot.Key}
		}
	case merge.SlotStyle:
		if v, ok := merge.FormatValue(slot.Key, slot.Source.Current()); ok {
			patch = stream.Patch{Op: stream.PatchSetStyle, NodeID: nodeID, Key: slot.Key, Value: v}
		} else {
			patch = stream.Patch{Op: stream.PatchRemoveStyle, NodeID: nodeID, Key: slot.Key}
		}
	default:
		b.logger.Warn("unknown slot kind", "kind", slot.Kind, "node", nodeID, "key", slot.Key)
		return
	}

	if sink != nil {
		sink(patch)
	}
}
