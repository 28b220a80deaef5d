package attrs

import (
	"github.com/vango-dev/attrmerge/internal/errors"
)

// Bundle is the ordered sequence of directives declared at one call site.
// Bundles are append-only until merged; there is no removal operation.
type Bundle struct {
	directives []Directive
	consumed   bool
}

// NewBundle creates a bundle from the given directives. Empty directives
// are ignored, which allows conditional construction at call sites.
func NewBundle(directives ...Directive) *Bundle {
	b := &Bundle{directives: make([]Directive, 0, len(directives))}
	for _, d := range directives {
		b.Push(d)
	}
	return b
}

// Push appends a directive. Returns the bundle for chaining.
func (b *Bundle) Push(d Directive) *Bundle {
	if d.IsEmpty() {
		return b
	}
	b.directives = append(b.directives, d)
	return b
}

// Concat consumes both bundles and returns a new one holding b's directives
// before other's, preserving relative order. Either operand having already
// been handed to a composition target is a composition error, and neither
// operand is consumed on that branch.
func (b *Bundle) Concat(other *Bundle) (*Bundle, error) {
	if b.Consumed() || other.Consumed() {
		return nil, errors.New("E004").WithCallSite(2)
	}
	left, err := b.Take()
	if err != nil {
		return nil, err
	}
	var right []Directive
	if other != nil {
		right, err = other.Take()
		if err != nil {
			return nil, err
		}
	}
	merged := make([]Directive, 0, len(left)+len(right))
	merged = append(merged, left...)
	merged = append(merged, right...)
	return &Bundle{directives: merged}, nil
}

// IsEmpty reports whether the bundle holds no directives.
func (b *Bundle) IsEmpty() bool {
	return b == nil || len(b.directives) == 0
}

// Len returns the number of top-level directives.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.directives)
}

// ExpandedLen returns the directive count with Spread directives expanded
// to the length of their wrapped bundles. This is the count checked against
// a typed boundary's capacity.
func (b *Bundle) ExpandedLen() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, d := range b.directives {
		if d.Kind == KindSpread {
			n += d.Sub.ExpandedLen()
			continue
		}
		n++
	}
	return n
}

// Directives returns the underlying directive sequence. Callers must not
// mutate it.
func (b *Bundle) Directives() []Directive {
	if b == nil {
		return nil
	}
	return b.directives
}

// Clone returns an independent deep copy with no shared mutable state.
// Nested spread bundles are cloned as well. The clone is never consumed,
// regardless of the receiver's state.
func (b *Bundle) Clone() *Bundle {
	if b == nil {
		return &Bundle{}
	}
	out := make([]Directive, len(b.directives))
	copy(out, b.directives)
	for i, d := range out {
		if d.Kind == KindSpread {
			out[i].Sub = d.Sub.Clone()
		}
		if len(d.Names) > 0 {
			names := make([]string, len(d.Names))
			copy(names, d.Names)
			out[i].Names = names
		}
	}
	return &Bundle{directives: out}
}

// Take transfers ownership of the bundle's directives to the caller and
// marks the bundle consumed. A second Take is a composition error: a bundle
// has at most one composition target.
func (b *Bundle) Take() ([]Directive, error) {
	if b == nil {
		return nil, nil
	}
	if b.consumed {
		return nil, errors.New("E004").WithCallSite(2)
	}
	b.consumed = true
	return b.directives, nil
}

// Consumed reports whether ownership has already been transferred.
func (b *Bundle) Consumed() bool {
	return b != nil && b.consumed
}

// Descend increments every directive's origin depth, including directives
// inside nested spread bundles. Called once per transparent boundary a
// bundle crosses on its way inward.
func (b *Bundle) Descend() {
	if b == nil {
		return
	}
	for i := range b.directives {
		b.directives[i].OriginDepth++
		if b.directives[i].Kind == KindSpread {
			b.directives[i].Sub.Descend()
		}
	}
}
