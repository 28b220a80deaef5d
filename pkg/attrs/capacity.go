package attrs

import (
	"fmt"

	"github.com/vango-dev/attrmerge/internal/errors"
)

// DefaultCapacity is the maximum directive count a typed composition path
// accepts. The value mirrors the fixed-arity encoding of the system this
// engine models; it is configuration, not a semantic ceiling. Compositions
// may override it per path.
const DefaultCapacity = 26

// EffectiveCapacity resolves a configured capacity: non-positive values
// fall back to DefaultCapacity.
func EffectiveCapacity(capacity int) int {
	if capacity <= 0 {
		return DefaultCapacity
	}
	return capacity
}

// CheckCapacity verifies that count directives fit through a typed boundary
// with the given capacity. The returned error names the offending count.
func CheckCapacity(count, capacity int) error {
	capacity = EffectiveCapacity(capacity)
	if count <= capacity {
		return nil
	}
	return errors.New("E001").
		WithCallSite(2).
		WithDetail(fmt.Sprintf("%d directives composed through a typed boundary with capacity %d", count, capacity)).
		WithSuggestion("Split the composition across nested components, or raise the capacity for this path")
}
