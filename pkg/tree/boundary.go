package tree

// Boundary classifies a nesting point by whether it preserves enough shape
// information to keep forwarding attributes inward. Set once at node
// construction, immutable afterward.
type Boundary uint8

const (
	// Transparent boundaries preserve a concrete, composition-addressable
	// shape down to a terminal render target; bundles thread through.
	Transparent Boundary = iota
	// Opaque boundaries have erased their content's shape into a uniform
	// runtime representation; bundles addressed past them are discarded.
	Opaque
)

// String returns the string representation of the Boundary.
func (b Boundary) String() string {
	switch b {
	case Transparent:
		return "Transparent"
	case Opaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}
