package tree

import (
	"github.com/vango-dev/attrmerge/pkg/attrs"
	"github.com/vango-dev/attrmerge/pkg/merge"
)

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement     NodeKind = iota // Concrete leaf render target
	KindComponent                   // Named boundary wrapping a subtree
	KindConditional                 // Show / TypedShow construct
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	case KindConditional:
		return "Conditional"
	default:
		return "Unknown"
	}
}

// Node is one entry in the render tree. Elements own a local bundle and
// accumulate at most one forwarded bundle; components and conditionals only
// route or drop bundles on their way in.
type Node struct {
	Kind     NodeKind
	Tag      string   // Element tag name (e.g., "div")
	Name     string   // Component name
	Boundary Boundary // For components and conditionals
	ID       string   // Assigned during Finalize
	Children []*Node

	local      *attrs.Bundle
	localTaken bool
	forwarded  *attrs.Bundle
	handle     *InterceptorHandle
	snapshot   *merge.Snapshot
}

// Element creates a concrete leaf render target with the given local bundle.
// The bundle stays owned by the element; handing it to a second composition
// target surfaces as a reuse error when the tree is finalized.
func Element(tag string, local *attrs.Bundle, children ...*Node) *Node {
	return &Node{
		Kind:     KindElement,
		Tag:      tag,
		local:    local,
		Children: children,
	}
}

// Component wraps child in a named boundary. Transparent components relay
// inbound bundles to their child; opaque components discard them.
func Component(name string, boundary Boundary, child *Node) *Node {
	n := &Node{
		Kind:     KindComponent,
		Name:     name,
		Boundary: boundary,
	}
	if child != nil {
		n.Children = []*Node{child}
	}
	return n
}

// ForwardTarget returns the node an inbound bundle is relayed to, or nil
// when this node terminates forwarding (leaf elements, opaque boundaries,
// empty interiors).
func (n *Node) ForwardTarget() *Node {
	if n == nil || n.Kind == KindElement || n.Boundary == Opaque {
		return nil
	}
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// Snapshot returns the element's resolved attribute set. Nil before
// Finalize runs, and always nil for non-element nodes.
func (n *Node) Snapshot() *merge.Snapshot {
	if n == nil {
		return nil
	}
	return n.snapshot
}

// Walk visits every node in the tree depth-first, parents before children.
func Walk(root *Node, fn func(*Node)) {
	if root == nil {
		return
	}
	fn(root)
	for _, c := range root.Children {
		Walk(c, fn)
	}
}
