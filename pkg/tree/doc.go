// Package tree models the render tree that attribute bundles are composed
// into: concrete leaf elements, named component boundaries, and conditional
// constructs.
//
// Every non-leaf node carries an immutable Boundary tag assigned at
// construction. Compose threads a bundle inward through Transparent
// boundaries until it lands on a leaf element, and discards it silently at
// an Opaque boundary. Structural mistakes are rejected at composition time
// with coded errors: exceeding a typed boundary's capacity, composing a
// class-list toggle toward a target that can never reach a leaf, or reusing
// a bundle that was already handed to a composition target.
//
// Finalize walks a composed tree once, assigns node IDs, and resolves each
// element's effective attribute snapshot. Observers see merges and drops
// without the composition path itself doing any I/O.
package tree
