package tree

// Show selects between content and fallback, erasing both branches into a
// uniform shape. The erasure makes the construct an opaque boundary: bundles
// composed onto it are discarded before branch selection, for any nesting
// depth beyond it.
func Show(cond bool, content, fallback *Node) *Node {
	n := &Node{
		Kind:     KindConditional,
		Name:     "Show",
		Boundary: Opaque,
	}
	if sel := selectBranch(cond, content, fallback); sel != nil {
		n.Children = []*Node{sel}
	}
	return n
}

// TypedShow selects between content and fallback while keeping the selected
// branch's concrete shape. The construct is transparent: bundles composed
// onto it thread through to whichever branch is active.
func TypedShow(cond bool, content, fallback *Node) *Node {
	n := &Node{
		Kind:     KindConditional,
		Name:     "TypedShow",
		Boundary: Transparent,
	}
	if sel := selectBranch(cond, content, fallback); sel != nil {
		n.Children = []*Node{sel}
	}
	return n
}

func selectBranch(cond bool, content, fallback *Node) *Node {
	if cond {
		return content
	}
	return fallback
}
