package huffman

// Node is one vertex of a Huffman tree. A node is a leaf iff both children
// are nil; Symbol is meaningful only for leaves. For internal nodes,
// Frequency equals Left.Frequency + Right.Frequency. Each node is owned by
// exactly one parent (or by the caller for the root); trees are acyclic and
// never share subtrees.
//
// The zero value is a leaf for symbol 0 with count 0, which Build never
// produces; construct trees through [Build].
type Node struct {
	Frequency int
	Symbol    byte // meaningful only when IsLeaf reports true
	Left      *Node
	Right     *Node
}

// IsLeaf reports whether the node carries a symbol (no children).
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// Count returns the total number of nodes in the subtree, 0 for nil.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.Count() + n.Right.Count()
}

// Leaves returns the number of leaf nodes in the subtree, 0 for nil.
func (n *Node) Leaves() int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

// MaxDepth returns the depth of the deepest node, counting the root as
// depth 0. A single leaf has MaxDepth 0; a nil tree has MaxDepth -1 so
// that depth arithmetic stays consistent for empty input.
func (n *Node) MaxDepth() int {
	if n == nil {
		return -1
	}
	left, right := n.Left.MaxDepth(), n.Right.MaxDepth()
	if right > left {
		left = right
	}
	return left + 1
}
