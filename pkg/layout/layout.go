package layout

import (
	"github.com/chidanandgowda/huffman-coding/pkg/huffman"
)

// Node is a positioned mirror of a [huffman.Node]. X and Y are world
// coordinates of the node center; Depth counts edges from the root.
type Node struct {
	Frequency int
	Symbol    byte // meaningful only when Leaf is true
	Leaf      bool
	X, Y      float64
	Depth     int
	Width     float64 // horizontal footprint of this subtree
	Left      *Node
	Right     *Node
}

// Tree is the positioned form of a Huffman tree, together with the
// geometry it was computed under. Renderers use Config for node radii and
// margins, and Width/Depth for framing decisions.
type Tree struct {
	Root   *Node
	Config Config
	Width  float64 // total tree width, the root's subtree width
	Depth  int     // maximum node depth, 0 for a single leaf
}

// Box is the bounding box of a positioned tree including margins, in
// world units. The zero Box marks an absent tree.
type Box struct {
	Width  float64
	Height float64
}

// Empty reports whether the box has no extent.
func (b Box) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Count returns the number of nodes in the subtree, 0 for nil.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.Count() + n.Right.Count()
}

// Compute assigns world coordinates to every node of root and returns the
// positioned tree plus its bounding box. A nil root yields a nil tree and
// the zero Box; callers render a placeholder for that case.
//
// The pass runs in two sweeps. Bottom-up, each subtree gets a width: a
// leaf occupies cfg.MinSlotWidth and an internal node the sum of its
// children's widths. Top-down, each node is centered in the horizontal
// interval allotted to its subtree, and the interval splits between the
// children in proportion to their widths, left child on the left. The
// root's interval is [0, tree width]. Vertically every node sits at
// depth*cfg.LevelHeight + cfg.TopMargin, so equal depths share a y.
//
// Compute is pure and deterministic: the same tree and config always
// produce the same coordinates.
func Compute(root *huffman.Node, cfg Config) (*Tree, Box) {
	cfg = cfg.withDefaults()
	if root == nil {
		return nil, Box{}
	}

	positioned := position(root, cfg, 0, subtreeWidth(root, cfg.MinSlotWidth), 0)
	depth := root.MaxDepth()

	tree := &Tree{
		Root:   positioned,
		Config: cfg,
		Width:  positioned.Width,
		Depth:  depth,
	}
	box := Box{
		Width:  positioned.Width + 2*cfg.SideMargin,
		Height: float64(depth+1)*cfg.LevelHeight + 2*cfg.TopMargin,
	}
	return tree, box
}

// subtreeWidth computes the horizontal footprint of a subtree bottom-up.
func subtreeWidth(n *huffman.Node, slot float64) float64 {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return slot
	}
	return subtreeWidth(n.Left, slot) + subtreeWidth(n.Right, slot)
}

// position builds the positioned mirror of n for the interval
// [xStart, xEnd). The interval width always equals the subtree width, so
// recomputing child widths here costs one extra traversal per level but
// keeps the recursion free of side tables.
func position(n *huffman.Node, cfg Config, xStart, xEnd float64, depth int) *Node {
	out := &Node{
		Frequency: n.Frequency,
		Leaf:      n.IsLeaf(),
		X:         (xStart + xEnd) / 2,
		Y:         float64(depth)*cfg.LevelHeight + cfg.TopMargin,
		Depth:     depth,
		Width:     xEnd - xStart,
	}
	if out.Leaf {
		out.Symbol = n.Symbol
		return out
	}

	split := xStart + subtreeWidth(n.Left, cfg.MinSlotWidth)
	out.Left = position(n.Left, cfg, xStart, split, depth+1)
	out.Right = position(n.Right, cfg, split, xEnd, depth+1)
	return out
}

// Walk visits every node of the subtree in pre-order (node, left, right).
// It is the traversal order renderers use for stable node numbering.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	n.Left.Walk(fn)
	n.Right.Walk(fn)
}
