// Package layout computes deterministic 2D positions for Huffman trees.
//
// # Overview
//
// [Compute] takes the tree produced by the huffman package and assigns
// world coordinates to every node, returning a positioned mirror of the
// tree plus the bounding box renderers and viewports need:
//
//	tree, box := layout.Compute(root, layout.DefaultConfig())
//
// # Algorithm
//
// Widths first, bottom-up: every leaf occupies [Config.MinSlotWidth]
// horizontal units and every internal node occupies the sum of its
// children's widths, so the root width equals the total width of the
// drawing. The pass runs once per call and stores one width per node.
//
// Positions second, top-down: each node sits at the horizontal midpoint of
// the interval allotted to its subtree. The interval splits into two parts
// proportional to the children's widths, left child on the left. The root
// starts with [0, totalWidth]. Vertically, y is depth times
// [Config.LevelHeight] plus the top margin, so all nodes of one depth
// share a y and can never overlap nodes of another depth, however
// unbalanced the tree is.
//
// # Determinism
//
// Compute is a pure function: the same tree and config always produce the
// same coordinates, and repeated calls are idempotent. A nil root yields a
// nil tree and a zero [Box]; callers render a placeholder for that case.
package layout
