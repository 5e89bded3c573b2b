package huffman

import (
	"cmp"
	"slices"
)

// Build constructs the Huffman tree for a frequency table and returns its
// root, or nil when the table has no positive entries. Symbols with zero
// or negative counts are dropped silently. A table with exactly one
// positive entry yields that symbol's leaf directly, with no merge step.
//
// The merge loop stable-sorts the whole working collection on every
// iteration instead of maintaining a heap. That costs O(n² log n) for n
// symbols (n ≤ 256, so at most a few thousand comparisons) and buys an
// exactly reproducible shape: among equal frequencies the node that
// entered the collection earlier merges first, and merged nodes always
// join at the end. Replacing this with a priority queue would change
// which symbols land at greater depth whenever frequencies collide.
//
// Build never fails and never mutates its input.
func Build(freqs Table) *Node {
	nodes := make([]*Node, 0, len(freqs))
	for _, sym := range freqs.Symbols() {
		nodes = append(nodes, &Node{Frequency: freqs[sym], Symbol: sym})
	}
	if len(nodes) == 0 {
		return nil
	}

	for len(nodes) > 1 {
		slices.SortStableFunc(nodes, func(a, b *Node) int {
			return cmp.Compare(a.Frequency, b.Frequency)
		})
		a, b := nodes[0], nodes[1]
		merged := &Node{
			Frequency: a.Frequency + b.Frequency,
			Left:      a,
			Right:     b,
		}
		nodes = append(nodes[2:], merged)
	}
	return nodes[0]
}
