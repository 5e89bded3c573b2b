package huffman

// Codes derives the bit string for every symbol in the tree: descending to
// a left child appends "0", to a right child "1", and the accumulated path
// at each leaf is that symbol's code. The codes exist for display only
// (artifacts, tooltips, the terminal view); actual bit-packing lives in
// the external compressor and is never reconstructed here.
//
// A single-leaf tree yields the code "0" for its symbol, since a
// zero-length code cannot be shown or counted. A nil tree yields an empty
// map.
func Codes(root *Node) map[byte]string {
	codes := make(map[byte]string)
	if root == nil {
		return codes
	}
	if root.IsLeaf() {
		codes[root.Symbol] = "0"
		return codes
	}

	var walk func(n *Node, prefix string)
	walk = func(n *Node, prefix string) {
		if n.IsLeaf() {
			codes[n.Symbol] = prefix
			return
		}
		walk(n.Left, prefix+"0")
		walk(n.Right, prefix+"1")
	}
	walk(root, "")
	return codes
}
