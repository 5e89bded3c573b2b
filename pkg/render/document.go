package render

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/chidanandgowda/huffman-coding/pkg/huffman"
	"github.com/chidanandgowda/huffman-coding/pkg/layout"
)

// Document is the canonical serialization format for a built tree. It is
// the JSON artifact the CLI writes, the value the snapshot store persists
// (bson tags for the Mongo backend), and the payload the HTTP API serves.
//
// The tree is stored flattened in pre-order with parent indices, which
// keeps the format free of recursion and makes round-trips exact:
// [Document.Tree] rebuilds the positioned tree this document was created
// from.
type Document struct {
	ID         string    `json:"id" bson:"id"`
	Name       string    `json:"name" bson:"name"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	Source     string    `json:"source,omitempty" bson:"source,omitempty"`
	TotalBytes int64     `json:"total_bytes" bson:"total_bytes"`

	Frequencies []FrequencyEntry `json:"frequencies" bson:"frequencies"`
	Codes       []CodeEntry      `json:"codes,omitempty" bson:"codes,omitempty"`

	Nodes  []DocNode     `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Box    Box           `json:"box" bson:"box"`
	Config layout.Config `json:"config" bson:"config"`
}

// FrequencyEntry is one symbol's occurrence count, with its display label
// precomputed so consumers never re-derive escaping rules.
type FrequencyEntry struct {
	Symbol byte   `json:"symbol" bson:"symbol"`
	Label  string `json:"label" bson:"label"`
	Count  int    `json:"count" bson:"count"`
}

// CodeEntry is one symbol's bit string.
type CodeEntry struct {
	Symbol byte   `json:"symbol" bson:"symbol"`
	Label  string `json:"label" bson:"label"`
	Code   string `json:"code" bson:"code"`
}

// DocNode is a positioned node in flattened pre-order parent-index form.
// Parent is -1 for the root.
type DocNode struct {
	Index     int     `json:"index" bson:"index"`
	Parent    int     `json:"parent" bson:"parent"`
	Frequency int     `json:"frequency" bson:"frequency"`
	Leaf      bool    `json:"leaf" bson:"leaf"`
	Symbol    byte    `json:"symbol,omitempty" bson:"symbol,omitempty"`
	Label     string  `json:"label,omitempty" bson:"label,omitempty"`
	X         float64 `json:"x" bson:"x"`
	Y         float64 `json:"y" bson:"y"`
	Depth     int     `json:"depth" bson:"depth"`
}

// Box mirrors layout.Box with serialization tags.
type Box struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// NewDocument assembles a Document from pipeline outputs. A nil tree is
// allowed and produces a document with no nodes and a zero box (the
// explicit empty-input state). A fresh UUID is assigned as the ID.
func NewDocument(name, source string, table huffman.Table, totalBytes int64, tree *layout.Tree, box layout.Box) *Document {
	doc := &Document{
		ID:         uuid.NewString(),
		Name:       name,
		CreatedAt:  time.Now().UTC(),
		Source:     source,
		TotalBytes: totalBytes,
		Box:        Box{Width: box.Width, Height: box.Height},
	}

	for _, sym := range table.Symbols() {
		doc.Frequencies = append(doc.Frequencies, FrequencyEntry{
			Symbol: sym,
			Label:  huffman.SymbolLabel(sym),
			Count:  table[sym],
		})
	}

	if tree == nil || tree.Root == nil {
		return doc
	}

	doc.Config = tree.Config
	codes := treeCodes(tree.Root)
	for _, sym := range table.Symbols() {
		// Codes follow Symbols() ordering so output is deterministic.
		if code, ok := codes[sym]; ok {
			doc.Codes = append(doc.Codes, CodeEntry{
				Symbol: sym,
				Label:  huffman.SymbolLabel(sym),
				Code:   code,
			})
		}
	}
	doc.Nodes = flattenNodes(tree.Root)
	return doc
}

// flattenNodes walks the tree in pre-order recording parent indices.
func flattenNodes(root *layout.Node) []DocNode {
	nodes := make([]DocNode, 0, root.Count())

	var walk func(n *layout.Node, parent int)
	walk = func(n *layout.Node, parent int) {
		index := len(nodes)
		dn := DocNode{
			Index:     index,
			Parent:    parent,
			Frequency: n.Frequency,
			Leaf:      n.Leaf,
			X:         n.X,
			Y:         n.Y,
			Depth:     n.Depth,
		}
		if n.Leaf {
			dn.Symbol = n.Symbol
			dn.Label = huffman.SymbolLabel(n.Symbol)
		}
		nodes = append(nodes, dn)
		if !n.Leaf {
			walk(n.Left, index)
			walk(n.Right, index)
		}
	}
	walk(root, -1)
	return nodes
}

// Tree reconstructs the positioned tree from the flattened node list.
// Returns nil for a document with no nodes. The pre-order invariant makes
// this unambiguous: the first child recorded for a parent is its left
// child. Documents come from files and HTTP bodies, so a malformed node
// list (dangling parent index, leaf used as a parent, internal node
// without two children, more than one root) yields the nil tree rather
// than a partial one.
func (d *Document) Tree() (*layout.Tree, layout.Box) {
	box := layout.Box{Width: d.Box.Width, Height: d.Box.Height}
	if len(d.Nodes) == 0 {
		return nil, layout.Box{}
	}

	rebuilt := make([]*layout.Node, len(d.Nodes))
	var root *layout.Node
	maxDepth := 0
	for i, dn := range d.Nodes {
		n := &layout.Node{
			Frequency: dn.Frequency,
			Symbol:    dn.Symbol,
			Leaf:      dn.Leaf,
			X:         dn.X,
			Y:         dn.Y,
			Depth:     dn.Depth,
		}
		rebuilt[i] = n
		if dn.Depth > maxDepth {
			maxDepth = dn.Depth
		}
		if dn.Parent < 0 {
			if root != nil {
				return nil, layout.Box{}
			}
			root = n
			continue
		}
		// Pre-order: a child's parent always precedes it.
		if dn.Parent >= i {
			return nil, layout.Box{}
		}
		parent := rebuilt[dn.Parent]
		switch {
		case parent.Leaf:
			return nil, layout.Box{}
		case parent.Left == nil:
			parent.Left = n
		case parent.Right == nil:
			parent.Right = n
		default:
			return nil, layout.Box{}
		}
	}
	if root == nil {
		return nil, layout.Box{}
	}
	for _, n := range rebuilt {
		if !n.Leaf && (n.Left == nil || n.Right == nil) {
			return nil, layout.Box{}
		}
	}

	fillWidths(root, d.Config.MinSlotWidth)
	tree := &layout.Tree{
		Root:   root,
		Config: d.Config,
		Width:  root.Width,
		Depth:  maxDepth,
	}
	return tree, box
}

// fillWidths restores the subtree widths the flattened form drops.
func fillWidths(n *layout.Node, slot float64) float64 {
	if slot <= 0 {
		slot = layout.DefaultMinSlotWidth
	}
	if n.Leaf {
		n.Width = slot
		return slot
	}
	n.Width = fillWidths(n.Left, slot) + fillWidths(n.Right, slot)
	return n.Width
}

// Marshal serializes the document to pretty-printed JSON.
func Marshal(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Document.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &d, nil
}

// WriteDocumentFile writes a document to a JSON file.
func WriteDocumentFile(d *Document, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDocumentFile reads a document from a JSON file.
func ReadDocumentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
