package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/chidanandgowda/huffman-coding/pkg/huffman"
	"github.com/chidanandgowda/huffman-coding/pkg/layout"
)

// DOTOptions configures DOT generation.
type DOTOptions struct {
	// Detailed includes depth and coordinates in node labels.
	Detailed bool
}

// DOT converts a positioned tree to Graphviz DOT source. Node IDs are the
// pre-order index, so the output is deterministic for a fixed tree. Edges
// carry their bit as the label ("0" left, "1" right). A nil tree yields a
// graph with a single placeholder node.
//
// The resulting DOT string can be rendered with [DOTSVG] or any external
// Graphviz toolchain.
func DOT(tree *layout.Tree, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph huffman {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	if tree == nil || tree.Root == nil {
		fmt.Fprintf(&buf, "  empty [shape=plaintext, label=%q];\n", Placeholder)
		buf.WriteString("}\n")
		return buf.String()
	}

	index := 0
	tree.Root.Walk(func(n *layout.Node) {
		fmt.Fprintf(&buf, "  n%d [label=%q%s];\n", index, dotLabel(n, opts.Detailed), dotAttrs(n))
		index++
	})

	buf.WriteString("\n")
	writeDOTEdges(&buf, tree.Root)

	buf.WriteString("}\n")
	return buf.String()
}

// writeDOTEdges emits edges using pre-order indices, matching the node
// numbering produced by Walk.
func writeDOTEdges(buf *bytes.Buffer, root *layout.Node) {
	// Pre-order index of each node: a node at index i has its left child
	// at i+1 and its right child at i+1+size(left).
	var walk func(n *layout.Node, index int) int
	walk = func(n *layout.Node, index int) int {
		if n.Leaf {
			return index + 1
		}
		leftIdx := index + 1
		rightIdx := walk(n.Left, leftIdx)
		fmt.Fprintf(buf, "  n%d -> n%d [label=\"0\"];\n", index, leftIdx)
		fmt.Fprintf(buf, "  n%d -> n%d [label=\"1\"];\n", index, rightIdx)
		return walk(n.Right, rightIdx)
	}
	walk(root, 0)
}

func dotLabel(n *layout.Node, detailed bool) string {
	var label string
	if n.Leaf {
		label = fmt.Sprintf("%s\n%d", huffman.SymbolLabel(n.Symbol), n.Frequency)
	} else {
		label = strconv.Itoa(n.Frequency)
	}
	if detailed {
		label += fmt.Sprintf("\ndepth %d\n(%.0f, %.0f)", n.Depth, n.X, n.Y)
	}
	return label
}

func dotAttrs(n *layout.Node) string {
	if n.Leaf {
		return ", fillcolor=lightyellow"
	}
	return ""
}

// DOTSVG renders DOT source to SVG using Graphviz.
func DOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg element to a zero-origin
// viewBox so downstream viewers can frame the drawing consistently.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
