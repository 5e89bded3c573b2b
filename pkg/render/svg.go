package render

import (
	"bytes"
	"fmt"

	"github.com/chidanandgowda/huffman-coding/pkg/huffman"
	"github.com/chidanandgowda/huffman-coding/pkg/layout"
)

const svgCSS = `
    .edge { stroke: #555; stroke-width: 1.5; }
    .bit { font: 11px sans-serif; fill: #888; }
    .node { fill: #e8f4fd; stroke: #2b6cb0; stroke-width: 2; }
    .node.leaf { fill: #fdf6e8; stroke: #b07a2b; }
    .freq { font: 12px sans-serif; text-anchor: middle; fill: #333; }
    .sym { font: bold 13px monospace; text-anchor: middle; fill: #333; }
    .code { font: 10px monospace; text-anchor: middle; fill: #777; }
    .title { font: bold 16px sans-serif; fill: #333; }
    .placeholder { font: 14px sans-serif; text-anchor: middle; fill: #999; }`

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	zoom      float64
	panX      float64
	panY      float64
	title     string
	showCodes bool
}

// WithViewport applies a viewport transform to the drawing. The transform
// is scale-then-translate, matching the viewport package's contract, so
// the triple can be fed straight from [viewport.Viewport.Transform].
func WithViewport(zoom, panX, panY float64) SVGOption {
	return func(r *svgRenderer) { r.zoom, r.panX, r.panY = zoom, panX, panY }
}

// WithTitle draws a title in the top-left corner of the frame.
func WithTitle(title string) SVGOption {
	return func(r *svgRenderer) { r.title = title }
}

// WithShowCodes annotates each leaf with its bit code.
func WithShowCodes() SVGOption {
	return func(r *svgRenderer) { r.showCodes = true }
}

// SVG renders a positioned tree as a self-contained SVG drawing. A nil
// tree yields a placeholder frame rather than an error; rendering has no
// failure modes. Output is deterministic for fixed input.
func SVG(tree *layout.Tree, box layout.Box, opts ...SVGOption) []byte {
	r := svgRenderer{zoom: 1.0}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := box.Width, box.Height
	if box.Empty() {
		w, h = 400, 200
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="12" y="24">%s</text>`+"\n", escape(r.title))
	}

	if tree == nil || tree.Root == nil {
		fmt.Fprintf(&buf, `  <text class="placeholder" x="%.1f" y="%.1f">%s</text>`+"\n", w/2, h/2, Placeholder)
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}

	// Scale-then-translate: pan is in world units, the renderer contract.
	fmt.Fprintf(&buf, `  <g transform="scale(%.4f) translate(%.2f, %.2f)">`+"\n", r.zoom, r.panX, r.panY)

	radius := tree.Config.NodeRadius
	var codes map[byte]string
	if r.showCodes {
		codes = treeCodes(tree.Root)
	}

	renderEdges(&buf, tree.Root)
	tree.Root.Walk(func(n *layout.Node) {
		renderNode(&buf, n, radius, codes)
	})

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderEdges draws all parent-child connectors with their bit labels
// before any node, so circles paint over the line ends.
func renderEdges(buf *bytes.Buffer, root *layout.Node) {
	root.Walk(func(n *layout.Node) {
		if n.Leaf {
			return
		}
		renderEdge(buf, n, n.Left, "0")
		renderEdge(buf, n, n.Right, "1")
	})
}

func renderEdge(buf *bytes.Buffer, parent, child *layout.Node, bit string) {
	fmt.Fprintf(buf, `  <line class="edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
		parent.X, parent.Y, child.X, child.Y)
	// Bit label sits at the midpoint, nudged away from the line.
	mx, my := (parent.X+child.X)/2, (parent.Y+child.Y)/2
	dx := -10.0
	if bit == "1" {
		dx = 6.0
	}
	fmt.Fprintf(buf, `  <text class="bit" x="%.1f" y="%.1f">%s</text>`+"\n", mx+dx, my-2, bit)
}

func renderNode(buf *bytes.Buffer, n *layout.Node, radius float64, codes map[byte]string) {
	class := "node"
	if n.Leaf {
		class = "node leaf"
	}
	fmt.Fprintf(buf, `  <circle class="%s" cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", class, n.X, n.Y, radius)

	if n.Leaf {
		fmt.Fprintf(buf, `  <text class="sym" x="%.1f" y="%.1f">%s</text>`+"\n",
			n.X, n.Y-1, escape(huffman.SymbolLabel(n.Symbol)))
		fmt.Fprintf(buf, `  <text class="freq" x="%.1f" y="%.1f">%d</text>`+"\n", n.X, n.Y+12, n.Frequency)
		if code, ok := codes[n.Symbol]; ok {
			fmt.Fprintf(buf, `  <text class="code" x="%.1f" y="%.1f">%s</text>`+"\n", n.X, n.Y+radius+12, code)
		}
		return
	}
	fmt.Fprintf(buf, `  <text class="freq" x="%.1f" y="%.1f">%d</text>`+"\n", n.X, n.Y+4, n.Frequency)
}

// treeCodes derives bit codes from positioned nodes, mirroring
// huffman.Codes for the layout mirror of the tree.
func treeCodes(root *layout.Node) map[byte]string {
	codes := make(map[byte]string)
	if root.Leaf {
		codes[root.Symbol] = "0"
		return codes
	}
	var walk func(n *layout.Node, prefix string)
	walk = func(n *layout.Node, prefix string) {
		if n.Leaf {
			codes[n.Symbol] = prefix
			return
		}
		walk(n.Left, prefix+"0")
		walk(n.Right, prefix+"1")
	}
	walk(root, "")
	return codes
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
