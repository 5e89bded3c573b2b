package render

import (
	"fmt"
	"strings"

	"github.com/chidanandgowda/huffman-coding/pkg/huffman"
	"github.com/chidanandgowda/huffman-coding/pkg/layout"
)

// TextOptions configures the text renderer.
type TextOptions struct {
	// ShowCodes appends each leaf's bit code to its line.
	ShowCodes bool
}

// Text renders a tree as an indented box-drawing listing for terminals:
//
//	● 4
//	├─0─ C 2
//	└─1─ ● 2
//	     ├─0─ A 1
//	     └─1─ B 1
//
// A nil tree yields the placeholder line. Output ends with a newline.
func Text(tree *layout.Tree, opts TextOptions) string {
	if tree == nil || tree.Root == nil {
		return Placeholder + "\n"
	}

	var codes map[byte]string
	if opts.ShowCodes {
		codes = treeCodes(tree.Root)
	}

	var b strings.Builder
	writeNodeLine(&b, tree.Root, "", "", "", codes)
	return b.String()
}

func writeNodeLine(b *strings.Builder, n *layout.Node, prefix, branch, childPrefix string, codes map[byte]string) {
	b.WriteString(prefix)
	b.WriteString(branch)
	if n.Leaf {
		fmt.Fprintf(b, "%s %d", huffman.SymbolLabel(n.Symbol), n.Frequency)
		if code, ok := codes[n.Symbol]; ok {
			fmt.Fprintf(b, "  [%s]", code)
		}
		b.WriteByte('\n')
		return
	}
	fmt.Fprintf(b, "● %d\n", n.Frequency)
	writeNodeLine(b, n.Left, prefix+childPrefix, "├─0─ ", "│    ", codes)
	writeNodeLine(b, n.Right, prefix+childPrefix, "└─1─ ", "     ", codes)
}

// Transform maps a world coordinate to screen coordinates. It matches
// the signature of [viewport.Viewport.Apply] so a viewport can be passed
// directly as Screen's transform.
type Transform func(wx, wy float64) (sx, sy float64)

// Screen projects a positioned tree through a viewport transform onto a
// character grid of cols x rows cells and returns it as rows newline-
// terminated lines. It is the interactive explorer's frame renderer.
//
// Every node label lands at its transformed position divided by the cell
// size (one character cell approximates cellW x cellH world units at zoom
// 1), edges are traced between node centers, and anything outside the
// grid is clipped. A nil tree centers the placeholder text.
func Screen(tree *layout.Tree, transform Transform, cols, rows int) string {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	grid := newCharGrid(cols, rows)

	if tree == nil || tree.Root == nil {
		grid.text((cols-len(Placeholder))/2, rows/2, Placeholder)
		return grid.String()
	}

	cell := func(n *layout.Node) (int, int) {
		sx, sy := transform(n.X, n.Y)
		return int(sx / ScreenCellW), int(sy / ScreenCellH)
	}

	// Edges first so node labels overwrite the lines where they meet.
	tree.Root.Walk(func(n *layout.Node) {
		if n.Leaf {
			return
		}
		px, py := cell(n)
		lx, ly := cell(n.Left)
		rx, ry := cell(n.Right)
		grid.line(px, py, lx, ly)
		grid.line(px, py, rx, ry)
	})

	tree.Root.Walk(func(n *layout.Node) {
		x, y := cell(n)
		label := screenLabel(n)
		grid.text(x-len(label)/2, y, label)
	})

	return grid.String()
}

// One character cell stands for this many world units at zoom 1. The
// vertical ratio is coarser because terminal cells are roughly twice as
// tall as they are wide. Exported so callers can size a viewport fit in
// the same units Screen projects into.
const (
	ScreenCellW = 8.0
	ScreenCellH = 20.0
)

func screenLabel(n *layout.Node) string {
	if n.Leaf {
		return fmt.Sprintf("[%s %d]", huffman.SymbolLabel(n.Symbol), n.Frequency)
	}
	return fmt.Sprintf("(%d)", n.Frequency)
}

// charGrid is a simple rune raster with clipping writes.
type charGrid struct {
	cols, rows int
	cells      [][]rune
}

func newCharGrid(cols, rows int) *charGrid {
	cells := make([][]rune, rows)
	for i := range cells {
		row := make([]rune, cols)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &charGrid{cols: cols, rows: rows, cells: cells}
}

func (g *charGrid) set(x, y int, r rune) {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return
	}
	g.cells[y][x] = r
}

func (g *charGrid) text(x, y int, s string) {
	for i, r := range s {
		g.set(x+i, y, r)
	}
}

// line traces a rough connector between two cells with midpoint stepping.
func (g *charGrid) line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		return
	}
	for i := 1; i < steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		g.set(x, y, lineRune(dx, dy))
	}
}

func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func (g *charGrid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for _, row := range g.cells {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
