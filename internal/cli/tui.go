package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chidanandgowda/huffman-coding/pkg/layout"
	"github.com/chidanandgowda/huffman-coding/pkg/pipeline"
	"github.com/chidanandgowda/huffman-coding/pkg/render"
	"github.com/chidanandgowda/huffman-coding/pkg/viewport"
)

// Pan step per key press, in screen units. The vertical step is smaller
// because terminal rows cover more world distance than columns.
const (
	panStepX = 32.0
	panStepY = 40.0
)

// exploreCommand creates the explore command, an interactive terminal
// viewer for Huffman trees.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		snapshotID string
		text       string
		codes      bool
	)

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Explore a Huffman tree interactively in the terminal",
		Long: `Open an interactive terminal view of a Huffman tree.

The tree comes from a file argument (or --text), from a saved snapshot
via --snapshot, or from an exported .json document. Keys:

  + / -        zoom in and out
  arrows, hjkl pan
  f            fit the tree to the window
  0            reset zoom to 1:1
  r            recenter
  c            toggle bit codes in the status bar
  q / esc      quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			doc, err := c.exploreDocument(cmd, input, text, snapshotID)
			if err != nil {
				return err
			}

			model := newExploreModel(doc, c.Config, codes)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&snapshotID, "snapshot", "", "explore a saved snapshot by id")
	cmd.Flags().StringVar(&text, "text", "", "explore the tree of literal text")
	cmd.Flags().BoolVar(&codes, "codes", false, "start with bit codes shown")

	return cmd
}

// exploreDocument resolves the document to explore: a snapshot when
// --snapshot is set, otherwise a fresh pipeline run over the input.
func (c *CLI) exploreDocument(cmd *cobra.Command, input, text, snapshotID string) (*render.Document, error) {
	if snapshotID != "" {
		return c.getSnapshot(cmd, snapshotID)
	}

	// Exported document files reload directly, skipping the pipeline.
	if text == "" && strings.HasSuffix(input, ".json") {
		return render.ReadDocumentFile(input)
	}

	data, source, err := readInput(input, text)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(cmd, false)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Source: source,
		Input:  data,
		Layout: c.Config.layoutConfig(),
		Format: pipeline.FormatJSON,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	return result.Document, nil
}

// exploreModel is the bubbletea model for the interactive tree view. It
// owns the viewport; key events mutate it and View re-projects the tree
// through it each frame.
type exploreModel struct {
	doc       *render.Document
	tree      *layout.Tree
	box       layout.Box
	vp        *viewport.Viewport
	showCodes bool
	width     int
	height    int
}

func newExploreModel(doc *render.Document, cfg Config, showCodes bool) exploreModel {
	tree, box := doc.Tree()
	return exploreModel{
		doc:       doc,
		tree:      tree,
		box:       box,
		vp:        viewport.New(viewport.WithZoomBounds(cfg.Viewport.ZoomMin, cfg.Viewport.ZoomMax)),
		showCodes: showCodes,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.vp.ZoomBy(viewport.WheelZoomFactor)
		case "-", "_":
			m.vp.ZoomBy(1 / viewport.WheelZoomFactor)
		case "0":
			m.vp.SetZoom(1.0)
		case "left", "h":
			m.vp.PanBy(panStepX, 0)
		case "right", "l":
			m.vp.PanBy(-panStepX, 0)
		case "up", "k":
			m.vp.PanBy(0, panStepY)
		case "down", "j":
			m.vp.PanBy(0, -panStepY)
		case "f":
			m.fit()
		case "r":
			m.vp.Reset()
		case "c":
			m.showCodes = !m.showCodes
		}
	case tea.WindowSizeMsg:
		firstSize := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		if firstSize {
			m.fit()
		}
	}
	return m, nil
}

// fit chooses the zoom that shows the whole tree in the current canvas.
func (m *exploreModel) fit() {
	cols, rows := m.canvasSize()
	m.vp.FitToView(
		float64(cols)*render.ScreenCellW,
		float64(rows)*render.ScreenCellH,
		m.box.Width,
		m.box.Height,
	)
}

// canvasSize is the character grid left after the header and status bar.
func (m *exploreModel) canvasSize() (cols, rows int) {
	cols = m.width
	rows = m.height - 3
	if cols < 20 {
		cols = 20
	}
	if rows < 5 {
		rows = 5
	}
	return cols, rows
}

func (m exploreModel) View() string {
	cols, rows := m.canvasSize()

	var b strings.Builder
	title := m.doc.Name
	if title == "" {
		title = m.doc.Source
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d bytes · %d symbols", m.doc.TotalBytes, len(m.doc.Frequencies))))
	b.WriteString("\n")

	b.WriteString(render.Screen(m.tree, m.vp.Apply, cols, rows))

	b.WriteString(m.statusBar())
	return b.String()
}

func (m exploreModel) statusBar() string {
	panX, panY := m.vp.Pan()
	nodes := 0
	depth := -1
	if m.tree != nil && m.tree.Root != nil {
		nodes = m.tree.Root.Count()
		depth = m.tree.Depth
	}

	left := fmt.Sprintf(" zoom %3.0f%% · pan %+.0f,%+.0f · %d nodes · depth %d",
		m.vp.Zoom()*100, panX, panY, nodes, depth)
	if m.showCodes {
		left += " · " + m.codesSummary()
	}
	help := "+/- zoom  arrows pan  f fit  0 1:1  r recenter  c codes  q quit "

	gap := m.width - len([]rune(left)) - len(help)
	if gap < 1 {
		gap = 1
	}
	return StyleDim.Render(left) + strings.Repeat(" ", gap) + StyleDim.Render(help)
}

// codesSummary lists the leaf codes, truncated to keep the bar one line.
func (m exploreModel) codesSummary() string {
	const maxEntries = 6
	var parts []string
	for i, entry := range m.doc.Codes {
		if i == maxEntries {
			parts = append(parts, "…")
			break
		}
		parts = append(parts, fmt.Sprintf("%s=%s", entry.Label, entry.Code))
	}
	return strings.Join(parts, " ")
}
