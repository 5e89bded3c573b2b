package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	apperrors "github.com/chidanandgowda/huffman-coding/pkg/errors"
	"github.com/chidanandgowda/huffman-coding/pkg/layout"
	"github.com/chidanandgowda/huffman-coding/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	text    string // literal input text instead of a file
	output  string // output path, "-" or empty for stdout
	format  string // svg, dot, dotsvg, json, or text
	title   string // title embedded in SVG output
	codes   bool   // annotate leaves with their bit codes
	save    string // snapshot name to save the tree under
	noCache bool
	refresh bool
	radius  float64
	level   float64
	slot    float64
}

// buildCommand creates the build command, the main entry point of the CLI:
// scan input, build the Huffman tree, lay it out, and render it.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Build and render the Huffman tree for an input",
		Long: `Build the Huffman tree for a file (or literal text), compute its layout,
and render it.

Input comes from a file argument, from stdin when the argument is "-",
or from --text. Results are cached locally so repeated builds of the
same input are fast; use --refresh to recompute.

Formats:
  svg     positioned tree as standalone SVG (default)
  dot     Graphviz DOT source
  dotsvg  SVG rendered through Graphviz
  json    portable tree document (consumed by 'huffview explore')
  text    box-drawing listing for terminals`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runBuild(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.text, "text", "", "build from literal text instead of a file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input, '-' for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatSVG, "output format: svg, dot, dotsvg, json, text")
	cmd.Flags().StringVar(&opts.title, "title", "", "title rendered above the tree (svg)")
	cmd.Flags().BoolVar(&opts.codes, "codes", false, "annotate leaves with their bit codes")
	cmd.Flags().StringVar(&opts.save, "save", "", "save the tree as a named snapshot")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().Float64Var(&opts.radius, "node-radius", 0, "node circle radius (default from config)")
	cmd.Flags().Float64Var(&opts.level, "level-height", 0, "vertical distance between depths (default from config)")
	cmd.Flags().Float64Var(&opts.slot, "min-slot-width", 0, "minimum horizontal slot per leaf (default from config)")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, input string, opts *buildOpts) error {
	ctx := cmd.Context()

	data, source, err := readInput(input, opts.text)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		printWarning("Input is empty; rendering placeholder")
	}

	runner, err := c.newRunner(cmd, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.Options{
		Source:    source,
		Input:     data,
		Layout:    c.layoutOverrides(opts),
		Format:    opts.format,
		Title:     opts.title,
		ShowCodes: opts.codes,
		NoCache:   opts.noCache,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building tree for %s...", source))
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return fmt.Errorf("build: %w", err)
	}
	spinner.Stop()

	outputPath := opts.output
	writeToStdout := outputPath == "" && (opts.format == pipeline.FormatText || opts.format == pipeline.FormatDOT)
	if outputPath == "" && !writeToStdout {
		outputPath = derivedOutputPath(input, source, opts.format)
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	if _, err := out.Write(result.Artifact); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	hit := result.CacheInfo.TreeHit && result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printSuccess("Built Huffman tree for %s", StyleHighlight.Render(source))
	printStats(result.Stats.SymbolCount, result.Stats.NodeCount, result.Stats.TotalBytes, hit)
	if outputPath != "" && outputPath != "-" {
		printFile(outputPath)
	}

	if opts.save != "" {
		if err := c.saveSnapshot(cmd, result, opts.save); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLI) saveSnapshot(cmd *cobra.Command, result *pipeline.Result, name string) error {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return err
	}
	store, err := c.newStore(cmd)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()

	doc := result.Document
	doc.Name = name
	if err := store.Put(cmd.Context(), doc); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	printSuccess("Saved snapshot %s", StyleHighlight.Render(name))
	printDetail("id: %s", doc.ID)
	printNextStep("Explore it interactively", fmt.Sprintf("%s explore --snapshot %s", appName, doc.ID))
	return nil
}

// layoutOverrides merges build flags over the configured layout geometry.
func (c *CLI) layoutOverrides(opts *buildOpts) layout.Config {
	cfg := c.Config.layoutConfig()
	if opts.radius > 0 {
		cfg.NodeRadius = opts.radius
	}
	if opts.level > 0 {
		cfg.LevelHeight = opts.level
	}
	if opts.slot > 0 {
		cfg.MinSlotWidth = opts.slot
	}
	return cfg
}

// readInput resolves the build input: literal text wins, then stdin for
// "-", then the named file. The returned source is a short display name.
func readInput(path, text string) ([]byte, string, error) {
	if text != "" {
		return []byte(text), "text", nil
	}
	if path == "" {
		return nil, "", fmt.Errorf("input file or --text is required")
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}
	if err := apperrors.ValidateInputPath(path); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, filepath.Base(path), nil
}

// derivedOutputPath builds the default output file name from the input.
func derivedOutputPath(input, source, format string) string {
	base := source
	if input != "" && input != "-" {
		base = strippedExt(input)
	}
	return base + "." + format
}

func strippedExt(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)]
}
