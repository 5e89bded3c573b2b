package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chidanandgowda/huffman-coding/pkg/codec"
	apperrors "github.com/chidanandgowda/huffman-coding/pkg/errors"
)

// codecOpts holds the command-line flags shared by the compressor commands.
type codecOpts struct {
	output string // output path (default: derived from input and mode)
	exe    string // explicit compressor executable path
	tree   bool   // also render the input's tree next to the output
}

// compressCommand creates the compress command.
func (c *CLI) compressCommand() *cobra.Command {
	var opts codecOpts

	cmd := &cobra.Command{
		Use:   "compress <file>",
		Short: "Compress a file with the external Huffman compressor",
		Long: `Compress a file by invoking the external Huffman compressor executable.

The executable is located via --exe, the codec.exe config key, the PATH,
or the usual build directories. Pass --tree to also render the input's
Huffman tree as SVG next to the compressed output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCodec(cmd, codec.ModeCompress, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input + .huff)")
	cmd.Flags().StringVar(&opts.exe, "exe", "", "compressor executable (default: from config or PATH)")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "also render the input's tree as SVG")

	return cmd
}

// decompressCommand creates the decompress command.
func (c *CLI) decompressCommand() *cobra.Command {
	var opts codecOpts

	cmd := &cobra.Command{
		Use:   "decompress <file>",
		Short: "Decompress a file with the external Huffman compressor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCodec(cmd, codec.ModeDecompress, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input without .huff)")
	cmd.Flags().StringVar(&opts.exe, "exe", "", "compressor executable (default: from config or PATH)")

	return cmd
}

// runCommand creates the run command, which picks compress or decompress
// by inspecting the input.
func (c *CLI) runCommand() *cobra.Command {
	var opts codecOpts

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Compress or decompress a file, chosen by inspecting it",
		Long: `Run the external compressor in the mode suggested by the input file:
known compressed extensions (and binary-looking content) decompress,
everything else compresses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := codec.DetectMode(args[0])
			printInfo("Detected mode: %s", StyleHighlight.Render(string(mode)))
			return c.runCodec(cmd, mode, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVar(&opts.exe, "exe", "", "compressor executable (default: from config or PATH)")

	return cmd
}

func (c *CLI) runCodec(cmd *cobra.Command, mode codec.Mode, input string, opts *codecOpts) error {
	ctx := cmd.Context()

	if err := apperrors.ValidateInputPath(input); err != nil {
		return err
	}

	explicit := opts.exe
	if explicit == "" {
		explicit = c.Config.Codec.Exe
	}
	exe, err := codec.Find(explicit, c.Config.Codec.Candidates...)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeExecNotFound, err,
			"compressor executable not found; build it or point --exe at it")
	}
	c.Logger.Debug("resolved compressor", "exe", exe)

	output := opts.output
	if output == "" {
		output = codec.DefaultOutputPath(input, mode)
	}

	runner := codec.NewRunner(exe, c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Running %s on %s...", mode, input))
	spinner.Start()

	res, err := runner.Run(ctx, mode, input, output)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("%s failed", mode))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("%s complete", mode))
	printCodecResult(res)

	if opts.tree && mode == codec.ModeCompress {
		return c.renderCodecTree(cmd, input)
	}
	return nil
}

// renderCodecTree renders the input's Huffman tree alongside the codec
// output, reusing the cached pipeline stages when available.
func (c *CLI) renderCodecTree(cmd *cobra.Command, input string) error {
	bopts := buildOpts{format: "svg"}
	if err := c.runBuild(cmd, input, &bopts); err != nil {
		return fmt.Errorf("render tree: %w", err)
	}
	return nil
}
