// Package codec drives the external Huffman compressor executable.
//
// The compressor is an opaque collaborator: it accepts a mode and an
// input/output path pair, exits zero on success, and prints diagnostics
// to stderr. Its bit-packing and header format never surface here. When
// huffview wants a tree to visualize, it scans the input file's bytes
// itself and rebuilds the tree from the frequency table, exactly the
// contract the compressor works from.
//
// A failed run is reported as an error and simply yields no frequency
// data; codec failures never reach the tree, layout, or viewport
// packages.
package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Mode selects the compressor operation.
type Mode string

// Operations understood by the external executable.
const (
	ModeCompress   Mode = "compress"
	ModeDecompress Mode = "decompress"
)

// DefaultCandidates are the relative paths probed by [Find] after PATH,
// covering the usual build layouts of the compressor project.
var DefaultCandidates = []string{
	"./huffman",
	"./build/huffman",
	"../build/huffman",
}

// ErrExecutableNotFound is returned when no compressor executable can be
// located on PATH or among the candidate paths.
var ErrExecutableNotFound = errors.New("compressor executable not found")

// Runner invokes the external compressor.
type Runner struct {
	// Exe is the resolved path of the executable.
	Exe string

	// Logger receives debug-level run details. Nil falls back to the
	// package default logger.
	Logger *log.Logger
}

// NewRunner creates a runner for the executable at exe.
func NewRunner(exe string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Exe: exe, Logger: logger}
}

// Find resolves the compressor executable. An explicit non-empty path
// wins (and is checked for existence); otherwise "huffman" is looked up
// on PATH, then each candidate path is probed in order. When candidates
// is empty, [DefaultCandidates] is used.
func Find(explicit string, candidates ...string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, explicit)
		}
		return explicit, nil
	}

	if path, err := exec.LookPath("huffman"); err == nil {
		return path, nil
	}

	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", ErrExecutableNotFound
}

// Result describes one completed compressor run.
type Result struct {
	ID         string
	Mode       Mode
	InputPath  string
	OutputPath string
	InputSize  int64
	OutputSize int64
	Elapsed    time.Duration
	Stderr     string
}

// Ratio returns output size over input size, or 0 when the input was
// empty.
func (r *Result) Ratio() float64 {
	if r.InputSize == 0 {
		return 0
	}
	return float64(r.OutputSize) / float64(r.InputSize)
}

// SpaceSaving returns the fraction of the input size saved by the run,
// negative when the output grew. 0 for an empty input.
func (r *Result) SpaceSaving() float64 {
	if r.InputSize == 0 {
		return 0
	}
	return 1 - r.Ratio()
}

// Run executes the compressor as `exe <mode> <input> <output>` and waits
// for it to finish. A non-zero exit wraps the process's stderr text into
// the returned error; on success the result carries both file sizes and
// the elapsed wall time. The context cancels the subprocess.
func (r *Runner) Run(ctx context.Context, mode Mode, inputPath, outputPath string) (*Result, error) {
	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("stat input %s: %w", inputPath, err)
	}

	result := &Result{
		ID:         uuid.NewString(),
		Mode:       mode,
		InputPath:  inputPath,
		OutputPath: outputPath,
		InputSize:  inputInfo.Size(),
	}

	cmd := exec.CommandContext(ctx, r.Exe, string(mode), inputPath, outputPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.Logger.Debug("running compressor",
		"exe", r.Exe, "mode", mode, "input", inputPath, "output", outputPath)

	start := time.Now()
	err = cmd.Run()
	result.Elapsed = time.Since(start)
	result.Stderr = strings.TrimSpace(stderr.String())

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if result.Stderr != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", r.Exe, mode, err, result.Stderr)
		}
		return nil, fmt.Errorf("%s %s: %w", r.Exe, mode, err)
	}

	if outInfo, err := os.Stat(outputPath); err == nil {
		result.OutputSize = outInfo.Size()
	}

	r.Logger.Debug("compressor finished",
		"id", result.ID,
		"in_bytes", result.InputSize,
		"out_bytes", result.OutputSize,
		"elapsed", result.Elapsed.Round(time.Millisecond))

	return result, nil
}
