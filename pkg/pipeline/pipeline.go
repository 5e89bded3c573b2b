// Package pipeline provides the core visualization pipeline for huffview.
//
// This package implements the complete count → build → layout → render
// pipeline that can be used by CLI, server, and TUI components. By
// centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Count: Tally byte frequencies from the scanned input
//  2. Build: Construct the prefix-code tree from the frequency table
//  3. Layout: Compute visual positions for every tree node
//  4. Render: Generate output in various formats (SVG, DOT, JSON, text)
//
// Count+build, layout, and render results are cached independently, so
// changing a render option reuses the cached layout, and changing layout
// geometry reuses the cached frequency table.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source: "war-and-peace.txt",
//	    Input:  data,
//	    Format: pipeline.FormatSVG,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifact
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chidanandgowda/huffman-coding/pkg/cache"
	"github.com/chidanandgowda/huffman-coding/pkg/layout"
	"github.com/chidanandgowda/huffman-coding/pkg/render"
)

// Format constants for output formats.
const (
	FormatSVG    = "svg"
	FormatDOT    = "dot"
	FormatDOTSVG = "dotsvg"
	FormatJSON   = "json"
	FormatText   = "text"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:    true,
	FormatDOT:    true,
	FormatDOTSVG: true,
	FormatJSON:   true,
	FormatText:   true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, dot, dotsvg, json, text)", format)
	}
	return nil
}

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Source is a display name for the scanned input, typically the
	// file name or "stdin". It is folded into tree cache keys so two
	// differently named inputs with identical bytes cache separately.
	Source string `json:"source,omitempty"`

	// Layout options. Zero fields fall back to layout defaults.
	Layout layout.Config `json:"layout,omitempty"`

	// Render options.
	Format    string `json:"format,omitempty"`
	Title     string `json:"title,omitempty"`
	ShowCodes bool   `json:"show_codes,omitempty"`

	// Cache behavior. NoCache disables all cache reads and writes;
	// Refresh skips reads but still writes fresh results.
	NoCache bool `json:"no_cache,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Input  []byte      `json:"-"`
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the portable tree+layout snapshot.
	Document *render.Document

	// InputHash is the content hash of the scanned input.
	InputHash string

	// Artifact is the rendered output in the requested format.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TotalBytes  int64
	SymbolCount int
	NodeCount   int
	Depth       int
	CountTime   time.Duration
	BuildTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TreeHit   bool // Whether the frequency table came from cache
	LayoutHit bool // Whether the layout document came from cache
	RenderHit bool // Whether the artifact came from cache
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" {
		return fmt.Errorf("source is required")
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills zero layout geometry with standard values.
func (o *Options) SetLayoutDefaults() {
	def := layout.DefaultConfig()
	if o.Layout.NodeRadius == 0 {
		o.Layout.NodeRadius = def.NodeRadius
	}
	if o.Layout.LevelHeight == 0 {
		o.Layout.LevelHeight = def.LevelHeight
	}
	if o.Layout.MinSlotWidth == 0 {
		o.Layout.MinSlotWidth = def.MinSlotWidth
	}
	if o.Layout.TopMargin == 0 {
		o.Layout.TopMargin = def.TopMargin
	}
	if o.Layout.SideMargin == 0 {
		o.Layout.SideMargin = def.SideMargin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// TreeKeyOpts returns cache key options for the count+build stage.
func (o *Options) TreeKeyOpts() cache.TreeKeyOpts {
	return cache.TreeKeyOpts{
		Source: o.Source,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NodeRadius:   o.Layout.NodeRadius,
		LevelHeight:  o.Layout.LevelHeight,
		MinSlotWidth: o.Layout.MinSlotWidth,
		TopMargin:    o.Layout.TopMargin,
		SideMargin:   o.Layout.SideMargin,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    o.Format,
		Title:     o.Title,
		ShowCodes: o.ShowCodes,
	}
}
