// Package pkg provides the core libraries for huffview Huffman tree
// visualization.
//
// # Overview
//
// huffview builds Huffman coding trees from raw input and renders them as
// interactive or static visualizations. The pkg directory is organized into
// five main areas:
//
//  1. [huffman] - Domain logic (frequency counting, greedy tree construction, bit codes)
//  2. [layout] - Geometric placement of tree nodes in world coordinates
//  3. [render] - Output formats (SVG, DOT, terminal text, JSON documents)
//  4. [pipeline] - Orchestration (count → build → layout → render) with caching
//  5. [viewport] - Zoom and pan state for interactive views
//
// # Architecture
//
// The typical data flow through huffview:
//
//	Raw input bytes
//	         ↓
//	    [huffman] package (count frequencies, build tree)
//	         ↓
//	    [layout] package (assign node positions)
//	         ↓
//	    [render] package (project and serialize)
//	         ↓
//	    SVG/DOT/text/JSON output
//
// # Quick Start
//
// Build a tree and render it to SVG:
//
//	import (
//	    "github.com/chidanandgowda/huffman-coding/pkg/huffman"
//	    "github.com/chidanandgowda/huffman-coding/pkg/layout"
//	    "github.com/chidanandgowda/huffman-coding/pkg/render"
//	)
//
//	// 1. Count symbol frequencies
//	table := huffman.CountBytes(data)
//
//	// 2. Build the coding tree
//	root := huffman.Build(table)
//
//	// 3. Compute the layout
//	tree, box := layout.Compute(root, layout.DefaultConfig())
//
//	// 4. Render to SVG
//	svg := render.SVG(tree, box)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Source: "input.txt",
//	    Input:  data,
//	    Format: pipeline.FormatSVG,
//	})
//
// # Main Packages
//
// ## Core Domain Logic
//
// [huffman] - Frequency tables, the greedy merge construction with its
// deterministic tie-break, bit code derivation, and symbol display labels.
//
// [layout] - Converts a coding tree into positioned nodes inside a bounding
// box. Leaf slots are spaced on a configurable grid; internal nodes sit
// centered above their children.
//
// [viewport] - Zoom and pan over world coordinates with clamped zoom bounds.
// The scale-then-translate transform is shared by every interactive surface.
//
// ## Rendering
//
// [render] - SVG and Graphviz DOT emitters, a box-drawing terminal renderer,
// and the Document type that serializes a laid-out tree for snapshots and
// the HTTP API.
//
// ## Infrastructure
//
// [pipeline] - Complete build pipeline (count → build → layout → render)
// used by the CLI, the TUI, and the HTTP server. Each stage is cached
// independently so geometry tweaks reuse the counted tree.
//
// [cache] - Content-addressed artifact cache with file, Redis, and null
// backends plus per-stage key derivation and TTLs.
//
// [snapshot] - Persistence for rendered documents with file and MongoDB
// stores.
//
// [codec] - Discovery and supervision of the external compressor executable
// for compress, decompress, and auto-detected runs.
//
// [observability] - Process-wide hooks invoked around pipeline stages and
// cache operations.
//
// [errors] - Error codes, wrapping, and input validation shared across the
// CLI and server surfaces.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/huffman/...      # Specific package
//	go test -run Example           # Examples only
//
// [huffman]: https://pkg.go.dev/github.com/chidanandgowda/huffman-coding/pkg/huffman
// [layout]: https://pkg.go.dev/github.com/chidanandgowda/huffman-coding/pkg/layout
// [render]: https://pkg.go.dev/github.com/chidanandgowda/huffman-coding/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/chidanandgowda/huffman-coding/pkg/pipeline
// [viewport]: https://pkg.go.dev/github.com/chidanandgowda/huffman-coding/pkg/viewport
// [cache]: https://pkg.go.dev/github.com/chidanandgowda/huffman-coding/pkg/cache
// [snapshot]: https://pkg.go.dev/github.com/chidanandgowda/huffman-coding/pkg/snapshot
// [codec]: https://pkg.go.dev/github.com/chidanandgowda/huffman-coding/pkg/codec
// [observability]: https://pkg.go.dev/github.com/chidanandgowda/huffman-coding/pkg/observability
// [errors]: https://pkg.go.dev/github.com/chidanandgowda/huffman-coding/pkg/errors
package pkg
