package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chidanandgowda/huffman-coding/pkg/cache"
	"github.com/chidanandgowda/huffman-coding/pkg/huffman"
	"github.com/chidanandgowda/huffman-coding/pkg/layout"
	"github.com/chidanandgowda/huffman-coding/pkg/observability"
	"github.com/chidanandgowda/huffman-coding/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// treeRecord is the cached form of the count+build stage. The tree itself
// is rebuilt from the table, which is deterministic and cheap next to
// scanning a large input.
type treeRecord struct {
	Counts     huffman.Table `json:"counts"`
	TotalBytes int64         `json:"total_bytes"`
}

// Execute runs the complete count → build → layout → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		InputHash: cache.Hash(opts.Input),
	}

	// Stage 1: Count
	countStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, observability.StageCount)
	table, total, treeHit, err := r.CountWithCacheInfo(ctx, result.InputHash, opts)
	result.Stats.CountTime = time.Since(countStart)
	observability.Pipeline().OnStageComplete(ctx, observability.StageCount, result.Stats.CountTime, err)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	result.Stats.TotalBytes = total
	result.Stats.SymbolCount = len(table)
	result.CacheInfo.TreeHit = treeHit

	// Stage 2: Build
	buildStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, observability.StageBuild)
	root := huffman.Build(table)
	result.Stats.BuildTime = time.Since(buildStart)
	observability.Pipeline().OnStageComplete(ctx, observability.StageBuild, result.Stats.BuildTime, nil)
	result.Stats.NodeCount = root.Count()
	result.Stats.Depth = root.MaxDepth()

	r.Logger.Info("built tree",
		"symbols", result.Stats.SymbolCount,
		"nodes", result.Stats.NodeCount,
		"bytes", total)

	// Stage 3: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, observability.StageLayout)
	doc, docData, layoutHit, err := r.LayoutWithCacheInfo(ctx, result.InputHash, root, table, total, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnStageComplete(ctx, observability.StageLayout, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = doc
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"width", doc.Box.Width,
		"height", doc.Box.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, observability.StageRender)
	artifact, renderHit, err := r.RenderWithCacheInfo(ctx, doc, docData, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnStageComplete(ctx, observability.StageRender, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered output",
		"format", opts.Format,
		"size", len(artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// CountWithCacheInfo tallies byte frequencies with caching and returns
// cache hit info.
func (r *Runner) CountWithCacheInfo(ctx context.Context, inputHash string, opts Options) (huffman.Table, int64, bool, error) {
	key := r.Keyer.TreeKey(inputHash, opts.TreeKeyOpts())

	if r.cacheReadable(opts) {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var rec treeRecord
			if err := json.Unmarshal(data, &rec); err == nil && rec.Counts != nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				return rec.Counts, rec.TotalBytes, true, nil
			}
			// Corrupt entry; recount below.
		}
		observability.Cache().OnCacheMiss(ctx, "tree")
	}

	table := huffman.CountBytes(opts.Input)
	total := int64(len(opts.Input))

	if r.cacheWritable(opts) {
		if data, err := json.Marshal(treeRecord{Counts: table, TotalBytes: total}); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLTree); err == nil {
				observability.Cache().OnCacheSet(ctx, "tree", len(data))
			}
		}
	}

	return table, total, false, nil
}

// LayoutWithCacheInfo computes the positioned document with caching and
// returns cache hit info. The marshaled document is returned alongside so
// the render stage can derive artifact keys without re-serializing.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, inputHash string, root *huffman.Node, table huffman.Table, total int64, opts Options) (*render.Document, []byte, bool, error) {
	opts.SetLayoutDefaults()
	key := r.Keyer.LayoutKey(inputHash, opts.LayoutKeyOpts())

	if r.cacheReadable(opts) {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if doc, err := render.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return doc, data, true, nil
			}
			// If deserialization fails, fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	tree, box := layout.Compute(root, opts.Layout)
	name := opts.Title
	if name == "" {
		name = opts.Source
	}
	doc := render.NewDocument(name, opts.Source, table, total, tree, box)
	data, err := render.Marshal(doc)
	if err != nil {
		return nil, nil, false, fmt.Errorf("serialize document: %w", err)
	}

	if r.cacheWritable(opts) {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return doc, data, false, nil
}

// RenderWithCacheInfo renders the requested format with caching and
// returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *render.Document, docData []byte, opts Options) ([]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}

	docHash := cache.Hash(docData)
	key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts())

	if r.cacheReadable(opts) {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	artifact, err := r.renderFormat(ctx, doc, docData, opts)
	if err != nil {
		return nil, false, err
	}

	if r.cacheWritable(opts) {
		if err := r.Cache.Set(ctx, key, artifact, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(artifact))
		}
	}

	return artifact, false, nil
}

func (r *Runner) renderFormat(ctx context.Context, doc *render.Document, docData []byte, opts Options) ([]byte, error) {
	tree, box := doc.Tree()

	switch opts.Format {
	case FormatJSON:
		return docData, nil
	case FormatSVG:
		var svgOpts []render.SVGOption
		if opts.Title != "" {
			svgOpts = append(svgOpts, render.WithTitle(opts.Title))
		}
		if opts.ShowCodes {
			svgOpts = append(svgOpts, render.WithShowCodes())
		}
		return render.SVG(tree, box, svgOpts...), nil
	case FormatDOT:
		return []byte(render.DOT(tree, render.DOTOptions{Detailed: opts.ShowCodes})), nil
	case FormatDOTSVG:
		dot := render.DOT(tree, render.DOTOptions{Detailed: opts.ShowCodes})
		return render.DOTSVG(ctx, dot)
	case FormatText:
		return []byte(render.Text(tree, render.TextOptions{ShowCodes: opts.ShowCodes})), nil
	default:
		return nil, fmt.Errorf("invalid format: %q", opts.Format)
	}
}

func (r *Runner) cacheReadable(opts Options) bool {
	return !opts.NoCache && !opts.Refresh
}

func (r *Runner) cacheWritable(opts Options) bool {
	return !opts.NoCache
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
