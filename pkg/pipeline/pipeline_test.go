package pipeline

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chidanandgowda/huffman-coding/pkg/render"
)

// memCache is an in-memory cache that counts operations so tests can
// prove which stages were served from cache.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	data, ok := m.entries[key]
	return data, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.entries[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func (m *memCache) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{FormatSVG, false},
		{FormatDOT, false},
		{FormatDOTSVG, false},
		{FormatJSON, false},
		{FormatText, false},
		{"png", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateRequiresSource(t *testing.T) {
	opts := Options{Format: FormatText}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("ValidateAndSetDefaults() = nil, want error for missing source")
	}
}

func TestOptionsValidateDefaults(t *testing.T) {
	opts := Options{Source: "test.txt"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Format != FormatSVG {
		t.Errorf("Format = %q, want %q", opts.Format, FormatSVG)
	}
	if opts.Layout.NodeRadius == 0 || opts.Layout.LevelHeight == 0 {
		t.Errorf("layout defaults not applied: %+v", opts.Layout)
	}
	if opts.Logger == nil {
		t.Error("Logger = nil, want discard default")
	}

	// Idempotent: a second call must not error or change anything.
	format := opts.Format
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Format != format {
		t.Errorf("Format changed on revalidation: %q", opts.Format)
	}
}

func TestExecuteTextOutput(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	result, err := runner.Execute(context.Background(), Options{
		Source:    "abc.txt",
		Input:     []byte("ABCC"),
		Format:    FormatText,
		ShowCodes: true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Stats.TotalBytes != 4 {
		t.Errorf("TotalBytes = %d, want 4", result.Stats.TotalBytes)
	}
	if result.Stats.SymbolCount != 3 {
		t.Errorf("SymbolCount = %d, want 3", result.Stats.SymbolCount)
	}
	if result.Stats.NodeCount != 5 {
		t.Errorf("NodeCount = %d, want 5", result.Stats.NodeCount)
	}
	if result.Stats.Depth != 2 {
		t.Errorf("Depth = %d, want 2", result.Stats.Depth)
	}
	if result.InputHash == "" {
		t.Error("InputHash is empty")
	}

	// The merged pair sorts after the lone C, so C is the left child.
	text := string(result.Artifact)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("artifact has %d lines, want 5:\n%s", len(lines), text)
	}
	if !strings.Contains(lines[1], "C 2") || !strings.Contains(lines[1], "─0─") {
		t.Errorf("second line = %q, want C on the 0 branch", lines[1])
	}
}

func TestExecuteDocumentRoundTrip(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	result, err := runner.Execute(context.Background(), Options{
		Source: "abc.txt",
		Input:  []byte("ABCC"),
		Format: FormatJSON,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	doc, err := render.Unmarshal(result.Artifact)
	if err != nil {
		t.Fatalf("Unmarshal(artifact) error = %v", err)
	}
	if doc.TotalBytes != 4 || len(doc.Nodes) != 5 {
		t.Errorf("doc = {TotalBytes: %d, Nodes: %d}, want {4, 5}", doc.TotalBytes, len(doc.Nodes))
	}
	tree, _ := doc.Tree()
	if tree == nil || tree.Root == nil {
		t.Fatal("doc.Tree() returned nil root")
	}
	if !tree.Root.Left.Leaf || tree.Root.Left.Symbol != 'C' {
		t.Errorf("root.Left = %+v, want leaf C", tree.Root.Left)
	}
}

func TestExecuteEmptyInput(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	result, err := runner.Execute(context.Background(), Options{
		Source: "empty.txt",
		Format: FormatText,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Stats.NodeCount != 0 {
		t.Errorf("NodeCount = %d, want 0", result.Stats.NodeCount)
	}
	if !strings.Contains(string(result.Artifact), render.Placeholder) {
		t.Errorf("artifact = %q, want placeholder", result.Artifact)
	}
	if len(result.Document.Nodes) != 0 {
		t.Errorf("Document.Nodes = %d entries, want 0", len(result.Document.Nodes))
	}
}

func TestExecuteCacheHits(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, quietLogger())
	opts := Options{
		Source: "abc.txt",
		Input:  []byte("ABCC"),
		Format: FormatSVG,
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.TreeHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want all misses", first.CacheInfo)
	}
	if c.setCount() != 3 {
		t.Errorf("sets after first run = %d, want 3", c.setCount())
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.TreeHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want all hits", second.CacheInfo)
	}
	if c.setCount() != 3 {
		t.Errorf("sets after second run = %d, want no new writes", c.setCount())
	}
	if string(second.Artifact) != string(first.Artifact) {
		t.Error("cached artifact differs from original")
	}
}

func TestExecuteRefreshSkipsReads(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, quietLogger())
	opts := Options{
		Source: "abc.txt",
		Input:  []byte("ABCC"),
		Format: FormatText,
	}

	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("warm-up Execute() error = %v", err)
	}

	opts.Refresh = true
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if result.CacheInfo.TreeHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh run CacheInfo = %+v, want all misses", result.CacheInfo)
	}
	if c.setCount() != 6 {
		t.Errorf("sets = %d, want refresh to rewrite all 3 stages", c.setCount())
	}
}

func TestExecuteNoCache(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, quietLogger())
	opts := Options{
		Source:  "abc.txt",
		Input:   []byte("ABCC"),
		Format:  FormatText,
		NoCache: true,
	}

	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if c.setCount() != 0 {
		t.Errorf("sets = %d, want 0 with caching disabled", c.setCount())
	}
	if c.gets != 0 {
		t.Errorf("gets = %d, want 0 with caching disabled", c.gets)
	}
}

func TestExecuteGeometryChangeReusesTree(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, quietLogger())
	opts := Options{
		Source: "abc.txt",
		Input:  []byte("ABCC"),
		Format: FormatText,
	}

	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("warm-up Execute() error = %v", err)
	}

	opts.Layout.LevelHeight = 120
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.CacheInfo.TreeHit {
		t.Error("TreeHit = false, want frequency table reused across geometry change")
	}
	if result.CacheInfo.LayoutHit {
		t.Error("LayoutHit = true, want recompute after geometry change")
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	_, err := runner.Execute(context.Background(), Options{
		Source: "abc.txt",
		Input:  []byte("ABCC"),
		Format: "png",
	})
	if err == nil {
		t.Error("Execute() = nil, want error for invalid format")
	}
}
