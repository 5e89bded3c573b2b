package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Fatal("Get() hit = false, want true")
	}
	if string(data) != "value" {
		t.Errorf("Get() = %q, want %q", data, "value")
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	_, hit, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("Get() hit = true for absent key, want false")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// Negative TTL stores without expiry, so this must still hit.
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("Get() after non-positive TTL Set = miss, want hit (no expiry)")
	}

	if err := c.Set(ctx, "expired", []byte("stale"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "expired"); hit {
		t.Error("Get() after TTL elapsed = hit, want miss")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get() after Delete = hit, want miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() of missing key error = %v, want nil", err)
	}
}

func TestNullCacheNeverHits(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache Get() hit = true, want false")
	}
}

func TestDefaultKeyerDeterministic(t *testing.T) {
	k := NewDefaultKeyer()

	tests := []struct {
		name   string
		make   func() string
		prefix string
	}{
		{"tree", func() string { return k.TreeKey("abc", TreeKeyOpts{Source: "f.txt"}) }, "tree:"},
		{"layout", func() string { return k.LayoutKey("abc", LayoutKeyOpts{LevelHeight: 80}) }, "layout:"},
		{"artifact", func() string { return k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"}) }, "artifact:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second := tt.make(), tt.make()
			if first != second {
				t.Errorf("key not deterministic: %q != %q", first, second)
			}
			if !strings.HasPrefix(first, tt.prefix) {
				t.Errorf("key = %q, want prefix %q", first, tt.prefix)
			}
		})
	}
}

func TestDefaultKeyerOptionsChangeKey(t *testing.T) {
	k := NewDefaultKeyer()
	svg := k.ArtifactKey("hash", ArtifactKeyOpts{Format: "svg"})
	dot := k.ArtifactKey("hash", ArtifactKeyOpts{Format: "dot"})
	if svg == dot {
		t.Error("ArtifactKey() identical for different formats")
	}
}

func TestScopedKeyerPrefix(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "src:a:")

	got := scoped.TreeKey("hash", TreeKeyOpts{})
	want := "src:a:" + inner.TreeKey("hash", TreeKeyOpts{})
	if got != want {
		t.Errorf("TreeKey() = %q, want %q", got, want)
	}
}

func TestHashStable(t *testing.T) {
	a, b := Hash([]byte("data")), Hash([]byte("data"))
	if a != b {
		t.Errorf("Hash() unstable: %q != %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(a))
	}
	if a == Hash([]byte("other")) {
		t.Error("Hash() identical for different inputs")
	}
}
