package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Cache.Backend != cacheBackendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, cacheBackendFile)
	}
	if cfg.Snapshots.Store != snapshotStoreFile {
		t.Errorf("Snapshots.Store = %q, want %q", cfg.Snapshots.Store, snapshotStoreFile)
	}
	if cfg.Layout.NodeRadius != 25 || cfg.Layout.LevelHeight != 80 {
		t.Errorf("layout defaults = %+v", cfg.Layout)
	}
	if cfg.Viewport.ZoomMin != 0.3 || cfg.Viewport.ZoomMax != 3.0 {
		t.Errorf("viewport defaults = %+v", cfg.Viewport)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("Serve.Addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[layout]
level_height = 100

[cache]
backend = "redis"
redis_addr = "redis.internal:6379"

[snapshots]
store = "mongo"
mongo_uri = "mongodb://db.internal:27017"

[serve]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Layout.LevelHeight != 100 {
		t.Errorf("LevelHeight = %v, want 100", cfg.Layout.LevelHeight)
	}
	// Unset keys keep their defaults.
	if cfg.Layout.NodeRadius != 25 {
		t.Errorf("NodeRadius = %v, want default 25", cfg.Layout.NodeRadius)
	}
	if cfg.Cache.Backend != cacheBackendRedis || cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Snapshots.Store != snapshotStoreMongo {
		t.Errorf("Snapshots.Store = %q, want mongo", cfg.Snapshots.Store)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("Serve.Addr = %q, want :9090", cfg.Serve.Addr)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad cache backend", "[cache]\nbackend = \"memcached\"\n"},
		{"bad snapshot store", "[snapshots]\nstore = \"dynamo\"\n"},
		{"bad zoom bounds", "[viewport]\nzoom_min = 5.0\nzoom_max = 2.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() = nil, want validation error")
			}
		})
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig() = nil, want error for missing explicit file")
	}
}

func TestLayoutConfigConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.MinSlotWidth = 90

	lc := cfg.layoutConfig()
	if lc.MinSlotWidth != 90 {
		t.Errorf("MinSlotWidth = %v, want 90", lc.MinSlotWidth)
	}
	if lc.NodeRadius != 25 {
		t.Errorf("NodeRadius = %v, want 25", lc.NodeRadius)
	}
}
