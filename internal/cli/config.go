package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chidanandgowda/huffman-coding/pkg/layout"
	"github.com/chidanandgowda/huffman-coding/pkg/snapshot"
	"github.com/chidanandgowda/huffman-coding/pkg/viewport"
)

// Cache backend names accepted in config.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// Snapshot store names accepted in config.
const (
	snapshotStoreFile  = "file"
	snapshotStoreMongo = "mongo"
)

// Config is the huffview configuration file schema. Every field has a
// working default, so a missing file or an empty file is fine; flags
// override whatever the file sets.
type Config struct {
	Layout    LayoutConfig    `toml:"layout"`
	Viewport  ViewportConfig  `toml:"viewport"`
	Cache     CacheConfig     `toml:"cache"`
	Snapshots SnapshotsConfig `toml:"snapshots"`
	Codec     CodecConfig     `toml:"codec"`
	Serve     ServeConfig     `toml:"serve"`
}

// LayoutConfig overrides tree layout geometry.
type LayoutConfig struct {
	NodeRadius   float64 `toml:"node_radius"`
	LevelHeight  float64 `toml:"level_height"`
	MinSlotWidth float64 `toml:"min_slot_width"`
	TopMargin    float64 `toml:"top_margin"`
	SideMargin   float64 `toml:"side_margin"`
}

// ViewportConfig overrides the interactive zoom bounds.
type ViewportConfig struct {
	ZoomMin float64 `toml:"zoom_min"`
	ZoomMax float64 `toml:"zoom_max"`
}

// CacheConfig selects the pipeline cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"` // file, redis, or none
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// SnapshotsConfig selects the snapshot store.
type SnapshotsConfig struct {
	Store           string `toml:"store"` // file or mongo
	Dir             string `toml:"dir"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// CodecConfig locates the external compressor.
type CodecConfig struct {
	Exe        string   `toml:"exe"`
	Candidates []string `toml:"candidates"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	def := layout.DefaultConfig()
	return Config{
		Layout: LayoutConfig{
			NodeRadius:   def.NodeRadius,
			LevelHeight:  def.LevelHeight,
			MinSlotWidth: def.MinSlotWidth,
			TopMargin:    def.TopMargin,
			SideMargin:   def.SideMargin,
		},
		Viewport: ViewportConfig{
			ZoomMin: viewport.DefaultZoomMin,
			ZoomMax: viewport.DefaultZoomMax,
		},
		Cache: CacheConfig{
			Backend:   cacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Snapshots: SnapshotsConfig{
			Store:           snapshotStoreFile,
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   snapshot.DefaultDatabase,
			MongoCollection: snapshot.DefaultCollection,
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig reads the TOML config at path, or the default location when
// path is empty. A missing file at the default location yields defaults;
// an explicitly named file must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return cfg, fmt.Errorf("config file %s: %w", path, err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case cacheBackendFile, cacheBackendRedis, cacheBackendNone:
	default:
		return fmt.Errorf("invalid cache backend: %q (must be file, redis, or none)", c.Cache.Backend)
	}
	switch c.Snapshots.Store {
	case snapshotStoreFile, snapshotStoreMongo:
	default:
		return fmt.Errorf("invalid snapshot store: %q (must be file or mongo)", c.Snapshots.Store)
	}
	if c.Viewport.ZoomMin <= 0 || c.Viewport.ZoomMax <= 0 || c.Viewport.ZoomMin > c.Viewport.ZoomMax {
		return fmt.Errorf("invalid zoom bounds: min %.2f, max %.2f", c.Viewport.ZoomMin, c.Viewport.ZoomMax)
	}
	return nil
}

// layoutConfig converts the file schema into the layout package's config.
func (c *Config) layoutConfig() layout.Config {
	return layout.Config{
		NodeRadius:   c.Layout.NodeRadius,
		LevelHeight:  c.Layout.LevelHeight,
		MinSlotWidth: c.Layout.MinSlotWidth,
		TopMargin:    c.Layout.TopMargin,
		SideMargin:   c.Layout.SideMargin,
	}
}

// defaultConfigPath returns the XDG config location
// (~/.config/huffview/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
