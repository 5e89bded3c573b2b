// Package cli implements the huffview command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chidanandgowda/huffman-coding/pkg/buildinfo"
	"github.com/chidanandgowda/huffman-coding/pkg/cache"
	"github.com/chidanandgowda/huffman-coding/pkg/pipeline"
	"github.com/chidanandgowda/huffman-coding/pkg/snapshot"
)

// appName is the application name used for directories and display.
const appName = "huffview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	// configPath is the --config override, resolved in PersistentPreRunE.
	configPath string
}

// New creates a new CLI instance with a default logger and config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Huffview visualizes Huffman coding trees",
		Long:         `Huffview builds the Huffman tree for any input, lays it out for display, and renders it as SVG, Graphviz DOT, JSON, or terminal output. It also drives an external compressor and keeps named snapshots of past trees.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/huffview/config.toml)")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.compressCommand())
	root.AddCommand(c.decompressCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.snapshotsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use, honoring the configured
// cache backend.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(cmd, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

func (c *CLI) newCache(cmd *cobra.Command, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		return cache.NewRedisCache(cmd.Context(), c.Config.Cache.RedisAddr)
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newStore opens the configured snapshot store. The returned store must be
// closed by the caller.
func (c *CLI) newStore(cmd *cobra.Command) (snapshot.Store, error) {
	if c.Config.Snapshots.Store == snapshotStoreMongo {
		return snapshot.NewMongoStore(cmd.Context(),
			c.Config.Snapshots.MongoURI,
			c.Config.Snapshots.MongoDatabase,
			c.Config.Snapshots.MongoCollection)
	}
	return snapshot.NewFileStore(c.Config.Snapshots.Dir)
}

// cacheDir returns the cache directory, preferring the configured path and
// falling back to the XDG standard (~/.cache/huffview/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// nopCloser wraps an io.Writer with a no-op Close method so os.Stdout can
// stand in for a file.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path. An empty path or
// "-" selects stdout; otherwise the file is created, overwriting any
// existing content.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
