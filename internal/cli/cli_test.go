package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := defaultCacheDir()
	if err != nil {
		t.Fatalf("defaultCacheDir() error = %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("defaultCacheDir() = %q, want %q", dir, want)
	}
}

func TestDefaultCacheDirHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := defaultCacheDir()
	if err != nil {
		t.Fatalf("defaultCacheDir() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("defaultCacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirConfigOverride(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = "/srv/huffview-cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != "/srv/huffview-cache" {
		t.Errorf("cacheDir() = %q, want configured path", dir)
	}
}

func TestOpenOutput(t *testing.T) {
	t.Run("stdout for empty path", func(t *testing.T) {
		out, err := openOutput("")
		if err != nil {
			t.Fatalf("openOutput(\"\") error = %v", err)
		}
		if _, ok := out.(nopCloser); !ok {
			t.Errorf("openOutput(\"\") = %T, want nopCloser over stdout", out)
		}
	})

	t.Run("stdout for dash", func(t *testing.T) {
		out, err := openOutput("-")
		if err != nil {
			t.Fatalf("openOutput(\"-\") error = %v", err)
		}
		if _, ok := out.(nopCloser); !ok {
			t.Errorf("openOutput(\"-\") = %T, want nopCloser over stdout", out)
		}
	})

	t.Run("creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.svg")
		out, err := openOutput(path)
		if err != nil {
			t.Fatalf("openOutput(%q) error = %v", path, err)
		}
		if _, err := out.Write([]byte("<svg/>")); err != nil {
			t.Fatal(err)
		}
		if err := out.Close(); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(path)
		if err != nil || string(data) != "<svg/>" {
			t.Errorf("file content = %q, err = %v", data, err)
		}
	})
}

func TestReadInput(t *testing.T) {
	t.Run("literal text wins", func(t *testing.T) {
		data, source, err := readInput("ignored.txt", "hello")
		if err != nil {
			t.Fatalf("readInput() error = %v", err)
		}
		if string(data) != "hello" || source != "text" {
			t.Errorf("readInput() = (%q, %q)", data, source)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.txt")
		if err := os.WriteFile(path, []byte("ABCC"), 0o644); err != nil {
			t.Fatal(err)
		}
		data, source, err := readInput(path, "")
		if err != nil {
			t.Fatalf("readInput() error = %v", err)
		}
		if string(data) != "ABCC" || source != "input.txt" {
			t.Errorf("readInput() = (%q, %q)", data, source)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		if _, _, err := readInput("", ""); err == nil {
			t.Error("readInput() = nil, want error without file or text")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, _, err := readInput(filepath.Join(t.TempDir(), "nope.txt"), ""); err == nil {
			t.Error("readInput() = nil, want error for missing file")
		}
	})
}

func TestDerivedOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		source string
		format string
		want   string
	}{
		{"war.txt", "war.txt", "svg", "war.svg"},
		{"docs/readme.md", "readme.md", "dot", "docs/readme.dot"},
		{"-", "stdin", "json", "stdin.json"},
		{"", "text", "svg", "text.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := derivedOutputPath(tt.input, tt.source, tt.format)
			if got != tt.want {
				t.Errorf("derivedOutputPath(%q, %q, %q) = %q, want %q",
					tt.input, tt.source, tt.format, got, tt.want)
			}
		})
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := []string{"build", "explore", "compress", "decompress", "run", "snapshots", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}

	if !strings.Contains(root.Use, appName) {
		t.Errorf("root.Use = %q, want it to name %s", root.Use, appName)
	}
}
