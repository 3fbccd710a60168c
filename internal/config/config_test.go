package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid default config with links file", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.LinksFile = "links.txt"
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	})

	t.Run("missing links file", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := cfg.Validate(); !errors.Is(err, ErrNoLinksFile) {
			t.Errorf("expected ErrNoLinksFile, got %v", err)
		}
	})

	t.Run("negative delay", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.LinksFile = "links.txt"
		cfg.Delay = -time.Second
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidDelay) {
			t.Errorf("expected ErrInvalidDelay, got %v", err)
		}
	})

	t.Run("zero max pages", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.LinksFile = "links.txt"
		cfg.MaxPages = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxPages) {
			t.Errorf("expected ErrInvalidMaxPages, got %v", err)
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads credentials and overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := "username: alice\npassword: hunter2\ndelay: 3s\nmaxPages: 10\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		cfg := NewConfig()
		if err := cf.Apply(cfg); err != nil {
			t.Fatalf("failed to apply config: %v", err)
		}

		if cfg.Username != "alice" || cfg.Password != "hunter2" {
			t.Errorf("credentials not applied: %q/%q", cfg.Username, cfg.Password)
		}
		if cfg.Delay != 3*time.Second {
			t.Errorf("delay not applied: %s", cfg.Delay)
		}
		if cfg.MaxPages != 10 {
			t.Errorf("maxPages not applied: %d", cfg.MaxPages)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("flag values win over file values", func(t *testing.T) {
		t.Parallel()

		cf := &File{Username: "filevalue", Output: "filedir", Delay: "2s"}
		cfg := NewConfig()
		cfg.Username = "flagvalue"
		cfg.OutputDir = "flagdir"
		cfg.Delay = 5 * time.Second

		if err := cf.Apply(cfg); err != nil {
			t.Fatal(err)
		}
		if cfg.Username != "flagvalue" {
			t.Errorf("flag username overridden: %q", cfg.Username)
		}
		if cfg.OutputDir != "flagdir" {
			t.Errorf("flag output dir overridden: %q", cfg.OutputDir)
		}
		if cfg.Delay != 5*time.Second {
			t.Errorf("flag delay overridden: got %v, want %v", cfg.Delay, 5*time.Second)
		}
	})

	t.Run("invalid delay syntax is an error", func(t *testing.T) {
		t.Parallel()

		cf := &File{Delay: "two seconds"}
		if err := cf.Apply(NewConfig()); err == nil {
			t.Error("expected error for invalid delay syntax")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("explicit path that exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(path, []byte("username: x\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit path that does not exist", func(t *testing.T) {
		if got := FindConfigFile("/nonexistent/path.yaml"); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}
