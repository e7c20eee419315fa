package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "5000" {
		t.Errorf("default port = %s", cfg.Server.Port)
	}
	if cfg.Data.Years["1952"] != "lok_sabha_1952_data.csv" || len(cfg.Data.Years) != 18 {
		t.Errorf("default year files wrong: %v", cfg.Data.Years)
	}
	if len(cfg.Data.Dirs) == 0 {
		t.Error("default data dirs missing")
	}
}

func TestLoadFileOverridesAndPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  port: \"9000\"\ndata:\n  dirs:\n    - /srv/data\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("port = %s, want 9000", cfg.Server.Port)
	}
	if len(cfg.Data.Dirs) != 1 || cfg.Data.Dirs[0] != "/srv/data" {
		t.Errorf("dirs = %v", cfg.Data.Dirs)
	}
	// Year files not named in the file keep their defaults.
	if len(cfg.Data.Years) != 18 {
		t.Errorf("year files should fall back to defaults, got %d", len(cfg.Data.Years))
	}

	// PORT wins over everything.
	t.Setenv("PORT", "3000")
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("PORT env override lost: %s", cfg.Server.Port)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("a missing config file must fall back to defaults: %v", err)
	}
}
