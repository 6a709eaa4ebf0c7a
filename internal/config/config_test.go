package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config written: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "sub", DefaultDBName) {
		t.Fatalf("db path not resolved: %q", cfg.DBPath)
	}
	if cfg.Keys.Toggle != " " || cfg.Keys.Quit != "q" {
		t.Fatalf("unexpected default keys: %+v", cfg.Keys)
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again != cfg {
		t.Fatalf("reload differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadOrCreateFillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `db_path = "/var/tmp/tasks.db"
log_level = "debug"

[keys]
add = "n"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/var/tmp/tasks.db" {
		t.Fatalf("absolute db path rewritten: %q", cfg.DBPath)
	}
	if cfg.LogPath != filepath.Join(dir, DefaultLogName) {
		t.Fatalf("log path = %q", cfg.LogPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
	if cfg.Keys.Add != "n" || cfg.Keys.Delete != "d" || cfg.Keys.Cancel != "esc" {
		t.Fatalf("keys = %+v", cfg.Keys)
	}
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte("db_path = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadOrCreate(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestResolveConfigPathHonoursEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	if got := ResolveConfigPath(); got != "/tmp/custom.toml" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveConfigPathDefault(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	got := ResolveConfigPath()
	if filepath.Base(got) != DefaultConfigFileName {
		t.Fatalf("got %q", got)
	}
}
