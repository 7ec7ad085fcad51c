package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ReadsSettingsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("api_url: http://tasks.local:9000\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAPIURL, "")

	cfg, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != "http://tasks.local:9000" {
		t.Errorf("unexpected APIURL %q", cfg.APIURL)
	}
}

func TestNew_EnvOverridesSettingsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("api_url: http://from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAPIURL, "http://from-env")

	cfg, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != "http://from-env" {
		t.Errorf("env must win, got %q", cfg.APIURL)
	}
}

func TestNew_NoSettingsFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != "" {
		t.Errorf("expected empty APIURL, got %q", cfg.APIURL)
	}
}

func TestNew_InvalidSettingsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("api_url: [not a\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := New(dir); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got, want := DefaultConfigDir(), filepath.Join("/tmp/xdg", AppName); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPathsAndSession(t *testing.T) {
	dir := t.TempDir()
	cfg, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := cfg.SessionPath(), filepath.Join(dir, SessionFile); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if cfg.HasSession() {
		t.Error("no session file yet")
	}

	if err := os.WriteFile(cfg.SessionPath(), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasSession() {
		t.Error("session file exists now")
	}
}

func TestEnsureDir(t *testing.T) {
	cfg := &Config{Dir: filepath.Join(t.TempDir(), "nested", AppName)}
	if err := cfg.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
	if mode := info.Mode().Perm(); mode != 0700 {
		t.Errorf("expected 0700, got %o", mode)
	}
}
