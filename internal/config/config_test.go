package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings != Default() {
		t.Fatalf("settings = %+v, want defaults", settings)
	}
	if settings.WatchDebounce() != 200*time.Millisecond {
		t.Fatalf("debounce = %v", settings.WatchDebounce())
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	body := "viewMode: flat\ndiffStrategy: tempfile\nwatchDebounceMs: 500\nlogLevel: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.ViewMode != "flat" || settings.DiffStrategy != "tempfile" {
		t.Fatalf("settings = %+v", settings)
	}
	if settings.WatchDebounceMs != 500 {
		t.Fatalf("debounce = %d", settings.WatchDebounceMs)
	}
	// untouched fields keep defaults
	if settings.Backend != "exec" || settings.LogFormat != "text" {
		t.Fatalf("defaults lost: %+v", settings)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("viewMode: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNonPositiveDebounceFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("watchDebounceMs: -5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.WatchDebounceMs != Default().WatchDebounceMs {
		t.Fatalf("debounce = %d", settings.WatchDebounceMs)
	}
}
