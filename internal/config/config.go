package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings mirrors the on-disk settings.yaml schema. Missing fields keep
// their defaults, and a missing file is not an error.
type Settings struct {
	// GitBin is the git executable to invoke; empty means "git" on PATH.
	GitBin string `yaml:"gitBin"`
	// Backend selects the git implementation: "exec" or "gogit".
	Backend string `yaml:"backend"`
	// ViewMode is the initial view: "hierarchical" or "flat".
	ViewMode string `yaml:"viewMode"`
	// DiffStrategy selects how branch content reaches the viewer:
	// "virtual" or "tempfile".
	DiffStrategy string `yaml:"diffStrategy"`
	// WatchDebounceMs delays reloads after file activity.
	WatchDebounceMs int `yaml:"watchDebounceMs"`
	// LogLevel is one of debug/info/warn/error.
	LogLevel string `yaml:"logLevel"`
	// LogFormat is "text" or "json".
	LogFormat string `yaml:"logFormat"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Backend:         "exec",
		ViewMode:        "hierarchical",
		DiffStrategy:    "virtual",
		WatchDebounceMs: 200,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads settings.yaml from path, applying defaults for absent fields.
func Load(path string) (Settings, error) {
	settings := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Default(), err
	}
	if settings.WatchDebounceMs <= 0 {
		settings.WatchDebounceMs = Default().WatchDebounceMs
	}
	return settings, nil
}

// WatchDebounce returns the debounce as a duration.
func (s Settings) WatchDebounce() time.Duration {
	return time.Duration(s.WatchDebounceMs) * time.Millisecond
}
