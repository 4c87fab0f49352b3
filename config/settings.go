package config

import (
	"fmt"
	"os"
	"time"

	"imgstudio/config/models"
)

// EnvOutputDir overrides the export directory.
const EnvOutputDir = "IMGSTUDIO_OUTPUT_DIR"

// Defaults for session caps and request handling.
const (
	DefaultMaxHistory     = 25
	DefaultMaxFavorites   = 50
	MaxBatchSize          = 6
	DefaultRequestTimeout = 180 * time.Second
	DefaultOutputDir      = "imgstudio-output"
)

// Settings are the effective runtime settings.
type Settings struct {
	MaxHistory     int
	MaxFavorites   int
	RequestTimeout time.Duration
	OutputDir      string
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		MaxHistory:     DefaultMaxHistory,
		MaxFavorites:   DefaultMaxFavorites,
		RequestTimeout: DefaultRequestTimeout,
		OutputDir:      DefaultOutputDir,
	}
}

// ResolveSettings applies file overrides and then $IMGSTUDIO_OUTPUT_DIR.
func ResolveSettings(raw models.Settings) (Settings, error) {
	s := DefaultSettings()
	if raw.MaxHistory < 0 || raw.MaxFavorites < 0 {
		return s, fmt.Errorf("settings: caps must not be negative")
	}
	if raw.MaxHistory > 0 {
		s.MaxHistory = raw.MaxHistory
	}
	if raw.MaxFavorites > 0 {
		s.MaxFavorites = raw.MaxFavorites
	}
	if raw.RequestTimeout != "" {
		d, err := time.ParseDuration(raw.RequestTimeout)
		if err != nil || d <= 0 {
			return s, fmt.Errorf("settings: invalid request_timeout '%s'", raw.RequestTimeout)
		}
		s.RequestTimeout = d
	}
	if raw.OutputDir != "" {
		s.OutputDir = raw.OutputDir
	}
	if dir := os.Getenv(EnvOutputDir); dir != "" {
		s.OutputDir = dir
	}
	return s, nil
}
