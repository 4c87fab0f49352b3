// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// EnvLevel names the environment variable holding the default log level.
const EnvLevel = "IMGSTUDIO_LOG_LEVEL"

// DefaultLevel applies when neither the flag nor the environment sets one.
const DefaultLevel = "warn"

// ResolveLevel picks the flag value, then the environment, then DefaultLevel.
func ResolveLevel(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLevel)); v != "" {
		return v
	}
	return DefaultLevel
}

// Setup sets the standard logger's level, formatter and output.
// A nil out writes to stderr.
func Setup(level string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	if out == nil {
		out = os.Stderr
	}

	log.SetLevel(lvl)
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
	return nil
}

// OpenFile redirects logging to path while the TUI owns the terminal.
// The returned closer restores stderr.
func OpenFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return closerFunc(func() error {
		log.SetOutput(os.Stderr)
		return f.Close()
	}), nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }
