// Package tui provides the interactive terminal studio
package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"imgstudio/config/models"
	"imgstudio/internal/catalog"
	"imgstudio/internal/compatibility"
	"imgstudio/internal/discovery"
	"imgstudio/internal/export"
	"imgstudio/internal/generation"
	"imgstudio/internal/session"
)

// Deps are the services the studio calls into. Zero fields get defaults.
type Deps struct {
	Dispatcher *generation.Dispatcher
	Exporter   *export.Exporter
	Discover   func(ctx context.Context, p models.Profile) (catalog.Catalog, string)
	Validate   func(ctx context.Context, p models.Profile) (bool, string)
}

func (d Deps) withDefaults() Deps {
	if d.Dispatcher == nil {
		d.Dispatcher = generation.NewDispatcher()
	}
	if d.Exporter == nil {
		d.Exporter = export.NewExporter(".")
	}
	if d.Discover == nil {
		d.Discover = func(ctx context.Context, p models.Profile) (catalog.Catalog, string) {
			ctx, cancel := context.WithTimeout(ctx, discovery.DefaultTimeout)
			defer cancel()
			return discovery.Run(ctx, discovery.ForProfile(p, nil))
		}
	}
	if d.Validate == nil {
		d.Validate = func(ctx context.Context, p models.Profile) (bool, string) {
			return compatibility.Validate(ctx, p)
		}
	}
	return d
}

// Run starts the TUI interface
func Run(sess *session.Session, deps Deps) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("imgstudio studio requires a terminal. Use subcommands for non-interactive mode")
	}

	p := tea.NewProgram(NewModel(sess, deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
