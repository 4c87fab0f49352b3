package tui

import (
	"imgstudio/internal/catalog"
	"imgstudio/internal/generation"
	"imgstudio/internal/session"
)

// ModelsDiscoveredMsg is sent when model discovery for a profile finishes
type ModelsDiscoveredMsg struct {
	Profile string
	Models  catalog.Catalog
	Summary string
}

// GenerationDoneMsg is sent when a generation finishes
type GenerationDoneMsg struct {
	Outcome generation.Outcome
	Entry   *session.HistoryEntry
	Err     error
}

// ValidationMsg is sent when a credential check finishes
type ValidationMsg struct {
	Profile string
	OK      bool
	Message string
}

// ExportedMsg is sent when images have been written to disk
type ExportedMsg struct {
	Paths []string
	Err   error
}
