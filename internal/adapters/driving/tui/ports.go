// Package tui provides the interactive catalog browser for runbook.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Browser drives the interactive catalog session.
	Browser driving.BrowserService

	// Catalog provides read access to the loaded catalog.
	Catalog driving.CatalogService

	// Execution submits commands and delivers their results.
	Execution driving.ExecutionService

	// History exposes recorded execution results.
	History driving.HistoryService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	browser driving.BrowserService,
	catalog driving.CatalogService,
	execution driving.ExecutionService,
) *Ports {
	return &Ports{
		Browser:   browser,
		Catalog:   catalog,
		Execution: execution,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Browser == nil {
		return ErrMissingBrowserService
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Execution == nil {
		return ErrMissingExecutionService
	}
	return nil
}
