package mcp

import (
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog provides read access to the loaded command catalog.
	Catalog driving.CatalogService

	// Execution submits commands and delivers their results.
	Execution driving.ExecutionService

	// History exposes recorded execution results. It is optional; the
	// history resource degrades to an empty list when it is nil.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Execution == nil {
		return ErrMissingExecutionService
	}
	return nil
}
