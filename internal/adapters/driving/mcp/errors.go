// Package mcp provides an MCP (Model Context Protocol) server adapter for
// runbook. It lets AI assistants like Claude browse the command catalog,
// preview entries, and run them with captured output.
package mcp

import "errors"

// Sentinel errors for missing required ports.
var (
	// ErrMissingCatalogService is returned when the catalog service is not provided.
	ErrMissingCatalogService = errors.New("mcp: catalog service is required")

	// ErrMissingExecutionService is returned when the execution service is not provided.
	ErrMissingExecutionService = errors.New("mcp: execution service is required")
)
