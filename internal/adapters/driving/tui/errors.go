package tui

import "errors"

// ErrMissingBrowserService is returned when the browser service is not provided.
var ErrMissingBrowserService = errors.New("tui: browser service is required")

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("tui: catalog service is required")

// ErrMissingExecutionService is returned when the execution service is not provided.
var ErrMissingExecutionService = errors.New("tui: execution service is required")
