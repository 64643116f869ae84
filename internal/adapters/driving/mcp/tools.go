package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// executePollInterval is how often execute_command checks for its result.
const executePollInterval = 50 * time.Millisecond

// ListCategoriesInput is the input schema for the list_categories tool.
type ListCategoriesInput struct{}

// ListCategoriesOutput is the output schema for the list_categories tool.
type ListCategoriesOutput struct {
	Categories []string `json:"categories" jsonschema:"the category names in catalog order"`
	Count      int      `json:"count" jsonschema:"number of categories"`
}

// ListItemsInput is the input schema for the list_items tool.
type ListItemsInput struct {
	Category string   `json:"category" jsonschema:"the category to list"`
	Path     []string `json:"path,omitempty" jsonschema:"directory names leading to the directory to list, empty for the category root"`
}

// ItemOutput describes one catalog entry.
type ItemOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	HasChildren bool     `json:"has_children"`
	MultiSelect bool     `json:"multi_select"`
}

// ListItemsOutput is the output schema for the list_items tool.
type ListItemsOutput struct {
	Items []ItemOutput `json:"items" jsonschema:"the entries of the resolved directory"`
	Count int          `json:"count" jsonschema:"number of entries"`
}

// PreviewCommandInput is the input schema for the preview_command tool.
type PreviewCommandInput struct {
	Category string   `json:"category" jsonschema:"the category containing the entry"`
	Path     []string `json:"path" jsonschema:"names leading to the entry, starting from the category root"`
}

// PreviewCommandOutput is the output schema for the preview_command tool.
type PreviewCommandOutput struct {
	Preview string `json:"preview" jsonschema:"the command text or script content, with the entry's description"`
}

// ExecuteCommandInput is the input schema for the execute_command tool.
type ExecuteCommandInput struct {
	Category string   `json:"category" jsonschema:"the category containing the command"`
	Path     []string `json:"path" jsonschema:"names leading to the command, starting from the category root"`
}

// ExecuteCommandOutput is the output schema for the execute_command tool.
type ExecuteCommandOutput struct {
	Name       string `json:"name" jsonschema:"the executed command's display name"`
	Success    bool   `json:"success" jsonschema:"whether the command exited successfully"`
	Output     string `json:"output" jsonschema:"the captured output"`
	Error      string `json:"error,omitempty" jsonschema:"the captured error text, empty on success"`
	ExitCode   *int   `json:"exit_code,omitempty" jsonschema:"the process exit code, absent if the process never ran"`
	DurationMS int64  `json:"duration_ms" jsonschema:"execution time in milliseconds"`
}

// RefreshCatalogInput is the input schema for the refresh_catalog tool.
type RefreshCatalogInput struct{}

// RefreshCatalogOutput is the output schema for the refresh_catalog tool.
type RefreshCatalogOutput struct {
	Categories int `json:"categories" jsonschema:"number of categories after the reload"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the catalog's category names",
	}, s.handleListCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_items",
		Description: "List the entries of a catalog directory",
	}, s.handleListItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preview_command",
		Description: "Show what a catalog entry would run, without executing it",
	}, s.handlePreviewCommand)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "execute_command",
		Description: "Run a catalog command and return its captured output",
	}, s.handleExecuteCommand)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_catalog",
		Description: "Reload the catalog from disk",
	}, s.handleRefreshCatalog)
}

// handleListCategories processes list_categories tool calls.
func (s *Server) handleListCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCategoriesInput,
) (*mcp.CallToolResult, ListCategoriesOutput, error) {
	names, err := s.ports.Catalog.Categories(ctx)
	if err != nil {
		return nil, ListCategoriesOutput{}, fmt.Errorf("listing categories: %w", err)
	}

	return nil, ListCategoriesOutput{Categories: names, Count: len(names)}, nil
}

// handleListItems processes list_items tool calls.
func (s *Server) handleListItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListItemsInput,
) (*mcp.CallToolResult, ListItemsOutput, error) {
	category, parent, err := s.resolve(ctx, input.Category, input.Path)
	if err != nil {
		return nil, ListItemsOutput{}, err
	}

	children := category.ChildrenOf(parent.ID)
	output := ListItemsOutput{
		Items: make([]ItemOutput, len(children)),
		Count: len(children),
	}
	for i := range children {
		output.Items[i] = ItemOutput{
			ID:          children[i].ID,
			Name:        children[i].Name,
			Description: children[i].Description,
			Tags:        children[i].Tags,
			HasChildren: children[i].HasChildren(),
			MultiSelect: children[i].MultiSelect,
		}
	}

	return nil, output, nil
}

// handlePreviewCommand processes preview_command tool calls.
func (s *Server) handlePreviewCommand(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PreviewCommandInput,
) (*mcp.CallToolResult, PreviewCommandOutput, error) {
	_, node, err := s.resolve(ctx, input.Category, input.Path)
	if err != nil {
		return nil, PreviewCommandOutput{}, err
	}

	preview, err := s.ports.Catalog.Preview(ctx, input.Category, node.ID)
	if err != nil {
		return nil, PreviewCommandOutput{}, fmt.Errorf("previewing %s: %w", node.Name, err)
	}

	return nil, PreviewCommandOutput{Preview: preview}, nil
}

// handleExecuteCommand processes execute_command tool calls. The command
// is submitted to the execution worker and the handler blocks until its
// result is delivered or the context is cancelled.
func (s *Server) handleExecuteCommand(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExecuteCommandInput,
) (*mcp.CallToolResult, ExecuteCommandOutput, error) {
	_, node, err := s.resolve(ctx, input.Category, input.Path)
	if err != nil {
		return nil, ExecuteCommandOutput{}, err
	}

	s.execMu.Lock()
	defer s.execMu.Unlock()

	if err := s.ports.Execution.Execute(ctx, input.Category, node.ID); err != nil {
		return nil, ExecuteCommandOutput{}, fmt.Errorf("executing %s: %w", node.Name, err)
	}

	result, err := s.waitForResult(ctx)
	if err != nil {
		return nil, ExecuteCommandOutput{}, err
	}

	output := ExecuteCommandOutput{
		Name:       result.Name,
		Success:    result.Success,
		Output:     result.Output,
		Error:      result.Error,
		ExitCode:   result.ExitCode,
		DurationMS: result.Duration().Milliseconds(),
	}

	return nil, output, nil
}

// handleRefreshCatalog processes refresh_catalog tool calls.
func (s *Server) handleRefreshCatalog(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RefreshCatalogInput,
) (*mcp.CallToolResult, RefreshCatalogOutput, error) {
	if err := s.ports.Catalog.Refresh(ctx); err != nil {
		return nil, RefreshCatalogOutput{}, fmt.Errorf("refreshing catalog: %w", err)
	}

	snapshot, err := s.ports.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, RefreshCatalogOutput{}, fmt.Errorf("loading catalog: %w", err)
	}

	return nil, RefreshCatalogOutput{Categories: len(snapshot.Categories)}, nil
}

// resolve looks up a category and walks a name path to a node within it.
func (s *Server) resolve(ctx context.Context, categoryName string, path []string) (domain.Category, domain.Node, error) {
	snapshot, err := s.ports.Catalog.Snapshot(ctx)
	if err != nil {
		return domain.Category{}, domain.Node{}, fmt.Errorf("loading catalog: %w", err)
	}

	category, ok := snapshot.Category(categoryName)
	if !ok {
		return domain.Category{}, domain.Node{}, fmt.Errorf("category %q: %w", categoryName, domain.ErrNotFound)
	}

	node, ok := category.FindByNamePath(path)
	if !ok {
		return domain.Category{}, domain.Node{}, fmt.Errorf("entry %q: %w", strings.Join(path, " > "), domain.ErrNotFound)
	}

	return category, node, nil
}

// waitForResult polls until the submitted request completes. Delivery is
// guaranteed once Execute accepted the request, so the poll is the only
// exit condition besides context cancellation.
func (s *Server) waitForResult(ctx context.Context) (*domain.ExecutionResult, error) {
	ticker := time.NewTicker(executePollInterval)
	defer ticker.Stop()

	for {
		if result := s.ports.Execution.PollResult(); result != nil {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
