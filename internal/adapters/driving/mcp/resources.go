package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for runbook resources.
	uriScheme = "runbook://"

	// historyResourceLimit caps the entries the history resource returns.
	historyResourceLimit = 20
)

// treeNode is the JSON shape of one catalog entry in a category tree.
type treeNode struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	MultiSelect bool       `json:"multi_select,omitempty"`
	Children    []treeNode `json:"children,omitempty"`
}

// historyEntry is the JSON shape of one recorded execution.
type historyEntry struct {
	Name       string `json:"name"`
	Success    bool   `json:"success"`
	ExitCode   *int   `json:"exit_code,omitempty"`
	FinishedAt string `json:"finished_at"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing categories.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "The catalog's category names",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	// Template for reading one category's full tree.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "categories/{category}",
		Name:        "category-tree",
		Description: "Every directory and command in a category",
		MIMEType:    "application/json",
	}, s.handleCategoryTreeResource)

	// Static resource for recent executions.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recently executed commands and their outcomes",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleCategoriesResource serves the category name listing.
func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names, err := s.ports.Catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling categories: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

// handleCategoryTreeResource serves one category's tree by name.
func (s *Server) handleCategoryTreeResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractCategory(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	snapshot, err := s.ports.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	category, ok := snapshot.Category(name)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(buildTree(category, category.RootID), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling category tree: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

// handleHistoryResource serves the recent execution listing. Without a
// history service the resource reads as an empty list.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	entries := []historyEntry{}

	if s.ports.History != nil {
		results, err := s.ports.History.Recent(ctx, historyResourceLimit)
		if err != nil {
			return nil, fmt.Errorf("listing history: %w", err)
		}

		entries = make([]historyEntry, len(results))
		for i := range results {
			entries[i] = historyEntry{
				Name:       results[i].Name,
				Success:    results[i].Success,
				ExitCode:   results[i].ExitCode,
				FinishedAt: results[i].FinishedAt.Format(time.RFC3339),
			}
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

// buildTree renders the subtree under the given node id.
func buildTree(category domain.Category, id string) []treeNode {
	children := category.ChildrenOf(id)

	nodes := make([]treeNode, len(children))
	for i := range children {
		nodes[i] = treeNode{
			ID:          children[i].ID,
			Name:        children[i].Name,
			Description: children[i].Description,
			Tags:        children[i].Tags,
			MultiSelect: children[i].MultiSelect,
			Children:    buildTree(category, children[i].ID),
		}
	}
	return nodes
}

// extractCategory extracts the category name from a URI like
// runbook://categories/{category}. Percent-encoding is undone so
// category names containing spaces resolve.
func extractCategory(uri string) string {
	const prefix = uriScheme + "categories/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}
