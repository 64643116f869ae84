package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/runbook-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService memoizes the most recently loaded catalog snapshot in
// a single slot. The slot is the only shared mutable state; its mutex
// is held for the read-or-replace critical section only, never across
// a provider call.
type CatalogService struct {
	provider driven.CatalogProvider
	validate bool

	mu   sync.Mutex
	snap *domain.Snapshot
}

// NewCatalogService creates a catalog service over a provider.
// validate is passed through to every provider load.
func NewCatalogService(provider driven.CatalogProvider, validate bool) *CatalogService {
	return &CatalogService{
		provider: provider,
		validate: validate,
	}
}

// Snapshot returns the current catalog snapshot, loading one if the
// cache is empty.
func (s *CatalogService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	if s.snap != nil {
		snap := s.snap
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	// Provider I/O happens outside the lock.
	snap, err := s.provider.Load(ctx, s.validate)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		s.snap = snap
	}
	return s.snap, nil
}

// Categories returns the category names in catalog order.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.CategoryNames(), nil
}

// Node resolves a node by category name and node id.
func (s *CatalogService) Node(ctx context.Context, category, id string) (domain.Node, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Node{}, err
	}

	node, ok := snap.Node(category, id)
	if !ok {
		return domain.Node{}, fmt.Errorf("node %q in category %q: %w", id, category, domain.ErrNotFound)
	}
	return node, nil
}

// Preview renders the node's command text or, for a script node, its
// source content, alongside the description. Read-only, no side effects.
func (s *CatalogService) Preview(ctx context.Context, category, id string) (string, error) {
	node, err := s.Node(ctx, category, id)
	if err != nil {
		return "", err
	}

	switch node.Command.Kind {
	case domain.CommandRaw:
		return fmt.Sprintf("Raw Command:\n%s\n\nDescription:\n%s", node.Command.Raw, node.Description), nil

	case domain.CommandLocalFile:
		content := readScriptSource(node.Command.SourcePath)
		info := fmt.Sprintf("Executable: %s\nArguments: %s\nScript File: %s",
			node.Command.Executable,
			strings.Join(node.Command.Args, " "),
			node.Command.SourcePath)
		return fmt.Sprintf("Script Preview:\n%s\n\nExecution Info:\n%s\n\nDescription:\n%s",
			content, info, node.Description), nil

	default:
		return fmt.Sprintf("Directory: %s\n\nDescription:\n%s", node.Name, node.Description), nil
	}
}

// Refresh invalidates the cache and loads a fresh snapshot.
func (s *CatalogService) Refresh(ctx context.Context) error {
	s.Invalidate()
	_, err := s.Snapshot(ctx)
	return err
}

// Invalidate clears the cache unconditionally. The next read performs
// exactly one fresh provider call.
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
	logger.Debug("Catalog cache invalidated")
}

// readScriptSource reads a script file for previewing. An unreadable
// file produces an explanatory placeholder, not an error, so preview
// stays side-effect free for the caller.
func readScriptSource(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Could not read script file: %s", path)
	}
	return string(content)
}
