package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// testSnapshot builds a small two-category catalog for handler tests.
func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Categories: []domain.Category{
			{
				Name:   "Linux",
				RootID: "root",
				Nodes: map[string]domain.Node{
					"root": {
						ID:       "root",
						Name:     "Linux",
						Children: []string{"system", "update"},
						Command:  domain.NoCommand(),
					},
					"system": {
						ID:          "system",
						Name:        "System",
						Description: "System maintenance tasks",
						Children:    []string{"upgrade", "cleanup"},
						Command:     domain.NoCommand(),
					},
					"upgrade": {
						ID:          "upgrade",
						Name:        "Upgrade",
						Description: "Upgrade all packages",
						Command:     domain.RawCommand("apt-get upgrade -y"),
					},
					"cleanup": {
						ID:          "cleanup",
						Name:        "Cleanup",
						Description: "Remove unused packages",
						MultiSelect: true,
						Command:     domain.RawCommand("apt-get autoremove -y"),
					},
					"update": {
						ID:          "update",
						Name:        "Update",
						Description: "Update package lists",
						MultiSelect: true,
						Command:     domain.RawCommand("echo ok"),
					},
				},
			},
			{
				Name:   "Applications",
				RootID: "approot",
				Nodes: map[string]domain.Node{
					"approot": {
						ID:       "approot",
						Name:     "Applications",
						Children: []string{"browser"},
						Command:  domain.NoCommand(),
					},
					"browser": {
						ID:          "browser",
						Name:        "Browser",
						Description: "Install a web browser",
						Command:     domain.RawCommand("apt-get install -y firefox"),
					},
				},
			},
		},
	}
}

// successResult builds a completed result with exit code zero.
func successResult(name, output string) *domain.ExecutionResult {
	exit := 0
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.ExecutionResult{
		RequestID:  "req-1",
		NodeID:     "update",
		Name:       name,
		Success:    true,
		Output:     output,
		ExitCode:   &exit,
		StartedAt:  started,
		FinishedAt: started.Add(120 * time.Millisecond),
	}
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	snapshot  *domain.Snapshot
	preview   string
	err       error
	previewed string
	refreshed bool
}

func (m *mockCatalogService) Categories(_ context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshot.CategoryNames(), nil
}

func (m *mockCatalogService) Snapshot(_ context.Context) (*domain.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshot, nil
}

func (m *mockCatalogService) Node(_ context.Context, category, id string) (domain.Node, error) {
	if m.err != nil {
		return domain.Node{}, m.err
	}
	node, ok := m.snapshot.Node(category, id)
	if !ok {
		return domain.Node{}, domain.ErrNotFound
	}
	return node, nil
}

func (m *mockCatalogService) Preview(_ context.Context, category, id string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.previewed = category + "/" + id
	return m.preview, nil
}

func (m *mockCatalogService) Refresh(_ context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.refreshed = true
	return nil
}

func (m *mockCatalogService) Invalidate() {}

// mockExecutionService is a mock implementation of driving.ExecutionService.
type mockExecutionService struct {
	executeErr error
	executed   []string
	results    []*domain.ExecutionResult
}

func (m *mockExecutionService) Start() error { return nil }

func (m *mockExecutionService) Stop() {}

func (m *mockExecutionService) Execute(_ context.Context, category, nodeID string) error {
	if m.executeErr != nil {
		return m.executeErr
	}
	m.executed = append(m.executed, category+"/"+nodeID)
	return nil
}

func (m *mockExecutionService) ExecuteSelected(_ context.Context) (int, error) {
	return 0, nil
}

func (m *mockExecutionService) PollResult() *domain.ExecutionResult {
	if len(m.results) == 0 {
		return nil
	}
	result := m.results[0]
	m.results = m.results[1:]
	return result
}

func (m *mockExecutionService) Executing() bool { return len(m.results) > 0 }

func (m *mockExecutionService) Pending() int { return len(m.results) }

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	results []domain.ExecutionResult
	err     error
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.ExecutionResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.results) {
		return m.results[:limit], nil
	}
	return m.results, nil
}

func (m *mockHistoryService) Record(_ context.Context, _ domain.ExecutionResult) error {
	return nil
}
