// Package memory provides an in-memory catalog provider, used by tests
// and as a fixture source for the browsing services.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.CatalogProvider = (*Provider)(nil)

// Provider serves a fixed snapshot and counts how often it is asked to
// load, so cache behaviour can be asserted.
type Provider struct {
	mu        sync.Mutex
	snapshot  *domain.Snapshot
	loadCount int
	loadErr   error
}

// NewProvider creates a provider serving the given snapshot.
func NewProvider(snapshot *domain.Snapshot) *Provider {
	return &Provider{snapshot: snapshot}
}

// Load returns the configured snapshot.
func (p *Provider) Load(_ context.Context, _ bool) (*domain.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadCount++
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.snapshot, nil
}

// LoadCount returns how many times Load has been called.
func (p *Provider) LoadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadCount
}

// SetSnapshot replaces the snapshot served by future loads.
func (p *Provider) SetSnapshot(snapshot *domain.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshot = snapshot
}

// SetError makes future loads fail with err.
func (p *Provider) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadErr = err
}
