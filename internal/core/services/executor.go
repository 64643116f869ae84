package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/runbook-cli/internal/logger"
)

// Ensure ExecutionService implements the interface.
var _ driving.ExecutionService = (*ExecutionService)(nil)

// requestQueueCap bounds the request and result channels. Submission
// past this bound fails fast instead of blocking the caller.
const requestQueueCap = 64

// ExecutionService serializes command execution onto exactly one
// background worker fed by a FIFO channel. Submission and result
// delivery never block the interactive layer: requests are enqueued
// and results are polled.
type ExecutionService struct {
	catalog driving.CatalogService
	browser driving.BrowserService
	runner  driven.CommandRunner
	history driving.HistoryService

	requests chan domain.ExecutionRequest
	results  chan domain.ExecutionResult

	mu      sync.Mutex
	running bool
	pending int
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewExecutionService creates an execution coordinator.
// history may be nil; results are then delivered but not recorded.
func NewExecutionService(
	catalog driving.CatalogService,
	browser driving.BrowserService,
	runner driven.CommandRunner,
	history driving.HistoryService,
) *ExecutionService {
	return &ExecutionService{
		catalog:  catalog,
		browser:  browser,
		runner:   runner,
		history:  history,
		requests: make(chan domain.ExecutionRequest, requestQueueCap),
		results:  make(chan domain.ExecutionResult, requestQueueCap),
	}
}

// Start launches the worker goroutine.
func (s *ExecutionService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return domain.ErrAlreadyRunning
	}
	s.running = true
	s.stopCh = make(chan struct{})

	s.wg.Add(1)
	go s.worker()
	return nil
}

// Stop shuts the worker down after the in-flight command (if any)
// completes. Queued requests that never started are dropped. Safe to
// call when not running.
func (s *ExecutionService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
}

// Execute validates and enqueues one node for execution, returning
// immediately. Unknown nodes fail with ErrNotFound, grouping nodes with
// ErrNotExecutable; neither reaches the worker.
func (s *ExecutionService) Execute(ctx context.Context, category, nodeID string) error {
	node, err := s.catalog.Node(ctx, category, nodeID)
	if err != nil {
		return err
	}
	if !node.Executable() {
		return fmt.Errorf("node %q is a directory: %w", node.Name, domain.ErrNotExecutable)
	}

	return s.submit(domain.ExecutionRequest{
		ID:          uuid.New().String(),
		Category:    category,
		NodeID:      node.ID,
		Name:        node.Name,
		Command:     node.Command,
		SubmittedAt: time.Now(),
	})
}

// ExecuteSelected submits one request per selected node in
// submission-stable order, then clears the selection.
func (s *ExecutionService) ExecuteSelected(ctx context.Context) (int, error) {
	category := s.browser.CurrentCategory()
	members := s.browser.Selection()

	submitted := 0
	for _, id := range members {
		if err := s.Execute(ctx, category, id); err != nil {
			return submitted, fmt.Errorf("submitting %q: %w", id, err)
		}
		submitted++
	}

	s.browser.ClearSelection()
	return submitted, nil
}

// PollResult returns the next completed result, or nil if none is
// ready. It never blocks.
func (s *ExecutionService) PollResult() *domain.ExecutionResult {
	select {
	case result := <-s.results:
		return &result
	default:
		return nil
	}
}

// Executing reports whether at least one request is outstanding.
// It stays true until every submitted request has finished, not just
// the first of a batch.
func (s *ExecutionService) Executing() bool {
	return s.Pending() > 0
}

// Pending returns the number of outstanding requests.
func (s *ExecutionService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// submit enqueues a validated request without blocking.
func (s *ExecutionService) submit(req domain.ExecutionRequest) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return domain.ErrNotRunning
	}
	s.pending++
	s.mu.Unlock()

	select {
	case s.requests <- req:
		logger.Debug("Queued execution of %q (request %s)", req.Name, req.ID)
		return nil
	default:
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
		return fmt.Errorf("execution queue is full (%d requests)", requestQueueCap)
	}
}

// worker is the single consumer of the request channel. Requests
// execute strictly one at a time, in submission order.
func (s *ExecutionService) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopCh:
			return
		case req := <-s.requests:
			result := s.execute(req)
			s.record(result)

			select {
			case s.results <- result:
			case <-s.stopCh:
				return
			}

			// Decrement only after the result is on the channel: once a
			// poller observes Pending() == 0, every result is pollable.
			s.mu.Lock()
			s.pending--
			s.mu.Unlock()
		}
	}
}

// execute runs one request and composes its result. Spawn failures are
// captured as failed results, never propagated as errors.
func (s *ExecutionService) execute(req domain.ExecutionRequest) domain.ExecutionResult {
	logger.Info("Executing %q", req.Name)

	result := domain.ExecutionResult{
		RequestID: req.ID,
		NodeID:    req.NodeID,
		Name:      req.Name,
		StartedAt: time.Now(),
	}

	// No cancellation and no timeout: a hung process hangs the queue
	// behind it.
	out, err := s.runner.Run(context.Background(), req.Command)
	result.FinishedAt = time.Now()

	if err != nil {
		result.Success = false
		result.Output = fmt.Sprintf("Failed to execute command: %v", err)
		result.Error = err.Error()
		return result
	}

	result.Success = out.Success
	result.ExitCode = out.ExitCode
	result.Output = composeOutput(out)
	if !out.Success {
		result.Error = out.Stderr
	}
	return result
}

// record stores the result in history, best effort.
func (s *ExecutionService) record(result domain.ExecutionResult) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(context.Background(), result); err != nil {
		logger.Warn("Failed to record execution result: %v", err)
	}
}

// composeOutput applies the display rule: standard output if non-empty,
// else standard error if non-empty, else the fixed placeholder.
func composeOutput(out driven.RunOutput) string {
	switch {
	case out.Stdout != "":
		return out.Stdout
	case out.Stderr != "":
		return out.Stderr
	default:
		return domain.SuccessPlaceholder
	}
}
