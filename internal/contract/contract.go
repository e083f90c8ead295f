// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/prgate/prgate/schema"
)

// CheckExecutor defines the execution boundary for a single external check.
// The engine provides the definition's inputs and a timeout budget via the
// context; it expects back a raw outcome conforming to the action contract.
// This allows the orchestration logic to be tested without spawning processes.
type CheckExecutor interface {
	// Execute runs the external action identified by def.ActionPath against
	// the given PR context. The context carries the per-check timeout.
	Execute(ctx context.Context, def schema.CheckDefinition, pr schema.PRContext) (schema.ActionOutcome, error)
}

// HistoryStore defines the interface for tracking validation runs.
// This allows the history layer to be mocked for testing.
type HistoryStore interface {
	// BeginRun creates a new run record and returns its unique ID.
	BeginRun(startTime time.Time, pr schema.PRContext, environments []string) (int64, error)

	// RecordCheckResult stores one terminal check result for a run.
	RecordCheckResult(runID int64, result schema.CheckResult) error

	// CompleteRun updates the run record with the final outcome.
	CompleteRun(runID int64, outcome *schema.RunOutcome) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetAllRuns returns every run record, for export.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllCheckRecords returns every per-check row, for export.
	GetAllCheckRecords() ([]schema.HistoryCheckRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// HistoryManager defines the interface for accessing the history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}
