package schema

import "time"

// Report is the externally consumable rendering of a RunOutcome. It is a
// pure function of the outcome and the effective config; posting, status
// checks and notification delivery belong to external collaborators.
type Report struct {
	OverallResult    Decision      `json:"overall_result"`
	OverallScore     *int          `json:"overall_score"` // nil when hard checks failed
	HardChecksPassed bool          `json:"hard_checks_passed"`
	DecisionReason   string        `json:"decision_reason"`
	Environments     []string      `json:"environments,omitempty"`
	PR               PRContext     `json:"pr"`
	Checks           []ReportEntry `json:"checks"` // completion order
	Summary          ReportSummary `json:"summary"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       time.Time     `json:"finished_at"`
}

// ReportEntry is one per-check line of the report.
type ReportEntry struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Enforcement  Enforcement `json:"enforcement"`
	Status       CheckStatus `json:"status"`
	Score        *int        `json:"score"` // nil for hard checks and unscored statuses
	Weight       int         `json:"weight"`
	Contribution int         `json:"contribution"` // score*weight/100 term, soft checks only
	Detail       string      `json:"detail,omitempty"`
	Attempts     int         `json:"attempts"`
	StartedAt    time.Time   `json:"started_at"`
	FinishedAt   time.Time   `json:"finished_at"`
	DurationMs   int64       `json:"duration_ms"`
}

// ReportSummary holds per-status counts over all enabled checks.
type ReportSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Errored  int `json:"errored"`
	TimedOut int `json:"timed_out"`
	Skipped  int `json:"skipped"`
}

// RunRecord is one row of the run-history store.
type RunRecord struct {
	RunID            int64
	StartedAt        time.Time
	FinishedAt       *time.Time
	Decision         Decision
	WeightedScore    *int
	HardChecksPassed bool
	PRNumber         int
	BaseRef          string
	HeadRef          string
	Environments     string // comma-joined tags
	TotalChecks      int
}

// HistoryCheckRecord is one per-check row of the run-history store.
type HistoryCheckRecord struct {
	RunID      int64
	CheckID    string
	Status     CheckStatus
	Score      *int
	Detail     string
	Attempts   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// HistoryStatus summarizes the state of the run-history store.
type HistoryStatus struct {
	Backend     DatabaseBackend
	Connected   bool
	TotalRuns   int64
	LastRunID   int64
	LastRunTime time.Time
	TableSizes  map[string]int64
}
