// Package schema has configs, models and shared types for all parts of prgate.
package schema

import "time"

// CheckDefinition describes one configured check. Definitions are constructed
// from the suite configuration at orchestration start and are immutable for
// the duration of a run.
type CheckDefinition struct {
	ID             string            // Unique identifier, stable across runs
	Name           string            // Human-readable label
	Description    string            // Optional free-form description
	Enforcement    Enforcement       // Hard gate or soft scoring contributor
	Weight         int               // 0-100, meaningful only for soft checks
	ActionPath     string            // External executable unit implementing the check
	TimeoutMinutes int               // Execution budget, clamped by max_test_timeout
	Inputs         map[string]string // Opaque key-value configuration passed through
	Enabled        bool              // Disabled checks are excluded entirely
}

// Timeout returns the execution budget as a duration.
func (d CheckDefinition) Timeout() time.Duration {
	return time.Duration(d.TimeoutMinutes) * time.Minute
}

// CheckResult is the normalized outcome of executing one check. Results are
// created by the runner, owned by the orchestrator, and never mutated.
type CheckResult struct {
	CheckID    string         // Lookup key back to the CheckDefinition
	Status     CheckStatus    // Terminal status of the execution
	Score      int            // 0-100, valid only when ScoreValid is true
	ScoreValid bool           // Distinguishes a recorded 0 from no score at all
	Detail     string         // Free-form diagnostic text
	Extra      map[string]any // Check-specific fields, never inspected by scoring
	Attempts   int            // Number of execution attempts, >= 1
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns the wall time the check took across all attempts.
func (r CheckResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunOutcome is the singleton result of one full orchestration pass.
// Results are in completion order, not declaration order.
type RunOutcome struct {
	HardChecksPassed bool
	WeightedScore    int  // Meaningful only when ScoreComputed is true
	ScoreComputed    bool // False when hard checks failed; 0 and "not computed" are distinct
	Decision         Decision
	DecisionReason   string
	Results          []CheckResult
	StartedAt        time.Time
	FinishedAt       time.Time
}

// ActionOutcome is the raw result reported by an external check action.
// The engine interprets only Result and Score; everything else lands in Extra.
type ActionOutcome struct {
	Result string         // "pass", "fail" or "skipped"
	Score  *int           // 0-100, required for soft checks
	Extra  map[string]any // Free-form fields passed through to the result
}

// PRContext identifies the pull request under validation. The engine treats
// it as opaque and passes it through to the external check implementations.
type PRContext struct {
	RepoPath string `json:"repo_path"`
	BaseRef  string `json:"base_ref"`
	HeadRef  string `json:"head_ref"`
	PRNumber int    `json:"pr_number"`
}

// ThresholdConfig holds the score boundaries for the merge decision.
// Invariant: AutoMergeThreshold > ManualReviewThreshold >= 0. Scores below
// ManualReviewThreshold imply Blocked; no separate block threshold is
// authoritative.
type ThresholdConfig struct {
	AutoMergeThreshold    int
	ManualReviewThreshold int
}

// RetryConfig controls runner retries for transient faults.
type RetryConfig struct {
	Enabled      bool
	MaxRetries   int
	DelaySeconds int
}

// Delay returns the fixed pause between retry attempts.
func (r RetryConfig) Delay() time.Duration {
	return time.Duration(r.DelaySeconds) * time.Second
}

// DependencyEdge is an ordering hint: the dependent must not start until the
// prerequisite has reached a terminal state. A failed prerequisite does not
// skip its dependents.
type DependencyEdge struct {
	Prerequisite string `yaml:"prerequisite"`
	Dependent    string `yaml:"dependent"`
}

// EffectiveConfig is the fully resolved check plan for one run: suite
// definition plus environment overrides, validated and clamped.
type EffectiveConfig struct {
	Thresholds      ThresholdConfig
	MaxParallelJobs int
	Retry           RetryConfig
	Checks          []CheckDefinition
	ParallelGroups  [][]string
	Dependencies    []DependencyEdge
	Environments    []string // Tags whose overrides were applied, in order
}

// CheckByID returns the definition for the given id.
func (e *EffectiveConfig) CheckByID(id string) (CheckDefinition, bool) {
	for _, c := range e.Checks {
		if c.ID == id {
			return c, true
		}
	}
	return CheckDefinition{}, false
}

// EnabledChecks returns the checks that participate in the run.
func (e *EffectiveConfig) EnabledChecks() []CheckDefinition {
	enabled := make([]CheckDefinition, 0, len(e.Checks))
	for _, c := range e.Checks {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	return enabled
}
