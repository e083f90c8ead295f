package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/schema"
)

// Runner executes exactly one check definition and always returns a terminal
// CheckResult. Faults inside the executor are caught here and converted to
// typed statuses; nothing escapes to the orchestrator as an error or panic.
type Runner struct {
	executor contract.CheckExecutor
	retry    schema.RetryConfig
}

// NewRunner creates a runner around the given execution boundary.
func NewRunner(executor contract.CheckExecutor, retry schema.RetryConfig) *Runner {
	return &Runner{executor: executor, retry: retry}
}

// Run executes the check, enforcing its timeout and the retry policy.
// Retries apply to Error and TimedOut only; a clean Pass or Fail is a
// legitimate result and stops retrying immediately.
func (r *Runner) Run(ctx context.Context, def schema.CheckDefinition, pr schema.PRContext) schema.CheckResult {
	maxAttempts := 1
	if r.retry.Enabled && r.retry.MaxRetries > 0 {
		maxAttempts = 1 + r.retry.MaxRetries
	}

	startedAt := time.Now()
	var result schema.CheckResult
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result = r.runOnce(ctx, def, pr)
		result.Attempts = attempt
		if !result.Status.Transient() {
			break
		}
		if attempt < maxAttempts {
			select {
			case <-time.After(r.retry.Delay()):
			case <-ctx.Done():
				attempt = maxAttempts // run-level cancellation: keep the last result
			}
		}
	}
	result.StartedAt = startedAt
	result.FinishedAt = time.Now()
	return result
}

// runOnce performs a single bounded execution attempt.
func (r *Runner) runOnce(ctx context.Context, def schema.CheckDefinition, pr schema.PRContext) (result schema.CheckResult) {
	result = schema.CheckResult{CheckID: def.ID}

	// The executor is opaque third-party territory; a panic there must not
	// take down the orchestration.
	defer func() {
		if rec := recover(); rec != nil {
			result.Status = schema.StatusError
			result.Detail = fmt.Sprintf("check panicked: %v", rec)
			result.ScoreValid = false
		}
	}()

	execCtx, cancel := context.WithTimeout(ctx, def.Timeout())
	defer cancel()

	outcome, err := r.executor.Execute(execCtx, def, pr)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			result.Status = schema.StatusTimedOut
			result.Detail = fmt.Sprintf("timed out after %d minute(s)", def.TimeoutMinutes)
			return result
		}
		result.Status = schema.StatusError
		result.Detail = err.Error()
		return result
	}

	return r.normalize(def, outcome)
}

// normalize maps a raw action outcome onto the typed result contract.
func (r *Runner) normalize(def schema.CheckDefinition, outcome schema.ActionOutcome) schema.CheckResult {
	result := schema.CheckResult{CheckID: def.ID, Extra: outcome.Extra}

	switch outcome.Result {
	case "pass":
		result.Status = schema.StatusPass
	case "fail":
		result.Status = schema.StatusFail
	case "skipped", "skip":
		result.Status = schema.StatusSkipped
		return result
	default:
		result.Status = schema.StatusError
		result.Detail = fmt.Sprintf("action reported unknown result %q", outcome.Result)
		return result
	}

	if def.Enforcement == schema.SoftEnforcement {
		if outcome.Score == nil {
			// A soft check without a score cannot contribute to the
			// aggregate; treat the missing field as a fault, not a zero.
			result.Status = schema.StatusError
			result.Detail = "soft check did not report a score"
			return result
		}
		result.Score = *outcome.Score
		result.ScoreValid = true
	}

	if detail, ok := outcome.Extra["detail"].(string); ok {
		result.Detail = detail
	}
	return result
}
