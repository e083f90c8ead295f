package core

import (
	"context"
	"sync"
	"time"

	"github.com/prgate/prgate/schema"
)

// Engine drives all check executions for one run to completion and produces
// the terminal RunOutcome. Checks run on a bounded worker pool; a check is
// dispatched once every prerequisite in the execution graph has reached a
// terminal state. Prerequisite failure delays dependents, it never skips
// them.
type Engine struct {
	runner  *Runner
	workers int
}

// NewEngine creates an engine with the given worker-pool size.
func NewEngine(runner *Runner, workers int) *Engine {
	return &Engine{runner: runner, workers: workers}
}

// Execute runs every enabled check of the effective plan and scores the
// result set. It always reaches a terminal RunOutcome unless the scheduling
// substrate itself is unusable, in which case it fails atomically with an
// EngineError and no partial outcome.
func (e *Engine) Execute(ctx context.Context, eff *schema.EffectiveConfig, pr schema.PRContext) (*schema.RunOutcome, error) {
	if e.workers < 1 {
		return nil, &schema.EngineError{Detail: "worker pool size must be at least 1"}
	}

	plan, err := buildPlan(eff)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	results := e.runPlan(ctx, plan, pr)

	outcome := scoreRun(eff, results)
	outcome.Results = results
	outcome.StartedAt = startedAt
	outcome.FinishedAt = time.Now()
	return outcome, nil
}

// runPlan schedules all checks of the plan and collects their results in
// completion order. Each result slot is written by exactly one producer and
// funneled through a single collector channel, so no locking is needed for
// aggregation; the ready channel is the only shared mutable structure.
func (e *Engine) runPlan(ctx context.Context, plan *executionPlan, pr schema.PRContext) []schema.CheckResult {
	total := plan.size()
	if total == 0 {
		return []schema.CheckResult{}
	}

	// Buffers sized to the plan so neither dispatch nor collection blocks.
	readyCh := make(chan schema.CheckDefinition, total)
	resultCh := make(chan schema.CheckResult, total)

	var wg sync.WaitGroup
	for range min(e.workers, total) {
		wg.Go(func() {
			for def := range readyCh {
				resultCh <- e.runner.Run(ctx, def, pr)
			}
		})
	}

	// Seed the checks with no prerequisites, in declaration order.
	remaining := make(map[string]int, total)
	for id, n := range plan.prereqs {
		remaining[id] = n
	}
	for _, id := range plan.order {
		if remaining[id] == 0 {
			readyCh <- plan.checks[id]
		}
	}

	// Collect completions and release dependents whose prerequisite counts
	// hit zero. The plan is acyclic, so every check is eventually released.
	results := make([]schema.CheckResult, 0, total)
	for len(results) < total {
		result := <-resultCh
		results = append(results, result)
		for _, dep := range plan.dependents[result.CheckID] {
			remaining[dep]--
			if remaining[dep] == 0 {
				readyCh <- plan.checks[dep]
			}
		}
	}

	close(readyCh)
	wg.Wait()
	return results
}
