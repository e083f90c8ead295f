package core

import (
	"context"
	"sync"
	"testing"

	"github.com/prgate/prgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderedExecutor records the dispatch order of check ids.
type orderedExecutor struct {
	mu    sync.Mutex
	order []string
}

func (o *orderedExecutor) Execute(_ context.Context, def schema.CheckDefinition, _ schema.PRContext) (schema.ActionOutcome, error) {
	o.mu.Lock()
	o.order = append(o.order, def.ID)
	o.mu.Unlock()
	score := 100
	return schema.ActionOutcome{Result: "pass", Score: &score}, nil
}

func (o *orderedExecutor) indexOf(id string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, seen := range o.order {
		if seen == id {
			return i
		}
	}
	return -1
}

func engineConfig(deps []schema.DependencyEdge) *schema.EffectiveConfig {
	return &schema.EffectiveConfig{
		Thresholds: schema.ThresholdConfig{AutoMergeThreshold: 85, ManualReviewThreshold: 60},
		Checks: []schema.CheckDefinition{
			{ID: "build", Enforcement: schema.HardEnforcement, TimeoutMinutes: 1, Enabled: true},
			{ID: "coverage", Enforcement: schema.SoftEnforcement, Weight: 60, TimeoutMinutes: 1, Enabled: true},
			{ID: "lint", Enforcement: schema.SoftEnforcement, Weight: 40, TimeoutMinutes: 1, Enabled: true},
		},
		Dependencies: deps,
	}
}

func TestEngineRunsAllChecks(t *testing.T) {
	exec := &orderedExecutor{}
	engine := NewEngine(NewRunner(exec, schema.RetryConfig{}), 4)

	outcome, err := engine.Execute(context.Background(), engineConfig(nil), schema.PRContext{})
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Len(t, outcome.Results, 3)
	assert.True(t, outcome.HardChecksPassed)
	assert.Equal(t, schema.AutoMerge, outcome.Decision)
	assert.False(t, outcome.FinishedAt.Before(outcome.StartedAt))
}

func TestEngineHonorsDependencyOrder(t *testing.T) {
	deps := []schema.DependencyEdge{
		{Prerequisite: "build", Dependent: "coverage"},
		{Prerequisite: "build", Dependent: "lint"},
	}
	exec := &orderedExecutor{}
	engine := NewEngine(NewRunner(exec, schema.RetryConfig{}), 4)

	_, err := engine.Execute(context.Background(), engineConfig(deps), schema.PRContext{})
	require.NoError(t, err)

	buildAt := exec.indexOf("build")
	require.GreaterOrEqual(t, buildAt, 0)
	assert.Less(t, buildAt, exec.indexOf("coverage"))
	assert.Less(t, buildAt, exec.indexOf("lint"))
}

func TestEngineSingleWorkerIsSequential(t *testing.T) {
	exec := &orderedExecutor{}
	engine := NewEngine(NewRunner(exec, schema.RetryConfig{}), 1)

	outcome, err := engine.Execute(context.Background(), engineConfig(nil), schema.PRContext{})
	require.NoError(t, err)
	assert.Len(t, outcome.Results, 3)
	assert.Len(t, exec.order, 3)
}

func TestEngineRejectsZeroWorkers(t *testing.T) {
	engine := NewEngine(NewRunner(&orderedExecutor{}, schema.RetryConfig{}), 0)

	outcome, err := engine.Execute(context.Background(), engineConfig(nil), schema.PRContext{})
	assert.Nil(t, outcome)

	var engineErr *schema.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Contains(t, engineErr.Detail, "worker pool")
}

func TestEngineRejectsDependencyCycle(t *testing.T) {
	deps := []schema.DependencyEdge{
		{Prerequisite: "build", Dependent: "coverage"},
		{Prerequisite: "coverage", Dependent: "lint"},
		{Prerequisite: "lint", Dependent: "build"},
	}
	engine := NewEngine(NewRunner(&orderedExecutor{}, schema.RetryConfig{}), 4)

	outcome, err := engine.Execute(context.Background(), engineConfig(deps), schema.PRContext{})
	assert.Nil(t, outcome)

	var engineErr *schema.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Contains(t, engineErr.Detail, "cycle")
}

func TestEngineDisabledChecksAreInert(t *testing.T) {
	eff := engineConfig([]schema.DependencyEdge{{Prerequisite: "deploy", Dependent: "coverage"}})
	eff.Checks = append(eff.Checks, schema.CheckDefinition{
		ID: "deploy", Enforcement: schema.HardEnforcement, TimeoutMinutes: 1, Enabled: false,
	})
	exec := &orderedExecutor{}
	engine := NewEngine(NewRunner(exec, schema.RetryConfig{}), 4)

	outcome, err := engine.Execute(context.Background(), eff, schema.PRContext{})
	require.NoError(t, err)

	// The disabled prerequisite neither runs nor delays its dependent.
	assert.Len(t, outcome.Results, 3)
	assert.Equal(t, -1, exec.indexOf("deploy"))
	assert.GreaterOrEqual(t, exec.indexOf("coverage"), 0)
}

func TestEngineEmptyPlan(t *testing.T) {
	eff := &schema.EffectiveConfig{
		Thresholds: schema.ThresholdConfig{AutoMergeThreshold: 85, ManualReviewThreshold: 60},
	}
	engine := NewEngine(NewRunner(&orderedExecutor{}, schema.RetryConfig{}), 4)

	outcome, err := engine.Execute(context.Background(), eff, schema.PRContext{})
	require.NoError(t, err)
	assert.Empty(t, outcome.Results)
	assert.True(t, outcome.HardChecksPassed)
	assert.Equal(t, schema.Blocked, outcome.Decision)
}
