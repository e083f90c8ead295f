package outwriter

import (
	"bytes"
	"testing"

	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMaxTableDetailWidth(t *testing.T) {
	// Narrow terminal clamps to the minimum
	assert.Equal(t, 15, getMaxTableDetailWidth(&contract.Config{Width: 60}))

	// Wide terminal clamps to the maximum
	assert.Equal(t, 60, getMaxTableDetailWidth(&contract.Config{Width: 300}))

	// In between: width minus the fixed columns
	assert.Equal(t, 50, getMaxTableDetailWidth(&contract.Config{Width: 120}))
}

func TestWritePlanTable(t *testing.T) {
	eff := &schema.EffectiveConfig{
		Thresholds:      schema.ThresholdConfig{AutoMergeThreshold: 85, ManualReviewThreshold: 60},
		MaxParallelJobs: 4,
		Retry:           schema.RetryConfig{Enabled: true, MaxRetries: 2, DelaySeconds: 5},
		Checks: []schema.CheckDefinition{
			{ID: "build", Name: "Build", Enforcement: schema.HardEnforcement, TimeoutMinutes: 5, Enabled: true},
			{ID: "coverage", Name: "Coverage", Enforcement: schema.SoftEnforcement, Weight: 100, TimeoutMinutes: 10, Enabled: true},
		},
		Dependencies: []schema.DependencyEdge{{Prerequisite: "build", Dependent: "coverage"}},
	}
	cfg := &contract.Config{Environments: []string{"staging"}}

	var buf bytes.Buffer
	require.NoError(t, writePlanTable(eff, cfg, &buf))

	out := buf.String()
	assert.Contains(t, out, "build")
	assert.Contains(t, out, "Coverage")
	assert.Contains(t, out, "Thresholds: auto-merge >= 85, manual review >= 60")
	assert.Contains(t, out, "Max parallel jobs: 4")
	assert.Contains(t, out, "Retry: up to 2 retries, 5s apart")
	assert.Contains(t, out, "Dependency: build before coverage")
	assert.Contains(t, out, "Environments: [staging]")
}

func TestWritePlanTableRetryDisabled(t *testing.T) {
	eff := &schema.EffectiveConfig{
		Thresholds:      schema.ThresholdConfig{AutoMergeThreshold: 85, ManualReviewThreshold: 60},
		MaxParallelJobs: 4,
	}

	var buf bytes.Buffer
	require.NoError(t, writePlanTable(eff, &contract.Config{}, &buf))
	assert.NotContains(t, buf.String(), "Retry:")
}
