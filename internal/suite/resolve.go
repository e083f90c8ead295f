package suite

import (
	"fmt"

	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/schema"
)

// ResolveForEnvironment applies environment overrides to the loaded suite and
// produces the effective check plan for one run. Per tag, application order is
// global_config overrides, then per-check overrides, then additions. Later
// tags win over earlier ones, field by field. A sequential-dependency edge
// referencing an id that exists nowhere in the resolved suite is fatal
// (ConfigError{UnknownDependency}); an edge touching a disabled check is
// inert, not an error.
func ResolveForEnvironment(cfg *schema.SuiteConfig, environmentTags []string) (*schema.EffectiveConfig, error) {
	global := cfg.GlobalConfig
	retry := cfg.GlobalConfig.Retry

	// Working copies of the suite entries, keyed by id for override matching
	// but kept in declaration order.
	checks := make([]schema.SuiteCheck, len(cfg.TestSuite))
	copy(checks, cfg.TestSuite)
	index := map[string]int{}
	for i, c := range checks {
		index[c.ID] = i
	}

	var applied []string
	for _, tag := range environmentTags {
		override, ok := cfg.EnvironmentOverrides[tag]
		if !ok {
			continue
		}
		applied = append(applied, tag)

		if override.GlobalConfig != nil {
			applyGlobalOverride(&global, &retry, override.GlobalConfig)
		}
		for id, co := range override.TestSuiteOverrides {
			i, ok := index[id]
			if !ok {
				// Validate reports this as a warning; unknown override
				// targets never fail a run.
				continue
			}
			applyCheckOverride(&checks[i], co)
		}
		for _, addition := range override.TestSuiteAdditions {
			if i, ok := index[addition.ID]; ok {
				// An addition reusing an existing id replaces the entry
				// wholesale: additions are full definitions, not patches.
				checks[i] = addition
				continue
			}
			index[addition.ID] = len(checks)
			checks = append(checks, addition)
		}
	}

	// Overrides can reintroduce any fault Load rejects: inverted thresholds,
	// an out-of-bounds weight, an invalid enforcement, a negative timeout.
	// The merged document must satisfy the same contract as the base one.
	if err := checkThresholds(&global); err != nil {
		return nil, err
	}
	for i, c := range checks {
		if err := checkRequiredCheckFields(c, fmt.Sprintf("resolved test_suite[%d]", i)); err != nil {
			return nil, err
		}
	}

	eff := &schema.EffectiveConfig{
		Thresholds: schema.ThresholdConfig{
			AutoMergeThreshold:    global.AutoMergeThreshold,
			ManualReviewThreshold: global.ManualReviewThreshold,
		},
		MaxParallelJobs: global.MaxParallelJobs,
		Retry: schema.RetryConfig{
			Enabled:      retry.Enabled,
			MaxRetries:   retry.MaxRetries,
			DelaySeconds: retry.DelaySeconds,
		},
		ParallelGroups: cfg.ExecutionConfig.ParallelGroups,
		Dependencies:   cfg.ExecutionConfig.SequentialDependencies,
		Environments:   applied,
	}

	for _, c := range checks {
		eff.Checks = append(eff.Checks, materializeCheck(c, global.MaxTestTimeout))
	}

	if err := checkDependencyIDs(eff); err != nil {
		return nil, err
	}
	return eff, nil
}

// materializeCheck converts a raw suite entry into an immutable definition,
// applying defaults and the max_test_timeout clamp.
func materializeCheck(c schema.SuiteCheck, maxTimeout int) schema.CheckDefinition {
	timeout := c.TimeoutMinutes
	if timeout == 0 {
		timeout = DefaultTimeoutMinutes
	}
	if maxTimeout > 0 && timeout > maxTimeout {
		timeout = maxTimeout
	}

	weight := 0
	if schema.Enforcement(c.Enforcement) == schema.SoftEnforcement && c.Weight != nil {
		weight = *c.Weight
	}

	name := c.Name
	if name == "" {
		name = c.ID
	}

	return schema.CheckDefinition{
		ID:             c.ID,
		Name:           name,
		Description:    c.Description,
		Enforcement:    schema.Enforcement(c.Enforcement),
		Weight:         weight,
		ActionPath:     c.ActionPath,
		TimeoutMinutes: timeout,
		Inputs:         contract.MergeInputs(c.Inputs, nil),
		Enabled:        c.IsEnabled(),
	}
}

// applyGlobalOverride overlays the non-nil fields of a global override.
func applyGlobalOverride(global *schema.GlobalConfig, retry *schema.SuiteRetry, o *schema.GlobalOverride) {
	if o.AutoMergeThreshold != nil {
		global.AutoMergeThreshold = *o.AutoMergeThreshold
	}
	if o.ManualReviewThreshold != nil {
		global.ManualReviewThreshold = *o.ManualReviewThreshold
	}
	if o.BlockThreshold != nil {
		global.BlockThreshold = *o.BlockThreshold
	}
	if o.MaxParallelJobs != nil {
		global.MaxParallelJobs = *o.MaxParallelJobs
	}
	if o.MaxTestTimeout != nil {
		global.MaxTestTimeout = *o.MaxTestTimeout
	}
	if o.Retry != nil {
		if o.Retry.Enabled != nil {
			retry.Enabled = *o.Retry.Enabled
		}
		if o.Retry.MaxRetries != nil {
			retry.MaxRetries = *o.Retry.MaxRetries
		}
		if o.Retry.DelaySeconds != nil {
			retry.DelaySeconds = *o.Retry.DelaySeconds
		}
	}
}

// applyCheckOverride overlays the non-nil fields of a per-check override.
// Overriding only weight leaves all other fields untouched.
func applyCheckOverride(check *schema.SuiteCheck, o schema.CheckOverride) {
	if o.Name != nil {
		check.Name = *o.Name
	}
	if o.Description != nil {
		check.Description = *o.Description
	}
	if o.Enforcement != nil {
		check.Enforcement = *o.Enforcement
	}
	if o.Weight != nil {
		check.Weight = o.Weight
	}
	if o.ActionPath != nil {
		check.ActionPath = *o.ActionPath
	}
	if o.TimeoutMinutes != nil {
		check.TimeoutMinutes = *o.TimeoutMinutes
	}
	if o.Inputs != nil {
		check.Inputs = contract.MergeInputs(check.Inputs, o.Inputs)
	}
	if o.Enabled != nil {
		check.Enabled = o.Enabled
	}
}

// checkDependencyIDs rejects edges that reference ids absent from the
// resolved suite. Edges touching disabled checks are left in place; the
// planner treats them as inert.
func checkDependencyIDs(eff *schema.EffectiveConfig) error {
	known := map[string]bool{}
	for _, c := range eff.Checks {
		known[c.ID] = true
	}
	for _, edge := range eff.Dependencies {
		if !known[edge.Prerequisite] {
			return schema.NewConfigError(schema.UnknownDependency,
				"sequential dependency references unknown check id %q", edge.Prerequisite)
		}
		if !known[edge.Dependent] {
			return schema.NewConfigError(schema.UnknownDependency,
				"sequential dependency references unknown check id %q", edge.Dependent)
		}
	}
	return nil
}
