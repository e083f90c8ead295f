// Package suite loads, resolves and validates the check-suite definition.
package suite

import (
	"fmt"
	"os"

	"github.com/prgate/prgate/schema"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the suite document omits optional global fields.
const (
	DefaultMaxParallelJobs = 4
	DefaultMaxTestTimeout  = 30 // minutes
	DefaultTimeoutMinutes  = 10
	DefaultMaxRetries      = 2
	DefaultRetryDelay      = 5 // seconds
)

// Load reads and parses a check-suite definition from the given path.
// Structural YAML faults surface as ConfigError{MalformedSyntax}; a check
// lacking id, enforcement or (for soft) weight surfaces as
// ConfigError{MissingRequiredField}; repeated ids surface as
// ConfigError{DuplicateID}.
func Load(path string) (*schema.SuiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and checks a suite document held in memory.
func Parse(data []byte) (*schema.SuiteConfig, error) {
	cfg := &schema.SuiteConfig{
		GlobalConfig: schema.GlobalConfig{
			MaxParallelJobs: DefaultMaxParallelJobs,
			MaxTestTimeout:  DefaultMaxTestTimeout,
			Retry: schema.SuiteRetry{
				MaxRetries:   DefaultMaxRetries,
				DelaySeconds: DefaultRetryDelay,
			},
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &schema.ConfigError{Kind: schema.MalformedSyntax, Detail: "invalid suite document", Err: err}
	}

	if err := checkRequiredFields(cfg); err != nil {
		return nil, err
	}
	if err := checkThresholds(&cfg.GlobalConfig); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkRequiredFields enforces per-check required fields and id uniqueness.
func checkRequiredFields(cfg *schema.SuiteConfig) error {
	seen := map[string]bool{}
	for i, check := range cfg.TestSuite {
		if err := checkRequiredCheckFields(check, fmt.Sprintf("test_suite[%d]", i)); err != nil {
			return err
		}
		if seen[check.ID] {
			return schema.NewConfigError(schema.DuplicateID, "check id %q appears more than once", check.ID)
		}
		seen[check.ID] = true
	}

	// Additions must satisfy the same field contract; duplicate detection
	// against the base suite happens at resolution time, when we know which
	// environments apply.
	for tag, override := range cfg.EnvironmentOverrides {
		for i, check := range override.TestSuiteAdditions {
			where := fmt.Sprintf("environment_overrides.%s.test_suite_additions[%d]", tag, i)
			if err := checkRequiredCheckFields(check, where); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkRequiredCheckFields validates a single suite entry.
func checkRequiredCheckFields(check schema.SuiteCheck, where string) error {
	if check.ID == "" {
		return schema.NewConfigError(schema.MissingRequiredField, "%s is missing required field: id", where)
	}
	if check.Enforcement == "" {
		return schema.NewConfigError(schema.MissingRequiredField, "check %q is missing required field: enforcement", check.ID)
	}
	if !schema.Enforcement(check.Enforcement).Valid() {
		return schema.NewConfigError(schema.MalformedSyntax, "check %q has invalid enforcement %q: must be hard or soft", check.ID, check.Enforcement)
	}
	if check.ActionPath == "" {
		return schema.NewConfigError(schema.MissingRequiredField, "check %q is missing required field: action_path", check.ID)
	}
	if schema.Enforcement(check.Enforcement) == schema.SoftEnforcement {
		if check.Weight == nil {
			return schema.NewConfigError(schema.MissingRequiredField, "soft check %q is missing required field: weight", check.ID)
		}
		if *check.Weight < 0 || *check.Weight > 100 {
			return schema.NewConfigError(schema.MalformedSyntax, "soft check %q has invalid weight %d: must be 0-100", check.ID, *check.Weight)
		}
	}
	if check.TimeoutMinutes < 0 {
		return schema.NewConfigError(schema.MalformedSyntax, "check %q has negative timeout_minutes", check.ID)
	}
	return nil
}

// checkThresholds enforces the auto_merge > manual_review >= 0 invariant.
func checkThresholds(gc *schema.GlobalConfig) error {
	if gc.ManualReviewThreshold < 0 {
		return schema.NewConfigError(schema.MalformedSyntax, "manual_review_threshold must be >= 0, got %d", gc.ManualReviewThreshold)
	}
	if gc.AutoMergeThreshold <= gc.ManualReviewThreshold {
		return schema.NewConfigError(schema.MalformedSyntax,
			"auto_merge_threshold (%d) must be greater than manual_review_threshold (%d)",
			gc.AutoMergeThreshold, gc.ManualReviewThreshold)
	}
	return nil
}
