package schema

// SuiteConfig is the top-level check-suite definition document, loaded from
// YAML once per run. Override fields use pointers so that an environment
// override replaces only the fields it names (last-write-wins per field).
type SuiteConfig struct {
	GlobalConfig         GlobalConfig                   `yaml:"global_config"`
	TestSuite            []SuiteCheck                   `yaml:"test_suite"`
	ExecutionConfig      ExecutionConfig                `yaml:"execution_config"`
	EnvironmentOverrides map[string]EnvironmentOverride `yaml:"environment_overrides"`
}

// GlobalConfig holds suite-wide thresholds and execution limits.
type GlobalConfig struct {
	AutoMergeThreshold    int        `yaml:"auto_merge_threshold"`
	ManualReviewThreshold int        `yaml:"manual_review_threshold"`
	BlockThreshold        int        `yaml:"block_threshold"` // documentation only, never authoritative
	MaxParallelJobs       int        `yaml:"max_parallel_jobs"`
	MaxTestTimeout        int        `yaml:"max_test_timeout"` // ceiling for timeout_minutes, in minutes
	Retry                 SuiteRetry `yaml:"retry"`
}

// SuiteRetry is the retry policy section of global_config.
type SuiteRetry struct {
	Enabled      bool `yaml:"enabled"`
	MaxRetries   int  `yaml:"max_retries"`
	DelaySeconds int  `yaml:"delay_seconds"`
}

// SuiteCheck is one entry of the test_suite array before resolution.
type SuiteCheck struct {
	ID             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Enforcement    string            `yaml:"enforcement"`
	Weight         *int              `yaml:"weight"`
	ActionPath     string            `yaml:"action_path"`
	TimeoutMinutes int               `yaml:"timeout_minutes"`
	Inputs         map[string]string `yaml:"inputs"`
	Enabled        *bool             `yaml:"enabled"` // nil means enabled
}

// ExecutionConfig carries concurrency hints and ordering edges.
type ExecutionConfig struct {
	ParallelGroups         [][]string       `yaml:"parallel_groups"`
	SequentialDependencies []DependencyEdge `yaml:"sequential_dependencies"`
}

// EnvironmentOverride is the override block for one environment tag.
// Application order: global_config first, then per-check overrides, then
// additions.
type EnvironmentOverride struct {
	GlobalConfig       *GlobalOverride          `yaml:"global_config"`
	TestSuiteOverrides map[string]CheckOverride `yaml:"test_suite_overrides"`
	TestSuiteAdditions []SuiteCheck             `yaml:"test_suite_additions"`
}

// GlobalOverride adjusts global_config fields for an environment.
type GlobalOverride struct {
	AutoMergeThreshold    *int           `yaml:"auto_merge_threshold"`
	ManualReviewThreshold *int           `yaml:"manual_review_threshold"`
	BlockThreshold        *int           `yaml:"block_threshold"`
	MaxParallelJobs       *int           `yaml:"max_parallel_jobs"`
	MaxTestTimeout        *int           `yaml:"max_test_timeout"`
	Retry                 *RetryOverride `yaml:"retry"`
}

// RetryOverride adjusts the retry policy for an environment.
type RetryOverride struct {
	Enabled      *bool `yaml:"enabled"`
	MaxRetries   *int  `yaml:"max_retries"`
	DelaySeconds *int  `yaml:"delay_seconds"`
}

// CheckOverride replaces individual fields of a matching check id.
// Overriding only weight leaves every other field untouched.
type CheckOverride struct {
	Name           *string           `yaml:"name"`
	Description    *string           `yaml:"description"`
	Enforcement    *string           `yaml:"enforcement"`
	Weight         *int              `yaml:"weight"`
	ActionPath     *string           `yaml:"action_path"`
	TimeoutMinutes *int              `yaml:"timeout_minutes"`
	Inputs         map[string]string `yaml:"inputs"`
	Enabled        *bool             `yaml:"enabled"`
}

// IsEnabled resolves the tri-state enabled flag; checks default to enabled.
func (c SuiteCheck) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}
