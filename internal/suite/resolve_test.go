package suite

import (
	"testing"

	"github.com/prgate/prgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overrideSuite = `global_config:
  auto_merge_threshold: 85
  manual_review_threshold: 60
  max_test_timeout: 20
test_suite:
  - id: build
    enforcement: hard
    action_path: actions/build.sh
    timeout_minutes: 5
  - id: coverage
    name: Coverage
    enforcement: soft
    weight: 60
    action_path: actions/coverage.sh
  - id: lint
    enforcement: soft
    weight: 40
    action_path: actions/lint.sh
execution_config:
  sequential_dependencies:
    - prerequisite: build
      dependent: coverage
environment_overrides:
  staging:
    global_config:
      auto_merge_threshold: 90
    test_suite_overrides:
      coverage:
        weight: 70
  nightly:
    global_config:
      auto_merge_threshold: 95
      retry:
        enabled: true
        max_retries: 1
    test_suite_overrides:
      lint:
        enabled: false
    test_suite_additions:
      - id: soak
        enforcement: soft
        weight: 30
        action_path: actions/soak.sh
        timeout_minutes: 60
`

func parseOverrideSuite(t *testing.T) *schema.SuiteConfig {
	t.Helper()
	cfg, err := Parse([]byte(overrideSuite))
	require.NoError(t, err)
	return cfg
}

func TestResolveBaseSuite(t *testing.T) {
	cfg := parseOverrideSuite(t)

	eff, err := ResolveForEnvironment(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 85, eff.Thresholds.AutoMergeThreshold)
	assert.Len(t, eff.Checks, 3)
	assert.Empty(t, eff.Environments)
	assert.Len(t, eff.Dependencies, 1)

	coverage, ok := eff.CheckByID("coverage")
	require.True(t, ok)
	assert.Equal(t, 60, coverage.Weight)
	assert.Equal(t, "Coverage", coverage.Name)
	assert.True(t, coverage.Enabled)
}

func TestResolveSingleEnvironment(t *testing.T) {
	cfg := parseOverrideSuite(t)

	eff, err := ResolveForEnvironment(cfg, []string{"staging"})
	require.NoError(t, err)

	assert.Equal(t, 90, eff.Thresholds.AutoMergeThreshold)
	assert.Equal(t, []string{"staging"}, eff.Environments)

	// Only the overridden field changes; name and action survive.
	coverage, _ := eff.CheckByID("coverage")
	assert.Equal(t, 70, coverage.Weight)
	assert.Equal(t, "Coverage", coverage.Name)
	assert.Equal(t, "actions/coverage.sh", coverage.ActionPath)
}

func TestResolveLaterTagWins(t *testing.T) {
	cfg := parseOverrideSuite(t)

	eff, err := ResolveForEnvironment(cfg, []string{"staging", "nightly"})
	require.NoError(t, err)
	assert.Equal(t, 95, eff.Thresholds.AutoMergeThreshold)

	// staging's coverage override still applies; nightly never touched it.
	coverage, _ := eff.CheckByID("coverage")
	assert.Equal(t, 70, coverage.Weight)

	// nightly disabled lint and added soak.
	lint, _ := eff.CheckByID("lint")
	assert.False(t, lint.Enabled)
	soak, ok := eff.CheckByID("soak")
	require.True(t, ok)
	assert.Equal(t, 30, soak.Weight)

	assert.True(t, eff.Retry.Enabled)
	assert.Equal(t, 1, eff.Retry.MaxRetries)
	assert.Equal(t, []string{"staging", "nightly"}, eff.Environments)
}

func TestResolveUnknownTagIgnored(t *testing.T) {
	cfg := parseOverrideSuite(t)

	eff, err := ResolveForEnvironment(cfg, []string{"production"})
	require.NoError(t, err)
	assert.Equal(t, 85, eff.Thresholds.AutoMergeThreshold)
	assert.Empty(t, eff.Environments)
}

func TestResolveTimeoutClamp(t *testing.T) {
	cfg := parseOverrideSuite(t)

	eff, err := ResolveForEnvironment(cfg, []string{"nightly"})
	require.NoError(t, err)

	// soak asked for 60 minutes but max_test_timeout is 20.
	soak, _ := eff.CheckByID("soak")
	assert.Equal(t, 20, soak.TimeoutMinutes)
}

func TestResolveDefaultTimeout(t *testing.T) {
	cfg := parseOverrideSuite(t)

	eff, err := ResolveForEnvironment(cfg, nil)
	require.NoError(t, err)

	// coverage declares no timeout_minutes; the default applies.
	coverage, _ := eff.CheckByID("coverage")
	assert.Equal(t, DefaultTimeoutMinutes, coverage.TimeoutMinutes)

	build, _ := eff.CheckByID("build")
	assert.Equal(t, 5, build.TimeoutMinutes)
}

func TestResolveAdditionReplacesExistingID(t *testing.T) {
	doc := `global_config: {auto_merge_threshold: 85, manual_review_threshold: 60}
test_suite:
  - id: lint
    name: Lint
    enforcement: soft
    weight: 40
    action_path: actions/lint.sh
environment_overrides:
  staging:
    test_suite_additions:
      - id: lint
        enforcement: soft
        weight: 10
        action_path: actions/lint-lite.sh`

	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	eff, err := ResolveForEnvironment(cfg, []string{"staging"})
	require.NoError(t, err)
	require.Len(t, eff.Checks, 1)

	// Wholesale replacement: the addition is a full definition, not a patch.
	lint := eff.Checks[0]
	assert.Equal(t, 10, lint.Weight)
	assert.Equal(t, "actions/lint-lite.sh", lint.ActionPath)
	assert.Equal(t, "lint", lint.Name) // name falls back to the id
}

func TestResolveMissingNameDefaultsToID(t *testing.T) {
	cfg := parseOverrideSuite(t)

	eff, err := ResolveForEnvironment(cfg, nil)
	require.NoError(t, err)

	build, _ := eff.CheckByID("build")
	assert.Equal(t, "build", build.Name)
}

func TestResolveUnknownDependencyFatal(t *testing.T) {
	doc := `global_config: {auto_merge_threshold: 85, manual_review_threshold: 60}
test_suite:
  - id: build
    enforcement: hard
    action_path: a.sh
execution_config:
  sequential_dependencies:
    - prerequisite: build
      dependent: ghost`

	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	_, err = ResolveForEnvironment(cfg, nil)

	var cfgErr *schema.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, schema.UnknownDependency, cfgErr.Kind)
	assert.Contains(t, cfgErr.Detail, `"ghost"`)
}

func TestResolveDependencyOnDisabledCheckAllowed(t *testing.T) {
	doc := `global_config: {auto_merge_threshold: 85, manual_review_threshold: 60}
test_suite:
  - id: build
    enforcement: hard
    action_path: a.sh
    enabled: false
  - id: coverage
    enforcement: soft
    weight: 100
    action_path: b.sh
execution_config:
  sequential_dependencies:
    - prerequisite: build
      dependent: coverage`

	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	// The edge references a disabled check; the planner treats it as inert.
	eff, err := ResolveForEnvironment(cfg, nil)
	require.NoError(t, err)
	assert.Len(t, eff.Dependencies, 1)
}

func TestResolveUnknownOverrideTargetTolerated(t *testing.T) {
	doc := `global_config: {auto_merge_threshold: 85, manual_review_threshold: 60}
test_suite:
  - id: build
    enforcement: hard
    action_path: a.sh
environment_overrides:
  staging:
    test_suite_overrides:
      ghost:
        weight: 10`

	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	// Unknown override targets warn at validation time but never fail.
	eff, err := ResolveForEnvironment(cfg, []string{"staging"})
	require.NoError(t, err)
	assert.Len(t, eff.Checks, 1)
}

const invariantOverrideSuite = `global_config:
  auto_merge_threshold: 85
  manual_review_threshold: 60
test_suite:
  - id: build
    enforcement: hard
    action_path: actions/build.sh
  - id: coverage
    enforcement: soft
    weight: 60
    action_path: actions/coverage.sh
environment_overrides:
  hotfix:
    global_config:
      auto_merge_threshold: 40
  heavy:
    test_suite_overrides:
      coverage:
        weight: 150
  strictmode:
    test_suite_overrides:
      build:
        enforcement: strict
  slow:
    test_suite_overrides:
      build:
        timeout_minutes: -5
  softswap:
    test_suite_overrides:
      build:
        enforcement: soft
`

// Overrides are patches, so Parse cannot reject them up front; the merged
// document still has to honor every bound the loader enforces.
func TestResolveOverrideCannotBreakInvariants(t *testing.T) {
	cfg, err := Parse([]byte(invariantOverrideSuite))
	require.NoError(t, err)

	cases := []struct {
		name string
		tag  string
		kind schema.ConfigErrorKind
		want string
	}{
		{"inverted thresholds", "hotfix", schema.MalformedSyntax, "auto_merge_threshold"},
		{"weight out of bounds", "heavy", schema.MalformedSyntax, "invalid weight"},
		{"invalid enforcement", "strictmode", schema.MalformedSyntax, "invalid enforcement"},
		{"negative timeout", "slow", schema.MalformedSyntax, "negative timeout_minutes"},
		{"soft without weight", "softswap", schema.MissingRequiredField, "missing required field: weight"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveForEnvironment(cfg, []string{tc.tag})
			require.Error(t, err)

			var cfgErr *schema.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.kind, cfgErr.Kind)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestResolveOverrideDecisionBandsStayOrdered(t *testing.T) {
	cfg, err := Parse([]byte(invariantOverrideSuite))
	require.NoError(t, err)

	// The base document resolves fine; only the broken tag fails.
	eff, err := ResolveForEnvironment(cfg, nil)
	require.NoError(t, err)
	assert.Greater(t, eff.Thresholds.AutoMergeThreshold, eff.Thresholds.ManualReviewThreshold)

	_, err = ResolveForEnvironment(cfg, []string{"hotfix"})
	require.Error(t, err)
}
