package suite

import (
	"fmt"

	"github.com/prgate/prgate/schema"
)

// Validate runs the non-fatal checks on a resolved plan and returns the
// findings. Warnings never stop a run; environment overrides may rebalance
// weights on purpose, so a sum other than 100 is reported, not enforced.
func Validate(cfg *schema.SuiteConfig, eff *schema.EffectiveConfig) []schema.Warning {
	var warnings []schema.Warning

	if w := validateWeightSum(eff); w != "" {
		warnings = append(warnings, w)
	}
	warnings = append(warnings, validateParallelGroups(eff)...)
	warnings = append(warnings, validateOverrideTargets(cfg, eff)...)

	if len(eff.EnabledChecks()) == 0 {
		warnings = append(warnings, "no enabled checks in the effective plan; the run will score 0")
	}
	return warnings
}

// validateOverrideTargets reports per-check overrides in the applied
// environments whose id matches nothing in the base suite or its additions.
func validateOverrideTargets(cfg *schema.SuiteConfig, eff *schema.EffectiveConfig) []schema.Warning {
	known := map[string]bool{}
	for _, c := range eff.Checks {
		known[c.ID] = true
	}

	var warnings []schema.Warning
	for _, tag := range eff.Environments {
		override, ok := cfg.EnvironmentOverrides[tag]
		if !ok {
			continue
		}
		for id := range override.TestSuiteOverrides {
			if !known[id] {
				warnings = append(warnings, schema.Warning(fmt.Sprintf("environment %q overrides unknown check id %q", tag, id)))
			}
		}
	}
	return warnings
}

// validateWeightSum reports when enabled soft weights do not sum to 100.
func validateWeightSum(eff *schema.EffectiveConfig) schema.Warning {
	sum := 0
	soft := 0
	for _, c := range eff.EnabledChecks() {
		if c.Enforcement == schema.SoftEnforcement {
			soft++
			sum += c.Weight
		}
	}
	if soft > 0 && sum != 100 {
		return schema.Warning(fmt.Sprintf("soft check weights sum to %d, not 100; the achievable maximum score is capped accordingly", sum))
	}
	return ""
}

// validateParallelGroups reports group entries that do not match any check id
// and ids that appear in more than one group.
func validateParallelGroups(eff *schema.EffectiveConfig) []schema.Warning {
	known := map[string]bool{}
	for _, c := range eff.Checks {
		known[c.ID] = true
	}

	var warnings []schema.Warning
	seen := map[string]bool{}
	for _, group := range eff.ParallelGroups {
		for _, id := range group {
			if !known[id] {
				warnings = append(warnings, schema.Warning(fmt.Sprintf("parallel group references unknown check id %q", id)))
				continue
			}
			if seen[id] {
				warnings = append(warnings, schema.Warning(fmt.Sprintf("check id %q appears in more than one parallel group", id)))
			}
			seen[id] = true
		}
	}
	return warnings
}
