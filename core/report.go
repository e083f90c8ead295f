package core

import (
	"github.com/prgate/prgate/schema"
)

// BuildReport renders a run outcome as a Report. It is a pure function of
// its inputs; entries appear in completion order, matching the outcome's
// result slice.
func BuildReport(eff *schema.EffectiveConfig, pr schema.PRContext, environments []string, outcome *schema.RunOutcome) *schema.Report {
	report := &schema.Report{
		OverallResult:    outcome.Decision,
		HardChecksPassed: outcome.HardChecksPassed,
		DecisionReason:   outcome.DecisionReason,
		Environments:     environments,
		PR:               pr,
		Checks:           make([]schema.ReportEntry, 0, len(outcome.Results)),
		StartedAt:        outcome.StartedAt,
		FinishedAt:       outcome.FinishedAt,
	}
	if outcome.ScoreComputed {
		score := outcome.WeightedScore
		report.OverallScore = &score
	}

	for _, result := range outcome.Results {
		def, ok := eff.CheckByID(result.CheckID)
		if !ok {
			continue
		}
		report.Checks = append(report.Checks, buildEntry(def, result))
		tallySummary(&report.Summary, result.Status)
	}
	return report
}

func buildEntry(def schema.CheckDefinition, result schema.CheckResult) schema.ReportEntry {
	entry := schema.ReportEntry{
		ID:          def.ID,
		Name:        def.Name,
		Enforcement: def.Enforcement,
		Status:      result.Status,
		Weight:      def.Weight,
		Detail:      result.Detail,
		Attempts:    result.Attempts,
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
		DurationMs:  result.Duration().Milliseconds(),
	}
	if result.ScoreValid {
		score := result.Score
		entry.Score = &score
		if def.Enforcement == schema.SoftEnforcement {
			entry.Contribution = result.Score * def.Weight / 100
		}
	}
	return entry
}

func tallySummary(s *schema.ReportSummary, status schema.CheckStatus) {
	s.Total++
	switch status {
	case schema.StatusPass:
		s.Passed++
	case schema.StatusFail:
		s.Failed++
	case schema.StatusError:
		s.Errored++
	case schema.StatusTimedOut:
		s.TimedOut++
	case schema.StatusSkipped:
		s.Skipped++
	}
}
