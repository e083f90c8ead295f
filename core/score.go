package core

import (
	"fmt"

	"github.com/prgate/prgate/schema"
)

// scoreRun folds a complete result set into the run-level verdict. Hard
// checks gate the decision outright; soft checks contribute to the weighted
// score only when they completed with a reported score. Errored, timed-out
// and skipped checks contribute zero without redistributing their weight.
func scoreRun(eff *schema.EffectiveConfig, results []schema.CheckResult) *schema.RunOutcome {
	outcome := &schema.RunOutcome{HardChecksPassed: true}

	for _, result := range results {
		def, ok := eff.CheckByID(result.CheckID)
		if !ok {
			continue
		}
		if def.Enforcement == schema.HardEnforcement && result.Status != schema.StatusPass {
			outcome.HardChecksPassed = false
		}
	}

	if !outcome.HardChecksPassed {
		outcome.Decision = schema.Blocked
		outcome.DecisionReason = "one or more hard checks did not pass"
		return outcome
	}

	outcome.WeightedScore = weightedScore(eff, results)
	outcome.ScoreComputed = true
	outcome.Decision, outcome.DecisionReason = classify(eff.Thresholds, outcome.WeightedScore)
	return outcome
}

// weightedScore computes sum(score*weight)/100 over soft checks, in integer
// arithmetic with the division applied once at the end. A check whose status
// never produced a valid score contributes nothing.
func weightedScore(eff *schema.EffectiveConfig, results []schema.CheckResult) int {
	total := 0
	for _, result := range results {
		def, ok := eff.CheckByID(result.CheckID)
		if !ok || def.Enforcement != schema.SoftEnforcement {
			continue
		}
		if !result.Status.Scoreable() || !result.ScoreValid {
			continue
		}
		total += result.Score * def.Weight
	}
	return total / 100
}

// classify maps a weighted score to a merge decision. Threshold boundaries
// are inclusive: a score equal to a threshold takes the more favorable
// decision.
func classify(t schema.ThresholdConfig, score int) (schema.Decision, string) {
	switch {
	case score >= t.AutoMergeThreshold:
		return schema.AutoMerge, fmt.Sprintf("score %d meets auto-merge threshold %d", score, t.AutoMergeThreshold)
	case score >= t.ManualReviewThreshold:
		return schema.ManualReview, fmt.Sprintf("score %d meets manual review threshold %d", score, t.ManualReviewThreshold)
	default:
		return schema.Blocked, fmt.Sprintf("score %d is below manual review threshold %d", score, t.ManualReviewThreshold)
	}
}
