package cmd

import (
	"github.com/prgate/prgate/core"
	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/internal/outwriter"
	"github.com/prgate/prgate/schema"
	"github.com/spf13/cobra"
)

// runCmd executes the full validation pipeline for a pull request.
var runCmd = &cobra.Command{
	Use:   "run [repo-path]",
	Short: "Run the validation suite against a pull request and decide its fate",
	Long: `Execute every enabled check of the suite config against a pull request,
score the soft checks, and classify the result.

Hard checks gate the decision outright: a single hard failure blocks the PR
regardless of score. Soft checks contribute score * weight / 100 to a weighted
total that is compared against the configured thresholds.

Exit codes:
  0 - the PR may proceed (auto_merge or manual_review)
  1 - the PR is blocked (hard check failed or score too low)
  2 - the engine itself failed (bad config, no runnable schedule)

Examples:
  # Validate a PR against main
  prgate run --base-ref origin/main --head-ref HEAD --pr-number 42

  # Apply staging environment overrides
  prgate run -e staging --base-ref main --head-ref feature --pr-number 42

  # Inspect the plan without running anything
  prgate run --dry-run

  # Machine-readable report for CI annotations
  prgate run --output json --base-ref main --head-ref HEAD --pr-number 42`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		eff, err := core.LoadEffective(cfg)
		if err != nil {
			contract.LogError("Suite config failed to load", err)
			exitCode = engineFailureCode
			return
		}

		if cfg.DryRun {
			if err := outwriter.WritePlan(eff, cfg); err != nil {
				contract.LogError("Failed to write plan", err)
				exitCode = engineFailureCode
			}
			return
		}

		report, err := core.ExecuteValidation(rootCtx, cfg, eff, historyManager)
		if err != nil {
			contract.LogError("Validation failed", err)
			exitCode = engineFailureCode
			return
		}

		if err := outwriter.WriteReport(report, cfg); err != nil {
			contract.LogError("Failed to write report", err)
			exitCode = engineFailureCode
			return
		}

		exitCode = decisionExitCode(report.OverallResult)
	},
}

// engineFailureCode distinguishes engine-level failures from a blocked PR.
const engineFailureCode = 2

// decisionExitCode maps the merge decision to the process exit code. A PR
// that may proceed in any form exits zero; only a blocked PR exits one.
func decisionExitCode(decision schema.Decision) int {
	switch decision {
	case schema.AutoMerge, schema.ManualReview:
		return 0
	default:
		return 1
	}
}
