package cmd

import (
	"fmt"

	"github.com/prgate/prgate/core"
	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/internal/outwriter"
	"github.com/spf13/cobra"
)

// configCmd focused on suite config inspection.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate and inspect the suite configuration",
	Long: `Work with the check-suite config document without running any checks.

Subcommands:
  validate - Parse and validate the suite config, reporting all findings
  show     - Print the effective config after environment resolution

Examples:
  # Validate the default suite file
  prgate config validate

  # Show the plan that 'run -e staging' would execute
  prgate config show -e staging`,
}

// configValidateCmd parses the suite config and reports findings.
var configValidateCmd = &cobra.Command{
	Use:   "validate [repo-path]",
	Short: "Parse the suite config and report errors and warnings",
	Long: `Load the suite config, resolve it for the configured environments, and
report every finding. Fatal config errors (malformed syntax, missing required
fields, duplicate ids, unknown dependency references) exit non-zero; advisory
findings such as soft weights not summing to 100 are printed as warnings.

Examples:
  # Validate the default suite file
  prgate config validate

  # Validate with staging overrides applied
  prgate config validate -e staging`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if _, err := core.LoadEffective(cfg); err != nil {
			contract.LogFatal("Suite config is invalid", err)
		}
		fmt.Println("Suite config is valid.")
	},
}

// configShowCmd prints the resolved execution plan.
var configShowCmd = &cobra.Command{
	Use:   "show [repo-path]",
	Short: "Print the effective config after environment resolution",
	Long: `Resolve the suite config for the configured environments and print the
effective check plan: enabled checks, weights, timeouts, thresholds, and
dependency ordering. This is the same resolution 'run' performs before
executing checks.

Examples:
  # Show the default plan
  prgate config show

  # Show the plan with overrides, as JSON
  prgate config show -e staging --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		eff, err := core.LoadEffective(cfg)
		if err != nil {
			contract.LogFatal("Suite config failed to load", err)
		}
		if err := outwriter.WritePlan(eff, cfg); err != nil {
			contract.LogFatal("Failed to write plan", err)
		}
	},
}
