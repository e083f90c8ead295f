package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/schema"
)

// WritePlan outputs the resolved execution plan without running any checks.
// It backs both dry runs and the config show command.
func WritePlan(eff *schema.EffectiveConfig, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, eff)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writePlanTable(eff, cfg, w)
	}, "Wrote table")
}

// writePlanTable renders the resolved checks followed by run-level settings.
func writePlanTable(eff *schema.EffectiveConfig, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Check", "Name", "Type", "Weight", "Timeout", "Enabled"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, def := range eff.Checks {
		weight := "-"
		if def.Enforcement == schema.SoftEnforcement {
			weight = strconv.Itoa(def.Weight)
		}
		data = append(data, []string{
			def.ID,
			def.Name,
			string(def.Enforcement),
			weight,
			fmt.Sprintf("%dm", def.TimeoutMinutes),
			strconv.FormatBool(def.Enabled),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Thresholds: auto-merge >= %d, manual review >= %d\n",
		eff.Thresholds.AutoMergeThreshold, eff.Thresholds.ManualReviewThreshold); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Max parallel jobs: %d\n", eff.MaxParallelJobs); err != nil {
		return err
	}
	if eff.Retry.Enabled {
		if _, err := fmt.Fprintf(writer, "Retry: up to %d retries, %ds apart\n",
			eff.Retry.MaxRetries, eff.Retry.DelaySeconds); err != nil {
			return err
		}
	}
	for _, edge := range eff.Dependencies {
		if _, err := fmt.Fprintf(writer, "Dependency: %s before %s\n", edge.Prerequisite, edge.Dependent); err != nil {
			return err
		}
	}
	if len(cfg.Environments) > 0 {
		if _, err := fmt.Fprintf(writer, "Environments: %v\n", cfg.Environments); err != nil {
			return err
		}
	}
	return nil
}
