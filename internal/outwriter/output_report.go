package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/schema"
)

// writeReportTable generates and writes the human-readable report.
func writeReportTable(report *schema.Report, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCheckTable(report, cfg, w)
	}, "Wrote table")
}

// writeCheckTable renders the per-check table followed by the run verdict.
func writeCheckTable(report *schema.Report, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Check", "Type", "Status", "Score", "Weight", "Attempts", "Duration", "Detail"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	detailWidth := getMaxTableDetailWidth(cfg)
	var data [][]string
	for _, entry := range report.Checks {
		status := contract.GetPlainStatus(entry.Status)
		if cfg.UseColors {
			status = contract.GetColorStatus(entry.Status)
		}
		row := []string{
			entry.Name,
			string(entry.Enforcement),
			status,
			formatScore(entry.Score),
			formatWeight(entry),
			strconv.Itoa(entry.Attempts),
			fmt.Sprintf("%dms", entry.DurationMs),
			contract.TruncateDetail(entry.Detail, detailWidth),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	return writeVerdict(report, cfg, writer)
}

// writeVerdict prints the summary line and decision banner below the table.
func writeVerdict(report *schema.Report, cfg *contract.Config, writer io.Writer) error {
	s := report.Summary
	if _, err := fmt.Fprintf(writer, "Checks: %d total, %d passed, %d failed, %d errored, %d timed out, %d skipped\n",
		s.Total, s.Passed, s.Failed, s.Errored, s.TimedOut, s.Skipped); err != nil {
		return err
	}

	if report.OverallScore != nil {
		if _, err := fmt.Fprintf(writer, "Weighted score: %d\n", *report.OverallScore); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(writer, "Weighted score: not computed"); err != nil {
			return err
		}
	}

	decision := contract.GetPlainDecision(report.OverallResult)
	if cfg.UseColors {
		decision = contract.GetColorDecision(report.OverallResult)
	}
	if cfg.UseEmojis {
		decision = decisionEmoji(report.OverallResult) + " " + decision
	}
	if _, err := fmt.Fprintf(writer, "Decision: %s (%s)\n", decision, report.DecisionReason); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Validation completed in %v\n", report.FinishedAt.Sub(report.StartedAt).Round(timeRounding)); err != nil {
		return err
	}
	return nil
}

func decisionEmoji(decision schema.Decision) string {
	switch decision {
	case schema.AutoMerge:
		return "✅"
	case schema.ManualReview:
		return "\U0001F440"
	default:
		return "⛔"
	}
}

func formatScore(score *int) string {
	if score == nil {
		return "-"
	}
	return strconv.Itoa(*score)
}

func formatWeight(entry schema.ReportEntry) string {
	if entry.Enforcement != schema.SoftEnforcement {
		return "-"
	}
	return strconv.Itoa(entry.Weight)
}

// writeReportJSON handles opening the file and calling the JSON writer.
func writeReportJSON(report *schema.Report, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON")
}

// writeReportCSV handles opening the file and calling the CSV writer.
func writeReportCSV(report *schema.Report, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForChecks(csvWriter, report)
	}, "Wrote CSV")
}

// writeCSVResultsForChecks writes the per-check report rows in CSV format.
func writeCSVResultsForChecks(w *csv.Writer, report *schema.Report) error {
	// CSV header
	header := []string{
		"check_id",
		"name",
		"enforcement",
		"status",
		"score",
		"weight",
		"contribution",
		"attempts",
		"duration_ms",
		"detail",
		"overall_result",
		"overall_score",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	overallScore := ""
	if report.OverallScore != nil {
		overallScore = strconv.Itoa(*report.OverallScore)
	}
	for _, entry := range report.Checks {
		score := ""
		if entry.Score != nil {
			score = strconv.Itoa(*entry.Score)
		}
		rec := []string{
			entry.ID,
			entry.Name,
			string(entry.Enforcement),
			string(entry.Status),
			score,
			strconv.Itoa(entry.Weight),
			strconv.Itoa(entry.Contribution),
			strconv.Itoa(entry.Attempts),
			strconv.FormatInt(entry.DurationMs, 10),
			entry.Detail,
			string(report.OverallResult),
			overallScore,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
