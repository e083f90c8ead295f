// Package parquet provides data structures and functions for exporting PR
// validation run data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/prgate/prgate/schema"
)

// ValidationRun represents a single validation run with metadata.
// This struct maps to the prgate_runs database table.
type ValidationRun struct {
	// RunID is the unique identifier for this validation run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// Decision is the terminal merge decision for the run
	Decision string `parquet:"decision,snappy"`

	// WeightedScore is the final weighted score (nullable, absent when hard checks failed)
	WeightedScore *int32 `parquet:"weighted_score,optional,snappy"`

	// HardChecksPassed records whether every hard check passed
	HardChecksPassed bool `parquet:"hard_checks_passed,snappy"`

	// PRNumber is the pull request number under validation
	PRNumber int32 `parquet:"pr_number,snappy"`

	// BaseRef is the merge target ref
	BaseRef string `parquet:"base_ref,snappy"`

	// HeadRef is the candidate ref
	HeadRef string `parquet:"head_ref,snappy"`

	// Environments contains the comma-joined environment tags applied to the run (nullable)
	Environments *string `parquet:"environments,optional,snappy"`

	// TotalChecks is the number of checks executed in this run
	TotalChecks int32 `parquet:"total_checks,snappy"`
}

// CheckOutcomeRow represents the outcome of a single check within a run.
// This struct maps to the prgate_check_results database table.
type CheckOutcomeRow struct {
	// RunID references the parent validation run
	RunID int64 `parquet:"run_id,snappy"`

	// CheckID is the suite identifier of the check
	CheckID string `parquet:"check_id,snappy"`

	// Status is the terminal check status
	Status string `parquet:"status,snappy"`

	// Score is the reported score for soft checks (nullable)
	Score *int32 `parquet:"score,optional,snappy"`

	// Detail is diagnostic text from the check action (nullable)
	Detail *string `parquet:"detail,optional,snappy"`

	// Attempts counts execution attempts including retries
	Attempts int32 `parquet:"attempts,snappy"`

	// StartTime is when the first attempt began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the final attempt finished
	EndTime time.Time `parquet:"end_time,snappy"`
}

// WriteValidationRunsParquet writes a slice of ValidationRun structs to a Parquet file.
func WriteValidationRunsParquet(data []ValidationRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ValidationRun struct tags
	writer := parquet.NewGenericWriter[ValidationRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCheckOutcomesParquet writes a slice of CheckOutcomeRow structs to a Parquet file.
func WriteCheckOutcomesParquet(data []CheckOutcomeRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the CheckOutcomeRow struct tags
	writer := parquet.NewGenericWriter[CheckOutcomeRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ReportRow is one per-check row of a rendered validation report.
type ReportRow struct {
	CheckID      string  `parquet:"check_id,snappy"`
	Name         string  `parquet:"name,snappy"`
	Enforcement  string  `parquet:"enforcement,snappy"`
	Status       string  `parquet:"status,snappy"`
	Score        *int32  `parquet:"score,optional,snappy"`
	Weight       int32   `parquet:"weight,snappy"`
	Contribution int32   `parquet:"contribution,snappy"`
	Detail       *string `parquet:"detail,optional,snappy"`
	Attempts     int32   `parquet:"attempts,snappy"`
	DurationMs   int64   `parquet:"duration_ms,snappy"`
	// Run-level fields are denormalized onto every row for standalone analysis.
	OverallResult string `parquet:"overall_result,snappy"`
	OverallScore  *int32 `parquet:"overall_score,optional,snappy"`
	PRNumber      int32  `parquet:"pr_number,snappy"`
}

// WriteReportParquet writes the per-check entries of a report to a Parquet file.
func WriteReportParquet(report *schema.Report, outputPath string) error {
	rows := make([]ReportRow, len(report.Checks))
	for i, entry := range report.Checks {
		row := ReportRow{
			CheckID:       entry.ID,
			Name:          entry.Name,
			Enforcement:   string(entry.Enforcement),
			Status:        string(entry.Status),
			Weight:        int32(entry.Weight),
			Contribution:  int32(entry.Contribution),
			Attempts:      int32(entry.Attempts),
			DurationMs:    entry.DurationMs,
			OverallResult: string(report.OverallResult),
			PRNumber:      int32(report.PR.PRNumber),
		}
		if entry.Score != nil {
			score := int32(*entry.Score)
			row.Score = &score
		}
		if entry.Detail != "" {
			detail := entry.Detail
			row.Detail = &detail
		}
		if report.OverallScore != nil {
			overall := int32(*report.OverallScore)
			row.OverallScore = &overall
		}
		rows[i] = row
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[ReportRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to ValidationRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ValidationRun {
	result := make([]ValidationRun, len(records))
	for i, record := range records {
		row := ValidationRun{
			RunID:            record.RunID,
			StartTime:        record.StartedAt,
			EndTime:          record.FinishedAt,
			Decision:         string(record.Decision),
			HardChecksPassed: record.HardChecksPassed,
			PRNumber:         int32(record.PRNumber),
			BaseRef:          record.BaseRef,
			HeadRef:          record.HeadRef,
			TotalChecks:      int32(record.TotalChecks),
		}
		if record.WeightedScore != nil {
			score := int32(*record.WeightedScore)
			row.WeightedScore = &score
		}
		if record.Environments != "" {
			envs := record.Environments
			row.Environments = &envs
		}
		result[i] = row
	}
	return result
}

// ConvertCheckRecords converts schema.HistoryCheckRecord to CheckOutcomeRow for Parquet export.
func ConvertCheckRecords(records []schema.HistoryCheckRecord) []CheckOutcomeRow {
	result := make([]CheckOutcomeRow, len(records))
	for i, record := range records {
		row := CheckOutcomeRow{
			RunID:     record.RunID,
			CheckID:   record.CheckID,
			Status:    string(record.Status),
			Attempts:  int32(record.Attempts),
			StartTime: record.StartedAt,
			EndTime:   record.FinishedAt,
		}
		if record.Score != nil {
			score := int32(*record.Score)
			row.Score = &score
		}
		if record.Detail != "" {
			detail := record.Detail
			row.Detail = &detail
		}
		result[i] = row
	}
	return result
}
