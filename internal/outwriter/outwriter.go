// Package outwriter has output and writer logic for validation reports.
package outwriter

import (
	"fmt"

	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/internal/parquet"
	"github.com/prgate/prgate/schema"
)

// WriteReport outputs the validation report, dispatching based on the output format configured.
func WriteReport(report *schema.Report, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeReportJSON(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeReportCSV(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteReportParquet(report, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeReportTable(report, cfg)
	}
	return nil
}
