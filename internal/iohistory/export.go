package iohistory

import (
	"errors"
	"fmt"

	"github.com/prgate/prgate/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of run history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total validation runs: %d\n", status.TotalRuns)
	fmt.Printf("Total check records: %d\n", status.TableSizes[checkResultsTable])

	// Retrieve all runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all check results
	checkRecords, err := store.GetAllCheckRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve check records: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetChecks := parquet.ConvertCheckRecords(checkRecords)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteValidationRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write check results to Parquet
	checksFile := outputFile + ".check_results.parquet"
	if err := parquet.WriteCheckOutcomesParquet(parquetChecks, checksFile); err != nil {
		return fmt.Errorf("failed to write check results: %w", err)
	}
	fmt.Printf("Exported %d check records to: %s\n", len(parquetChecks), checksFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
