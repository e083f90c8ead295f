// Package main provides a performance benchmarking tool for the prgate CLI.
// It measures end-to-end validation times across suite sizes and worker counts,
// running each configuration multiple times, treating the first successful run
// as cold and averaging the rest as warm, generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - prgate binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic fixture repositories are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Suite    string
	Workers  int
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Runs        int
	SuiteSizes  []int
	WorkerPools []int
	ActionSleep string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     5 * time.Minute,
		Runs:        4,
		SuiteSizes:  []int{4, 16, 64},
		WorkerPools: []int{1, 4, 8},
		ActionSleep: "0.25",
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the prgate binary exists
func checkPrerequisites() error {
	if _, err := exec.LookPath("prgate"); err != nil {
		return fmt.Errorf("prgate binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured suite sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: suites %v, workers %v, %v timeout, %d runs each\n",
		config.SuiteSizes, config.WorkerPools, config.Timeout, config.Runs)

	for _, size := range config.SuiteSizes {
		suiteName := fmt.Sprintf("checks-%d", size)
		repoPath, err := generateFixtureRepo(config, suiteName, size)
		if err != nil {
			fmt.Printf("Failed to generate fixture %s: %v\n", suiteName, err)
			continue
		}

		for _, workers := range config.WorkerPools {
			fmt.Printf("Benchmarking %s with %d workers\n", suiteName, workers)
			result := runBenchmarkSuite(config, suiteName, repoPath, workers)
			results = append(results, result)
		}
	}

	return results
}

// generateFixtureRepo lays out a synthetic repository with the given number of
// soft checks, each backed by a short sleep-then-score action.
func generateFixtureRepo(config BenchmarkConfig, name string, size int) (string, error) {
	repoPath := filepath.Join(config.WorkDir, name)
	if err := os.MkdirAll(filepath.Join(repoPath, ".github"), 0o755); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(repoPath, "actions"), 0o755); err != nil {
		return "", err
	}

	action := fmt.Sprintf("#!/bin/sh\nsleep %s\necho '{\"result\": \"pass\", \"score\": 90}'\n", config.ActionSleep)
	if err := os.WriteFile(filepath.Join(repoPath, "actions", "check.sh"), []byte(action), 0o755); err != nil {
		return "", err
	}

	var suite strings.Builder
	suite.WriteString("global_config:\n")
	suite.WriteString("  auto_merge_threshold: 85\n")
	suite.WriteString("  manual_review_threshold: 60\n")
	suite.WriteString("test_suite:\n")
	weight := 100 / size
	for i := 0; i < size; i++ {
		fmt.Fprintf(&suite, "  - id: check-%03d\n", i)
		suite.WriteString("    enforcement: soft\n")
		fmt.Fprintf(&suite, "    weight: %d\n", weight)
		suite.WriteString("    action_path: actions/check.sh\n")
		suite.WriteString("    timeout_minutes: 1\n")
	}

	suitePath := filepath.Join(repoPath, ".github", "pr-gate.yml")
	if err := os.WriteFile(suitePath, []byte(suite.String()), 0o644); err != nil {
		return "", err
	}
	return repoPath, nil
}

// runBenchmarkSuite runs the timed phase for one suite/worker configuration
func runBenchmarkSuite(config BenchmarkConfig, suiteName, repoPath string, workers int) BenchmarkResult {
	cold, times := runBenchmark(config, repoPath, workers)

	warmAvg := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	coldStr := "TIMEOUT"
	if cold > 0 {
		coldStr = fmt.Sprintf("%.3fs", cold)
	}

	fmt.Printf("  Cold: %s, Warm average: %s\n", coldStr, warmAvg)

	return BenchmarkResult{
		Suite:    suiteName,
		Workers:  workers,
		ColdTime: coldStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes prgate run multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, repoPath string, workers int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"run",
		"--base-ref", "main",
		"--head-ref", "HEAD",
		"--pr-number", "1",
		"--workers", fmt.Sprintf("%d", workers),
		"--history-backend", "none",
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("prgate", args...)
		cmd.Dir = repoPath

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Validation completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/prgate_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"suite", "workers", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		row := []string{result.Suite, fmt.Sprintf("%d", result.Workers), result.ColdTime, result.WarmTime}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-12s workers=%d: Cold: %s, Warm: %s\n", result.Suite, result.Workers, result.ColdTime, result.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
