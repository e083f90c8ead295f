package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/prgate/prgate/schema"
)

// Color variables for console output.
var (
	PassColor    = color.New(color.FgGreen)            // passColor represents a passing check.
	FailColor    = color.New(color.FgRed, color.Bold)  // failColor represents a failing check.
	ErrorColor   = color.New(color.FgMagenta, color.Bold)
	TimeoutColor = color.New(color.FgYellow)
	SkipColor    = color.New(color.FgHiBlack)
)

// GetPlainStatus returns a plain uppercase status label. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainStatus(status schema.CheckStatus) string {
	return strings.ToUpper(string(status))
}

// GetColorStatus returns a colored status label for console output (table).
// It uses GetPlainStatus to determine the string, and then applies the appropriate color.
func GetColorStatus(status schema.CheckStatus) string {
	text := GetPlainStatus(status)

	switch status {
	case schema.StatusPass:
		return PassColor.Sprint(text)
	case schema.StatusFail:
		return FailColor.Sprint(text)
	case schema.StatusError:
		return ErrorColor.Sprint(text)
	case schema.StatusTimedOut:
		return TimeoutColor.Sprint(text)
	default:
		return SkipColor.Sprint(text)
	}
}

// GetPlainDecision returns a plain uppercase merge decision label.
func GetPlainDecision(decision schema.Decision) string {
	return strings.ToUpper(string(decision))
}

// GetColorDecision returns a colored merge decision label for console output.
// It uses GetPlainDecision to determine the string, and then applies the appropriate color.
func GetColorDecision(decision schema.Decision) string {
	text := GetPlainDecision(decision)

	switch decision {
	case schema.AutoMerge:
		return PassColor.Sprint(text)
	case schema.ManualReview:
		return TimeoutColor.Sprint(text)
	default:
		return FailColor.Sprint(text)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogError logs an error message to stderr without terminating the process.
func LogError(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Error %s: %v\n", msg, err)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogWarning logs a plain warning string to stderr.
func LogWarning(msg string) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s\n", msg)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultHistoryPath
	}
	return filepath.Join(homeDir, DefaultHistoryPath)
}

// SelectOutputFile returns the file to write output to, defaulting to stdout.
func SelectOutputFile(outputFile string) (*os.File, error) {
	if outputFile == "" {
		return os.Stdout, nil
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", outputFile, err)
	}
	return file, nil
}

// TruncateDetail shortens diagnostic text for table cells.
func TruncateDetail(detail string, maxLen int) string {
	if maxLen <= 3 || len(detail) <= maxLen {
		return detail
	}
	return detail[:maxLen-3] + "..."
}
