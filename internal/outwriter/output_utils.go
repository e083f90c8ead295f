package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prgate/prgate/internal/contract"
	"golang.org/x/term"
)

// timeRounding keeps run durations readable in table footers.
const timeRounding = time.Millisecond

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// getMaxTableDetailWidth calculates the maximum width for check detail text
// in table output based on terminal width.
func getMaxTableDetailWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with table formatting:
	// Check + Type + Status + Score + Weight + Attempts + Duration.
	baseWidth := 70

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable detail width
		return 15
	}
	if available > 60 {
		// Maximum detail width to prevent overly wide tables
		return 60
	}
	return available
}
