// main is the entry point for the prgate CLI.
package main

import (
	"os"

	"github.com/prgate/prgate/cmd"
	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/internal/iohistory"
)

func main() {
	cmd.SetHistoryManager(iohistory.Manager)

	err := cmd.Execute()

	// Flush history connections before deciding the exit code so that
	// tracked runs are durable even on command failure.
	iohistory.CloseHistory()

	if err != nil {
		contract.LogError("Command failed", err)
		os.Exit(2)
	}

	os.Exit(cmd.ExitCode())
}
