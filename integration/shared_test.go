//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedPrgatePath holds the path to a shared prgate binary built once for all tests.
	sharedPrgatePath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getPrgateBinary returns the path to the prgate binary, building it once if needed.
func getPrgateBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "prgate-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		prgatePath := filepath.Join(tempDir, "prgate")
		buildCmd := exec.Command("go", "build", "-o", prgatePath, "./cmd/prgate")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build prgate: %v", err))
		}

		sharedPrgatePath = prgatePath
	})

	return sharedPrgatePath
}

// writeFixtureRepo lays out a minimal repository with a suite file and
// executable check actions for binary-level tests.
func writeFixtureRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, ".github"), 0o755); err != nil {
		t.Fatalf("failed to create .github dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "actions"), 0o755); err != nil {
		t.Fatalf("failed to create actions dir: %v", err)
	}

	suite := `global_config:
  auto_merge_threshold: 85
  manual_review_threshold: 60
test_suite:
  - id: build
    enforcement: hard
    action_path: actions/pass.sh
    timeout_minutes: 1
  - id: coverage
    enforcement: soft
    weight: 100
    action_path: actions/score.sh
    timeout_minutes: 1
`
	if err := os.WriteFile(filepath.Join(dir, ".github", "pr-gate.yml"), []byte(suite), 0o644); err != nil {
		t.Fatalf("failed to write suite: %v", err)
	}

	pass := "#!/bin/sh\necho '{\"result\": \"pass\"}'\n"
	score := "#!/bin/sh\necho '{\"result\": \"pass\", \"score\": 90}'\n"
	if err := os.WriteFile(filepath.Join(dir, "actions", "pass.sh"), []byte(pass), 0o755); err != nil {
		t.Fatalf("failed to write pass action: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "actions", "score.sh"), []byte(score), 0o755); err != nil {
		t.Fatalf("failed to write score action: %v", err)
	}

	return dir
}
