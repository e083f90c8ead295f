// Package actionexec runs external check actions and decodes their results.
package actionexec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/schema"
)

// Environment variable names passed to every check action.
const (
	envCheckID  = "PRGATE_CHECK_ID"
	envBaseRef  = "PRGATE_BASE_REF"
	envHeadRef  = "PRGATE_HEAD_REF"
	envPRNumber = "PRGATE_PR_NUMBER"
	envRepoPath = "PRGATE_REPO_PATH"
	inputPrefix = "PRGATE_INPUT_"
)

// ProcessExecutor executes a check's action_path as a subprocess. The check
// receives its inputs and PR context via environment variables and reports
// its result as a single JSON object on stdout:
//
//	{"result": "pass"|"fail", "score": 0-100, ...free-form fields}
//
// Free-form fields are passed through untouched; only result and score are
// interpreted here.
type ProcessExecutor struct{}

var _ contract.CheckExecutor = &ProcessExecutor{} // Compile-time check

// NewProcessExecutor creates the default process-based executor.
func NewProcessExecutor() *ProcessExecutor {
	return &ProcessExecutor{}
}

// Execute implements contract.CheckExecutor. The caller bounds execution via
// ctx; a deadline hit surfaces as ctx.Err so the runner can classify it as a
// timeout rather than a generic error.
func (p *ProcessExecutor) Execute(ctx context.Context, def schema.CheckDefinition, pr schema.PRContext) (schema.ActionOutcome, error) {
	actionPath := def.ActionPath
	if !filepath.IsAbs(actionPath) {
		actionPath = filepath.Join(pr.RepoPath, actionPath)
	}

	cmd := exec.CommandContext(ctx, actionPath)
	cmd.Dir = pr.RepoPath
	cmd.Env = buildEnv(def, pr)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return schema.ActionOutcome{}, ctx.Err()
		}
		return schema.ActionOutcome{}, fmt.Errorf("action failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	outcome, err := decodeOutcome(stdout.Bytes())
	if err != nil {
		return schema.ActionOutcome{}, fmt.Errorf("action %q produced invalid output: %w", def.ID, err)
	}
	return outcome, nil
}

// buildEnv assembles the subprocess environment: inherited vars, PR context,
// and the check's opaque inputs as PRGATE_INPUT_* entries.
func buildEnv(def schema.CheckDefinition, pr schema.PRContext) []string {
	env := os.Environ()
	env = append(env,
		envCheckID+"="+def.ID,
		envBaseRef+"="+pr.BaseRef,
		envHeadRef+"="+pr.HeadRef,
		envPRNumber+"="+strconv.Itoa(pr.PRNumber),
		envRepoPath+"="+pr.RepoPath,
	)
	for k, v := range def.Inputs {
		key := inputPrefix + strings.ToUpper(strings.ReplaceAll(k, "-", "_"))
		env = append(env, key+"="+v)
	}
	return env
}

// decodeOutcome parses the action's JSON result document.
func decodeOutcome(raw []byte) (schema.ActionOutcome, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return schema.ActionOutcome{}, fmt.Errorf("empty result document")
	}

	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return schema.ActionOutcome{}, fmt.Errorf("result is not a JSON object: %w", err)
	}

	result, ok := fields["result"].(string)
	if !ok || result == "" {
		return schema.ActionOutcome{}, fmt.Errorf("result document is missing the %q field", "result")
	}

	outcome := schema.ActionOutcome{Result: strings.ToLower(result)}
	if rawScore, ok := fields["score"]; ok {
		score, err := toScore(rawScore)
		if err != nil {
			return schema.ActionOutcome{}, err
		}
		outcome.Score = &score
	}

	// Everything beyond the required fields travels in the open-ended bag.
	delete(fields, "result")
	delete(fields, "score")
	if len(fields) > 0 {
		outcome.Extra = fields
	}
	return outcome, nil
}

// toScore converts a decoded JSON value to a bounded integer score.
func toScore(v any) (int, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("score must be a number, got %T", v)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("score must be an integer, got %v", f)
	}
	score := int(f)
	if score < 0 || score > 100 {
		return 0, fmt.Errorf("score %d out of bounds [0-100]", score)
	}
	return score, nil
}
