package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *schema.Report {
	score := 94
	coverageScore := 90
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &schema.Report{
		OverallResult:    schema.AutoMerge,
		OverallScore:     &score,
		HardChecksPassed: true,
		DecisionReason:   "score 94 meets auto-merge threshold 85",
		PR:               schema.PRContext{PRNumber: 42, BaseRef: "main", HeadRef: "feature"},
		Checks: []schema.ReportEntry{
			{
				ID: "build", Name: "Build", Enforcement: schema.HardEnforcement,
				Status: schema.StatusPass, Attempts: 1, DurationMs: 1800,
			},
			{
				ID: "coverage", Name: "Coverage", Enforcement: schema.SoftEnforcement,
				Status: schema.StatusPass, Score: &coverageScore, Weight: 60,
				Contribution: 54, Attempts: 2, DurationMs: 950, Detail: "90% covered",
			},
		},
		Summary:    schema.ReportSummary{Total: 2, Passed: 2},
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
	}
}

func plainConfig() *contract.Config {
	return &contract.Config{Output: schema.TextOut, Width: 120}
}

func TestWriteCheckTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeCheckTable(sampleReport(), plainConfig(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "Coverage")
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "90% covered")
	assert.Contains(t, out, "Checks: 2 total, 2 passed")
	assert.Contains(t, out, "Weighted score: 94")
	assert.Contains(t, out, "AUTO_MERGE")
	assert.Contains(t, out, "Validation completed in 2s")
}

func TestWriteVerdictNoScore(t *testing.T) {
	report := sampleReport()
	report.OverallScore = nil
	report.OverallResult = schema.Blocked
	report.DecisionReason = "one or more hard checks did not pass"

	var buf bytes.Buffer
	require.NoError(t, writeVerdict(report, plainConfig(), &buf))

	out := buf.String()
	assert.Contains(t, out, "Weighted score: not computed")
	assert.Contains(t, out, "BLOCKED")
	assert.Contains(t, out, "one or more hard checks did not pass")
}

func TestWriteVerdictEmoji(t *testing.T) {
	cfg := plainConfig()
	cfg.UseEmojis = true

	var buf bytes.Buffer
	require.NoError(t, writeVerdict(sampleReport(), cfg, &buf))
	assert.Contains(t, buf.String(), "✅")
}

func TestWriteCSVResultsForChecks(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForChecks(w, sampleReport()))
	w.Flush()

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "check_id", rows[0][0])
	assert.Equal(t, "overall_score", rows[0][11])

	// Hard check row: empty score column
	assert.Equal(t, "build", rows[1][0])
	assert.Equal(t, "", rows[1][4])
	assert.Equal(t, "auto_merge", rows[1][10])
	assert.Equal(t, "94", rows[1][11])

	// Soft check row carries score and contribution
	assert.Equal(t, "coverage", rows[2][0])
	assert.Equal(t, "90", rows[2][4])
	assert.Equal(t, "54", rows[2][6])
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleReport()))

	var decoded schema.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, schema.AutoMerge, decoded.OverallResult)
	require.NotNil(t, decoded.OverallScore)
	assert.Equal(t, 94, *decoded.OverallScore)
	assert.Len(t, decoded.Checks, 2)
}

func TestFormatScoreAndWeight(t *testing.T) {
	assert.Equal(t, "-", formatScore(nil))
	n := 73
	assert.Equal(t, "73", formatScore(&n))

	assert.Equal(t, "-", formatWeight(schema.ReportEntry{Enforcement: schema.HardEnforcement, Weight: 50}))
	assert.Equal(t, "50", formatWeight(schema.ReportEntry{Enforcement: schema.SoftEnforcement, Weight: 50}))
}

func TestDecisionEmoji(t *testing.T) {
	assert.Equal(t, "✅", decisionEmoji(schema.AutoMerge))
	assert.Equal(t, "\U0001F440", decisionEmoji(schema.ManualReview))
	assert.Equal(t, "⛔", decisionEmoji(schema.Blocked))
}
