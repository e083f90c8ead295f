package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/prgate/prgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(ValidationRun))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"decision",
		"weighted_score",
		"hard_checks_passed",
		"pr_number",
		"base_ref",
		"head_ref",
		"environments",
		"total_checks",
	}

	for _, colName := range expectedColumns {
		_, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestCheckOutcomeRowStructTags(t *testing.T) {
	pqSchema := parquet.SchemaOf(new(CheckOutcomeRow))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"run_id",
		"check_id",
		"status",
		"score",
		"detail",
		"attempts",
		"start_time",
		"end_time",
	}

	for _, colName := range expectedColumns {
		_, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestReportRowStructTags(t *testing.T) {
	pqSchema := parquet.SchemaOf(new(ReportRow))
	require.NotNil(t, pqSchema)

	for _, colName := range []string{"check_id", "overall_result", "overall_score", "pr_number"} {
		_, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteValidationRunsParquet(t *testing.T) {
	score := int32(94)
	envs := "staging"
	end := time.Now()
	runs := []ValidationRun{
		{
			RunID:            1,
			StartTime:        end.Add(-time.Minute),
			EndTime:          &end,
			Decision:         "auto_merge",
			WeightedScore:    &score,
			HardChecksPassed: true,
			PRNumber:         42,
			BaseRef:          "main",
			HeadRef:          "feature",
			Environments:     &envs,
			TotalChecks:      3,
		},
		{
			RunID:     2,
			StartTime: end,
			Decision:  "blocked",
			PRNumber:  43,
			BaseRef:   "main",
			HeadRef:   "hotfix",
		},
	}

	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteValidationRunsParquet(runs, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteCheckOutcomesParquet(t *testing.T) {
	score := int32(88)
	detail := "88% covered"
	rows := []CheckOutcomeRow{
		{RunID: 1, CheckID: "coverage", Status: "pass", Score: &score, Detail: &detail, Attempts: 1, StartTime: time.Now(), EndTime: time.Now()},
		{RunID: 1, CheckID: "build", Status: "fail", Attempts: 3, StartTime: time.Now(), EndTime: time.Now()},
	}

	path := filepath.Join(t.TempDir(), "checks.parquet")
	require.NoError(t, WriteCheckOutcomesParquet(rows, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteReportParquet(t *testing.T) {
	overall := 94
	checkScore := 90
	report := &schema.Report{
		OverallResult: schema.AutoMerge,
		OverallScore:  &overall,
		PR:            schema.PRContext{PRNumber: 42},
		Checks: []schema.ReportEntry{
			{ID: "coverage", Name: "Coverage", Enforcement: schema.SoftEnforcement, Status: schema.StatusPass,
				Score: &checkScore, Weight: 60, Contribution: 54, Detail: "90% covered", Attempts: 1, DurationMs: 950},
			{ID: "build", Name: "Build", Enforcement: schema.HardEnforcement, Status: schema.StatusPass, Attempts: 1, DurationMs: 1800},
		},
	}

	path := filepath.Join(t.TempDir(), "report.parquet")
	require.NoError(t, WriteReportParquet(report, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestConvertRunRecords(t *testing.T) {
	score := 75
	end := time.Now()
	records := []schema.RunRecord{
		{
			RunID: 1, StartedAt: end.Add(-time.Minute), FinishedAt: &end,
			Decision: schema.ManualReview, WeightedScore: &score, HardChecksPassed: true,
			PRNumber: 7, BaseRef: "main", HeadRef: "feature", Environments: "staging,nightly", TotalChecks: 2,
		},
		{RunID: 2, StartedAt: end, PRNumber: 8, BaseRef: "main", HeadRef: "wip"},
	}

	rows := ConvertRunRecords(records)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].RunID)
	assert.Equal(t, "manual_review", rows[0].Decision)
	require.NotNil(t, rows[0].WeightedScore)
	assert.Equal(t, int32(75), *rows[0].WeightedScore)
	require.NotNil(t, rows[0].Environments)
	assert.Equal(t, "staging,nightly", *rows[0].Environments)

	// Absent optionals stay nil
	assert.Nil(t, rows[1].WeightedScore)
	assert.Nil(t, rows[1].Environments)
	assert.Nil(t, rows[1].EndTime)
}

func TestConvertCheckRecords(t *testing.T) {
	score := 40
	records := []schema.HistoryCheckRecord{
		{RunID: 1, CheckID: "lint", Status: schema.StatusFail, Score: &score, Detail: "12 findings", Attempts: 2},
		{RunID: 1, CheckID: "build", Status: schema.StatusTimedOut, Attempts: 3},
	}

	rows := ConvertCheckRecords(records)
	require.Len(t, rows, 2)

	assert.Equal(t, "lint", rows[0].CheckID)
	require.NotNil(t, rows[0].Score)
	assert.Equal(t, int32(40), *rows[0].Score)
	require.NotNil(t, rows[0].Detail)
	assert.Equal(t, "12 findings", *rows[0].Detail)

	assert.Equal(t, "timed_out", rows[1].Status)
	assert.Nil(t, rows[1].Score)
	assert.Nil(t, rows[1].Detail)
}
