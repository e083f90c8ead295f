package core

import (
	"context"
	"path/filepath"
	"time"

	"github.com/prgate/prgate/internal/actionexec"
	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/internal/suite"
	"github.com/prgate/prgate/schema"
)

// LoadEffective loads the suite file for the run and resolves it against the
// configured environment tags. Non-fatal findings are surfaced as warnings on
// stderr; configuration errors abort the run before any check starts.
func LoadEffective(cfg *contract.Config) (*schema.EffectiveConfig, error) {
	suitePath := cfg.SuitePath
	if !filepath.IsAbs(suitePath) {
		suitePath = filepath.Join(cfg.RepoPath, suitePath)
	}

	suiteCfg, err := suite.Load(suitePath)
	if err != nil {
		return nil, err
	}

	eff, err := suite.ResolveForEnvironment(suiteCfg, cfg.Environments)
	if err != nil {
		return nil, err
	}

	for _, warning := range suite.Validate(suiteCfg, eff) {
		contract.LogWarning(string(warning))
	}
	return eff, nil
}

// ExecuteValidation runs the full validation pipeline for one pull request:
// execute every enabled check, score the results and render the report.
// History tracking is best effort; store failures degrade to warnings and
// never change the run's outcome.
func ExecuteValidation(ctx context.Context, cfg *contract.Config, eff *schema.EffectiveConfig, mgr contract.HistoryManager) (*schema.Report, error) {
	workers := eff.MaxParallelJobs
	if cfg.Workers > 0 {
		workers = cfg.Workers
	}

	pr := cfg.PRContext()
	executor := actionexec.NewProcessExecutor()
	engine := NewEngine(NewRunner(executor, eff.Retry), workers)

	// Begin history tracking before the first check starts.
	var runID int64
	store := mgr.GetHistoryStore()
	if store != nil {
		var err error
		runID, err = store.BeginRun(time.Now(), pr, cfg.Environments)
		if err != nil {
			contract.LogWarn("History tracking initialization failed", err)
			runID = 0
		}
	}

	outcome, err := engine.Execute(ctx, eff, pr)
	if err != nil {
		return nil, err
	}

	if store != nil && runID > 0 {
		for _, result := range outcome.Results {
			if err := store.RecordCheckResult(runID, result); err != nil {
				contract.LogWarn("Failed to record check result for "+result.CheckID, err)
			}
		}
		if err := store.CompleteRun(runID, outcome); err != nil {
			contract.LogWarn("Failed to finalize history tracking", err)
		}
	}

	return BuildReport(eff, pr, cfg.Environments, outcome), nil
}
