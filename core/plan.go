package core

import (
	"github.com/prgate/prgate/schema"
)

// executionPlan is the dependency-resolution structure the scheduler works
// from. Only enabled checks participate; edges touching disabled checks are
// dropped at plan time, which makes them inert ordering hints rather than
// hard contracts.
type executionPlan struct {
	checks     map[string]schema.CheckDefinition
	order      []string            // declaration order, used for deterministic seeding
	prereqs    map[string]int      // dependent id -> outstanding prerequisite count
	dependents map[string][]string // prerequisite id -> dependent ids
}

// buildPlan derives the execution graph from the effective config. A cycle in
// the dependency edges means the scheduler could never release every check,
// so it surfaces as an EngineError before any check starts.
func buildPlan(eff *schema.EffectiveConfig) (*executionPlan, error) {
	plan := &executionPlan{
		checks:     map[string]schema.CheckDefinition{},
		prereqs:    map[string]int{},
		dependents: map[string][]string{},
	}
	for _, def := range eff.EnabledChecks() {
		plan.checks[def.ID] = def
		plan.order = append(plan.order, def.ID)
		plan.prereqs[def.ID] = 0
	}

	for _, edge := range eff.Dependencies {
		if _, ok := plan.checks[edge.Prerequisite]; !ok {
			continue // disabled prerequisite: the edge is inert
		}
		if _, ok := plan.checks[edge.Dependent]; !ok {
			continue // disabled dependent: nothing to delay
		}
		plan.prereqs[edge.Dependent]++
		plan.dependents[edge.Prerequisite] = append(plan.dependents[edge.Prerequisite], edge.Dependent)
	}

	if err := plan.checkAcyclic(); err != nil {
		return nil, err
	}
	return plan, nil
}

// checkAcyclic runs a Kahn pass over a scratch copy of the prerequisite
// counts and fails when not every check can be released.
func (p *executionPlan) checkAcyclic() error {
	remaining := make(map[string]int, len(p.prereqs))
	for id, n := range p.prereqs {
		remaining[id] = n
	}

	var ready []string
	for _, id := range p.order {
		if remaining[id] == 0 {
			ready = append(ready, id)
		}
	}

	released := 0
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		released++
		for _, dep := range p.dependents[id] {
			remaining[dep]--
			if remaining[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if released != len(p.checks) {
		return &schema.EngineError{Detail: "sequential dependencies form a cycle; no schedule exists"}
	}
	return nil
}

// size returns the number of schedulable checks.
func (p *executionPlan) size() int {
	return len(p.checks)
}
