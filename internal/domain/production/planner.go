package production

import (
	"log"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
)

// DefaultRunsPerInstance is the per-instance run multiplier used to derive
// building ceilings when the caller supplies none: each constructed instance
// of a building may be scheduled this many times per plan, matching the
// per-order quantity cap of the game.
const DefaultRunsPerInstance = 20

// Planner answers "how much more of a material can be manufactured at this
// site", given a chosen recipe per output material. It is a pure domain
// service: all state lives in the per-call PlanResult.
type Planner struct {
	site            *economy.Site
	storage         *economy.Storage
	runsPerInstance int
}

// NewPlanner creates a planner for one site and storage snapshot
func NewPlanner(site *economy.Site, storage *economy.Storage) *Planner {
	return &Planner{
		site:            site,
		storage:         storage,
		runsPerInstance: DefaultRunsPerInstance,
	}
}

// WithRunsPerInstance overrides the default ceiling multiplier
func (p *Planner) WithRunsPerInstance(runs int) *Planner {
	if runs > 0 {
		p.runsPerInstance = runs
	}
	return p
}

// PlanResult is the outcome of one planning run
type PlanResult struct {
	Target        string
	Pool          ResourcePool
	RecipeUsage   RecipeUsage
	BuildingUsage BuildingUsage
	Limits        map[string]int
}

// Producible returns how much of the target material the plan yields
func (r *PlanResult) Producible() int {
	return r.Pool[r.Target]
}

// Plan simulates producing as much of the target material as possible from
// current storage plus chained intermediate production.
//
// Exactly one candidate recipe must produce the target material; zero or
// several is a configuration error. Pre-existing stock of the target itself
// is ignored: the plan answers "how much more can be made", not "how much
// exists". When limits is nil, ceilings default to
// siteInstances × runsPerInstance per building.
func (p *Planner) Plan(target string, candidates []*economy.Recipe, limits map[string]int) (*PlanResult, error) {
	requirements := make(map[string]*economy.Recipe)
	var producers []*economy.Recipe
	for _, recipe := range candidates {
		if recipe.IsOutput(target) {
			producers = append(producers, recipe)
		}
		for _, line := range recipe.OutputLines() {
			if existing, ok := requirements[line.Ticker()]; ok {
				log.Printf("WARNING: duplicate recipe for material %s: keeping %s, ignoring %s. Please avoid duplicate recipes!",
					line.Ticker(), existing.ID(), recipe.ID())
				continue
			}
			requirements[line.Ticker()] = recipe
		}
	}

	if len(producers) == 0 {
		return nil, NewNoProducerError(target)
	}
	if len(producers) > 1 {
		ids := make([]string, len(producers))
		for i, r := range producers {
			ids[i] = r.ID()
		}
		return nil, NewAmbiguousProducerError(target, ids)
	}
	producer := producers[0]

	if limits == nil {
		limits = make(map[string]int)
		for _, recipe := range candidates {
			ticker := recipe.Building().Ticker()
			limits[ticker] = p.site.Instances(ticker) * p.runsPerInstance
		}
	}

	state := NewSimulationState(limits, requirements)
	if err := GatherAvailable(producer, p.site, p.storage, state.Pool); err != nil {
		return nil, err
	}
	state.Pool[target] = 0

	if _, err := Simulate(producer, state, true); err != nil {
		return nil, err
	}

	return &PlanResult{
		Target:        target,
		Pool:          state.Pool,
		RecipeUsage:   state.RecipeUsage,
		BuildingUsage: state.BuildingUsage,
		Limits:        limits,
	}, nil
}
