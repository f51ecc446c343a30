package planning

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/production"
	"github.com/andrescamacho/prun-go/internal/domain/shared"
)

// RecipeSelection names the candidate recipes per building ticker, e.g.
//
//	{"FRM": {"2xH2O=4xHCP"}, "INC": {"4xHCP 2xGRN 2xMAI=4xC"}}
type RecipeSelection map[string][]string

// Service runs production plans against entity snapshots from the store.
type Service struct {
	store           EntityStore
	clock           shared.Clock
	runsPerInstance int
}

// NewService creates a planning service. runsPerInstance <= 0 falls back to
// the domain default.
func NewService(store EntityStore, clock shared.Clock, runsPerInstance int) *Service {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if runsPerInstance <= 0 {
		runsPerInstance = production.DefaultRunsPerInstance
	}
	return &Service{store: store, clock: clock, runsPerInstance: runsPerInstance}
}

// PlanProduction resolves the selected recipes, simulates producing as much
// of the target material as possible at the planet, and derives the report
// metrics. When limits is nil, per-building ceilings default to
// siteInstances × runsPerInstance.
func (s *Service) PlanProduction(ctx context.Context, planetID, target string, selection RecipeSelection, limits map[string]int) (*Report, error) {
	site, err := s.store.Site(ctx, planetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load site for %s: %w", planetID, err)
	}
	storage, err := s.store.Storage(ctx, planetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage for %s: %w", planetID, err)
	}

	candidates, err := s.resolveCandidates(ctx, selection)
	if err != nil {
		return nil, err
	}

	planner := production.NewPlanner(site, storage).WithRunsPerInstance(s.runsPerInstance)
	result, err := planner.Plan(target, candidates, limits)
	if err != nil {
		return nil, err
	}

	report := buildReport(result, site)
	report.PlanID = uuid.NewString()
	report.PlanetID = planetID
	report.GeneratedAt = s.clock.Now()
	return report, nil
}

// resolveCandidates looks up every selected recipe on its building, in
// deterministic building order
func (s *Service) resolveCandidates(ctx context.Context, selection RecipeSelection) ([]*economy.Recipe, error) {
	buildingTickers := make([]string, 0, len(selection))
	for ticker := range selection {
		buildingTickers = append(buildingTickers, ticker)
	}
	sort.Strings(buildingTickers)

	var candidates []*economy.Recipe
	for _, buildingTicker := range buildingTickers {
		building, err := s.store.Building(ctx, buildingTicker)
		if err != nil {
			return nil, fmt.Errorf("failed to load building %s: %w", buildingTicker, err)
		}
		for _, recipeName := range selection[buildingTicker] {
			recipe, ok := building.Recipe(recipeName)
			if !ok {
				return nil, shared.NewConfigurationError(
					fmt.Sprintf("invalid recipe %s -> %s", buildingTicker, recipeName))
			}
			candidates = append(candidates, recipe)
		}
	}
	return candidates, nil
}
