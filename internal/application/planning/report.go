package planning

import (
	"sort"
	"time"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/production"
)

// RecipeRun is one recipe's scheduled run count in a plan
type RecipeRun struct {
	BuildingTicker string
	RecipeName     string
	Runs           int
}

// BuildingUtilization is one building's usage against its ceiling, with the
// max-normalized saturation score
type BuildingUtilization struct {
	BuildingTicker string
	Runs           int
	Limit          int
	Score          float64
}

// Report is the plain-data outcome of one production planning run
type Report struct {
	PlanID         string
	PlanetID       string
	Target         string
	GeneratedAt    time.Time
	Producible     int
	FinalPool      map[string]int
	RecipeRuns     []RecipeRun
	Consumed       map[string]int
	Produced       map[string]int
	ProductionTime time.Duration
	Utilization    []BuildingUtilization
}

func buildReport(result *production.PlanResult, site *economy.Site) *Report {
	consumed, produced := production.ConsumedProduced(result.RecipeUsage)

	runs := make([]RecipeRun, 0, len(result.RecipeUsage))
	for recipe, count := range result.RecipeUsage {
		runs = append(runs, RecipeRun{
			BuildingTicker: recipe.Building().Ticker(),
			RecipeName:     recipe.Name(),
			Runs:           count,
		})
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].BuildingTicker != runs[j].BuildingTicker {
			return runs[i].BuildingTicker < runs[j].BuildingTicker
		}
		return runs[i].RecipeName < runs[j].RecipeName
	})

	scores := production.Utilization(result.Limits, result.BuildingUsage)
	utilization := make([]BuildingUtilization, 0, len(result.BuildingUsage))
	for building, used := range result.BuildingUsage {
		utilization = append(utilization, BuildingUtilization{
			BuildingTicker: building.Ticker(),
			Runs:           used,
			Limit:          result.Limits[building.Ticker()],
			Score:          scores[building],
		})
	}
	sort.Slice(utilization, func(i, j int) bool {
		return utilization[i].BuildingTicker < utilization[j].BuildingTicker
	})

	return &Report{
		Target:         result.Target,
		Producible:     result.Producible(),
		FinalPool:      result.Pool,
		RecipeRuns:     runs,
		Consumed:       consumed,
		Produced:       produced,
		ProductionTime: production.ProductionTime(result.RecipeUsage, site),
		Utilization:    utilization,
	}
}
