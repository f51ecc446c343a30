package production

import (
	"time"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
)

// ConsumedProduced aggregates a recipe usage multiset into total consumed and
// produced quantities per material ticker
func ConsumedProduced(usage RecipeUsage) (consumed, produced map[string]int) {
	consumed = make(map[string]int)
	produced = make(map[string]int)
	for recipe, count := range usage {
		for _, line := range recipe.InputLines() {
			consumed[line.Ticker()] += line.Amount() * count
		}
		for _, line := range recipe.OutputLines() {
			produced[line.Ticker()] += line.Amount() * count
		}
	}
	return consumed, produced
}

// ProductionTime converts a recipe usage multiset into wall-clock duration.
// Instances of a building run independently and share the load evenly, so a
// recipe scheduled N times on a building with K instances takes N/K nominal
// durations. A building with no recorded site instance counts as one.
func ProductionTime(usage RecipeUsage, site *economy.Site) time.Duration {
	var total time.Duration
	for recipe, count := range usage {
		instances := site.Instances(recipe.Building().Ticker())
		if instances < 1 {
			instances = 1
		}
		total += recipe.Duration() * time.Duration(count) / time.Duration(instances)
	}
	return total
}

// Utilization scores each building's usage against its ceiling, rescaled so
// the most-saturated building reads 1.0 and the others are relative to it.
// When nothing ran (all raw ratios zero) every score is zero.
func Utilization(limits map[string]int, usage BuildingUsage) map[*economy.Building]float64 {
	ratios := make(map[*economy.Building]float64, len(usage))
	maxRatio := 0.0
	for building, used := range usage {
		limit := limits[building.Ticker()]
		if limit <= 0 {
			ratios[building] = 0
			continue
		}
		ratio := float64(used) / float64(limit)
		ratios[building] = ratio
		if ratio > maxRatio {
			maxRatio = ratio
		}
	}

	if maxRatio == 0 {
		return ratios
	}
	for building, ratio := range ratios {
		ratios[building] = ratio / maxRatio
	}
	return ratios
}
