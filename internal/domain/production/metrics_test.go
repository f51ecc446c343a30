package production_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/production"
)

func TestConsumedProduced(t *testing.T) {
	// Arrange
	fixture := newChainFixture(t)
	usage := production.RecipeUsage{
		fixture.farmRecipe: 2,
		fixture.incRecipe:  3,
	}

	// Act
	consumed, produced := production.ConsumedProduced(usage)

	// Assert
	assert.Equal(t, 8, consumed["H2O"])
	assert.Equal(t, 6, consumed["HCP"])
	assert.Equal(t, 6, consumed["GRN"])
	assert.Equal(t, 8, produced["HCP"])
	assert.Equal(t, 6, produced["C"])
	assert.NotContains(t, consumed, "C")
}

func TestProductionTime_SharedAcrossInstances(t *testing.T) {
	// Arrange - 4 incinerator runs on 2 instances take 2 nominal durations
	fixture := newChainFixture(t)
	site := newSite(t, "UV-351a",
		map[*economy.Building]int{fixture.incinerator: 2},
		[]*economy.Building{fixture.incinerator})
	usage := production.RecipeUsage{fixture.incRecipe: 4}

	// Act
	total := production.ProductionTime(usage, site)

	// Assert
	assert.Equal(t, 24*time.Hour, total)
}

func TestProductionTime_MissingBuildingCountsAsOne(t *testing.T) {
	// Arrange - the farm is not built at this site
	fixture := newChainFixture(t)
	site := newSite(t, "UV-351a",
		map[*economy.Building]int{fixture.incinerator: 1},
		[]*economy.Building{fixture.incinerator})
	usage := production.RecipeUsage{fixture.farmRecipe: 3}

	// Act
	total := production.ProductionTime(usage, site)

	// Assert
	assert.Equal(t, 18*time.Hour, total)
}

func TestUtilization_NormalizedToMostSaturated(t *testing.T) {
	// Arrange
	fixture := newChainFixture(t)
	limits := map[string]int{"FRM": 20, "INC": 20}
	usage := production.BuildingUsage{
		fixture.farm:        10,
		fixture.incinerator: 20,
	}

	// Act
	scores := production.Utilization(limits, usage)

	// Assert
	assert.InDelta(t, 0.5, scores[fixture.farm], 1e-9)
	assert.InDelta(t, 1.0, scores[fixture.incinerator], 1e-9)
}

func TestUtilization_BoundsAndPeak(t *testing.T) {
	// Arrange
	fixture := newChainFixture(t)
	limits := map[string]int{"FRM": 40, "INC": 10}
	usage := production.BuildingUsage{
		fixture.farm:        7,
		fixture.incinerator: 4,
	}

	// Act
	scores := production.Utilization(limits, usage)

	// Assert - every score in [0,1] and at least one reads exactly 1.0
	require.NotEmpty(t, scores)
	peak := 0.0
	for _, score := range scores {
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
		if score > peak {
			peak = score
		}
	}
	assert.InDelta(t, 1.0, peak, 1e-9)
}

func TestUtilization_AllZeroUsage(t *testing.T) {
	// Arrange
	fixture := newChainFixture(t)
	limits := map[string]int{"FRM": 20, "INC": 20}
	usage := production.BuildingUsage{
		fixture.farm:        0,
		fixture.incinerator: 0,
	}

	// Act
	scores := production.Utilization(limits, usage)

	// Assert
	for building, score := range scores {
		assert.Zero(t, score, "building %s should read zero", building.Ticker())
	}
}

func TestUtilization_ZeroLimitScoresZero(t *testing.T) {
	// Arrange - a building with no ceiling entry contributes a zero ratio
	// rather than dividing by zero
	fixture := newChainFixture(t)
	limits := map[string]int{"INC": 10}
	usage := production.BuildingUsage{
		fixture.farm:        5,
		fixture.incinerator: 5,
	}

	// Act
	scores := production.Utilization(limits, usage)

	// Assert
	assert.Zero(t, scores[fixture.farm])
	assert.InDelta(t, 1.0, scores[fixture.incinerator], 1e-9)
}
