package planning_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-go/internal/application/planning"
	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/shared"
)

// fakeEntityStore serves pre-built snapshots from memory
type fakeEntityStore struct {
	materials map[string]*economy.Material
	buildings map[string]*economy.Building
	sites     map[string]*economy.Site
	storages  map[string]*economy.Storage
}

func (s *fakeEntityStore) Material(_ context.Context, ticker string) (*economy.Material, error) {
	if material, ok := s.materials[ticker]; ok {
		return material, nil
	}
	return nil, fmt.Errorf("material %s not found", ticker)
}

func (s *fakeEntityStore) Building(_ context.Context, ticker string) (*economy.Building, error) {
	if building, ok := s.buildings[ticker]; ok {
		return building, nil
	}
	return nil, fmt.Errorf("building %s not found", ticker)
}

func (s *fakeEntityStore) Site(_ context.Context, planetID string) (*economy.Site, error) {
	if site, ok := s.sites[planetID]; ok {
		return site, nil
	}
	return nil, fmt.Errorf("site %s not found", planetID)
}

func (s *fakeEntityStore) Storage(_ context.Context, planetID string) (*economy.Storage, error) {
	if storage, ok := s.storages[planetID]; ok {
		return storage, nil
	}
	return nil, fmt.Errorf("storage %s not found", planetID)
}

func newChainStore(t *testing.T) *fakeEntityStore {
	t.Helper()

	mustMaterial := func(ticker string) *economy.Material {
		material, err := economy.NewMaterial(ticker, ticker, "test", 1.0, 1.0)
		require.NoError(t, err)
		return material
	}
	mustLine := func(material *economy.Material, amount int) economy.RecipeLine {
		line, err := economy.NewRecipeLine(material, amount)
		require.NoError(t, err)
		return line
	}

	h2o := mustMaterial("H2O")
	hcp := mustMaterial("HCP")
	grn := mustMaterial("GRN")
	c := mustMaterial("C")

	farmRecipe, err := economy.NewRecipe("4xH2O=4xHCP",
		[]economy.RecipeLine{mustLine(h2o, 4)},
		[]economy.RecipeLine{mustLine(hcp, 4)},
		6*time.Hour)
	require.NoError(t, err)
	incRecipe, err := economy.NewRecipe("2xHCP-2xGRN=2xC",
		[]economy.RecipeLine{mustLine(hcp, 2), mustLine(grn, 2)},
		[]economy.RecipeLine{mustLine(c, 2)},
		12*time.Hour)
	require.NoError(t, err)

	farm, err := economy.NewBuilding("FRM", "Farm", 25, []*economy.Recipe{farmRecipe}, nil)
	require.NoError(t, err)
	incinerator, err := economy.NewBuilding("INC", "Incinerator", 12, []*economy.Recipe{incRecipe}, nil)
	require.NoError(t, err)

	farmAtSite, err := economy.NewSiteBuilding(farm, 1)
	require.NoError(t, err)
	incAtSite, err := economy.NewSiteBuilding(incinerator, 1)
	require.NoError(t, err)
	site, err := economy.NewSite("UV-351a", []economy.SiteBuilding{farmAtSite, incAtSite})
	require.NoError(t, err)

	storage, err := economy.NewStorage("base", map[string]int{"H2O": 40, "GRN": 40})
	require.NoError(t, err)

	return &fakeEntityStore{
		materials: map[string]*economy.Material{"H2O": h2o, "HCP": hcp, "GRN": grn, "C": c},
		buildings: map[string]*economy.Building{"FRM": farm, "INC": incinerator},
		sites:     map[string]*economy.Site{"UV-351a": site},
		storages:  map[string]*economy.Storage{"UV-351a": storage},
	}
}

func TestService_PlanProduction(t *testing.T) {
	// Arrange
	store := newChainStore(t)
	clock := shared.NewMockClock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))
	service := planning.NewService(store, clock, 20)
	selection := planning.RecipeSelection{
		"FRM": {"4xH2O=4xHCP"},
		"INC": {"2xHCP-2xGRN=2xC"},
	}

	// Act
	report, err := service.PlanProduction(context.Background(), "UV-351a", "C", selection, nil)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, report.PlanID)
	assert.Equal(t, "UV-351a", report.PlanetID)
	assert.Equal(t, "C", report.Target)
	assert.Equal(t, clock.CurrentTime, report.GeneratedAt)
	assert.Equal(t, 40, report.Producible)

	require.Len(t, report.RecipeRuns, 2)
	assert.Equal(t, "FRM", report.RecipeRuns[0].BuildingTicker)
	assert.Equal(t, 10, report.RecipeRuns[0].Runs)
	assert.Equal(t, "INC", report.RecipeRuns[1].BuildingTicker)
	assert.Equal(t, 20, report.RecipeRuns[1].Runs)

	assert.Equal(t, 40, report.Consumed["H2O"])
	assert.Equal(t, 40, report.Produced["C"])
	// 10 farm runs on 1 instance plus 20 incinerator runs on 1 instance
	assert.Equal(t, 10*6*time.Hour+20*12*time.Hour, report.ProductionTime)

	require.Len(t, report.Utilization, 2)
	assert.Equal(t, "INC", report.Utilization[1].BuildingTicker)
	assert.InDelta(t, 1.0, report.Utilization[1].Score, 1e-9)
}

func TestService_PlanProduction_UnknownRecipe(t *testing.T) {
	// Arrange
	store := newChainStore(t)
	service := planning.NewService(store, nil, 20)
	selection := planning.RecipeSelection{
		"FRM": {"no-such-recipe"},
	}

	// Act
	_, err := service.PlanProduction(context.Background(), "UV-351a", "C", selection, nil)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipe FRM -> no-such-recipe")
}

func TestService_PlanProduction_UnknownPlanet(t *testing.T) {
	// Arrange
	store := newChainStore(t)
	service := planning.NewService(store, nil, 20)

	// Act
	_, err := service.PlanProduction(context.Background(), "XX-000x", "C", nil, nil)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load site")
}
