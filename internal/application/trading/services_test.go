package trading_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-go/internal/application/trading"
	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/exchange"
	"github.com/andrescamacho/prun-go/internal/domain/shared"
)

// fakeMarketStore serves order books, buildings, planets and storages from
// memory
type fakeMarketStore struct {
	books     map[string]*exchange.MaterialExchange
	buildings map[string]*economy.Building
	planets   map[string]*economy.Planet
	storages  map[string]*economy.Storage
}

func (s *fakeMarketStore) MaterialExchange(_ context.Context, materialTicker, exchangeCode string) (*exchange.MaterialExchange, error) {
	if book, ok := s.books[materialTicker+"."+exchangeCode]; ok {
		return book, nil
	}
	return nil, fmt.Errorf("order book %s.%s not found", materialTicker, exchangeCode)
}

func (s *fakeMarketStore) Building(_ context.Context, ticker string) (*economy.Building, error) {
	if building, ok := s.buildings[ticker]; ok {
		return building, nil
	}
	return nil, fmt.Errorf("building %s not found", ticker)
}

func (s *fakeMarketStore) Planet(_ context.Context, planetID string) (*economy.Planet, error) {
	if planet, ok := s.planets[planetID]; ok {
		return planet, nil
	}
	return nil, fmt.Errorf("planet %s not found", planetID)
}

func (s *fakeMarketStore) Storage(_ context.Context, planetID string) (*economy.Storage, error) {
	if storage, ok := s.storages[planetID]; ok {
		return storage, nil
	}
	return nil, fmt.Errorf("storage %s not found", planetID)
}

func mustTestMaterial(t *testing.T, ticker string, weight, volume float64) *economy.Material {
	t.Helper()
	material, err := economy.NewMaterial(ticker, ticker, "test", weight, volume)
	require.NoError(t, err)
	return material
}

func mustOrder(t *testing.T, id string, quantity exchange.Quantity, price float64) exchange.Order {
	t.Helper()
	order, err := exchange.NewOrder(id, "TESTCO", quantity, price)
	require.NoError(t, err)
	return order
}

func mustBook(t *testing.T, material *economy.Material, code string, buying, selling []exchange.Order) *exchange.MaterialExchange {
	t.Helper()
	book, err := exchange.NewMaterialExchange(material, code, "CIS", buying, selling)
	require.NoError(t, err)
	return book
}

func TestArbitrageService_FindArbitrage(t *testing.T) {
	// Arrange - buy at 10 on CI1, sell at 14 on NC1
	rat := mustTestMaterial(t, "RAT", 0.21, 0.1)
	store := &fakeMarketStore{
		books: map[string]*exchange.MaterialExchange{
			"RAT.CI1": mustBook(t, rat, "CI1", nil,
				[]exchange.Order{mustOrder(t, "s1", exchange.QuantityOf(100), 10)}),
			"RAT.NC1": mustBook(t, rat, "NC1",
				[]exchange.Order{mustOrder(t, "b1", exchange.QuantityOf(60), 14)}, nil),
		},
	}
	clock := shared.NewMockClock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))
	service := trading.NewArbitrageService(store, clock)

	// Act
	report, err := service.FindArbitrage(context.Background(), trading.ArbitrageQuery{
		MaterialTicker:  "RAT",
		BuyFromExchange: "CI1",
		SellToExchange:  "NC1",
	})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, clock.CurrentTime, report.GeneratedAt)
	assert.Equal(t, 60, report.Units)
	assert.InDelta(t, 240.0, report.Profit, 1e-9)
	assert.Equal(t, "CIS", report.Currency)
}

func TestArbitrageService_MissingBookFails(t *testing.T) {
	// Arrange
	store := &fakeMarketStore{books: map[string]*exchange.MaterialExchange{}}
	service := trading.NewArbitrageService(store, nil)

	// Act
	_, err := service.FindArbitrage(context.Background(), trading.ArbitrageQuery{
		MaterialTicker:  "RAT",
		BuyFromExchange: "CI1",
		SellToExchange:  "NC1",
	})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load RAT order book at CI1")
}

func newConstructionStore(t *testing.T) *fakeMarketStore {
	t.Helper()

	bse := mustTestMaterial(t, "BSE", 0.3, 0.5)
	mcg := mustTestMaterial(t, "MCG", 0.24, 0.1)
	hcp := mustTestMaterial(t, "HCP", 0.5, 1.0)

	crops, err := economy.NewRecipe("out", nil,
		[]economy.RecipeLine{mustRecipeLine(t, hcp, 4)}, 6*time.Hour)
	require.NoError(t, err)
	farm, err := economy.NewBuilding("FRM", "Farm", 25,
		[]*economy.Recipe{crops}, map[string]int{"BSE": 4})
	require.NoError(t, err)

	// rocky planet: MCG surcharge of area x 4
	planet, err := economy.NewPlanet("UV-351a", "Test", true, 1.0, 1.0, 20, "CIS")
	require.NoError(t, err)

	storage, err := economy.NewStorage("base", map[string]int{"BSE": 1})
	require.NoError(t, err)

	return &fakeMarketStore{
		books: map[string]*exchange.MaterialExchange{
			"BSE.CI1": mustBook(t, bse, "CI1", nil,
				[]exchange.Order{mustOrder(t, "s-bse", exchange.QuantityOf(50), 100)}),
			"MCG.CI1": mustBook(t, mcg, "CI1", nil,
				[]exchange.Order{mustOrder(t, "s-mcg", exchange.QuantityOf(500), 2)}),
		},
		buildings: map[string]*economy.Building{"FRM": farm},
		planets:   map[string]*economy.Planet{"UV-351a": planet},
		storages:  map[string]*economy.Storage{"UV-351a": storage},
	}
}

func mustRecipeLine(t *testing.T, material *economy.Material, amount int) economy.RecipeLine {
	t.Helper()
	line, err := economy.NewRecipeLine(material, amount)
	require.NoError(t, err)
	return line
}

func TestConstructionCostService_EstimateBuildingCost(t *testing.T) {
	// Arrange
	store := newConstructionStore(t)
	service := trading.NewConstructionCostService(store, nil)

	// Act
	report, err := service.EstimateBuildingCost(context.Background(), trading.ConstructionQuery{
		BuildingTicker: "FRM",
		PlanetID:       "UV-351a",
		ExchangeCode:   "CI1",
	})

	// Assert - 4 BSE base plus 100 MCG surface surcharge
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"BSE": 4, "MCG": 100}, report.Bill)
	assert.InDelta(t, 4*100.0+100*2.0, report.Estimate.Total, 1e-9)
	assert.Equal(t, "CIS", report.Estimate.Currency)
}

func TestConstructionCostService_StorageOffset(t *testing.T) {
	// Arrange - 1 of 4 BSE already stored at the planet
	store := newConstructionStore(t)
	service := trading.NewConstructionCostService(store, nil)

	// Act
	report, err := service.EstimateBuildingCost(context.Background(), trading.ConstructionQuery{
		BuildingTicker: "FRM",
		PlanetID:       "UV-351a",
		ExchangeCode:   "CI1",
		UseStorage:     true,
	})

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 3*100.0+100*2.0, report.Estimate.Total, 1e-9)
	assert.Equal(t, 1, report.Estimate.InStorage["BSE"])
}

func TestConstructionCostService_InsufficientMarket(t *testing.T) {
	// Arrange - drain the MCG book below the surcharge demand
	store := newConstructionStore(t)
	mcg := mustTestMaterial(t, "MCG", 0.24, 0.1)
	store.books["MCG.CI1"] = mustBook(t, mcg, "CI1", nil,
		[]exchange.Order{mustOrder(t, "s-mcg", exchange.QuantityOf(10), 2)})
	service := trading.NewConstructionCostService(store, nil)

	// Act
	_, err := service.EstimateBuildingCost(context.Background(), trading.ConstructionQuery{
		BuildingTicker: "FRM",
		PlanetID:       "UV-351a",
		ExchangeCode:   "CI1",
	})

	// Assert
	require.Error(t, err)
	var insufficient *exchange.InsufficientSupplyError
	assert.ErrorAs(t, err, &insufficient)
}
