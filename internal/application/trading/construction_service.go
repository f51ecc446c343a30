package trading

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/exchange"
	"github.com/andrescamacho/prun-go/internal/domain/shared"
)

// ConstructionQuery prices building one structure on a planet, sourcing the
// bill of materials from one market. UseStorage offsets the bill with
// materials already stored at the planet.
type ConstructionQuery struct {
	BuildingTicker string
	PlanetID       string
	ExchangeCode   string
	UseStorage     bool
}

// ConstructionReport itemizes the full bill of materials, base costs plus
// environment surcharges, and its market price.
type ConstructionReport struct {
	ReportID       string
	BuildingTicker string
	PlanetID       string
	ExchangeCode   string
	GeneratedAt    time.Time

	// Bill is the merged base-plus-surcharge requirement per material
	Bill     map[string]int
	Estimate *exchange.CostEstimate
}

// ConstructionCostService prices building construction against order books.
type ConstructionCostService struct {
	store ConstructionStore
	clock shared.Clock
}

func NewConstructionCostService(store ConstructionStore, clock shared.Clock) *ConstructionCostService {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ConstructionCostService{store: store, clock: clock}
}

// EstimateBuildingCost composes the building's base construction costs with
// the planet's environment surcharges and prices the combined bill on the
// given market.
func (s *ConstructionCostService) EstimateBuildingCost(ctx context.Context, query ConstructionQuery) (*ConstructionReport, error) {
	building, err := s.store.Building(ctx, query.BuildingTicker)
	if err != nil {
		return nil, fmt.Errorf("failed to load building %s: %w", query.BuildingTicker, err)
	}
	planet, err := s.store.Planet(ctx, query.PlanetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load planet %s: %w", query.PlanetID, err)
	}

	bill := building.ConstructionCosts()
	for ticker, amount := range planet.AdditionalBuildMaterials(building.AreaCost()) {
		bill[ticker] += amount
	}

	books, err := s.loadBooks(ctx, bill, query.ExchangeCode)
	if err != nil {
		return nil, err
	}

	var storage *economy.Storage
	if query.UseStorage {
		stored, err := s.store.Storage(ctx, query.PlanetID)
		if err != nil {
			return nil, fmt.Errorf("failed to load storage for %s: %w", query.PlanetID, err)
		}
		storage = stored
	}

	estimate, err := exchange.EstimateCost(bill, books, storage)
	if err != nil {
		return nil, err
	}

	return &ConstructionReport{
		ReportID:       uuid.NewString(),
		BuildingTicker: query.BuildingTicker,
		PlanetID:       query.PlanetID,
		ExchangeCode:   query.ExchangeCode,
		GeneratedAt:    s.clock.Now(),
		Bill:           bill,
		Estimate:       estimate,
	}, nil
}

// loadBooks fetches one sell book per billed material, in deterministic
// ticker order
func (s *ConstructionCostService) loadBooks(ctx context.Context, bill map[string]int, exchangeCode string) (map[string]*exchange.MaterialExchange, error) {
	tickers := make([]string, 0, len(bill))
	for ticker := range bill {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	books := make(map[string]*exchange.MaterialExchange, len(bill))
	for _, ticker := range tickers {
		book, err := s.store.MaterialExchange(ctx, ticker, exchangeCode)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s order book at %s: %w", ticker, exchangeCode, err)
		}
		books[ticker] = book
	}
	return books, nil
}
