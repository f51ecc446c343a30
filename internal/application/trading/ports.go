package trading

import (
	"context"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/exchange"
)

// ExchangeStore supplies order book snapshots, one per (material, market)
type ExchangeStore interface {
	MaterialExchange(ctx context.Context, materialTicker, exchangeCode string) (*exchange.MaterialExchange, error)
}

// ConstructionStore supplies the entities needed to price a building
// construction on a planet
type ConstructionStore interface {
	ExchangeStore
	Building(ctx context.Context, ticker string) (*economy.Building, error)
	Planet(ctx context.Context, planetID string) (*economy.Planet, error)
	Storage(ctx context.Context, planetID string) (*economy.Storage, error)
}
