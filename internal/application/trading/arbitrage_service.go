package trading

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/prun-go/internal/domain/exchange"
	"github.com/andrescamacho/prun-go/internal/domain/shared"
)

// ArbitrageQuery names the material and the two markets to compare, plus the
// cargo constraints of the ship that would carry the goods.
type ArbitrageQuery struct {
	MaterialTicker       string
	BuyFromExchange      string
	SellToExchange       string
	MaxVolume            float64
	MaxWeight            float64
	StopWhenUnprofitable bool
}

// ArbitrageReport is the outcome of matching one market's sell book against
// another's buy book.
type ArbitrageReport struct {
	ReportID       string
	MaterialTicker string
	BuyFrom        string
	SellTo         string
	Currency       string
	GeneratedAt    time.Time

	Units  int
	Profit float64
	Volume float64
	Weight float64

	SellOrders []exchange.Order
	BuyOrders  []exchange.Order
}

// ArbitrageService estimates cross-market trades from order book snapshots.
type ArbitrageService struct {
	store ExchangeStore
	clock shared.Clock
}

func NewArbitrageService(store ExchangeStore, clock shared.Clock) *ArbitrageService {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ArbitrageService{store: store, clock: clock}
}

// FindArbitrage fetches both books and matches buying low on one market
// against selling high on the other.
func (s *ArbitrageService) FindArbitrage(ctx context.Context, query ArbitrageQuery) (*ArbitrageReport, error) {
	sellBook, err := s.store.MaterialExchange(ctx, query.MaterialTicker, query.BuyFromExchange)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s order book at %s: %w",
			query.MaterialTicker, query.BuyFromExchange, err)
	}
	buyBook, err := s.store.MaterialExchange(ctx, query.MaterialTicker, query.SellToExchange)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s order book at %s: %w",
			query.MaterialTicker, query.SellToExchange, err)
	}

	result, err := exchange.CompareAllOrders(sellBook, buyBook, exchange.MatchOptions{
		MaxVolume:            query.MaxVolume,
		MaxWeight:            query.MaxWeight,
		StopWhenUnprofitable: query.StopWhenUnprofitable,
	})
	if err != nil {
		return nil, err
	}

	return &ArbitrageReport{
		ReportID:       uuid.NewString(),
		MaterialTicker: query.MaterialTicker,
		BuyFrom:        query.BuyFromExchange,
		SellTo:         query.SellToExchange,
		Currency:       sellBook.Currency(),
		GeneratedAt:    s.clock.Now(),
		Units:          result.Units,
		Profit:         result.Profit,
		Volume:         result.Volume,
		Weight:         result.Weight,
		SellOrders:     result.SellOrders,
		BuyOrders:      result.BuyOrders,
	}, nil
}
