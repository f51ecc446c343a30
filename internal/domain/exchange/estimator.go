package exchange

import (
	"sort"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
)

// CostEstimate prices a required-materials bill against sell order books.
type CostEstimate struct {
	Total       float64
	PerMaterial map[string]float64
	Currency    string
	Required    map[string]int
	InStorage   map[string]int
}

// EstimateCost walks each material's sell book cheapest-first and prices
// filling the shortfall between the required amount and what storage already
// holds (storage may be nil). If any book is exhausted before its demand is
// met the whole estimate fails with an InsufficientSupplyError: the bill
// cannot be fully sourced on this market, and a partial price would be
// misleading.
func EstimateCost(required map[string]int, books map[string]*MaterialExchange, storage *economy.Storage) (*CostEstimate, error) {
	estimate := &CostEstimate{
		PerMaterial: make(map[string]float64, len(required)),
		Required:    make(map[string]int, len(required)),
		InStorage:   make(map[string]int, len(required)),
	}

	tickers := make([]string, 0, len(required))
	for ticker := range required {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		amount := required[ticker]
		estimate.Required[ticker] = amount

		inStorage := 0
		if storage != nil {
			inStorage = storage.Amount(ticker)
		}
		estimate.InStorage[ticker] = inStorage

		need := amount - inStorage
		if need <= 0 {
			estimate.PerMaterial[ticker] = 0
			continue
		}

		book := books[ticker]
		if book == nil {
			return nil, NewInsufficientSupplyError(ticker, need)
		}
		if estimate.Currency == "" {
			estimate.Currency = book.Currency()
		}

		cost := 0.0
		selling := book.SellingOrders() // cheapest last
		for i := len(selling) - 1; i >= 0 && need > 0; i-- {
			order := selling[i]
			take := order.Quantity().Take(need)
			cost += float64(take) * order.Price()
			need -= take
		}
		if need > 0 {
			return nil, NewInsufficientSupplyError(ticker, need)
		}

		estimate.PerMaterial[ticker] = cost
		estimate.Total += cost
	}

	return estimate, nil
}
