package exchange

import (
	"errors"
	"sort"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
)

// MaterialExchange is the order book for one material on one market
// (immutable snapshot). Both sides are kept sorted highest price first, so
// the best buy order is the first buying entry and the cheapest sell order is
// the last selling entry. The matcher and estimator rely on this ordering.
type MaterialExchange struct {
	material     *economy.Material
	exchangeCode string
	currency     string
	buying       []Order
	selling      []Order
}

// NewMaterialExchange creates a new order book snapshot. The order slices
// are copied and sorted by descending price.
func NewMaterialExchange(material *economy.Material, exchangeCode, currency string, buying, selling []Order) (*MaterialExchange, error) {
	if material == nil {
		return nil, errors.New("exchange material cannot be nil")
	}
	if exchangeCode == "" {
		return nil, errors.New("exchange code cannot be empty")
	}

	buyingCopy := make([]Order, len(buying))
	copy(buyingCopy, buying)
	sellingCopy := make([]Order, len(selling))
	copy(sellingCopy, selling)

	sort.SliceStable(buyingCopy, func(i, j int) bool {
		return buyingCopy[i].Price() > buyingCopy[j].Price()
	})
	sort.SliceStable(sellingCopy, func(i, j int) bool {
		return sellingCopy[i].Price() > sellingCopy[j].Price()
	})

	return &MaterialExchange{
		material:     material,
		exchangeCode: exchangeCode,
		currency:     currency,
		buying:       buyingCopy,
		selling:      sellingCopy,
	}, nil
}

func (e *MaterialExchange) Material() *economy.Material {
	return e.material
}

func (e *MaterialExchange) ExchangeCode() string {
	return e.exchangeCode
}

func (e *MaterialExchange) Currency() string {
	return e.currency
}

// BuyingOrders returns the buy side, highest price first
func (e *MaterialExchange) BuyingOrders() []Order {
	ordersCopy := make([]Order, len(e.buying))
	copy(ordersCopy, e.buying)
	return ordersCopy
}

// SellingOrders returns the sell side, highest price first (cheapest last)
func (e *MaterialExchange) SellingOrders() []Order {
	ordersCopy := make([]Order, len(e.selling))
	copy(ordersCopy, e.selling)
	return ordersCopy
}

// Ask returns the cheapest sell order, if any
func (e *MaterialExchange) Ask() (Order, bool) {
	if len(e.selling) == 0 {
		return Order{}, false
	}
	return e.selling[len(e.selling)-1], true
}

// Bid returns the highest buy order, if any
func (e *MaterialExchange) Bid() (Order, bool) {
	if len(e.buying) == 0 {
		return Order{}, false
	}
	return e.buying[0], true
}

// Supply returns the total quantity on the sell side
func (e *MaterialExchange) Supply() Quantity {
	return totalQuantity(e.selling)
}

// Demand returns the total quantity on the buy side
func (e *MaterialExchange) Demand() Quantity {
	return totalQuantity(e.buying)
}

func totalQuantity(orders []Order) Quantity {
	total := 0
	for _, order := range orders {
		if order.Quantity().IsUnbounded() {
			return Unbounded()
		}
		total += order.Quantity().Units()
	}
	return QuantityOf(total)
}
