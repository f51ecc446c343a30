package exchange

import "github.com/andrescamacho/prun-go/pkg/utils"

// MatchOptions bounds an order book match. Zero or negative capacity values
// leave that dimension unbounded.
type MatchOptions struct {
	// MaxVolume caps the total cargo volume transferred (cubic meters)
	MaxVolume float64

	// MaxWeight caps the total cargo weight transferred (tons)
	MaxWeight float64

	// StopWhenUnprofitable halts matching once the per-unit margin drops to
	// zero or below, after the first match. Off by default: matching
	// continues at any margin.
	StopWhenUnprofitable bool
}

// MatchResult reports a completed match: every order touched (for
// auditability) plus the aggregate totals.
type MatchResult struct {
	SellOrders []Order
	BuyOrders  []Order
	Profit     float64
	Units      int
	Volume     float64
	Weight     float64
}

// CompareAllOrders matches the sell side of one market against the buy side
// of another for the same material: sell orders are consumed cheapest-first,
// buy orders highest-price-first, transferring at each step the largest unit
// count permitted by both orders' remaining quantities and the capacity left.
//
// Capacity caps are hard ceilings, never exceeded by even one unit. Matching
// does not stop on negative margin unless MatchOptions opts in.
func CompareAllOrders(sellBook, buyBook *MaterialExchange, opts MatchOptions) (*MatchResult, error) {
	if sellBook.Material().Ticker() != buyBook.Material().Ticker() {
		return nil, NewMismatchedMaterialsError(sellBook.Material().Ticker(), buyBook.Material().Ticker())
	}

	material := sellBook.Material()
	unitVolume := material.Volume()
	unitWeight := material.Weight()

	sells := sellBook.SellingOrders() // highest first, cheapest last
	buys := buyBook.BuyingOrders()    // highest first

	result := &MatchResult{}
	sellIdx := len(sells) - 1
	buyIdx := 0
	var sellOrder, buyOrder Order
	sellRemaining := QuantityOf(0)
	buyRemaining := QuantityOf(0)

	for {
		exhausted := false
		for sellRemaining.IsExhausted() {
			if sellIdx < 0 {
				exhausted = true
				break
			}
			sellOrder = sells[sellIdx]
			sellRemaining = sellOrder.Quantity()
			sellIdx--
		}
		if exhausted {
			break
		}
		for buyRemaining.IsExhausted() {
			if buyIdx >= len(buys) {
				exhausted = true
				break
			}
			buyOrder = buys[buyIdx]
			buyRemaining = buyOrder.Quantity()
			buyIdx++
		}
		if exhausted {
			break
		}

		profitPerUnit := buyOrder.Price() - sellOrder.Price()
		if opts.StopWhenUnprofitable && result.Units > 0 && profitPerUnit <= 0 {
			break
		}

		units := -1
		bound := func(n int) {
			if units < 0 {
				units = n
				return
			}
			units = utils.Min(units, n)
		}
		if !sellRemaining.IsUnbounded() {
			bound(sellRemaining.Units())
		}
		if !buyRemaining.IsUnbounded() {
			bound(buyRemaining.Units())
		}
		if opts.MaxVolume > 0 && unitVolume > 0 {
			bound(int((opts.MaxVolume - result.Volume) / unitVolume))
		}
		if opts.MaxWeight > 0 && unitWeight > 0 {
			bound(int((opts.MaxWeight - result.Weight) / unitWeight))
		}
		if units < 0 {
			return nil, NewUnboundedMatchError(material.Ticker())
		}
		if units == 0 {
			// the next unit would exceed a capacity cap
			break
		}

		result.SellOrders = appendTouched(result.SellOrders, sellOrder)
		result.BuyOrders = appendTouched(result.BuyOrders, buyOrder)
		result.Units += units
		result.Profit += profitPerUnit * float64(units)
		result.Volume += float64(units) * unitVolume
		result.Weight += float64(units) * unitWeight
		sellRemaining = sellRemaining.Sub(units)
		buyRemaining = buyRemaining.Sub(units)
	}

	return result, nil
}

// appendTouched records an order once, relying on orders being consumed in
// sequence
func appendTouched(orders []Order, order Order) []Order {
	if len(orders) > 0 && orders[len(orders)-1].ID() == order.ID() {
		return orders
	}
	return append(orders, order)
}
