package exchange_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/exchange"
)

func newTestMaterial(t *testing.T, ticker string, weight, volume float64) *economy.Material {
	t.Helper()
	material, err := economy.NewMaterial(ticker, ticker, "test", weight, volume)
	require.NoError(t, err)
	return material
}

var orderSeq int

func newTestOrder(t *testing.T, quantity exchange.Quantity, price float64) exchange.Order {
	t.Helper()
	orderSeq++
	order, err := exchange.NewOrder(fmt.Sprintf("order-%d", orderSeq), "TESTCO", quantity, price)
	require.NoError(t, err)
	return order
}

func newBook(t *testing.T, material *economy.Material, buying, selling []exchange.Order) *exchange.MaterialExchange {
	t.Helper()
	book, err := exchange.NewMaterialExchange(material, "CI1", "CIS", buying, selling)
	require.NoError(t, err)
	return book
}

func TestCompareAllOrders_ZeroMarginStillMatches(t *testing.T) {
	// Arrange - identical prices on both books
	rat := newTestMaterial(t, "RAT", 0.21, 0.1)
	sellBook := newBook(t, rat, nil, []exchange.Order{
		newTestOrder(t, exchange.QuantityOf(100), 10),
	})
	buyBook := newBook(t, rat, []exchange.Order{
		newTestOrder(t, exchange.QuantityOf(50), 10),
	}, nil)

	// Act
	result, err := exchange.CompareAllOrders(sellBook, buyBook, exchange.MatchOptions{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 50, result.Units)
	assert.Zero(t, result.Profit)
}

func TestCompareAllOrders_CheapestSellsAgainstHighestBuys(t *testing.T) {
	// Arrange
	rat := newTestMaterial(t, "RAT", 0.21, 0.1)
	sellBook := newBook(t, rat, nil, []exchange.Order{
		newTestOrder(t, exchange.QuantityOf(3), 1),
		newTestOrder(t, exchange.QuantityOf(5), 2),
	})
	buyBook := newBook(t, rat, []exchange.Order{
		newTestOrder(t, exchange.QuantityOf(4), 10),
		newTestOrder(t, exchange.QuantityOf(6), 9),
	}, nil)

	// Act
	result, err := exchange.CompareAllOrders(sellBook, buyBook, exchange.MatchOptions{})

	// Assert
	// 3 units at margin 9, 1 at margin 8, then 4 at margin 7
	require.NoError(t, err)
	assert.Equal(t, 8, result.Units)
	assert.InDelta(t, 63.0, result.Profit, 1e-9)
	assert.Len(t, result.SellOrders, 2)
	assert.Len(t, result.BuyOrders, 2)
}

func TestCompareAllOrders_VolumeCapIsHardCeiling(t *testing.T) {
	// Arrange - unit volume 1.5, cap 10: only 6 whole units fit
	dw := newTestMaterial(t, "DW", 1.0, 1.5)
	sellBook := newBook(t, dw, nil, []exchange.Order{
		newTestOrder(t, exchange.QuantityOf(100), 5),
	})
	buyBook := newBook(t, dw, []exchange.Order{
		newTestOrder(t, exchange.QuantityOf(100), 8),
	}, nil)

	// Act
	result, err := exchange.CompareAllOrders(sellBook, buyBook, exchange.MatchOptions{MaxVolume: 10})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 6, result.Units)
	assert.LessOrEqual(t, result.Volume, 10.0)
}

func TestCompareAllOrders_WeightCapIsHardCeiling(t *testing.T) {
	// Arrange
	ore := newTestMaterial(t, "FEO", 2.0, 0.5)
	sellBook := newBook(t, ore, nil, []exchange.Order{
		newTestOrder(t, exchange.QuantityOf(100), 5),
	})
	buyBook := newBook(t, ore, []exchange.Order{
		newTestOrder(t, exchange.QuantityOf(100), 6),
	}, nil)

	// Act
	result, err := exchange.CompareAllOrders(sellBook, buyBook, exchange.MatchOptions{MaxWeight: 7})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.Units)
	assert.LessOrEqual(t, result.Weight, 7.0)
}

func TestCompareAllOrders_StopWhenUnprofitable(t *testing.T) {
	// Arrange - the second-cheapest sell is above the best bid
	rat := newTestMaterial(t, "RAT", 0.21, 0.1)
	selling := []exchange.Order{
		newTestOrder(t, exchange.QuantityOf(10), 5),
		newTestOrder(t, exchange.QuantityOf(10), 20),
	}
	buying := []exchange.Order{
		newTestOrder(t, exchange.QuantityOf(100), 10),
	}

	// Act
	stopped, err := exchange.CompareAllOrders(
		newBook(t, rat, nil, selling),
		newBook(t, rat, buying, nil),
		exchange.MatchOptions{StopWhenUnprofitable: true})
	require.NoError(t, err)

	through, err := exchange.CompareAllOrders(
		newBook(t, rat, nil, selling),
		newBook(t, rat, buying, nil),
		exchange.MatchOptions{})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 10, stopped.Units)
	assert.InDelta(t, 50.0, stopped.Profit, 1e-9)
	assert.Equal(t, 20, through.Units)
	assert.InDelta(t, -50.0, through.Profit, 1e-9)
}

func TestCompareAllOrders_MismatchedMaterials(t *testing.T) {
	// Arrange
	rat := newTestMaterial(t, "RAT", 0.21, 0.1)
	dw := newTestMaterial(t, "DW", 0.1, 0.1)
	sellBook := newBook(t, rat, nil, []exchange.Order{newTestOrder(t, exchange.QuantityOf(1), 1)})
	buyBook := newBook(t, dw, []exchange.Order{newTestOrder(t, exchange.QuantityOf(1), 2)}, nil)

	// Act
	_, err := exchange.CompareAllOrders(sellBook, buyBook, exchange.MatchOptions{})

	// Assert
	require.Error(t, err)
	var mismatched *exchange.MismatchedMaterialsError
	assert.ErrorAs(t, err, &mismatched)
}

func TestCompareAllOrders_UnboundedBothSidesWithoutCaps(t *testing.T) {
	// Arrange - two market maker orders and no cargo constraints leave the
	// transfer size undefined
	rat := newTestMaterial(t, "RAT", 0.21, 0.1)
	sellBook := newBook(t, rat, nil, []exchange.Order{newTestOrder(t, exchange.Unbounded(), 5)})
	buyBook := newBook(t, rat, []exchange.Order{newTestOrder(t, exchange.Unbounded(), 8)}, nil)

	// Act
	_, err := exchange.CompareAllOrders(sellBook, buyBook, exchange.MatchOptions{})

	// Assert
	require.Error(t, err)
	var unbounded *exchange.UnboundedMatchError
	assert.ErrorAs(t, err, &unbounded)
}

func TestCompareAllOrders_UnboundedSellCappedByBuyQuantity(t *testing.T) {
	// Arrange
	rat := newTestMaterial(t, "RAT", 0.21, 0.1)
	sellBook := newBook(t, rat, nil, []exchange.Order{newTestOrder(t, exchange.Unbounded(), 5)})
	buyBook := newBook(t, rat, []exchange.Order{newTestOrder(t, exchange.QuantityOf(30), 8)}, nil)

	// Act
	result, err := exchange.CompareAllOrders(sellBook, buyBook, exchange.MatchOptions{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 30, result.Units)
	assert.InDelta(t, 90.0, result.Profit, 1e-9)
}
