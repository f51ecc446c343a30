package steps

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/exchange"
	"github.com/cucumber/godog"
)

type orderMatchingContext struct {
	material   *economy.Material
	sellOrders []exchange.Order
	buyOrders  []exchange.Order
	orderSeq   int
	opts       exchange.MatchOptions
	result     *exchange.MatchResult
	err        error
}

func (omc *orderMatchingContext) reset() {
	omc.material = nil
	omc.sellOrders = nil
	omc.buyOrders = nil
	omc.orderSeq = 0
	omc.opts = exchange.MatchOptions{}
	omc.result = nil
	omc.err = nil
}

func (omc *orderMatchingContext) newOrder(quantity exchange.Quantity, price float64) (exchange.Order, error) {
	omc.orderSeq++
	return exchange.NewOrder(fmt.Sprintf("order-%d", omc.orderSeq), fmt.Sprintf("company-%d", omc.orderSeq), quantity, price)
}

func (omc *orderMatchingContext) aMaterialWeighingFilling(ticker string, weight, volume float64) error {
	omc.material, omc.err = economy.NewMaterial(ticker, ticker, "consumables", weight, volume)
	return omc.err
}

func (omc *orderMatchingContext) aSellOrderOfUnitsAt(units int, price float64) error {
	order, err := omc.newOrder(exchange.QuantityOf(units), price)
	if err != nil {
		return err
	}
	omc.sellOrders = append(omc.sellOrders, order)
	return nil
}

func (omc *orderMatchingContext) aBuyOrderOfUnitsAt(units int, price float64) error {
	order, err := omc.newOrder(exchange.QuantityOf(units), price)
	if err != nil {
		return err
	}
	omc.buyOrders = append(omc.buyOrders, order)
	return nil
}

func (omc *orderMatchingContext) anUnboundedSellOrderAt(price float64) error {
	order, err := omc.newOrder(exchange.Unbounded(), price)
	if err != nil {
		return err
	}
	omc.sellOrders = append(omc.sellOrders, order)
	return nil
}

func (omc *orderMatchingContext) anUnboundedBuyOrderAt(price float64) error {
	order, err := omc.newOrder(exchange.Unbounded(), price)
	if err != nil {
		return err
	}
	omc.buyOrders = append(omc.buyOrders, order)
	return nil
}

func (omc *orderMatchingContext) theMatchIsCappedAtCubicMeters(maxVolume float64) error {
	omc.opts.MaxVolume = maxVolume
	return nil
}

func (omc *orderMatchingContext) theMatchIsCappedAtTons(maxWeight float64) error {
	omc.opts.MaxWeight = maxWeight
	return nil
}

func (omc *orderMatchingContext) iMatchTheBooks() error {
	if omc.material == nil {
		return fmt.Errorf("no material declared")
	}
	sellBook, err := exchange.NewMaterialExchange(omc.material, "CI1", "CIS", nil, omc.sellOrders)
	if err != nil {
		return err
	}
	buyBook, err := exchange.NewMaterialExchange(omc.material, "NC1", "NCC", omc.buyOrders, nil)
	if err != nil {
		return err
	}
	omc.result, omc.err = exchange.CompareAllOrders(sellBook, buyBook, omc.opts)
	return nil
}

func (omc *orderMatchingContext) unitsShouldTransfer(expected int) error {
	if omc.err != nil {
		return fmt.Errorf("matching failed: %w", omc.err)
	}
	if omc.result.Units != expected {
		return fmt.Errorf("expected %d units transferred, got %d", expected, omc.result.Units)
	}
	return nil
}

func (omc *orderMatchingContext) theTotalProfitShouldBe(expected float64) error {
	if omc.err != nil {
		return fmt.Errorf("matching failed: %w", omc.err)
	}
	if math.Abs(omc.result.Profit-expected) > 1e-9 {
		return fmt.Errorf("expected profit %.2f, got %.2f", expected, omc.result.Profit)
	}
	return nil
}

func (omc *orderMatchingContext) matchingShouldFailOnUnboundedBooks() error {
	if omc.err == nil {
		return fmt.Errorf("expected matching to fail, but it succeeded")
	}
	var unboundedErr *exchange.UnboundedMatchError
	if !errors.As(omc.err, &unboundedErr) {
		return fmt.Errorf("expected an unbounded match error, got: %v", omc.err)
	}
	return nil
}

func InitializeOrderMatchingScenario(ctx *godog.ScenarioContext) {
	omc := &orderMatchingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		omc.reset()
		return ctx, nil
	})

	ctx.Step(`^a material "([^"]*)" weighing ([0-9.]+) tons and filling ([0-9.]+) cubic meters$`, omc.aMaterialWeighingFilling)
	ctx.Step(`^a sell order of (\d+) units at ([0-9.]+)$`, omc.aSellOrderOfUnitsAt)
	ctx.Step(`^a buy order of (\d+) units at ([0-9.]+)$`, omc.aBuyOrderOfUnitsAt)
	ctx.Step(`^an unbounded sell order at ([0-9.]+)$`, omc.anUnboundedSellOrderAt)
	ctx.Step(`^an unbounded buy order at ([0-9.]+)$`, omc.anUnboundedBuyOrderAt)
	ctx.Step(`^the match is capped at ([0-9.]+) cubic meters$`, omc.theMatchIsCappedAtCubicMeters)
	ctx.Step(`^the match is capped at ([0-9.]+) tons$`, omc.theMatchIsCappedAtTons)
	ctx.Step(`^I match the sell book against the buy book$`, omc.iMatchTheBooks)
	ctx.Step(`^(\d+) units should transfer$`, omc.unitsShouldTransfer)
	ctx.Step(`^the total profit should be (-?[0-9.]+)$`, omc.theTotalProfitShouldBe)
	ctx.Step(`^matching should fail on unbounded books$`, omc.matchingShouldFailOnUnboundedBooks)
}
