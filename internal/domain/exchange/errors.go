package exchange

import (
	"fmt"

	"github.com/andrescamacho/prun-go/internal/domain/shared"
)

// MismatchedMaterialsError indicates two order books for different materials
// were passed to the matcher
type MismatchedMaterialsError struct {
	*shared.ConfigurationError
	SellTicker string
	BuyTicker  string
}

func NewMismatchedMaterialsError(sellTicker, buyTicker string) *MismatchedMaterialsError {
	return &MismatchedMaterialsError{
		ConfigurationError: shared.NewConfigurationError(
			fmt.Sprintf("order books reference different materials: %s vs %s", sellTicker, buyTicker)),
		SellTicker: sellTicker,
		BuyTicker:  buyTicker,
	}
}

// UnboundedMatchError indicates both sides of a match are unbounded and no
// cargo capacity limits the transfer, so no finite result exists
type UnboundedMatchError struct {
	*shared.DomainError
	Ticker string
}

func NewUnboundedMatchError(ticker string) *UnboundedMatchError {
	return &UnboundedMatchError{
		DomainError: shared.NewDomainError(
			fmt.Sprintf("no finite bound on transferable units for %s: both orders are unbounded and no capacity cap was given", ticker)),
		Ticker: ticker,
	}
}

// InsufficientSupplyError indicates a sell book was exhausted before demand
// was met. The whole estimate fails; it is never a partial price.
type InsufficientSupplyError struct {
	*shared.DomainError
	Ticker  string
	Missing int
}

func NewInsufficientSupplyError(ticker string, missing int) *InsufficientSupplyError {
	return &InsufficientSupplyError{
		DomainError: shared.NewDomainError(
			fmt.Sprintf("insufficient supply of %s on market: %d units cannot be sourced", ticker, missing)),
		Ticker:  ticker,
		Missing: missing,
	}
}
