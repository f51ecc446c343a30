package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/prun-go/internal/domain/exchange"
)

// NewExchangeCommand creates the exchange command
func NewExchangeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exchange <material.code>",
		Short: "Show the order book for a material on a commodity exchange",
		Long: `Show the order book for a material on a commodity exchange.

Both sides print highest price first. Market maker orders have unbounded
quantity, shown as ∞.

Examples:
  prun exchange RAT.CI1
  prun exchange DW.NC1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker, code, found := strings.Cut(args[0], ".")
			if !found {
				return fmt.Errorf("invalid order book %q: expected MATERIAL.CODE, e.g. RAT.CI1", args[0])
			}

			svc, err := newServices()
			if err != nil {
				return err
			}
			defer svc.close()

			book, err := svc.client.MaterialExchange(context.Background(), ticker, code)
			if err != nil {
				return err
			}

			printOrderBook(book)
			return nil
		},
	}

	return cmd
}

func printOrderBook(book *exchange.MaterialExchange) {
	fmt.Printf("%s.%s (%s)\n", book.Material().Ticker(), book.ExchangeCode(), book.Currency())

	if ask, ok := book.Ask(); ok {
		fmt.Printf("  Ask: %.2f  Supply: %s\n", ask.Price(), book.Supply())
	} else {
		fmt.Println("  Ask: -")
	}
	if bid, ok := book.Bid(); ok {
		fmt.Printf("  Bid: %.2f  Demand: %s\n", bid.Price(), book.Demand())
	} else {
		fmt.Println("  Bid: -")
	}

	fmt.Println("\nSelling:")
	printOrders(book.SellingOrders(), book.Currency(), book.Material().Ticker())
	fmt.Println("\nBuying:")
	printOrders(book.BuyingOrders(), book.Currency(), book.Material().Ticker())
}

func printOrders(orders []exchange.Order, currency, materialTicker string) {
	if len(orders) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, order := range orders {
		fmt.Printf("  %10.2f %s %5sx%s by %s\n",
			order.Price(), currency, order.Quantity(), materialTicker, order.Company())
	}
}
