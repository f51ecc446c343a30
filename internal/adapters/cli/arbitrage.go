package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/prun-go/internal/application/trading"
)

// NewArbitrageCommand creates the arbitrage command
func NewArbitrageCommand() *cobra.Command {
	var buyFrom string
	var sellTo string
	var maxVolume float64
	var maxWeight float64
	var stopUnprofitable bool

	cmd := &cobra.Command{
		Use:   "arbitrage <material>",
		Short: "Estimate profit from moving a material between two exchanges",
		Long: `Estimate profit from moving a material between two exchanges.

Matches the sell book of one market against the buy book of another,
cheapest sells against highest bids, within the given cargo constraints.
Matching continues through negative margins unless --stop-unprofitable is
set.

Examples:
  prun arbitrage RAT --buy-from CI1 --sell-to NC1 --max-volume 500
  prun arbitrage DW --buy-from IC1 --sell-to CI1 --max-weight 500 --stop-unprofitable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices()
			if err != nil {
				return err
			}
			defer svc.close()

			service := trading.NewArbitrageService(svc.client, nil)
			report, err := service.FindArbitrage(context.Background(), trading.ArbitrageQuery{
				MaterialTicker:       strings.ToUpper(args[0]),
				BuyFromExchange:      strings.ToUpper(buyFrom),
				SellToExchange:       strings.ToUpper(sellTo),
				MaxVolume:            maxVolume,
				MaxWeight:            maxWeight,
				StopWhenUnprofitable: stopUnprofitable,
			})
			if err != nil {
				return err
			}

			printArbitrageReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&buyFrom, "buy-from", "", "Exchange code to buy at (required)")
	cmd.Flags().StringVar(&sellTo, "sell-to", "", "Exchange code to sell at (required)")
	cmd.Flags().Float64Var(&maxVolume, "max-volume", 0, "Cargo volume cap in m3 (0 = unbounded)")
	cmd.Flags().Float64Var(&maxWeight, "max-weight", 0, "Cargo weight cap in tons (0 = unbounded)")
	cmd.Flags().BoolVar(&stopUnprofitable, "stop-unprofitable", false,
		"Stop matching once the per-unit margin drops to zero or below")
	_ = cmd.MarkFlagRequired("buy-from")
	_ = cmd.MarkFlagRequired("sell-to")

	return cmd
}

func printArbitrageReport(report *trading.ArbitrageReport) {
	fmt.Printf("Arbitrage %s: %s -> %s\n", report.MaterialTicker, report.BuyFrom, report.SellTo)
	fmt.Printf("  Units:  %d\n", report.Units)
	fmt.Printf("  Profit: %.2f %s\n", report.Profit, report.Currency)
	fmt.Printf("  Cargo:  %.2f m3, %.2f t\n", report.Volume, report.Weight)

	if verbose {
		fmt.Println("\nSell orders touched:")
		for _, order := range report.SellOrders {
			fmt.Printf("  %10.2f %5sx by %s\n", order.Price(), order.Quantity(), order.Company())
		}
		fmt.Println("Buy orders touched:")
		for _, order := range report.BuyOrders {
			fmt.Printf("  %10.2f %5sx by %s\n", order.Price(), order.Quantity(), order.Company())
		}
	}
}
