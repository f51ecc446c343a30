package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/prun-go/internal/application/trading"
)

// NewConstructionCommand creates the construction command
func NewConstructionCommand() *cobra.Command {
	var planetID string
	var exchangeCode string
	var useStorage bool

	cmd := &cobra.Command{
		Use:   "construction <building>",
		Short: "Price constructing a building on a planet",
		Long: `Price constructing a building on a planet.

The bill of materials combines the building's base construction costs with
the planet's environment surcharges (surface type, pressure, gravity,
temperature), then prices it against the sell books of one exchange.
--use-storage offsets the bill with materials already stored at the planet.

Examples:
  prun construction CHP --planet UV-351a --exchange CI1
  prun construction HB1 --planet XG-521b --exchange NC1 --use-storage`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices()
			if err != nil {
				return err
			}
			defer svc.close()

			service := trading.NewConstructionCostService(svc.client, nil)
			report, err := service.EstimateBuildingCost(context.Background(), trading.ConstructionQuery{
				BuildingTicker: strings.ToUpper(args[0]),
				PlanetID:       planetID,
				ExchangeCode:   strings.ToUpper(exchangeCode),
				UseStorage:     useStorage,
			})
			if err != nil {
				return err
			}

			printConstructionReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&planetID, "planet", "", "Planet natural ID (required)")
	cmd.Flags().StringVar(&exchangeCode, "exchange", "", "Exchange code to price against (required)")
	cmd.Flags().BoolVar(&useStorage, "use-storage", false,
		"Offset the bill with materials stored at the planet")
	_ = cmd.MarkFlagRequired("planet")
	_ = cmd.MarkFlagRequired("exchange")

	return cmd
}

func printConstructionReport(report *trading.ConstructionReport) {
	fmt.Printf("Constructing %s on %s, priced at %s\n",
		report.BuildingTicker, report.PlanetID, report.ExchangeCode)

	fmt.Println("\nBill of materials:")
	for _, ticker := range sortedTickers(report.Bill) {
		line := fmt.Sprintf("  %-4s %4d", ticker, report.Bill[ticker])
		if inStorage := report.Estimate.InStorage[ticker]; inStorage > 0 {
			line += fmt.Sprintf("  (%d in storage)", inStorage)
		}
		fmt.Printf("%s  %10.2f %s\n", line, report.Estimate.PerMaterial[ticker], report.Estimate.Currency)
	}

	fmt.Printf("\nTotal: %.2f %s\n", report.Estimate.Total, report.Estimate.Currency)
}
