package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/prun-go/internal/application/planning"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var planetID string
	var recipeFlags []string
	var limitFlags []string

	cmd := &cobra.Command{
		Use:   "plan <material>",
		Short: "Plan a production chain for a material at one of your bases",
		Long: `Plan a production chain for a material at one of your bases.

The planner seeds a resource pool from the planet's storage, then greedily
fires the selected recipes, recursively producing missing inputs, until the
per-building run ceilings are reached. Each building's ceiling defaults to
instances x runs-per-instance; --limit overrides it.

Every intermediate material must have exactly one selected producer recipe.

Examples:
  prun plan C --planet UV-351a --recipe FRM:2xH2O=4xHCP --recipe INC:4xHCP-2xGRN-2xMAI=4xC
  prun plan RAT --planet UV-351a --recipe FP:1xALG-1xMAI-1xNUT=10xRAT --limit FP=40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.ToUpper(args[0])

			selection, err := parseRecipeSelection(recipeFlags)
			if err != nil {
				return err
			}
			limits, err := parseLimits(limitFlags)
			if err != nil {
				return err
			}

			svc, err := newServices()
			if err != nil {
				return err
			}
			defer svc.close()

			service := planning.NewService(svc.client, nil, svc.cfg.Planning.RunsPerInstance)
			report, err := service.PlanProduction(context.Background(), planetID, target, selection, limits)
			if err != nil {
				return fmt.Errorf("failed to plan production: %w", err)
			}

			printPlanReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&planetID, "planet", "", "Planet natural ID of the base (required)")
	cmd.Flags().StringArrayVar(&recipeFlags, "recipe", nil,
		"Candidate recipe as BUILDING:RecipeName (repeatable)")
	cmd.Flags().StringArrayVar(&limitFlags, "limit", nil,
		"Run ceiling override as BUILDING=count (repeatable)")
	_ = cmd.MarkFlagRequired("planet")

	return cmd
}

func parseLimits(flags []string) (map[string]int, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	limits := make(map[string]int, len(flags))
	for _, flag := range flags {
		building, countStr, found := strings.Cut(flag, "=")
		if !found {
			return nil, fmt.Errorf("invalid limit %q: expected BUILDING=count", flag)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("invalid limit %q: count must be a non-negative integer", flag)
		}
		limits[strings.ToUpper(building)] = count
	}
	return limits, nil
}

func printPlanReport(report *planning.Report) {
	fmt.Printf("Plan %s\n", report.PlanID)
	fmt.Printf("  Planet: %s\n", report.PlanetID)
	fmt.Printf("  Target: %s\n", report.Target)
	fmt.Printf("  Producible: %d\n", report.Producible)

	if len(report.RecipeRuns) > 0 {
		fmt.Println("\nRecipe runs:")
		for _, run := range report.RecipeRuns {
			fmt.Printf("  %-4s %-28s x%d\n", run.BuildingTicker, run.RecipeName, run.Runs)
		}
	}

	fmt.Printf("\nConsumed: %s\n", formatAmounts(report.Consumed, sortedTickers(report.Consumed)))
	fmt.Printf("Produced: %s\n", formatAmounts(report.Produced, sortedTickers(report.Produced)))
	fmt.Printf("Production time: %s\n", formatDuration(report.ProductionTime))

	if len(report.Utilization) > 0 {
		fmt.Println("\nBuilding utilization:")
		for _, u := range report.Utilization {
			fmt.Printf("  %-4s %3d/%3d runs  %5.1f%%\n",
				u.BuildingTicker, u.Runs, u.Limit, u.Score*100)
		}
	}

	if verbose && len(report.FinalPool) > 0 {
		fmt.Println("\nFinal pool:")
		for _, ticker := range sortedTickers(report.FinalPool) {
			fmt.Printf("  %-4s %d\n", ticker, report.FinalPool[ticker])
		}
	}
}

func sortedTickers(amounts map[string]int) []string {
	tickers := make([]string, 0, len(amounts))
	for ticker := range amounts {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}
