package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/production"
	"github.com/cucumber/godog"
)

type productionPlanningContext struct {
	materials     map[string]*economy.Material
	recipes       map[string][]*economy.Recipe // building ticker -> recipes
	siteBuildings []economy.SiteBuilding
	planetID      string
	storage       map[string]int
	result        *production.PlanResult
	err           error
}

func (ppc *productionPlanningContext) reset() {
	ppc.materials = make(map[string]*economy.Material)
	ppc.recipes = make(map[string][]*economy.Recipe)
	ppc.siteBuildings = nil
	ppc.planetID = ""
	ppc.storage = make(map[string]int)
	ppc.result = nil
	ppc.err = nil
}

func (ppc *productionPlanningContext) material(ticker string) (*economy.Material, error) {
	if m, ok := ppc.materials[ticker]; ok {
		return m, nil
	}
	m, err := economy.NewMaterial(ticker, ticker, "consumables", 1.0, 1.0)
	if err != nil {
		return nil, err
	}
	ppc.materials[ticker] = m
	return m, nil
}

// parseLines turns "4xH2O 2xGRN" into recipe lines
func (ppc *productionPlanningContext) parseLines(spec string) ([]economy.RecipeLine, error) {
	var lines []economy.RecipeLine
	for _, field := range strings.Fields(spec) {
		amountPart, ticker, ok := strings.Cut(field, "x")
		if !ok {
			return nil, fmt.Errorf("malformed amount %q, expected NxTICKER", field)
		}
		amount, err := strconv.Atoi(amountPart)
		if err != nil {
			return nil, fmt.Errorf("malformed amount %q: %w", field, err)
		}
		material, err := ppc.material(ticker)
		if err != nil {
			return nil, err
		}
		line, err := economy.NewRecipeLine(material, amount)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (ppc *productionPlanningContext) aRecipeAtBuilding(name, buildingTicker, inputSpec, outputSpec string, hours int) error {
	inputs, err := ppc.parseLines(inputSpec)
	if err != nil {
		return err
	}
	outputs, err := ppc.parseLines(outputSpec)
	if err != nil {
		return err
	}
	recipe, err := economy.NewRecipe(name, inputs, outputs, time.Duration(hours)*time.Hour)
	if err != nil {
		return err
	}
	ppc.recipes[buildingTicker] = append(ppc.recipes[buildingTicker], recipe)
	return nil
}

func (ppc *productionPlanningContext) theSiteHasBuildings(planetID string, count int, buildingTicker string) error {
	ppc.planetID = planetID
	building, err := economy.NewBuilding(buildingTicker, buildingTicker, 25, ppc.recipes[buildingTicker], nil)
	if err != nil {
		return err
	}
	siteBuilding, err := economy.NewSiteBuilding(building, count)
	if err != nil {
		return err
	}
	ppc.siteBuildings = append(ppc.siteBuildings, siteBuilding)
	return nil
}

func (ppc *productionPlanningContext) storageHolds(amount int, ticker string) error {
	ppc.storage[ticker] = amount
	return nil
}

func (ppc *productionPlanningContext) iPlanProductionOf(target string) error {
	site, err := economy.NewSite(ppc.planetID, ppc.siteBuildings)
	if err != nil {
		return err
	}
	storage, err := economy.NewStorage("bdd-storage", ppc.storage)
	if err != nil {
		return err
	}

	// every recipe the site can run, so intermediate producers register too
	var candidates []*economy.Recipe
	for _, siteBuilding := range ppc.siteBuildings {
		candidates = append(candidates, siteBuilding.Building().Recipes()...)
	}

	ppc.result, ppc.err = production.NewPlanner(site, storage).Plan(target, candidates, nil)
	return nil
}

func (ppc *productionPlanningContext) thePlanShouldYieldUnits(expected int) error {
	if ppc.err != nil {
		return fmt.Errorf("planning failed: %w", ppc.err)
	}
	if ppc.result.Producible() != expected {
		return fmt.Errorf("expected %d producible units, got %d", expected, ppc.result.Producible())
	}
	return nil
}

func (ppc *productionPlanningContext) recipeShouldRunTimes(name string, expected int) error {
	if ppc.err != nil {
		return fmt.Errorf("planning failed: %w", ppc.err)
	}
	for recipe, runs := range ppc.result.RecipeUsage {
		if recipe.Name() == name {
			if runs != expected {
				return fmt.Errorf("expected recipe %s to run %d times, ran %d", name, expected, runs)
			}
			return nil
		}
	}
	if expected == 0 {
		return nil
	}
	return fmt.Errorf("recipe %s never ran", name)
}

func (ppc *productionPlanningContext) planningShouldFailWithACycleError() error {
	if ppc.err == nil {
		return fmt.Errorf("expected planning to fail, but it succeeded")
	}
	var cycleErr *production.CyclicProductionError
	if !errors.As(ppc.err, &cycleErr) {
		return fmt.Errorf("expected a cyclic production error, got: %v", ppc.err)
	}
	return nil
}

func InitializeProductionPlanningScenario(ctx *godog.ScenarioContext) {
	ppc := &productionPlanningContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		ppc.reset()
		return ctx, nil
	})

	ctx.Step(`^a recipe "([^"]*)" at building "([^"]*)" turning "([^"]*)" into "([^"]*)" over (\d+) hours$`, ppc.aRecipeAtBuilding)
	ctx.Step(`^the site on "([^"]*)" has (\d+) "([^"]*)" buildings?$`, ppc.theSiteHasBuildings)
	ctx.Step(`^storage holds (\d+) "([^"]*)"$`, ppc.storageHolds)
	ctx.Step(`^I plan production of "([^"]*)"$`, ppc.iPlanProductionOf)
	ctx.Step(`^the plan should yield (\d+) units$`, ppc.thePlanShouldYieldUnits)
	ctx.Step(`^recipe "([^"]*)" should run (\d+) times$`, ppc.recipeShouldRunTimes)
	ctx.Step(`^planning should fail on a production cycle$`, ppc.planningShouldFailWithACycleError)
}
