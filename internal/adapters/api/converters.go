package api

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/exchange"
)

// materialLookup resolves a ticker to its interned domain material, so every
// recipe line and order book shares one Material instance per ticker
type materialLookup func(ctx context.Context, ticker string) (*economy.Material, error)

func convertMaterial(dto materialDTO) (*economy.Material, error) {
	return economy.NewMaterial(dto.Ticker, dto.Name, dto.CategoryName, dto.Weight, dto.Volume)
}

func convertBuilding(ctx context.Context, dto buildingDTO, lookup materialLookup) (*economy.Building, error) {
	costs := make(map[string]int, len(dto.BuildingCosts))
	for _, cost := range dto.BuildingCosts {
		costs[cost.CommodityTicker] += cost.Amount
	}

	recipes := make([]*economy.Recipe, 0, len(dto.Recipes))
	for _, recipeDTO := range dto.Recipes {
		// Extraction and resource buildings list pseudo recipes with no
		// outputs; those can never satisfy a production requirement
		if len(recipeDTO.Outputs) == 0 {
			continue
		}
		recipe, err := convertRecipe(ctx, recipeDTO, lookup)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", dto.Ticker, err)
		}
		recipes = append(recipes, recipe)
	}

	return economy.NewBuilding(dto.Ticker, dto.Name, dto.AreaCost, recipes, costs)
}

func convertRecipe(ctx context.Context, dto recipeDTO, lookup materialLookup) (*economy.Recipe, error) {
	inputs, err := convertRecipeLines(ctx, dto.Inputs, lookup)
	if err != nil {
		return nil, fmt.Errorf("recipe %s inputs: %w", dto.RecipeName, err)
	}
	outputs, err := convertRecipeLines(ctx, dto.Outputs, lookup)
	if err != nil {
		return nil, fmt.Errorf("recipe %s outputs: %w", dto.RecipeName, err)
	}
	duration := time.Duration(dto.DurationMs) * time.Millisecond
	return economy.NewRecipe(dto.RecipeName, inputs, outputs, duration)
}

func convertRecipeLines(ctx context.Context, dtos []recipeLineDTO, lookup materialLookup) ([]economy.RecipeLine, error) {
	lines := make([]economy.RecipeLine, 0, len(dtos))
	for _, dto := range dtos {
		material, err := lookup(ctx, dto.materialTicker())
		if err != nil {
			return nil, err
		}
		line, err := economy.NewRecipeLine(material, dto.Amount)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func convertPlanet(dto planetDTO) (*economy.Planet, error) {
	return economy.NewPlanet(
		dto.PlanetNaturalID,
		dto.PlanetName,
		dto.Surface,
		dto.Gravity,
		dto.Pressure,
		dto.Temperature,
		dto.CurrencyCode,
	)
}

// convertSite folds the flat per-instance building list into counted
// SiteBuilding entries
func convertSite(ctx context.Context, dto siteDTO, lookupBuilding func(ctx context.Context, ticker string) (*economy.Building, error)) (*economy.Site, error) {
	counts := make(map[string]int, len(dto.Buildings))
	order := make([]string, 0, len(dto.Buildings))
	for _, sb := range dto.Buildings {
		if counts[sb.BuildingTicker] == 0 {
			order = append(order, sb.BuildingTicker)
		}
		counts[sb.BuildingTicker]++
	}

	siteBuildings := make([]economy.SiteBuilding, 0, len(order))
	for _, ticker := range order {
		building, err := lookupBuilding(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", dto.PlanetIdentifier, err)
		}
		siteBuilding, err := economy.NewSiteBuilding(building, counts[ticker])
		if err != nil {
			return nil, err
		}
		siteBuildings = append(siteBuildings, siteBuilding)
	}

	return economy.NewSite(dto.PlanetIdentifier, siteBuildings)
}

func convertStorage(dto storageDTO) (*economy.Storage, error) {
	amounts := make(map[string]int, len(dto.StorageItems))
	for _, item := range dto.StorageItems {
		amounts[item.MaterialTicker] += item.MaterialAmount
	}
	return economy.NewStorage(dto.StorageID, amounts)
}

func convertExchange(ctx context.Context, dto exchangeDTO, lookup materialLookup) (*exchange.MaterialExchange, error) {
	material, err := lookup(ctx, dto.MaterialTicker)
	if err != nil {
		return nil, err
	}

	buying, err := convertOrders(dto.BuyingOrders)
	if err != nil {
		return nil, fmt.Errorf("%s.%s buying orders: %w", dto.MaterialTicker, dto.ExchangeCode, err)
	}
	selling, err := convertOrders(dto.SellingOrders)
	if err != nil {
		return nil, fmt.Errorf("%s.%s selling orders: %w", dto.MaterialTicker, dto.ExchangeCode, err)
	}

	return exchange.NewMaterialExchange(material, dto.ExchangeCode, dto.Currency, buying, selling)
}

func convertOrders(dtos []exchangeOrderDTO) ([]exchange.Order, error) {
	orders := make([]exchange.Order, 0, len(dtos))
	for _, dto := range dtos {
		quantity := exchange.Unbounded()
		if dto.ItemCount != nil {
			quantity = exchange.QuantityOf(*dto.ItemCount)
		}
		order, err := exchange.NewOrder(dto.OrderID, dto.CompanyName, quantity, dto.ItemCost)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
