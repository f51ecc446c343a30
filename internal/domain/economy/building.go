package economy

import (
	"errors"
	"fmt"
	"sort"
)

// Building represents a production building type (immutable value object).
// Identity is the ticker. A building owns the recipes it can run; recipe
// names are unique within a building.
type Building struct {
	ticker   string
	name     string
	areaCost int
	recipes  map[string]*Recipe
	costs    map[string]int
}

// NewBuilding creates a new Building and attaches the recipes to it.
// costs is the construction bill (material ticker -> amount).
func NewBuilding(ticker, name string, areaCost int, recipes []*Recipe, costs map[string]int) (*Building, error) {
	if ticker == "" {
		return nil, errors.New("building ticker cannot be empty")
	}
	if areaCost < 0 {
		return nil, fmt.Errorf("building %s has negative area cost", ticker)
	}

	b := &Building{
		ticker:   ticker,
		name:     name,
		areaCost: areaCost,
		recipes:  make(map[string]*Recipe, len(recipes)),
		costs:    make(map[string]int, len(costs)),
	}

	for _, r := range recipes {
		if _, exists := b.recipes[r.Name()]; exists {
			return nil, fmt.Errorf("building %s has duplicate recipe %s", ticker, r.Name())
		}
		r.building = b
		b.recipes[r.Name()] = r
	}

	for mat, amount := range costs {
		if amount <= 0 {
			return nil, fmt.Errorf("building %s has non-positive construction cost for %s", ticker, mat)
		}
		b.costs[mat] = amount
	}

	return b, nil
}

func (b *Building) Ticker() string {
	return b.ticker
}

func (b *Building) Name() string {
	return b.name
}

func (b *Building) AreaCost() int {
	return b.areaCost
}

// Recipe looks up a recipe by name
func (b *Building) Recipe(name string) (*Recipe, bool) {
	r, ok := b.recipes[name]
	return r, ok
}

// Recipes returns all recipes sorted by name
func (b *Building) Recipes() []*Recipe {
	result := make([]*Recipe, 0, len(b.recipes))
	for _, r := range b.recipes {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// RecipesProducing returns the recipes whose outputs include the material
func (b *Building) RecipesProducing(ticker string) []*Recipe {
	var result []*Recipe
	for _, r := range b.Recipes() {
		if r.IsOutput(ticker) {
			result = append(result, r)
		}
	}
	return result
}

// ConstructionCosts returns the construction bill (material ticker -> amount)
func (b *Building) ConstructionCosts() map[string]int {
	costs := make(map[string]int, len(b.costs))
	for mat, amount := range b.costs {
		costs[mat] = amount
	}
	return costs
}
