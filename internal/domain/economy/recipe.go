package economy

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// RecipeLine is one (material, amount) pair on either side of a recipe.
type RecipeLine struct {
	material *Material
	amount   int
}

// NewRecipeLine creates a recipe line with a strictly positive amount
func NewRecipeLine(material *Material, amount int) (RecipeLine, error) {
	if material == nil {
		return RecipeLine{}, errors.New("recipe line material cannot be nil")
	}
	if amount <= 0 {
		return RecipeLine{}, fmt.Errorf("recipe line amount must be positive, got %d", amount)
	}
	return RecipeLine{material: material, amount: amount}, nil
}

func (l RecipeLine) Material() *Material {
	return l.material
}

func (l RecipeLine) Ticker() string {
	return l.material.Ticker()
}

func (l RecipeLine) Amount() int {
	return l.amount
}

// Recipe is a fixed conversion of input quantities into output quantities,
// owned by exactly one building, with a nominal duration.
// Identity is (building ticker, recipe name).
type Recipe struct {
	building *Building
	name     string
	inputs   map[string]RecipeLine
	outputs  map[string]RecipeLine
	duration time.Duration
}

// NewRecipe creates a new Recipe with validation.
// Recipes without outputs are rejected; upstream snapshot parsing filters
// them out before they reach the engines.
func NewRecipe(name string, inputs, outputs []RecipeLine, duration time.Duration) (*Recipe, error) {
	if name == "" {
		return nil, errors.New("recipe name cannot be empty")
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("recipe %s has no outputs", name)
	}
	if duration < 0 {
		return nil, fmt.Errorf("recipe %s has negative duration", name)
	}

	inputMap := make(map[string]RecipeLine, len(inputs))
	for _, line := range inputs {
		if _, exists := inputMap[line.Ticker()]; exists {
			return nil, fmt.Errorf("recipe %s has duplicate input line for %s", name, line.Ticker())
		}
		inputMap[line.Ticker()] = line
	}

	outputMap := make(map[string]RecipeLine, len(outputs))
	for _, line := range outputs {
		if _, exists := outputMap[line.Ticker()]; exists {
			return nil, fmt.Errorf("recipe %s has duplicate output line for %s", name, line.Ticker())
		}
		outputMap[line.Ticker()] = line
	}

	return &Recipe{
		name:     name,
		inputs:   inputMap,
		outputs:  outputMap,
		duration: duration,
	}, nil
}

func (r *Recipe) Name() string {
	return r.name
}

// Building returns the owning building (nil until attached)
func (r *Recipe) Building() *Building {
	return r.building
}

func (r *Recipe) Duration() time.Duration {
	return r.duration
}

// ID returns the recipe identity string "BUILDING/RecipeName"
func (r *Recipe) ID() string {
	if r.building == nil {
		return r.name
	}
	return r.building.Ticker() + "/" + r.name
}

// InputLines returns the input lines sorted by material ticker
func (r *Recipe) InputLines() []RecipeLine {
	return sortedLines(r.inputs)
}

// OutputLines returns the output lines sorted by material ticker
func (r *Recipe) OutputLines() []RecipeLine {
	return sortedLines(r.outputs)
}

// IsInput reports whether the material is consumed by this recipe
func (r *Recipe) IsInput(ticker string) bool {
	_, ok := r.inputs[ticker]
	return ok
}

// IsOutput reports whether the material is produced by this recipe
func (r *Recipe) IsOutput(ticker string) bool {
	_, ok := r.outputs[ticker]
	return ok
}

// OutputAmount returns the per-run yield of the material
func (r *Recipe) OutputAmount(ticker string) (int, bool) {
	line, ok := r.outputs[ticker]
	if !ok {
		return 0, false
	}
	return line.Amount(), true
}

func sortedLines(lines map[string]RecipeLine) []RecipeLine {
	result := make([]RecipeLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, line)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Ticker() < result[j].Ticker()
	})
	return result
}
