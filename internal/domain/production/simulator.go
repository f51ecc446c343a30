package production

import (
	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/pkg/utils"
)

// SimulationState is the mutable working state of one planning run. All maps
// are local to a single Simulate call tree; nothing here is shared between
// concurrent plans.
type SimulationState struct {
	// Pool holds the available quantity per material ticker
	Pool ResourcePool

	// Limits caps executions per building ticker. Buildings absent from the
	// map are unlimited. Limits are soft caps: a recipe that hits its
	// building's ceiling simply stops firing, it is not an error.
	Limits map[string]int

	// Requirements maps a material ticker to the single recipe chosen to
	// produce it when a shortfall occurs
	Requirements map[string]*economy.Recipe

	// RecipeUsage and BuildingUsage record what the simulation scheduled
	RecipeUsage   RecipeUsage
	BuildingUsage BuildingUsage
}

// NewSimulationState creates an empty state with the given limits and
// requirement index
func NewSimulationState(limits map[string]int, requirements map[string]*economy.Recipe) *SimulationState {
	return &SimulationState{
		Pool:          make(ResourcePool),
		Limits:        limits,
		Requirements:  requirements,
		RecipeUsage:   make(RecipeUsage),
		BuildingUsage: make(BuildingUsage),
	}
}

// Simulate greedily executes the recipe against the pool, recursing into the
// requirement recipes to cover input shortfalls. In produceAll mode it keeps
// firing until blocked; otherwise it stops after the first successful firing.
//
// It returns whether anything was produced. An unsatisfiable input is not an
// error: the simulation stops and reports what it managed before the block.
// The only error condition is a cyclic requirement chain.
func Simulate(recipe *economy.Recipe, state *SimulationState, produceAll bool) (bool, error) {
	return simulate(recipe, state, produceAll, make(map[string]bool))
}

func simulate(recipe *economy.Recipe, state *SimulationState, produceAll bool, resolving map[string]bool) (bool, error) {
	produced := false
	for {
		ok, err := satisfyRequirements(recipe, state, resolving)
		if err != nil {
			return produced, err
		}
		if !ok {
			break
		}

		building := recipe.Building()
		if limit, capped := state.Limits[building.Ticker()]; capped && state.BuildingUsage[building] >= limit {
			break
		}

		for _, line := range recipe.InputLines() {
			state.Pool[line.Ticker()] -= line.Amount()
		}
		for _, line := range recipe.OutputLines() {
			state.Pool[line.Ticker()] += line.Amount()
		}
		state.RecipeUsage[recipe]++
		state.BuildingUsage[building]++
		produced = true

		if !produceAll {
			break
		}
	}
	return produced, nil
}

// satisfyRequirements checks every input of the recipe and recursively
// produces missing quantities through the requirement recipes. A shortfall
// with no registered producer, or a recursive run that produces nothing,
// means the requirements cannot be met: the whole attempt stops rather than
// retrying at a smaller count.
func satisfyRequirements(recipe *economy.Recipe, state *SimulationState, resolving map[string]bool) (bool, error) {
	for _, line := range recipe.InputLines() {
		missing := line.Amount() - state.Pool[line.Ticker()]
		if missing <= 0 {
			continue
		}

		requirement, registered := state.Requirements[line.Ticker()]
		if !registered {
			return false, nil
		}
		if resolving[line.Ticker()] {
			return false, NewCyclicProductionError(line.Ticker())
		}

		perRun, _ := requirement.OutputAmount(line.Ticker())
		runs := utils.CeilDiv(missing, perRun)

		resolving[line.Ticker()] = true
		satisfied := true
		for i := 0; i < runs; i++ {
			ran, err := simulate(requirement, state, false, resolving)
			if err != nil {
				delete(resolving, line.Ticker())
				return false, err
			}
			if !ran {
				satisfied = false
				break
			}
		}
		delete(resolving, line.Ticker())

		if !satisfied {
			return false, nil
		}
	}
	return true, nil
}
