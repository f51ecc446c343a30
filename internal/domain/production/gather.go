package production

import "github.com/andrescamacho/prun-go/internal/domain/economy"

// GatherAvailable seeds the pool with the quantity of every input material
// reachable for the target recipe: the current storage amount of each direct
// input, then recursively the inputs of every recipe at the site that can
// produce one of those inputs.
//
// A material can be an input of several recipes visited in the same walk; the
// storage quantity is written each time (last writer wins) because it is the
// ground truth regardless of path.
//
// The walk fails fast with a CyclicProductionError when a recipe reappears on
// the current recursion path.
func GatherAvailable(target *economy.Recipe, site *economy.Site, storage *economy.Storage, pool ResourcePool) error {
	return gatherAvailable(target, site, storage, pool, make(map[string]bool))
}

func gatherAvailable(target *economy.Recipe, site *economy.Site, storage *economy.Storage, pool ResourcePool, visiting map[string]bool) error {
	id := target.ID()
	if visiting[id] {
		return NewCyclicProductionError(id)
	}
	visiting[id] = true
	defer delete(visiting, id)

	for _, line := range target.InputLines() {
		pool[line.Ticker()] = storage.Amount(line.Ticker())
		for _, sb := range site.Buildings() {
			for _, producer := range sb.Building().RecipesProducing(line.Ticker()) {
				if err := gatherAvailable(producer, site, storage, pool, visiting); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
