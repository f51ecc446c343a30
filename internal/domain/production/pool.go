package production

import "github.com/andrescamacho/prun-go/internal/domain/economy"

// ResourcePool is the working inventory of one planning run
// (material ticker -> available quantity). Created fresh per plan and
// discarded afterwards; never shared between concurrent plans.
type ResourcePool map[string]int

// RecipeUsage counts how many times each recipe has been scheduled in the
// current plan. Entities are interned by the store, so pointer identity is
// recipe identity.
type RecipeUsage map[*economy.Recipe]int

// BuildingUsage counts recipe executions attributed to each building
type BuildingUsage map[*economy.Building]int
