package production

import (
	"fmt"

	"github.com/andrescamacho/prun-go/internal/domain/shared"
)

// NoProducerError indicates no candidate recipe produces the target material
type NoProducerError struct {
	*shared.ConfigurationError
	Ticker string
}

func NewNoProducerError(ticker string) *NoProducerError {
	return &NoProducerError{
		ConfigurationError: shared.NewConfigurationError(
			fmt.Sprintf("no recipe produces target material %s", ticker)),
		Ticker: ticker,
	}
}

// AmbiguousProducerError indicates more than one candidate recipe produces
// the target material. The planner refuses to guess between them.
type AmbiguousProducerError struct {
	*shared.ConfigurationError
	Ticker  string
	Recipes []string
}

func NewAmbiguousProducerError(ticker string, recipes []string) *AmbiguousProducerError {
	return &AmbiguousProducerError{
		ConfigurationError: shared.NewConfigurationError(
			fmt.Sprintf("ambiguous producer for %s: exactly one recipe per output material is required, found %d", ticker, len(recipes))),
		Ticker:  ticker,
		Recipes: recipes,
	}
}

// CyclicProductionError indicates the production graph contains a cycle.
// Valid production graphs are DAGs ending in raw-resource recipes; the
// walker and simulator fail fast instead of recursing without bound.
type CyclicProductionError struct {
	*shared.ConfigurationError
	At string
}

func NewCyclicProductionError(at string) *CyclicProductionError {
	return &CyclicProductionError{
		ConfigurationError: shared.NewConfigurationError(
			fmt.Sprintf("cyclic production graph detected at %s", at)),
		At: at,
	}
}
