package planning

import (
	"context"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
)

// EntityStore supplies the immutable entity snapshots the planner consumes.
// Implementations intern entities per fetch, so repeated lookups of the same
// ticker return the same object.
type EntityStore interface {
	Material(ctx context.Context, ticker string) (*economy.Material, error)
	Building(ctx context.Context, ticker string) (*economy.Building, error)
	Site(ctx context.Context, planetID string) (*economy.Site, error)
	Storage(ctx context.Context, planetID string) (*economy.Storage, error)
}
