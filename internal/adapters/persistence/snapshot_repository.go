package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/prun-go/internal/domain/shared"
)

// GormSnapshotRepository implements the FIO client's SnapshotCache on GORM,
// so repeated runs reuse previously fetched entity payloads.
type GormSnapshotRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormSnapshotRepository creates a new GORM snapshot repository.
// If clock is nil, uses RealClock for production.
func NewGormSnapshotRepository(db *gorm.DB, clock shared.Clock) *GormSnapshotRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormSnapshotRepository{db: db, clock: clock}
}

// Get retrieves a cached payload. Entries older than maxAge report a miss but
// stay stored until overwritten or invalidated; maxAge <= 0 never expires.
func (r *GormSnapshotRepository) Get(ctx context.Context, endpoint, key string, maxAge time.Duration) ([]byte, bool, error) {
	var model SnapshotModel
	result := r.db.WithContext(ctx).
		Where("endpoint = ? AND key = ?", endpoint, key).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read snapshot %s/%s: %w", endpoint, key, result.Error)
	}

	if maxAge > 0 && r.clock.Now().Sub(model.FetchedAt) > maxAge {
		return nil, false, nil
	}
	return model.Payload, true, nil
}

// Put stores a payload, replacing any previous snapshot for the same
// endpoint and key
func (r *GormSnapshotRepository) Put(ctx context.Context, endpoint, key string, payload []byte) error {
	model := SnapshotModel{
		Endpoint:  endpoint,
		Key:       key,
		Payload:   payload,
		FetchedAt: r.clock.Now(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("endpoint = ? AND key = ?", endpoint, key).
			Delete(&SnapshotModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store snapshot %s/%s: %w", endpoint, key, err)
	}
	return nil
}

// Invalidate drops every snapshot for an endpoint
func (r *GormSnapshotRepository) Invalidate(ctx context.Context, endpoint string) error {
	result := r.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&SnapshotModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to invalidate %s snapshots: %w", endpoint, result.Error)
	}
	return nil
}

// InvalidateKey drops one snapshot
func (r *GormSnapshotRepository) InvalidateKey(ctx context.Context, endpoint, key string) error {
	result := r.db.WithContext(ctx).
		Where("endpoint = ? AND key = ?", endpoint, key).
		Delete(&SnapshotModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to invalidate snapshot %s/%s: %w", endpoint, key, result.Error)
	}
	return nil
}
