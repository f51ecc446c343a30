package persistence

import (
	"time"
)

// SnapshotModel represents the fio_snapshots table, one raw API payload per
// (endpoint, key)
type SnapshotModel struct {
	Endpoint  string    `gorm:"column:endpoint;primaryKey;not null"`
	Key       string    `gorm:"column:key;primaryKey;not null"`
	Payload   []byte    `gorm:"column:payload;type:blob"`
	FetchedAt time.Time `gorm:"column:fetched_at;not null"`
}

func (SnapshotModel) TableName() string {
	return "fio_snapshots"
}
