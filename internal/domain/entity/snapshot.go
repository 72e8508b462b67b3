package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the per (location, SKU, source) quantity the planner reads.
// Version increments on every write, including no-op writes, so
// collaborators can detect drift (Design Notes §9).
type Snapshot struct {
	LocationID       string
	SKUID            string
	Source           Source
	Qty              decimal.Decimal
	Confidence       *float64 // RFID only; nil for NON_RFID
	Version          int64
	LastCalculatedAt time.Time
}

// Key identifies the snapshot row this instance belongs to.
func (s Snapshot) Key() SnapshotKey {
	return SnapshotKey{LocationID: s.LocationID, SKUID: s.SKUID, Source: s.Source}
}

// SnapshotKey is the composite key of the Snapshot Store (C5).
type SnapshotKey struct {
	LocationID string
	SKUID      string
	Source     Source
}
