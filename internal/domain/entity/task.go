package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskStatus is the replenishment task lifecycle state (§4.7).
type TaskStatus string

const (
	TaskCreated    TaskStatus = "CREATED"
	TaskAssigned   TaskStatus = "ASSIGNED"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskConfirmed  TaskStatus = "CONFIRMED"
	TaskRejected   TaskStatus = "REJECTED"
)

// IsOpen reports whether the task can still be auto-adjusted or confirmed.
func (s TaskStatus) IsOpen() bool {
	return s == TaskCreated || s == TaskAssigned || s == TaskInProgress
}

// AutoAdjustable reports whether the planner may merge/trim/reject this
// task without staff intervention (§4.6): every open status except
// IN_PROGRESS.
func (s TaskStatus) AutoAdjustable() bool {
	return s == TaskCreated || s == TaskAssigned
}

// SourceCandidate is a scored potential origin for a task's movement
// (§3 "Replenishment task", §4.6 step 5).
type SourceCandidate struct {
	ZoneID       string
	SortOrder    int
	AvailableQty decimal.Decimal
}

// ReplenishmentTask moves stock from a source zone to a destination
// location to satisfy an EffectiveRule's min/max (§3, §4.6, §4.7).
type ReplenishmentTask struct {
	ID                 string
	RuleID             string
	DestinationID      string
	SKUID              string
	Source             Source
	CandidateSources   []SourceCandidate
	SelectedSourceZone string
	Status             TaskStatus
	TriggerQty         decimal.Decimal
	DeficitQty         decimal.Decimal
	TargetQty          decimal.Decimal
	AssignedStaffID    string
	AssignedAt         *time.Time
	ConfirmedQty       *decimal.Decimal
	ConfirmedBy        string
	CloseReason        string
	AttemptedSources   []string // source ids already tried during confirm (§4.9)
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
