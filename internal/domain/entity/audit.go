package entity

import "time"

// AuditAction is the kind of transition recorded against a replenishment
// task or receiving order (§3, §4.7).
type AuditAction string

const (
	AuditCreated   AuditAction = "CREATED"
	AuditAssigned  AuditAction = "ASSIGNED"
	AuditStarted   AuditAction = "STARTED"
	AuditConfirmed AuditAction = "CONFIRMED"
	AuditClosed    AuditAction = "CLOSED"
	AuditCancelled AuditAction = "CANCELLED"
)

// AuditEntry records one state transition for the flow timeline and audit
// log read models (§3, §6).
type AuditEntry struct {
	ID         string
	TaskID     string // ReplenishmentTask.ID or ReceivingOrder.ID
	LocationID string
	Action     AuditAction
	Actor      string
	Details    string
	Timestamp  time.Time
}
