package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
)

// addAudit appends an audit entry for a task transition (§3, §4.7).
func (e *Engine) addAudit(taskID, locationID string, action entity.AuditAction, actor, details string, at time.Time) {
	e.audit = append(e.audit, entity.AuditEntry{
		ID:         uuid.NewString(),
		TaskID:     taskID,
		LocationID: locationID,
		Action:     action,
		Actor:      actor,
		Details:    details,
		Timestamp:  at,
	})
}

// auditLog returns a defensive copy of the audit trail, optionally
// filtered to one task (§6 read models).
func (e *Engine) auditLog(taskID string) []entity.AuditEntry {
	out := make([]entity.AuditEntry, 0, len(e.audit))
	for _, entry := range e.audit {
		if taskID != "" && entry.TaskID != taskID {
			continue
		}
		out = append(out, entry)
	}
	return out
}
