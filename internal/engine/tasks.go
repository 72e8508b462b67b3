package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// openTasksForRule returns every open task for ruleID in create-time
// order (§4.6 step 1).
func (e *Engine) openTasksForRule(ruleID string) []*entity.ReplenishmentTask {
	var out []*entity.ReplenishmentTask
	for _, t := range e.tasks {
		if t.RuleID == ruleID && t.Status.IsOpen() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// createTask opens a new replenishment task and emits its CREATED audit
// entry (§3, §4.6, §4.7).
func (e *Engine) createTask(ruleID, destinationID, skuID string, source entity.Source, candidates []entity.SourceCandidate, selectedZone string, deficit, target, trigger decimal.Decimal, at time.Time) *entity.ReplenishmentTask {
	t := &entity.ReplenishmentTask{
		ID:                 uuid.NewString(),
		RuleID:             ruleID,
		DestinationID:      destinationID,
		SKUID:              skuID,
		Source:             source,
		CandidateSources:   candidates,
		SelectedSourceZone: selectedZone,
		Status:             entity.TaskCreated,
		TriggerQty:         trigger,
		DeficitQty:         deficit,
		TargetQty:          target,
		CreatedAt:          at,
		UpdatedAt:          at,
	}
	e.tasks[t.ID] = t
	e.addAudit(t.ID, destinationID, entity.AuditCreated, "engine", "", at)
	return t
}

// closeTask transitions a task to a terminal status (REJECTED or, via
// the confirm path, CONFIRMED) and emits the matching audit entry
// (§4.7).
func (e *Engine) closeTask(t *entity.ReplenishmentTask, status entity.TaskStatus, reason string, at time.Time) {
	t.Status = status
	t.CloseReason = reason
	t.UpdatedAt = at

	action := entity.AuditClosed
	if status == entity.TaskRejected {
		action = entity.AuditCancelled
	}
	e.addAudit(t.ID, t.DestinationID, action, "engine", reason, at)
}

// assignTask assigns staffId to an open task explicitly (§4.7). The
// stricter of the two eligibility checks: staff must be active and in
// scope.
func (e *Engine) assignTask(taskID, staffID string, at time.Time) (*entity.ReplenishmentTask, error) {
	t, ok := e.tasks[taskID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !t.Status.IsOpen() {
		return nil, domain.ErrTaskNotOpen
	}
	staff, ok := e.staff[staffID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !staff.OnShift || !staff.InScope(t.DestinationID) {
		return nil, domain.ErrStaffNotEligibleForZone
	}

	e.clock.Advance(at)
	t.AssignedStaffID = staffID
	t.AssignedAt = &at
	if t.Status == entity.TaskCreated {
		t.Status = entity.TaskAssigned
	}
	t.UpdatedAt = at
	e.addAudit(t.ID, t.DestinationID, entity.AuditAssigned, staffID, "", at)
	return t, nil
}

// startTask transitions a task to IN_PROGRESS. Allowed when the acting
// staff is on shift and in scope, OR the staff is already the assignee
// and no other eligible staff exists — the out-of-scope fallback
// preserved from Design Notes §9, which is intentionally looser than
// assignTask's check.
func (e *Engine) startTask(taskID, staffID string, at time.Time) (*entity.ReplenishmentTask, error) {
	t, ok := e.tasks[taskID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if t.Status != entity.TaskCreated && t.Status != entity.TaskAssigned {
		return nil, domain.ErrTaskNotOpen
	}
	staff, ok := e.staff[staffID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	eligible := staff.OnShift && staff.InScope(t.DestinationID)
	if !eligible {
		fallback := t.AssignedStaffID == staffID && len(e.eligibleStaffFor(t.DestinationID, staffID)) == 0
		if !fallback {
			return nil, domain.ErrStaffNotEligibleForZone
		}
	}

	e.clock.Advance(at)
	t.Status = entity.TaskInProgress
	if t.AssignedStaffID == "" {
		t.AssignedStaffID = staffID
		t.AssignedAt = &at
	}
	t.UpdatedAt = at
	e.addAudit(t.ID, t.DestinationID, entity.AuditStarted, staffID, "", at)
	return t, nil
}

// eligibleStaffFor lists on-shift staff in scope of locationID, other
// than excludeID, used by startTask's out-of-scope fallback check.
func (e *Engine) eligibleStaffFor(locationID, excludeID string) []*entity.StaffMember {
	var out []*entity.StaffMember
	for id, s := range e.staff {
		if id == excludeID {
			continue
		}
		if s.OnShift && s.InScope(locationID) {
			out = append(out, s)
		}
	}
	return out
}
