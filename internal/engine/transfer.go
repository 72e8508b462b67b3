package engine

import (
	"time"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// transferStock is the shared movement primitive behind receiving order
// confirmation (§4.8) and task confirmation (§4.9): it applies exactly
// one of the four source/type combinations and returns the quantity
// actually moved, which may be less than requested (or zero).
func (e *Engine) transferStock(sourceID, destinationID, skuID string, source entity.Source, qty decimal.Decimal, at time.Time) decimal.Decimal {
	if !qty.IsPositive() {
		return decimal.Zero
	}

	external := isExternalSource(sourceID)

	switch {
	case external && source == entity.SourceRFID:
		return e.synthesizeEPCsAt(destinationID, skuID, qty, at)
	case external && source == entity.SourceNonRFID:
		e.appendLedgerEntry(destinationID, skuID, entity.LedgerEntryConfirmedReplenishment, qty, at)
		return qty
	case !external && source == entity.SourceRFID:
		return e.moveEPCsInternal(sourceID, destinationID, skuID, qty, at)
	default: // internal NON_RFID
		available := e.ledgerQty(sourceID, skuID)
		moved := decimal.Min(qty, available)
		if moved.IsPositive() {
			e.appendLedgerEntry(sourceID, skuID, entity.LedgerEntrySale, moved.Neg(), at)
			e.appendLedgerEntry(destinationID, skuID, entity.LedgerEntryConfirmedReplenishment, moved, at)
		}
		return moved
	}
}

// TaskConfirmResult reports the outcome of confirmTask (§4.9, §7).
type TaskConfirmResult string

const (
	TaskConfirmDone       TaskConfirmResult = "confirmed"
	TaskConfirmPartial    TaskConfirmResult = "confirmed_partial"
	TaskConfirmNoMovement TaskConfirmResult = "no_inventory_moved"
)

// confirmTask implements §4.9: attempt the transfer from the chosen
// source, and on zero movement walk the task's remembered candidates
// then the destination's configured sources, excluding ids already
// attempted, until one yields a positive transfer or all are exhausted.
func (e *Engine) confirmTask(taskID string, qty decimal.Decimal, confirmedBy, overrideSourceZoneID string, at time.Time) (TaskConfirmResult, error) {
	t, ok := e.tasks[taskID]
	if !ok {
		return "", domain.ErrNotFound
	}
	if t.Status != entity.TaskInProgress {
		return "", domain.ErrTaskNotOpen
	}
	if !qty.IsPositive() {
		qty = t.DeficitQty
	}

	e.clock.Advance(at)

	chosen := overrideSourceZoneID
	if chosen == "" {
		chosen = t.SelectedSourceZone
	}

	order := candidateOrder(chosen, t.CandidateSources, e.locations[t.DestinationID])
	attempted := make(map[string]struct{}, len(t.AttemptedSources))
	for _, id := range t.AttemptedSources {
		attempted[id] = struct{}{}
	}

	var moved decimal.Decimal
	var usedSource string
	for _, srcID := range order {
		if srcID == "" {
			continue
		}
		if _, done := attempted[srcID]; done {
			continue
		}
		attempted[srcID] = struct{}{}
		t.AttemptedSources = append(t.AttemptedSources, srcID)
		moved = e.transferStock(srcID, t.DestinationID, t.SKUID, t.Source, qty, at)
		if moved.IsPositive() {
			usedSource = srcID
			break
		}
	}

	if !moved.IsPositive() {
		t.UpdatedAt = at
		return TaskConfirmNoMovement, nil
	}

	t.SelectedSourceZone = usedSource
	confirmed := moved
	t.ConfirmedQty = &confirmed
	t.ConfirmedBy = confirmedBy

	result := TaskConfirmDone
	reason := "confirmed"
	if moved.LessThan(t.DeficitQty) {
		result = TaskConfirmPartial
		reason = "confirmed_partial"
	}
	e.closeTask(t, entity.TaskConfirmed, reason, at)

	if !isExternalSource(usedSource) {
		e.recomputeLocation(usedSource, at)
	}
	e.recomputeLocation(t.DestinationID, at)

	return result, nil
}

// candidateOrder builds the source walk order for confirmTask: the
// chosen source first, then the task's remembered candidate list in
// sort order, then the destination's currently configured source list.
func candidateOrder(chosen string, remembered []entity.SourceCandidate, dest *entity.Location) []string {
	var out []string
	if chosen != "" {
		out = append(out, chosen)
	}
	for _, c := range remembered {
		out = append(out, c.ZoneID)
	}
	if dest != nil {
		out = append(out, dest.Sources...)
	}
	return out
}
