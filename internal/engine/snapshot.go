package engine

import (
	"time"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	confidenceRFIDPresent  = 0.9
	confidenceRFIDAbsent   = 0.7
	confidenceRFIDDeducted = 0.55
)

func ptrFloat(f float64) *float64 { return &f }

// recomputeLocation runs the three-pass recompute of §4.4 for one
// location: RFID snapshot pass, NON_RFID snapshot pass, then evaluation
// (§4.6) against the freshly written snapshots.
func (e *Engine) recomputeLocation(locationID string, at time.Time) {
	if _, ok := e.locations[locationID]; !ok {
		return
	}

	for _, skuID := range e.rfidCandidateSKUs(locationID) {
		e.writeRFIDSnapshot(locationID, skuID, at)
	}
	for _, skuID := range e.nonRFIDCandidateSKUs(locationID) {
		e.writeNonRFIDSnapshot(locationID, skuID, at)
	}

	e.evaluateLocation(locationID, at)
}

// rfidCandidateSKUs is the union of present SKUs, SKUs with an active
// RFID rule in locationID, and SKUs with an existing RFID snapshot row
// (§4.4 pass 1).
func (e *Engine) rfidCandidateSKUs(locationID string) []string {
	set := make(map[string]struct{})
	for _, rec := range e.presence {
		if rec.LocationID == locationID {
			set[rec.SKUID] = struct{}{}
		}
	}
	for _, r := range e.rules {
		if r.LocationID == locationID && r.Source == entity.SourceRFID {
			set[r.SKUID] = struct{}{}
		}
	}
	for key := range e.snapshots {
		if key.LocationID == locationID && key.Source == entity.SourceRFID {
			set[key.SKUID] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// nonRFIDCandidateSKUs is every SKU with an active NON_RFID rule in
// locationID (§4.4 pass 2).
func (e *Engine) nonRFIDCandidateSKUs(locationID string) []string {
	set := make(map[string]struct{})
	for _, r := range e.rules {
		if r.LocationID == locationID && r.Source == entity.SourceNonRFID {
			set[r.SKUID] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// writeRFIDSnapshot computes and upserts the RFID snapshot for a single
// (location, sku). A standing deduction floor (set by an immediate sale
// deduction, §4.10) suppresses the raw count until a recompute would
// exceed it, matching the preserved behaviour in Design Notes §9.
func (e *Engine) writeRFIDSnapshot(locationID, skuID string, at time.Time) {
	key := entity.SnapshotKey{LocationID: locationID, SKUID: skuID, Source: entity.SourceRFID}

	raw := decimal.NewFromInt(int64(len(e.epcsAt(locationID, skuID, at))))

	qty := raw
	confidence := confidenceRFIDAbsent
	if raw.IsPositive() {
		confidence = confidenceRFIDPresent
	}

	if floor, ok := e.deductionFloors[key]; ok {
		if raw.GreaterThan(floor) {
			delete(e.deductionFloors, key)
		} else {
			qty = floor
			confidence = confidenceRFIDDeducted
		}
	}

	e.upsertSnapshot(key, qty, ptrFloat(confidence), at)
}

// writeNonRFIDSnapshot computes and upserts the NON_RFID snapshot for a
// single (location, sku) from the ledger (§4.4 pass 2).
func (e *Engine) writeNonRFIDSnapshot(locationID, skuID string, at time.Time) {
	key := entity.SnapshotKey{LocationID: locationID, SKUID: skuID, Source: entity.SourceNonRFID}
	qty := e.ledgerQty(locationID, skuID)
	e.upsertSnapshot(key, qty, nil, at)
}

// upsertSnapshot writes qty/confidence for key, always incrementing the
// version even when the value is unchanged (Design Notes §9: versions
// must advance so collaborators can detect drift).
func (e *Engine) upsertSnapshot(key entity.SnapshotKey, qty decimal.Decimal, confidence *float64, at time.Time) {
	snap, ok := e.snapshots[key]
	if !ok {
		snap = &entity.Snapshot{LocationID: key.LocationID, SKUID: key.SKUID, Source: key.Source}
		e.snapshots[key] = snap
	}
	snap.Qty = qty
	snap.Confidence = confidence
	snap.Version++
	snap.LastCalculatedAt = at

	// The cashier staging location drops snapshot rows once depleted
	// (§3 Lifecycle) so it never lingers as a stale zero-qty row in
	// dashboards.
	if key.LocationID == entity.LocationCashierStorage && qty.IsZero() {
		delete(e.snapshots, key)
	}
}

// snapshotQty returns the current published quantity for (location,
// sku, source). A NON_RFID snapshot row only exists once an active rule
// has caused recomputeLocation to write one (§4.4 pass 2); absent that,
// the ledger itself is still authoritative, so NON_RFID falls back to
// reading it directly rather than reporting a false zero.
func (e *Engine) snapshotQty(locationID, skuID string, source entity.Source) decimal.Decimal {
	snap, ok := e.snapshots[entity.SnapshotKey{LocationID: locationID, SKUID: skuID, Source: source}]
	if !ok {
		if source == entity.SourceNonRFID {
			return e.ledgerQty(locationID, skuID)
		}
		return decimal.Zero
	}
	return snap.Qty
}

// setDeductionFloor installs a standing floor for key, overriding raw
// RFID recomputes until they exceed it (§4.10).
func (e *Engine) setDeductionFloor(key entity.SnapshotKey, floor decimal.Decimal) {
	e.deductionFloors[key] = floor
}
