package engine

import (
	"time"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ledgerQty returns a NON_RFID location's current quantity for a sku:
// the last baseline plus every signed delta recorded since it, floored
// at zero (§3, §4.4). A key with no baseline at all has quantity zero.
func (e *Engine) ledgerQty(locationID, skuID string) decimal.Decimal {
	key := entity.SnapshotKey{LocationID: locationID, SKUID: skuID, Source: entity.SourceNonRFID}

	qty := decimal.Zero
	if base, ok := e.ledgerBaselines[key]; ok {
		qty = base.Qty
	}
	for _, entry := range e.ledgerEntries[key] {
		qty = qty.Add(entry.Qty)
	}
	if qty.IsNegative() {
		return decimal.Zero
	}
	return qty
}

// setLedgerBaseline replaces the baseline for a NON_RFID (location, sku)
// pair and clears entries recorded at or before it, then recomputes the
// snapshot. Used when a POS system delivers a fresh stock count instead
// of an incremental delta.
func (e *Engine) setLedgerBaseline(locationID, skuID string, qty decimal.Decimal, at time.Time) {
	key := entity.SnapshotKey{LocationID: locationID, SKUID: skuID, Source: entity.SourceNonRFID}
	e.clock.Advance(at)

	e.ledgerBaselines[key] = entity.LedgerBaseline{
		LocationID: locationID,
		SKUID:      skuID,
		Qty:        qty,
		Timestamp:  at,
	}

	kept := e.ledgerEntries[key][:0]
	for _, entry := range e.ledgerEntries[key] {
		if entry.Timestamp.After(at) {
			kept = append(kept, entry)
		}
	}
	e.ledgerEntries[key] = kept

	e.recomputeLocation(locationID, at)
}

// appendLedgerEntry records a signed delta (sale, return, or confirmed
// replenishment credit) against a NON_RFID (location, sku) pair and
// recomputes its snapshot (§4.4, §4.10).
func (e *Engine) appendLedgerEntry(locationID, skuID, kind string, qty decimal.Decimal, at time.Time) {
	key := entity.SnapshotKey{LocationID: locationID, SKUID: skuID, Source: entity.SourceNonRFID}
	e.clock.Advance(at)

	e.ledgerEntries[key] = append(e.ledgerEntries[key], entity.LedgerEntry{
		LocationID: locationID,
		SKUID:      skuID,
		Kind:       kind,
		Qty:        qty,
		Timestamp:  at,
	})

	e.recomputeLocation(locationID, at)
}
