package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// createReceivingOrder opens an inbound order for a non-sales
// destination or an external origin (§4.8). Auto-assignment runs
// immediately after creation.
func (e *Engine) createReceivingOrder(sourceID, destinationID, skuID string, source entity.Source, qty decimal.Decimal, at time.Time) (*entity.ReceivingOrder, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if _, ok := e.locations[destinationID]; !ok {
		return nil, domain.ErrZoneNotFound
	}
	sku, ok := e.skus[skuID]
	if !ok {
		return nil, domain.ErrSKURequired
	}
	if sku.Source != source {
		return nil, domain.ErrSourceMismatch
	}
	if !isExternalSource(sourceID) && sourceID == destinationID {
		return nil, domain.ErrSourceEqualsDestination
	}

	e.clock.Advance(at)

	order := &entity.ReceivingOrder{
		ID:               uuid.NewString(),
		SourceLocationID: sourceID,
		DestinationID:    destinationID,
		SKUID:            skuID,
		Source:           source,
		RequestedQty:     qty,
		ConfirmedQty:     decimal.Zero,
		Status:           entity.ReceivingInTransit,
		CreatedAt:        at,
		UpdatedAt:        at,
	}
	e.orders[order.ID] = order
	e.addAudit(order.ID, destinationID, entity.AuditCreated, "engine", "", at)

	e.runStaffAutoAssignment(at)

	return order, nil
}

// ReceivingConfirmResult reports the outcome of confirmReceivingOrder
// (§4.8, §7).
type ReceivingConfirmResult string

const (
	ReceivingConfirmed        ReceivingConfirmResult = "confirmed"
	ReceivingConfirmedPartial ReceivingConfirmResult = "confirmed_partial"
	ReceivingNoInventoryMoved ReceivingConfirmResult = "no_inventory_moved"
)

// confirmReceivingOrder applies §4.8's four source/type combinations. A
// receipt short of the requested quantity returns confirmed_partial and
// leaves the order IN_TRANSIT; the order becomes CONFIRMED only once its
// ConfirmedQty reaches RequestedQty.
func (e *Engine) confirmReceivingOrder(orderID string, at time.Time) (ReceivingConfirmResult, error) {
	order, ok := e.orders[orderID]
	if !ok {
		return "", domain.ErrNotFound
	}
	if order.Status != entity.ReceivingInTransit {
		return "", domain.ErrTaskNotOpen
	}

	e.clock.Advance(at)

	external := isExternalSource(order.SourceLocationID)
	remaining := order.RequestedQty.Sub(order.ConfirmedQty)

	moved := e.transferStock(order.SourceLocationID, order.DestinationID, order.SKUID, order.Source, remaining, at)

	if !moved.IsPositive() {
		return ReceivingNoInventoryMoved, nil
	}

	order.ConfirmedQty = order.ConfirmedQty.Add(moved)
	order.UpdatedAt = at

	result := ReceivingConfirmed
	if order.ConfirmedQty.LessThan(order.RequestedQty) {
		result = ReceivingConfirmedPartial
	} else {
		order.Status = entity.ReceivingConfirmed
	}
	e.addAudit(order.ID, order.DestinationID, entity.AuditConfirmed, "engine", string(result), at)

	if !external {
		e.recomputeLocation(order.SourceLocationID, at)
	}
	e.recomputeLocation(order.DestinationID, at)

	return result, nil
}

// synthesizeEPCsAt mints qty new EPCs for skuID, bound to destinationID's
// primary antenna (§4.8 External + RFID).
func (e *Engine) synthesizeEPCsAt(destinationID, skuID string, qty decimal.Decimal, at time.Time) decimal.Decimal {
	count := int(qty.IntPart())
	antennaID := e.primaryAntenna(destinationID)

	for i := 0; i < count; i++ {
		epc := e.synthesizeEPC()
		e.bindEPC(epc, skuID, at)
		e.presence[epc] = entity.PresenceRecord{
			EPC:        epc,
			SKUID:      skuID,
			LocationID: destinationID,
			AntennaID:  antennaID,
			LastSeenAt: at,
		}
	}
	return decimal.NewFromInt(int64(count))
}

// moveEPCsInternal moves the oldest-seen present EPCs of skuID from
// sourceID to destinationID, re-binding each to the destination's
// primary antenna (§4.8 Internal + RFID, §4.9). Returns the number
// actually moved, which may be less than requested.
func (e *Engine) moveEPCsInternal(sourceID, destinationID, skuID string, qty decimal.Decimal, at time.Time) decimal.Decimal {
	want := int(qty.IntPart())
	if want <= 0 {
		return decimal.Zero
	}

	epcs := e.epcsAt(sourceID, skuID, at)
	sort.Slice(epcs, func(i, j int) bool {
		return e.presence[epcs[i]].LastSeenAt.Before(e.presence[epcs[j]].LastSeenAt)
	})
	if len(epcs) > want {
		epcs = epcs[:want]
	}

	antennaID := e.primaryAntenna(destinationID)
	for _, epc := range epcs {
		rec := e.presence[epc]
		rec.LocationID = destinationID
		rec.AntennaID = antennaID
		rec.LastSeenAt = at
		e.presence[epc] = rec
	}

	return decimal.NewFromInt(int64(len(epcs)))
}

// synthesizeEPC generates a fresh, engine-local EPC id for
// externally-received RFID stock (§4.8).
func (e *Engine) synthesizeEPC() string {
	e.epcSeq++
	return fmt.Sprintf("EPC-SYN-%06d", e.epcSeq)
}
