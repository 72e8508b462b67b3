// This file is the Command Gateway's inner boundary (C13): every
// exported method here locks mu for its entire duration, so a command
// runs end-to-end — including every cascading recompute — before the
// next one is dequeued (§5).
package engine

import (
	"time"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IngestRFIDRead ingests one raw antenna read (§4.2, §6).
func (e *Engine) IngestRFIDRead(read RFIDRead) (IngestOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ingestRFIDRead(read)
}

// ForceZoneSweep refreshes presence for every EPC bound to locationID
// that is still within PresenceTTL, without changing any binding (§4.3, §6).
func (e *Engine) ForceZoneSweep(locationID string, at time.Time) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.locations[locationID]; !ok {
		return 0, domain.ErrZoneNotFound
	}
	return e.forceZoneSweep(locationID, at), nil
}

// IngestSalesEvent applies a SALE or RETURN event (§4.10, §6).
func (e *Engine) IngestSalesEvent(skuID, locationID string, eventType SalesEventType, qty decimal.Decimal, at time.Time) (SalesIngestResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ingestSalesEvent(skuID, locationID, eventType, qty, at)
}

// AddCustomerItem reserves stock for a customer's cart (§4.10, §6).
func (e *Engine) AddCustomerItem(customerID, locationID, skuID string, qty decimal.Decimal, at time.Time) (*entity.BasketItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addCustomerItem(customerID, locationID, skuID, qty, at)
}

// RemoveCustomerItem releases a cart reservation (§4.10, §6).
func (e *Engine) RemoveCustomerItem(basketItemID string, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removeCustomerItem(basketItemID, at)
}

// CheckoutCustomer sells every IN_CART item for a customer (§4.10, §6).
func (e *Engine) CheckoutCustomer(customerID string, at time.Time) ([]*entity.BasketItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkoutCustomer(customerID, at)
}

// UpsertRuleTemplate creates or updates a rule template and reprojects
// effective rules (§4.5, §6).
func (e *Engine) UpsertRuleTemplate(in UpsertRuleTemplateInput, at time.Time) (*entity.RuleTemplate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.upsertRuleTemplate(in, at)
}

// DeleteRuleTemplate soft-deletes a template and reprojects (§4.5, §6).
func (e *Engine) DeleteRuleTemplate(id string, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteRuleTemplate(id, at)
}

// UpsertEffectiveRule is the legacy direct-upsert path, proxied through
// a managed template (§4.11, §6).
func (e *Engine) UpsertEffectiveRule(locationID, skuID string, source entity.Source, min, max decimal.Decimal, priority int, inboundSourceID string, at time.Time) (*entity.RuleTemplate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.upsertEffectiveRuleLegacy(locationID, skuID, source, min, max, priority, inboundSourceID, at)
}

// DeleteEffectiveRule soft-deletes the template owning ruleID (§4.11, §6).
func (e *Engine) DeleteEffectiveRule(ruleID string, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteEffectiveRuleLegacy(ruleID, at)
}

// AssignTask explicitly assigns staff to an open task (§4.7, §6).
func (e *Engine) AssignTask(taskID, staffID string, at time.Time) (*entity.ReplenishmentTask, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.assignTask(taskID, staffID, at)
}

// StartTask transitions a task to IN_PROGRESS (§4.7, §6).
func (e *Engine) StartTask(taskID, staffID string, at time.Time) (*entity.ReplenishmentTask, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startTask(taskID, staffID, at)
}

// ConfirmTask executes a transfer and closes an IN_PROGRESS task (§4.9, §6).
func (e *Engine) ConfirmTask(taskID string, qty decimal.Decimal, confirmedBy, overrideSourceZoneID string, at time.Time) (TaskConfirmResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.confirmTask(taskID, qty, confirmedBy, overrideSourceZoneID, at)
}

// CreateReceivingOrder opens an inbound order (§4.8, §6).
func (e *Engine) CreateReceivingOrder(sourceID, destinationID, skuID string, source entity.Source, qty decimal.Decimal, at time.Time) (*entity.ReceivingOrder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.createReceivingOrder(sourceID, destinationID, skuID, source, qty, at)
}

// ConfirmReceivingOrder applies a receiving order's transfer (§4.8, §6).
func (e *Engine) ConfirmReceivingOrder(orderID string, at time.Time) (ReceivingConfirmResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.confirmReceivingOrder(orderID, at)
}

// SetStaffShift toggles a staff member's OnShift flag and reruns
// auto-assignment so newly available staff pick up pending work.
func (e *Engine) SetStaffShift(staffID string, onShift bool, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.staff[staffID]
	if !ok {
		return domain.ErrNotFound
	}
	e.clock.Advance(at)
	s.OnShift = onShift
	if onShift {
		e.runStaffAutoAssignment(at)
	}
	return nil
}

// UpsertLocation creates or replaces a location's master data (§3, §6).
func (e *Engine) UpsertLocation(loc entity.Location, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if loc.ID == "" {
		return domain.ErrInvalidInput
	}
	e.clock.Advance(at)
	e.locations[loc.ID] = &loc
	return nil
}

// DeleteLocationSource removes sourceID from locationID's ordered source
// list and cancels every open task pointing at it (§3).
func (e *Engine) DeleteLocationSource(locationID, sourceID string, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	loc, ok := e.locations[locationID]
	if !ok {
		return domain.ErrZoneNotFound
	}

	e.clock.Advance(at)
	kept := loc.Sources[:0]
	for _, s := range loc.Sources {
		if s != sourceID {
			kept = append(kept, s)
		}
	}
	loc.Sources = kept

	for _, t := range e.tasks {
		if t.DestinationID == locationID && t.SelectedSourceZone == sourceID && t.Status.IsOpen() {
			e.closeTask(t, entity.TaskRejected, "source_removed", at)
		}
	}
	e.recomputeLocation(locationID, at)
	return nil
}

// SeedLedgerBaseline sets a NON_RFID (location, sku) baseline directly,
// for dataset loading and POS-driven recounts (§3 "Ledger baseline").
func (e *Engine) SeedLedgerBaseline(locationID, skuID string, qty decimal.Decimal, at time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setLedgerBaseline(locationID, skuID, qty, at)
}

// SeedRFIDRead is IngestRFIDRead without dedup/unknown-epc status
// plumbing, used by seed data to place tagged units without needing a
// registered antenna lookup to fail loudly during bootstrap.
func (e *Engine) SeedRFIDRead(epc, skuID, locationID string, at time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindEPC(epc, skuID, at)
	antennaID := e.primaryAntenna(locationID)
	e.presence[epc] = entity.PresenceRecord{
		EPC:        epc,
		SKUID:      skuID,
		LocationID: locationID,
		AntennaID:  antennaID,
		LastSeenAt: at,
	}
	e.recomputeLocation(locationID, at)
}
