package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SalesEventType distinguishes a sale from a return (§6).
type SalesEventType string

const (
	SalesEventSale   SalesEventType = "SALE"
	SalesEventReturn SalesEventType = "RETURN"
)

// SalesIngestResult reports which path ingestSalesEvent took (§6, §7).
type SalesIngestResult string

const (
	SalesAccepted        SalesIngestResult = "accepted"
	SalesAcceptedRFIDNow SalesIngestResult = "accepted_rfid_immediate"
)

// ingestSalesEvent applies §4.10: a SALE against an RFID SKU deducts
// physical presence immediately, a RETURN against an RFID SKU mints fresh
// EPCs at the location, and every NON_RFID event is a signed ledger
// movement.
func (e *Engine) ingestSalesEvent(skuID, locationID string, eventType SalesEventType, qty decimal.Decimal, at time.Time) (SalesIngestResult, error) {
	sku, ok := e.skus[skuID]
	if !ok {
		return "", domain.ErrSKURequired
	}
	if _, ok := e.locations[locationID]; !ok {
		return "", domain.ErrZoneNotFound
	}
	if !qty.IsPositive() {
		return "", domain.ErrInvalidInput
	}

	e.clock.Advance(at)

	if eventType == SalesEventSale && sku.Source == entity.SourceRFID {
		e.immediateRFIDDeduction(locationID, skuID, qty, at)
		return SalesAcceptedRFIDNow, nil
	}

	if sku.Source == entity.SourceRFID {
		// A RETURN against an RFID SKU re-tags physical stock rather than
		// touching the NON_RFID ledger, which has no notion of this SKU.
		e.synthesizeEPCsAt(locationID, skuID, qty, at)
		e.recomputeLocation(locationID, at)
		return SalesAccepted, nil
	}

	kind := entity.LedgerEntrySale
	signed := qty.Neg()
	if eventType == SalesEventReturn {
		kind = entity.LedgerEntryReturn
		signed = qty
	}
	e.appendLedgerEntry(locationID, skuID, kind, signed, at)
	return SalesAccepted, nil
}

// immediateRFIDDeduction removes up to qty oldest-seen present EPCs of
// skuID from locationID. If fewer than qty tags could be found (reads
// lag the sale), the snapshot is pinned to the intended deducted value
// at confidence 0.55 until further reads confirm it (§4.10).
func (e *Engine) immediateRFIDDeduction(locationID, skuID string, qty decimal.Decimal, at time.Time) {
	key := entity.SnapshotKey{LocationID: locationID, SKUID: skuID, Source: entity.SourceRFID}
	prior := e.snapshotQty(locationID, skuID, entity.SourceRFID)
	target := decimal.Max(decimal.Zero, prior.Sub(qty))

	epcs := e.epcsAt(locationID, skuID, at)
	sort.Slice(epcs, func(i, j int) bool {
		return e.presence[epcs[i]].LastSeenAt.Before(e.presence[epcs[j]].LastSeenAt)
	})
	remove := int(qty.IntPart())
	if remove > len(epcs) {
		remove = len(epcs)
	}
	for _, epc := range epcs[:remove] {
		delete(e.presence, epc)
	}

	rawAfter := decimal.NewFromInt(int64(len(epcs) - remove))
	if rawAfter.GreaterThan(target) {
		e.setDeductionFloor(key, target)
	} else {
		delete(e.deductionFloors, key)
	}

	e.recomputeLocation(locationID, at)
}

// reservedQty sums ReservedQty across every IN_CART item for (location,
// sku) (§4.10 "Add").
func (e *Engine) reservedQty(locationID, skuID string) decimal.Decimal {
	total := decimal.Zero
	for _, b := range e.basketItems {
		if b.LocationID == locationID && b.SKUID == skuID {
			total = total.Add(b.ReservedQty())
		}
	}
	return total
}

// addCustomerItem implements §4.10 "Add": the location must be a sales
// location, and the requested qty must fit in current − reserved.
func (e *Engine) addCustomerItem(customerID, locationID, skuID string, qty decimal.Decimal, at time.Time) (*entity.BasketItem, error) {
	loc, ok := e.locations[locationID]
	if !ok {
		return nil, domain.ErrZoneNotFound
	}
	if !loc.IsSalesLocation {
		return nil, domain.ErrZoneNotOrderable
	}
	sku, ok := e.skus[skuID]
	if !ok {
		return nil, domain.ErrSKURequired
	}
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	current := e.snapshotQty(locationID, skuID, sku.Source)
	reserved := e.reservedQty(locationID, skuID)
	available := current.Sub(reserved)
	if qty.GreaterThan(available) {
		return nil, &domain.InsufficientInventoryError{AvailableQty: available}
	}

	e.clock.Advance(at)

	item := &entity.BasketItem{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		LocationID: locationID,
		SKUID:      skuID,
		Qty:        qty,
		Status:     entity.BasketItemInCart,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	e.basketItems[item.ID] = item

	if sku.Source == entity.SourceRFID {
		e.pendingPicks[item.ID] = &entity.PendingPick{
			BasketItemID: item.ID,
			LocationID:   locationID,
			SKUID:        skuID,
			QtyRemaining: qty,
		}
	}

	return item, nil
}

// resolvePendingPicks is invoked after every accepted RFID read (§4.10):
// it consumes up to the remaining qty of present EPCs of skuID at
// locationID, oldest first, crediting each open pending pick in
// creation order until reads run out or every pick completes.
func (e *Engine) resolvePendingPicks(locationID, skuID string, at time.Time) {
	var picks []*entity.PendingPick
	for _, p := range e.pendingPicks {
		if p.LocationID == locationID && p.SKUID == skuID && !p.Complete() {
			picks = append(picks, p)
		}
	}
	if len(picks) == 0 {
		return
	}
	sort.Slice(picks, func(i, j int) bool {
		return e.basketItems[picks[i].BasketItemID].CreatedAt.Before(e.basketItems[picks[j].BasketItemID].CreatedAt)
	})

	epcs := e.epcsAt(locationID, skuID, at)
	sort.Slice(epcs, func(i, j int) bool {
		return e.presence[epcs[i]].LastSeenAt.Before(e.presence[epcs[j]].LastSeenAt)
	})

	idx := 0
	for _, pick := range picks {
		for idx < len(epcs) && pick.QtyRemaining.IsPositive() {
			epc := epcs[idx]
			idx++
			delete(e.presence, epc)
			pick.ConsumedEPCs = append(pick.ConsumedEPCs, epc)
			pick.QtyRemaining = pick.QtyRemaining.Sub(decimal.NewFromInt(1))

			item := e.basketItems[pick.BasketItemID]
			item.PickedConfirmedQty = item.PickedConfirmedQty.Add(decimal.NewFromInt(1))
			item.UpdatedAt = at
		}
	}
}

// removeCustomerItem implements §4.10 "Remove": restores reserved units
// and, for RFID, re-materialises consumed EPCs back into the origin
// location (synthesising the shortfall if pickedConfirmedQty outran the
// pending-pick record).
func (e *Engine) removeCustomerItem(basketItemID string, at time.Time) error {
	item, ok := e.basketItems[basketItemID]
	if !ok {
		return domain.ErrNotFound
	}
	if item.Status != entity.BasketItemInCart {
		return domain.ErrInvalidInput
	}

	e.clock.Advance(at)

	sku := e.skus[item.SKUID]
	if sku != nil && sku.Source == entity.SourceRFID {
		antennaID := e.primaryAntenna(item.LocationID)
		pick, hasPick := e.pendingPicks[item.ID]

		restored := decimal.Zero
		if hasPick {
			for _, epc := range pick.ConsumedEPCs {
				e.presence[epc] = entity.PresenceRecord{
					EPC:        epc,
					SKUID:      item.SKUID,
					LocationID: item.LocationID,
					AntennaID:  antennaID,
					LastSeenAt: at,
				}
				restored = restored.Add(decimal.NewFromInt(1))
			}
			delete(e.pendingPicks, item.ID)
		}

		shortfall := item.PickedConfirmedQty.Sub(restored)
		if shortfall.IsPositive() {
			e.synthesizeEPCsAt(item.LocationID, item.SKUID, shortfall, at)
		}
	}

	item.Status = entity.BasketItemRemoved
	item.UpdatedAt = at

	e.recomputeLocation(item.LocationID, at)
	return nil
}

// checkoutCustomer implements §4.10 "Checkout": every IN_CART item for
// customerID is sold. Personalisable SKUs route physical units through
// cashier staging and, when projected supply is exhausted, generate a
// replacement task against the printing wall.
func (e *Engine) checkoutCustomer(customerID string, at time.Time) ([]*entity.BasketItem, error) {
	e.clock.Advance(at)

	var items []*entity.BasketItem
	for _, b := range e.basketItems {
		if b.CustomerID == customerID && b.Status == entity.BasketItemInCart {
			items = append(items, b)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })

	touched := make(map[string]struct{})
	for _, item := range items {
		sku := e.skus[item.SKUID]
		if sku == nil {
			continue
		}

		if sku.Attrs.Personalisable() {
			e.checkoutPersonalised(item, sku, at)
		} else if sku.Source == entity.SourceRFID {
			e.immediateRFIDDeduction(item.LocationID, item.SKUID, item.Qty, at)
			delete(e.pendingPicks, item.ID)
		} else {
			e.appendLedgerEntry(item.LocationID, item.SKUID, entity.LedgerEntrySale, item.Qty.Neg(), at)
		}

		item.Status = entity.BasketItemSold
		item.UpdatedAt = at
		touched[item.LocationID] = struct{}{}
	}

	for locID := range touched {
		e.recomputeLocation(locID, at)
	}

	return items, nil
}

// checkoutPersonalised moves a personalisable SKU's sold unit through
// cashier staging, then targets a replacement task at the origin
// location or, when the origin's projected supply is exhausted, at the
// printing wall (§4.10, scenario S5).
func (e *Engine) checkoutPersonalised(item *entity.BasketItem, sku *entity.SKU, at time.Time) {
	if sku.Source == entity.SourceRFID {
		e.immediateRFIDDeduction(item.LocationID, item.SKUID, item.Qty, at)
		delete(e.pendingPicks, item.ID)
		e.synthesizeEPCsAt(entity.LocationCashierStorage, item.SKUID, item.Qty, at)
		e.recomputeLocation(entity.LocationCashierStorage, at)
	} else {
		e.appendLedgerEntry(item.LocationID, item.SKUID, entity.LedgerEntrySale, item.Qty.Neg(), at)
		e.appendLedgerEntry(entity.LocationCashierStorage, item.SKUID, entity.LedgerEntryConfirmedReplenishment, item.Qty, at)
	}

	target := item.LocationID
	if !e.projectedSupply(item.LocationID, item.SKUID, sku.Source).IsPositive() {
		target = entity.LocationPrintingWall
		e.createPrintingWallTask(item.SKUID, sku.Source, item.Qty, at)
	}
	e.recomputeLocation(target, at)
}

// createPrintingWallTask opens an ad-hoc replacement task destined for
// the printing wall when a personalised checkout exhausts the origin's
// projected supply (§4.10, scenario S5). It carries no owning rule: it
// exists to print exactly the qty just sold, not to satisfy a min/max.
func (e *Engine) createPrintingWallTask(skuID string, source entity.Source, qty decimal.Decimal, at time.Time) {
	loc, ok := e.locations[entity.LocationPrintingWall]
	if !ok {
		return
	}
	rule := &entity.EffectiveRule{LocationID: loc.ID, SKUID: skuID, Source: source}
	candidates := e.buildSourceCandidates(loc, rule, "")
	selected := ""
	for _, c := range candidates {
		if c.AvailableQty.IsPositive() {
			selected = c.ZoneID
			break
		}
	}
	if selected == "" && len(candidates) > 0 {
		selected = candidates[0].ZoneID
	}
	e.createTask("", loc.ID, skuID, source, candidates, selected, qty, qty, decimal.Zero, at)
}

// projectedSupply implements §4.10's forward-looking availability
// figure: on-hand stock, plus every open inbound deficit, plus what each
// configured source could still contribute net of its own reservations.
func (e *Engine) projectedSupply(locationID, skuID string, source entity.Source) decimal.Decimal {
	onHand := e.snapshotQty(locationID, skuID, source)

	inboundDeficit := decimal.Zero
	for _, t := range e.tasks {
		if t.DestinationID == locationID && t.SKUID == skuID && t.Status.IsOpen() {
			inboundDeficit = inboundDeficit.Add(t.DeficitQty)
		}
	}

	loc, ok := e.locations[locationID]
	sourceContribution := decimal.Zero
	if ok {
		for _, srcID := range loc.Sources {
			base := e.availableQtyForSource(srcID, skuID, source)
			reserved := decimal.Zero
			for _, t := range e.tasks {
				if t.Status.IsOpen() && t.SKUID == skuID && t.SelectedSourceZone == srcID {
					reserved = reserved.Add(t.DeficitQty)
				}
			}
			contribution := base.Sub(reserved)
			if contribution.IsPositive() {
				sourceContribution = sourceContribution.Add(contribution)
			}
		}
	}

	return onHand.Add(inboundDeficit).Add(sourceContribution)
}
