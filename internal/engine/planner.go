package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// externalSupply stands in for the effectively unconstrained stock of an
// external-* source: it is never depleted by internal accounting.
var externalSupply = decimal.New(1_000_000, 0)

func isExternalSource(id string) bool {
	return strings.HasPrefix(id, entity.ExternalSourcePrefix)
}

// evaluateLocation runs §4.6 for every active rule owning locationID,
// then §4.12 staff auto-assignment over whatever tasks/orders changed.
func (e *Engine) evaluateLocation(locationID string, at time.Time) {
	loc, ok := e.locations[locationID]
	if !ok {
		return
	}

	var rules []*entity.EffectiveRule
	for _, r := range e.rules {
		if r.LocationID == locationID {
			rules = append(rules, r)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	changed := false
	for _, rule := range rules {
		if loc.IsSalesLocation {
			if e.evaluateSalesRule(loc, rule, at) {
				changed = true
			}
		} else {
			if e.evaluateNonSalesRule(loc, rule, at) {
				changed = true
			}
		}
	}

	if changed {
		e.runStaffAutoAssignment(at)
	}
}

// evaluateSalesRule implements §4.6's sales-location algorithm: merge,
// over-stock, trim, source refresh, trigger.
func (e *Engine) evaluateSalesRule(loc *entity.Location, rule *entity.EffectiveRule, at time.Time) bool {
	changed := false
	current := e.snapshotQty(rule.LocationID, rule.SKUID, rule.Source)

	open := e.openTasksForRule(rule.ID)
	autoAdj := filterAutoAdjustable(open)

	// Merge.
	if len(autoAdj) > 1 && (len(loc.Sources) <= 1 || allSameSource(autoAdj)) {
		sort.Slice(autoAdj, func(i, j int) bool { return autoAdj[i].CreatedAt.Before(autoAdj[j].CreatedAt) })
		keeper := autoAdj[0]
		for _, dup := range autoAdj[1:] {
			keeper.DeficitQty = keeper.DeficitQty.Add(dup.DeficitQty)
			keeper.UpdatedAt = at
			e.closeTask(dup, entity.TaskRejected, "merged_plan", at)
		}
		changed = true
		open = e.openTasksForRule(rule.ID)
		autoAdj = filterAutoAdjustable(open)
	}

	// Over-stock.
	if current.GreaterThanOrEqual(rule.Max) {
		for _, t := range autoAdj {
			e.closeTask(t, entity.TaskRejected, "stock_recovered", at)
			changed = true
		}
		open = e.openTasksForRule(rule.ID)
		autoAdj = filterAutoAdjustable(open)
	}

	desired := decimal.Max(decimal.Zero, rule.Max.Sub(current))
	total := sumDeficits(open)

	// Trim.
	if total.GreaterThan(desired) {
		excess := total.Sub(desired)
		newest := append([]*entity.ReplenishmentTask(nil), autoAdj...)
		sort.Slice(newest, func(i, j int) bool { return newest[i].CreatedAt.After(newest[j].CreatedAt) })
		for _, t := range newest {
			if !excess.IsPositive() {
				break
			}
			if t.DeficitQty.LessThanOrEqual(excess) {
				excess = excess.Sub(t.DeficitQty)
				e.closeTask(t, entity.TaskRejected, "plan_adjusted", at)
			} else {
				t.DeficitQty = t.DeficitQty.Sub(excess)
				t.UpdatedAt = at
				excess = decimal.Zero
			}
			changed = true
		}
		open = e.openTasksForRule(rule.ID)
	}

	// Source refresh.
	for _, t := range open {
		candidates := e.buildSourceCandidates(loc, rule, t.ID)
		t.CandidateSources = candidates
		if t.SelectedSourceZone != "" && !candidateListContains(candidates, t.SelectedSourceZone) {
			t.SelectedSourceZone = ""
			t.UpdatedAt = at
			changed = true
		}
	}

	// Trigger.
	remaining := desired.Sub(sumDeficits(open))
	if current.LessThanOrEqual(rule.Min) && remaining.IsPositive() {
		candidates := e.buildSourceCandidates(loc, rule, "")
		created := false
		for _, c := range candidates {
			if !remaining.IsPositive() {
				break
			}
			if !c.AvailableQty.IsPositive() {
				continue
			}
			alloc := decimal.Min(remaining, c.AvailableQty)
			e.createTask(rule.ID, loc.ID, rule.SKUID, rule.Source, candidates, c.ZoneID, alloc, rule.Max, current, at)
			remaining = remaining.Sub(alloc)
			created = true
			changed = true
		}
		if !created && remaining.IsPositive() && len(candidates) > 0 {
			e.createTask(rule.ID, loc.ID, rule.SKUID, rule.Source, candidates, candidates[0].ZoneID, remaining, rule.Max, current, at)
			changed = true
		}
	}

	return changed
}

// evaluateNonSalesRule implements §4.6's non-sales-location algorithm:
// cancel every replenishment task that is not IN_PROGRESS in favour of
// receiving orders.
func (e *Engine) evaluateNonSalesRule(loc *entity.Location, rule *entity.EffectiveRule, at time.Time) bool {
	changed := false
	for _, t := range e.openTasksForRule(rule.ID) {
		if t.Status.AutoAdjustable() {
			e.closeTask(t, entity.TaskRejected, "non_sales_receiving_flow", at)
			changed = true
		}
	}

	current := e.snapshotQty(rule.LocationID, rule.SKUID, rule.Source)
	if current.GreaterThan(rule.Min) {
		return changed
	}

	desired := rule.Max.Sub(current)
	desired = desired.Sub(e.inTransitQty(loc.ID, rule.SKUID, rule.Source))
	if !desired.IsPositive() {
		return changed
	}

	src := e.selectBestSource(loc, rule.SKUID, rule.Source, desired)
	if src == "" {
		return changed
	}

	if _, err := e.createReceivingOrder(src, loc.ID, rule.SKUID, rule.Source, desired, at); err == nil {
		changed = true
	}
	return changed
}

// buildSourceCandidates rebuilds the ordered candidate list for a
// destination/rule pair (§4.6 step 5). excludeTaskID, when non-empty,
// keeps that task's own reservation out of the "other open tasks"
// deduction so a task doesn't compete with itself.
func (e *Engine) buildSourceCandidates(loc *entity.Location, rule *entity.EffectiveRule, excludeTaskID string) []entity.SourceCandidate {
	candidates := make([]entity.SourceCandidate, 0, len(loc.Sources))
	for i, srcID := range loc.Sources {
		base := e.availableQtyForSource(srcID, rule.SKUID, rule.Source)
		reserved := decimal.Zero
		for _, t := range e.tasks {
			if !t.Status.IsOpen() || t.ID == excludeTaskID {
				continue
			}
			if t.SKUID == rule.SKUID && t.SelectedSourceZone == srcID {
				reserved = reserved.Add(t.DeficitQty)
			}
		}
		available := base.Sub(reserved)
		if available.IsNegative() {
			available = decimal.Zero
		}
		candidates = append(candidates, entity.SourceCandidate{ZoneID: srcID, SortOrder: i, AvailableQty: available})
	}
	return candidates
}

// availableQtyForSource returns a source's raw stock for a sku/source
// pair: the snapshot quantity for an internal location, or the
// unconstrained external sentinel.
func (e *Engine) availableQtyForSource(srcID, skuID string, source entity.Source) decimal.Decimal {
	if isExternalSource(srcID) {
		return externalSupply
	}
	return e.snapshotQty(srcID, skuID, source)
}

// selectBestSource implements the non-sales receiving source selection
// of §4.6: first internal source with sufficient stock, else first
// internal source with any stock, else first external source, else the
// first configured source. Grounded on the alternate-source scoring
// pattern of a multi-source planner: rank by priority, prefer a
// candidate that fully covers the need, fall back to the best partial.
func (e *Engine) selectBestSource(loc *entity.Location, skuID string, source entity.Source, qtyNeeded decimal.Decimal) string {
	var firstInternalAny, firstExternal string

	for _, srcID := range loc.Sources {
		if isExternalSource(srcID) {
			if firstExternal == "" {
				firstExternal = srcID
			}
			continue
		}
		qty := e.snapshotQty(srcID, skuID, source)
		if qty.GreaterThanOrEqual(qtyNeeded) {
			return srcID
		}
		if firstInternalAny == "" && qty.IsPositive() {
			firstInternalAny = srcID
		}
	}
	if firstInternalAny != "" {
		return firstInternalAny
	}
	if firstExternal != "" {
		return firstExternal
	}
	if len(loc.Sources) > 0 {
		return loc.Sources[0]
	}
	return ""
}

// inTransitQty sums IN_TRANSIT receiving orders for a (destination,
// sku, source) triple (§4.6 non-sales branch).
func (e *Engine) inTransitQty(destinationID, skuID string, source entity.Source) decimal.Decimal {
	total := decimal.Zero
	for _, o := range e.orders {
		if o.DestinationID == destinationID && o.SKUID == skuID && o.Source == source && o.Status == entity.ReceivingInTransit {
			total = total.Add(o.RequestedQty.Sub(o.ConfirmedQty))
		}
	}
	return total
}

func filterAutoAdjustable(tasks []*entity.ReplenishmentTask) []*entity.ReplenishmentTask {
	out := make([]*entity.ReplenishmentTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Status.AutoAdjustable() {
			out = append(out, t)
		}
	}
	return out
}

func allSameSource(tasks []*entity.ReplenishmentTask) bool {
	if len(tasks) == 0 {
		return true
	}
	first := tasks[0].SelectedSourceZone
	for _, t := range tasks[1:] {
		if t.SelectedSourceZone != first {
			return false
		}
	}
	return true
}

func sumDeficits(tasks []*entity.ReplenishmentTask) decimal.Decimal {
	total := decimal.Zero
	for _, t := range tasks {
		total = total.Add(t.DeficitQty)
	}
	return total
}

func candidateListContains(candidates []entity.SourceCandidate, zoneID string) bool {
	for _, c := range candidates {
		if c.ZoneID == zoneID {
			return true
		}
	}
	return false
}
