// Read model accessors. Every method here returns a defensive copy:
// nothing handed back aliases engine-owned state, so a collaborator
// mutating the result can never corrupt the engine (§3 Ownership, §5).
package engine

import (
	"sort"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LocationSummary is one row of the dashboard read model (§6).
type LocationSummary struct {
	LocationID   string
	Name         string
	LowStockSKUs int
	OpenTasks    int
}

// Dashboard returns a per-location summary across the whole store graph.
func (e *Engine) Dashboard() []LocationSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	openByLoc := make(map[string]int)
	for _, t := range e.tasks {
		if t.Status.IsOpen() {
			openByLoc[t.DestinationID]++
		}
	}
	lowByLoc := make(map[string]int)
	for _, r := range e.rules {
		qty := e.snapshotQty(r.LocationID, r.SKUID, r.Source)
		if qty.LessThanOrEqual(r.Min) {
			lowByLoc[r.LocationID]++
		}
	}

	out := make([]LocationSummary, 0, len(e.locations))
	for id, loc := range e.locations {
		out = append(out, LocationSummary{
			LocationID:   id,
			Name:         loc.Name,
			LowStockSKUs: lowByLoc[id],
			OpenTasks:    openByLoc[id],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out
}

// InventoryRow is one SKU's standing in the zone detail read model.
type InventoryRow struct {
	SKUID      string
	Source     entity.Source
	Qty        decimal.Decimal
	Confidence *float64
	Version    int64
	Min        decimal.Decimal
	Max        decimal.Decimal
}

// ZoneDetail returns inventory rows, recent RFID reads, and open tasks
// for one location (§6).
func (e *Engine) ZoneDetail(locationID string) (rows []InventoryRow, reads []entity.PresenceRecord, tasks []entity.ReplenishmentTask, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.locations[locationID]; !exists {
		return nil, nil, nil, false
	}

	for key, snap := range e.snapshots {
		if key.LocationID != locationID {
			continue
		}
		row := InventoryRow{SKUID: key.SKUID, Source: key.Source, Qty: snap.Qty, Version: snap.Version}
		if snap.Confidence != nil {
			c := *snap.Confidence
			row.Confidence = &c
		}
		if r, ok := e.rules[entity.EffectiveRuleID(locationID, key.SKUID, key.Source)]; ok {
			row.Min, row.Max = r.Min, r.Max
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SKUID < rows[j].SKUID })

	for _, rec := range e.presence {
		if rec.LocationID != locationID {
			continue
		}
		if rec.RSSI != nil {
			rssi := *rec.RSSI
			rec.RSSI = &rssi
		}
		reads = append(reads, rec)
	}
	sort.Slice(reads, func(i, j int) bool { return reads[i].LastSeenAt.After(reads[j].LastSeenAt) })

	for _, t := range e.tasks {
		if t.DestinationID == locationID && t.Status.IsOpen() {
			tasks = append(tasks, copyTask(t))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })

	return rows, reads, tasks, true
}

// TaskListFilter narrows TaskList's result (§6).
type TaskListFilter struct {
	DestinationID string
	Status        entity.TaskStatus
	OnlyOpen      bool
}

// TaskList returns a filtered, defensively-copied view of tasks.
func (e *Engine) TaskList(f TaskListFilter) []entity.ReplenishmentTask {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []entity.ReplenishmentTask
	for _, t := range e.tasks {
		if f.DestinationID != "" && t.DestinationID != f.DestinationID {
			continue
		}
		if f.OnlyOpen && !t.Status.IsOpen() {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, copyTask(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// copyTask returns a copy of t that shares no slice or pointer with it.
func copyTask(t *entity.ReplenishmentTask) entity.ReplenishmentTask {
	c := *t
	c.CandidateSources = append([]entity.SourceCandidate(nil), t.CandidateSources...)
	c.AttemptedSources = append([]string(nil), t.AttemptedSources...)
	if t.AssignedAt != nil {
		v := *t.AssignedAt
		c.AssignedAt = &v
	}
	if t.ConfirmedQty != nil {
		v := *t.ConfirmedQty
		c.ConfirmedQty = &v
	}
	return c
}

// ReceivingList returns a defensively-copied view of receiving orders.
func (e *Engine) ReceivingList(destinationID string) []entity.ReceivingOrder {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []entity.ReceivingOrder
	for _, o := range e.orders {
		if destinationID != "" && o.DestinationID != destinationID {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// AuditLog returns a defensively-copied audit trail, optionally filtered
// to one task or order id.
func (e *Engine) AuditLog(taskID string) []entity.AuditEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.auditLog(taskID)
}

// FlowTimelineEntry is one row of the flow timeline read model: the
// supplement named in Design Notes, an audit entry annotated with the
// name of its location for a human-readable activity feed.
type FlowTimelineEntry struct {
	entity.AuditEntry
	DestinationName string
}

// FlowTimeline returns the audit trail annotated with location names,
// newest first.
func (e *Engine) FlowTimeline(limit int) []FlowTimelineEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.auditLog("")
	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]FlowTimelineEntry, 0, len(entries))
	for _, a := range entries {
		name := ""
		if loc, ok := e.locations[a.LocationID]; ok {
			name = loc.Name
		}
		out = append(out, FlowTimelineEntry{AuditEntry: a, DestinationName: name})
	}
	return out
}
