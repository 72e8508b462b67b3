package engine

import (
	"sort"
	"time"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
)

// assignable is a pending task or receiving order competing for staff in
// creation order (§4.12).
type assignable struct {
	id         string
	locationID string
	createdAt  time.Time
	assign     func(staffID string, at time.Time)
}

// runStaffAutoAssignment implements §4.12. It runs after any task or
// order mutation and only ever touches items with no assignee yet.
func (e *Engine) runStaffAutoAssignment(at time.Time) {
	eligible := e.eligiblePool()
	if len(eligible) == 0 {
		return
	}

	load := e.staffLoad(eligible)

	items := e.pendingAssignments()
	sort.Slice(items, func(i, j int) bool { return items[i].createdAt.Before(items[j].createdAt) })

	for _, it := range items {
		pool := inScopePool(eligible, it.locationID)
		fallback := false
		if len(pool) == 0 {
			pool = eligible
			fallback = true
		}
		if len(pool) == 0 {
			continue
		}
		chosen := minLoadStaff(pool, load)
		load[chosen.ID]++
		it.assign(chosen.ID, at)
		details := ""
		if fallback {
			details = "zone_scope_fallback"
		}
		e.addAudit(it.id, it.locationID, entity.AuditAssigned, chosen.ID, details, at)
	}
}

// eligiblePool is active ASSOCIATE members, or every active member if
// no associate is on shift (§4.12).
func (e *Engine) eligiblePool() []*entity.StaffMember {
	var associates, any []*entity.StaffMember
	for _, s := range e.staff {
		if !s.OnShift {
			continue
		}
		any = append(any, s)
		if s.Role == entity.RoleAssociate {
			associates = append(associates, s)
		}
	}
	if len(associates) > 0 {
		return associates
	}
	return any
}

// staffLoad counts each eligible member's open tasks plus IN_TRANSIT
// orders currently assigned to them.
func (e *Engine) staffLoad(eligible []*entity.StaffMember) map[string]int {
	load := make(map[string]int, len(eligible))
	for _, s := range eligible {
		load[s.ID] = 0
	}
	for _, t := range e.tasks {
		if t.Status.IsOpen() && t.AssignedStaffID != "" {
			if _, ok := load[t.AssignedStaffID]; ok {
				load[t.AssignedStaffID]++
			}
		}
	}
	for _, o := range e.orders {
		if o.Status == entity.ReceivingInTransit && o.AssignedStaffID != "" {
			if _, ok := load[o.AssignedStaffID]; ok {
				load[o.AssignedStaffID]++
			}
		}
	}
	return load
}

// pendingAssignments lists every open task and IN_TRANSIT order with no
// assignee yet.
func (e *Engine) pendingAssignments() []assignable {
	var items []assignable
	for _, t := range e.tasks {
		if t.Status.IsOpen() && t.AssignedStaffID == "" {
			t := t
			items = append(items, assignable{
				id:         t.ID,
				locationID: t.DestinationID,
				createdAt:  t.CreatedAt,
				assign: func(staffID string, at time.Time) {
					t.AssignedStaffID = staffID
					t.AssignedAt = &at
					if t.Status == entity.TaskCreated {
						t.Status = entity.TaskAssigned
					}
					t.UpdatedAt = at
				},
			})
		}
	}
	for _, o := range e.orders {
		if o.Status == entity.ReceivingInTransit && o.AssignedStaffID == "" {
			o := o
			items = append(items, assignable{
				id:         o.ID,
				locationID: o.DestinationID,
				createdAt:  o.CreatedAt,
				assign: func(staffID string, at time.Time) {
					o.AssignedStaffID = staffID
					o.UpdatedAt = at
				},
			})
		}
	}
	return items
}

// inScopePool filters pool to members whose zone scope covers locationID.
func inScopePool(pool []*entity.StaffMember, locationID string) []*entity.StaffMember {
	var out []*entity.StaffMember
	for _, s := range pool {
		if s.InScope(locationID) {
			out = append(out, s)
		}
	}
	return out
}

// minLoadStaff picks the lowest-load member, ties broken by ascending id.
func minLoadStaff(pool []*entity.StaffMember, load map[string]int) *entity.StaffMember {
	best := pool[0]
	for _, s := range pool[1:] {
		if load[s.ID] < load[best.ID] || (load[s.ID] == load[best.ID] && s.ID < best.ID) {
			best = s
		}
	}
	return best
}
