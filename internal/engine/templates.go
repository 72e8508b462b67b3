package engine

import (
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
)

// scopePriority orders LOCATION above GENERIC in winner election (§4.5).
func scopePriority(scope entity.TemplateScope) int {
	if scope == entity.ScopeLocation {
		return 1
	}
	return 0
}

// matchingSKUs returns every SKU id a template's selector matches.
func (e *Engine) matchingSKUs(tpl *entity.RuleTemplate) []string {
	var out []string
	for id, sku := range e.skus {
		if sku.Source != tpl.Source {
			continue
		}
		switch tpl.Selector {
		case entity.SelectorSKU:
			if id == tpl.SKUID {
				out = append(out, id)
			}
		case entity.SelectorAttributes:
			if sku.Attrs.Matches(tpl.AttrSelector) {
				out = append(out, id)
			}
		}
	}
	return out
}

// matchingLocations returns every location id a template's scope
// matches: GENERIC matches every location, LOCATION matches exactly its
// own zone.
func (e *Engine) matchingLocations(tpl *entity.RuleTemplate) []string {
	if tpl.Scope == entity.ScopeLocation {
		if _, ok := e.locations[tpl.LocationID]; !ok {
			return nil
		}
		return []string{tpl.LocationID}
	}
	out := make([]string, 0, len(e.locations))
	for id := range e.locations {
		out = append(out, id)
	}
	return out
}

// winnerKey is the (location, sku, source) triple a winning template
// projects into — carried alongside the computed effective rule id so
// the rule can be built without parsing ids back apart.
type winnerKey struct {
	locationID string
	skuID      string
	tpl        *entity.RuleTemplate
}

// projectTemplates recomputes the entire effective rule set from the
// active template set, diffs it against the live registry, and cascades
// deletion of orphaned rules and their open tasks (§4.5). Running it
// twice in a row with no template change yields the same managed id set
// (§8 property 5).
func (e *Engine) projectTemplates() {
	winners := make(map[string]winnerKey)

	for _, tpl := range e.templates {
		if !tpl.Active {
			continue
		}
		for _, locID := range e.matchingLocations(tpl) {
			for _, skuID := range e.matchingSKUs(tpl) {
				id := entity.EffectiveRuleID(locID, skuID, tpl.Source)
				cur, exists := winners[id]
				if !exists || beatsWinner(tpl, cur.tpl) {
					winners[id] = winnerKey{locationID: locID, skuID: skuID, tpl: tpl}
				}
			}
		}
	}

	newSet := make(map[string]*entity.EffectiveRule, len(winners))
	for id, w := range winners {
		tpl := w.tpl
		newSet[id] = &entity.EffectiveRule{
			ID:              id,
			TemplateID:      tpl.ID,
			LocationID:      w.locationID,
			SKUID:           w.skuID,
			Source:          tpl.Source,
			Min:             tpl.Min,
			Max:             tpl.Max,
			Priority:        tpl.Priority,
			InboundSourceID: tpl.InboundSourceID,
			Active:          true,
			UpdatedAt:       tpl.UpdatedAt,
		}
	}

	for id := range e.rules {
		if _, ok := newSet[id]; !ok {
			e.retireEffectiveRule(id)
		}
	}
	e.rules = newSet
}

// beatsWinner reports whether candidate outranks incumbent under the
// lexicographic order (scope priority, template priority, updatedAt).
func beatsWinner(candidate, incumbent *entity.RuleTemplate) bool {
	cp, ip := scopePriority(candidate.Scope), scopePriority(incumbent.Scope)
	if cp != ip {
		return cp > ip
	}
	if candidate.Priority != incumbent.Priority {
		return candidate.Priority > incumbent.Priority
	}
	return candidate.UpdatedAt.After(incumbent.UpdatedAt)
}

// retireEffectiveRule rejects every open task owned by a rule that no
// active template produces any more (§4.5, §4.7). The rule itself drops
// out when projectTemplates replaces e.rules with the new set.
func (e *Engine) retireEffectiveRule(ruleID string) {
	now := e.clock.Current()
	for _, t := range e.tasks {
		if t.RuleID == ruleID && t.Status.IsOpen() {
			e.closeTask(t, entity.TaskRejected, "rule_deleted", now)
		}
	}
}
