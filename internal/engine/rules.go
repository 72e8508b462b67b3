package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// UpsertRuleTemplateInput is the command payload for upsertRuleTemplate
// (§6, §4.5).
type UpsertRuleTemplateInput struct {
	ID              string // empty creates a new template with a generated id; an unknown id creates one under that id
	Scope           entity.TemplateScope
	LocationID      string
	Selector        entity.TemplateSelector
	SKUID           string
	AttrSelector    entity.CatalogAttrs
	Source          entity.Source
	Min             decimal.Decimal
	Max             decimal.Decimal
	Priority        int
	InboundSourceID string
}

// upsertRuleTemplate validates and stores a rule template, then
// reprojects the effective rule set (§4.5, §6).
func (e *Engine) upsertRuleTemplate(in UpsertRuleTemplateInput, at time.Time) (*entity.RuleTemplate, error) {
	if in.Max.LessThan(in.Min) {
		return nil, domain.ErrInvalidMinMax
	}
	if in.Scope == entity.ScopeLocation {
		if in.LocationID == "" {
			return nil, domain.ErrZoneRequired
		}
		if _, ok := e.locations[in.LocationID]; !ok {
			return nil, domain.ErrZoneNotFound
		}
	}
	if in.Selector == entity.SelectorSKU && in.SKUID == "" {
		return nil, domain.ErrSKURequired
	}

	e.clock.Advance(at)

	id := in.ID
	tpl, exists := e.templates[id]
	if !exists {
		if id == "" {
			id = uuid.NewString()
		}
		tpl = &entity.RuleTemplate{ID: id}
		e.templates[id] = tpl
	}

	tpl.Scope = in.Scope
	tpl.LocationID = in.LocationID
	tpl.Selector = in.Selector
	tpl.SKUID = in.SKUID
	tpl.AttrSelector = in.AttrSelector
	tpl.Source = in.Source
	tpl.Min = in.Min
	tpl.Max = in.Max
	tpl.Priority = in.Priority
	tpl.InboundSourceID = in.InboundSourceID
	tpl.Active = true
	tpl.UpdatedAt = at

	e.projectTemplates()
	e.recomputeAffectedByTemplate(tpl, at)

	return tpl, nil
}

// deleteRuleTemplate soft-deletes a template and reprojects (§3
// Lifecycle, §4.5).
func (e *Engine) deleteRuleTemplate(id string, at time.Time) error {
	tpl, ok := e.templates[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !tpl.Active {
		return nil // already_inactive, idempotent (§7 Lifecycle)
	}

	e.clock.Advance(at)
	tpl.Active = false
	tpl.UpdatedAt = at

	e.projectTemplates()
	e.recomputeAffectedByTemplate(tpl, at)

	return nil
}

// upsertEffectiveRuleLegacy is the direct-upsert compatibility path
// (§4.11): it proxies through a single deterministic LOCATION/SKU
// template so every effective rule still derives from projection.
func (e *Engine) upsertEffectiveRuleLegacy(locationID, skuID string, source entity.Source, min, max decimal.Decimal, priority int, inboundSourceID string, at time.Time) (*entity.RuleTemplate, error) {
	legacyID := "legacy-" + entity.EffectiveRuleID(locationID, skuID, source)
	return e.upsertRuleTemplate(UpsertRuleTemplateInput{
		ID:              legacyID,
		Scope:           entity.ScopeLocation,
		LocationID:      locationID,
		Selector:        entity.SelectorSKU,
		SKUID:           skuID,
		Source:          source,
		Min:             min,
		Max:             max,
		Priority:        priority,
		InboundSourceID: inboundSourceID,
	}, at)
}

// deleteEffectiveRuleLegacy soft-deletes the template that currently
// owns ruleID (§4.11).
func (e *Engine) deleteEffectiveRuleLegacy(ruleID string, at time.Time) error {
	rule, ok := e.rules[ruleID]
	if !ok {
		return domain.ErrNotFound
	}
	return e.deleteRuleTemplate(rule.TemplateID, at)
}

// recomputeAffectedByTemplate triggers §4.4 recompute for every location
// a template could plausibly affect: its own zone when LOCATION-scoped,
// or every location when GENERIC-scoped.
func (e *Engine) recomputeAffectedByTemplate(tpl *entity.RuleTemplate, at time.Time) {
	if tpl.Scope == entity.ScopeLocation {
		e.recomputeLocation(tpl.LocationID, at)
		return
	}
	for id := range e.locations {
		e.recomputeLocation(id, at)
	}
}
