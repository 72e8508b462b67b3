package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
)

// RulesHandler exposes rule template management and the legacy direct
// effective-rule proxy (C6, C7).
type RulesHandler struct {
	eng *engine.Engine
}

func NewRulesHandler(eng *engine.Engine) *RulesHandler {
	return &RulesHandler{eng: eng}
}

func toAttrs(a attrsDTO) entity.CatalogAttrs {
	return entity.CatalogAttrs{
		Kit:      a.Kit,
		AgeGroup: a.AgeGroup,
		Gender:   a.Gender,
		Role:     a.Role,
		Quality:  a.Quality,
		Title:    a.Title,
	}
}

// UpsertRuleTemplate creates or updates a rule template.
func (h *RulesHandler) UpsertRuleTemplate(c *fiber.Ctx) error {
	var in upsertRuleTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	tpl, err := h.eng.UpsertRuleTemplate(engine.UpsertRuleTemplateInput{
		ID:              in.ID,
		Scope:           entity.TemplateScope(in.Scope),
		LocationID:      in.LocationID,
		Selector:        entity.TemplateSelector(in.Selector),
		SKUID:           in.SKUID,
		AttrSelector:    toAttrs(in.AttrSelector),
		Source:          entity.Source(in.Source),
		Min:             in.Min,
		Max:             in.Max,
		Priority:        in.Priority,
		InboundSourceID: in.InboundSourceID,
	}, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

// DeleteRuleTemplate soft-deletes a template and reprojects.
func (h *RulesHandler) DeleteRuleTemplate(c *fiber.Ctx) error {
	id := c.Params("id")
	var in struct {
		Timestamp int64 `json:"timestamp"`
	}
	_ = c.BodyParser(&in)
	if err := h.eng.DeleteRuleTemplate(id, atOrNow(in.Timestamp)); err != nil {
		return mapError(c, err)
	}
	return c.JSON(StatusResponse{Status: "deleted"})
}

// UpsertEffectiveRule is the legacy direct-upsert path, proxied through a
// managed single-rule template (§4.11).
func (h *RulesHandler) UpsertEffectiveRule(c *fiber.Ctx) error {
	var in upsertEffectiveRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	tpl, err := h.eng.UpsertEffectiveRule(in.LocationID, in.SKUID, entity.Source(in.Source), in.Min, in.Max, in.Priority, in.InboundSourceID, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

// DeleteEffectiveRule soft-deletes the template owning ruleID.
func (h *RulesHandler) DeleteEffectiveRule(c *fiber.Ctx) error {
	ruleID := c.Params("id")
	var in struct {
		Timestamp int64 `json:"timestamp"`
	}
	_ = c.BodyParser(&in)
	if err := h.eng.DeleteEffectiveRule(ruleID, atOrNow(in.Timestamp)); err != nil {
		return mapError(c, err)
	}
	return c.JSON(StatusResponse{Status: "deleted"})
}
