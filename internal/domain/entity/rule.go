package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TemplateScope selects which locations a rule template applies to.
type TemplateScope string

const (
	ScopeGeneric  TemplateScope = "GENERIC"
	ScopeLocation TemplateScope = "LOCATION"
)

// TemplateSelector selects which SKUs a rule template applies to.
type TemplateSelector string

const (
	SelectorSKU        TemplateSelector = "SKU"
	SelectorAttributes TemplateSelector = "ATTRIBUTES"
)

// RuleTemplate is a generic or location-scoped min/max rule that projects
// into one or more EffectiveRules (§3, §4.5). Soft-deleted via Active=false.
type RuleTemplate struct {
	ID              string
	Scope           TemplateScope
	LocationID      string // required when Scope == ScopeLocation
	Selector        TemplateSelector
	SKUID           string       // required when Selector == SelectorSKU
	AttrSelector    CatalogAttrs // used when Selector == SelectorAttributes
	Source          Source
	Min             decimal.Decimal
	Max             decimal.Decimal
	Priority        int
	InboundSourceID string
	Active          bool
	UpdatedAt       time.Time
}

// EffectiveRule is the live min/max record the planner consults, derived
// from the winning RuleTemplate for a (location, sku, source) triple.
type EffectiveRule struct {
	ID              string
	LocationID      string
	SKUID           string
	Source          Source
	Min             decimal.Decimal
	Max             decimal.Decimal
	Priority        int
	InboundSourceID string
	Active          bool
	UpdatedAt       time.Time

	// TemplateID traces this effective rule back to its winning template,
	// so a template soft-delete can find and cascade-cancel its descendants.
	TemplateID string
}

// EffectiveRuleID computes the canonical id for a (location, sku, source)
// triple: "rule-<locationId>-<skuId>-<source>", lowercased (§6).
func EffectiveRuleID(locationID, skuID string, source Source) string {
	return strings.ToLower("rule-" + locationID + "-" + skuID + "-" + string(source))
}
