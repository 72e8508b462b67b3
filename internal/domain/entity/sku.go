package entity

import (
	"strings"
	"time"
)

// SKU identifies a stock-keeping unit. Source is immutable: an RFID SKU is
// realised as a set of EPCs, a NON_RFID SKU as a ledger balance.
type SKU struct {
	ID     string
	Source Source
	Attrs  CatalogAttrs
}

// CatalogAttrs is the small relational filter evaluated by rule template
// attribute selectors (§3, §4.5) and by the personalisation check (§4.10).
// It is a typed bag, not dynamic property access, per Design Notes §9.
type CatalogAttrs struct {
	Kit      string
	AgeGroup string
	Gender   string
	Role     string // e.g. "player", "goalkeeper" — drives personalisation
	Quality  string
	Title    string // free-text product title, checked for "JSY" (jersey)
}

// Matches reports whether every non-empty field of sel equals the
// corresponding field on a. An empty selector field is a wildcard.
func (a CatalogAttrs) Matches(sel CatalogAttrs) bool {
	if sel.Kit != "" && sel.Kit != a.Kit {
		return false
	}
	if sel.AgeGroup != "" && sel.AgeGroup != a.AgeGroup {
		return false
	}
	if sel.Gender != "" && sel.Gender != a.Gender {
		return false
	}
	if sel.Role != "" && sel.Role != a.Role {
		return false
	}
	if sel.Quality != "" && sel.Quality != a.Quality {
		return false
	}
	return true
}

// Personalisable reports whether sold units of this SKU must route through
// cashier staging on checkout (§4.10): the role is player/goalkeeper, or
// the title contains "JSY".
func (a CatalogAttrs) Personalisable() bool {
	if a.Role == "player" || a.Role == "goalkeeper" {
		return true
	}
	return strings.Contains(a.Title, "JSY")
}

// EPCMapping is the time-windowed association between an EPC and the SKU it
// realises. At most one mapping is active for a given EPC at any instant.
type EPCMapping struct {
	EPC        string
	SKUID      string
	ActiveFrom time.Time
	ActiveTo   *time.Time
}

// ActiveAt reports whether this mapping covers instant t. ActiveTo is
// exclusive, so a mapping closed at the instant its successor opens does
// not overlap it.
func (m EPCMapping) ActiveAt(t time.Time) bool {
	if t.Before(m.ActiveFrom) {
		return false
	}
	return m.ActiveTo == nil || t.Before(*m.ActiveTo)
}
