package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger entry kinds for NON_RFID locations (§3 "Ledger baseline").
const (
	LedgerEntrySale                   = "SALE"
	LedgerEntryReturn                 = "RETURN"
	LedgerEntryConfirmedReplenishment = "CONFIRMED_REPLENISHMENT"
)

// LedgerBaseline is the most recent trusted NON_RFID count for a
// (location, SKU) pair, against which signed ledger entries accrue.
type LedgerBaseline struct {
	LocationID string
	SKUID      string
	Qty        decimal.Decimal
	Timestamp  time.Time
}

// LedgerEntry is a signed movement against a NON_RFID location's baseline:
// negative for sales, positive for returns and confirmed replenishment.
type LedgerEntry struct {
	LocationID string
	SKUID      string
	Kind       string
	Qty        decimal.Decimal // signed
	Timestamp  time.Time
}
