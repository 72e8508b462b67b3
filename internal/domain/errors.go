// Package domain holds the vocabulary shared by every engine component:
// sentinel validation errors and the reserved configuration constants (§6).
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors. These short-circuit a command before any state is
// touched or any audit entry is written (§7 "Validation").
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrNotFound                = errors.New("resource not found")
	ErrInvalidMinMax           = errors.New("invalid_min_max")
	ErrZoneRequired            = errors.New("zone_required")
	ErrZoneNotFound            = errors.New("zone_not_found")
	ErrSKURequired             = errors.New("sku_required")
	ErrSourceMismatch          = errors.New("source_mismatch")
	ErrSourceEqualsDestination = errors.New("source_equals_destination")
)

// Business errors. These reflect a precondition on state, not on input
// shape (§7 "Business").
var (
	ErrUnknownEPC              = errors.New("unknown_epc")
	ErrTaskNotOpen             = errors.New("task_not_open")
	ErrStaffNotEligibleForZone = errors.New("staff_not_eligible_for_zone")
	ErrZoneNotOrderable        = errors.New("zone_not_orderable")
	ErrNoInventoryMoved        = errors.New("no_inventory_moved")
)

// InsufficientInventoryError reports addCustomerItem rejecting a request
// because the available quantity is below what was asked for; the
// caller inspects AvailableQty to render it back to the customer (§6).
type InsufficientInventoryError struct {
	AvailableQty decimal.Decimal
}

func (e *InsufficientInventoryError) Error() string { return "insufficient_inventory" }

// Reserved configuration defaults (§6). Overridable via pkg/config.
const (
	DefaultDedupWindow       = 15 * time.Second
	DefaultPresenceTTL       = 300 * time.Second
	DefaultAutoSweepInterval = 30 * time.Second
)
