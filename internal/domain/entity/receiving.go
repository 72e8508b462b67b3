package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivingOrderStatus is the inbound order lifecycle state (§3, §4.8).
type ReceivingOrderStatus string

const (
	ReceivingInTransit ReceivingOrderStatus = "IN_TRANSIT"
	ReceivingConfirmed ReceivingOrderStatus = "CONFIRMED"
	ReceivingCancelled ReceivingOrderStatus = "CANCELLED"
)

// ReceivingOrder is an inbound order for a non-sales location or an
// external origin (§4.6 "Non-sales locations", §4.8).
type ReceivingOrder struct {
	ID               string
	SourceLocationID string // internal location id or "external-*"
	DestinationID    string
	SKUID            string
	Source           Source
	RequestedQty     decimal.Decimal
	ConfirmedQty     decimal.Decimal
	Status           ReceivingOrderStatus
	AssignedStaffID  string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
