package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BasketItemStatus tracks a customer's cart line through checkout (§3, §4.10).
type BasketItemStatus string

const (
	BasketItemInCart  BasketItemStatus = "IN_CART"
	BasketItemSold    BasketItemStatus = "SOLD"
	BasketItemRemoved BasketItemStatus = "REMOVED"
)

// BasketItem is a reservation of in-flight stock for a customer (§3, §4.10).
type BasketItem struct {
	ID                  string
	CustomerID          string
	LocationID          string
	SKUID               string
	Qty                 decimal.Decimal
	PickedConfirmedQty  decimal.Decimal
	Status              BasketItemStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ReservedQty is the quantity this item still holds against available
// stock (§4.10 "Add"): RFID reserves the outstanding pick, NON_RFID
// reserves the full quantity.
func (b BasketItem) ReservedQty() decimal.Decimal {
	if b.Status != BasketItemInCart {
		return decimal.Zero
	}
	remaining := b.Qty.Sub(b.PickedConfirmedQty)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// PendingPick tracks the physical EPCs consumed from presence toward a
// BasketItem's quantity while the customer walks the floor (§3, §4.10).
type PendingPick struct {
	BasketItemID string
	LocationID   string
	SKUID        string
	ConsumedEPCs []string
	QtyRemaining decimal.Decimal
}

// Complete reports whether every unit of the pick has been materialised.
func (p PendingPick) Complete() bool {
	return !p.QtyRemaining.IsPositive()
}
