package entity

// Source distinguishes the two merchandise classes the engine tracks.
// A SKU's source is immutable once created.
type Source string

const (
	SourceRFID    Source = "RFID"
	SourceNonRFID Source = "NON_RFID"
)

// Reserved location ids referenced directly by the personalisation flow (§4.10).
const (
	LocationCashierStorage = "zone-cashier-storage"
	LocationPrintingWall   = "zone-printing-wall"
)

// ExternalSourcePrefix marks a replenishment source id as outside the
// location graph (a supplier, not another store location).
const ExternalSourcePrefix = "external-"
