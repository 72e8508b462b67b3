package http

import "github.com/shopspring/decimal"

// ErrorResponse is the JSON body returned for any non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse wraps a discriminated command status (§7).
type StatusResponse struct {
	Status string `json:"status"`
}

type ingestRFIDReadRequest struct {
	EPC       string  `json:"epc"`
	AntennaID string  `json:"antennaId"`
	Timestamp int64   `json:"timestamp"`
	RSSI      float64 `json:"rssi"`
}

type forceZoneSweepRequest struct {
	LocationID string `json:"locationId"`
	Timestamp  int64  `json:"timestamp"`
}

type ingestSalesEventRequest struct {
	SKUID      string          `json:"skuId"`
	LocationID string          `json:"locationId"`
	EventType  string          `json:"eventType"`
	Qty        decimal.Decimal `json:"qty"`
	Timestamp  int64           `json:"timestamp"`
}

type addCustomerItemRequest struct {
	CustomerID string          `json:"customerId"`
	LocationID string          `json:"locationId"`
	SKUID      string          `json:"skuId"`
	Qty        decimal.Decimal `json:"qty"`
	Timestamp  int64           `json:"timestamp"`
}

type removeCustomerItemRequest struct {
	BasketItemID string `json:"basketItemId"`
	Timestamp    int64  `json:"timestamp"`
}

type checkoutCustomerRequest struct {
	CustomerID string `json:"customerId"`
	Timestamp  int64  `json:"timestamp"`
}

type upsertRuleTemplateRequest struct {
	ID              string          `json:"id"`
	Scope           string          `json:"scope"`
	LocationID      string          `json:"locationId"`
	Selector        string          `json:"selector"`
	SKUID           string          `json:"skuId"`
	AttrSelector    attrsDTO        `json:"attrSelector"`
	Source          string          `json:"source"`
	Min             decimal.Decimal `json:"min"`
	Max             decimal.Decimal `json:"max"`
	Priority        int             `json:"priority"`
	InboundSourceID string          `json:"inboundSourceId"`
	Timestamp       int64           `json:"timestamp"`
}

type attrsDTO struct {
	Kit      string `json:"kit"`
	AgeGroup string `json:"ageGroup"`
	Gender   string `json:"gender"`
	Role     string `json:"role"`
	Quality  string `json:"quality"`
	Title    string `json:"title"`
}

type upsertEffectiveRuleRequest struct {
	LocationID      string          `json:"locationId"`
	SKUID           string          `json:"skuId"`
	Source          string          `json:"source"`
	Min             decimal.Decimal `json:"min"`
	Max             decimal.Decimal `json:"max"`
	Priority        int             `json:"priority"`
	InboundSourceID string          `json:"inboundSourceId"`
	Timestamp       int64           `json:"timestamp"`
}

type assignTaskRequest struct {
	StaffID   string `json:"staffId"`
	Timestamp int64  `json:"timestamp"`
}

type startTaskRequest struct {
	StaffID   string `json:"staffId"`
	Timestamp int64  `json:"timestamp"`
}

type confirmTaskRequest struct {
	Qty                  decimal.Decimal `json:"qty"`
	ConfirmedBy          string          `json:"confirmedBy"`
	OverrideSourceZoneID string          `json:"overrideSourceZoneId"`
	Timestamp            int64           `json:"timestamp"`
}

type createReceivingOrderRequest struct {
	SourceID      string          `json:"sourceId"`
	DestinationID string          `json:"destinationId"`
	SKUID         string          `json:"skuId"`
	Source        string          `json:"source"`
	Qty           decimal.Decimal `json:"qty"`
	Timestamp     int64           `json:"timestamp"`
}

type confirmReceivingOrderRequest struct {
	Timestamp int64 `json:"timestamp"`
}

type setStaffShiftRequest struct {
	OnShift   bool  `json:"onShift"`
	Timestamp int64 `json:"timestamp"`
}

type upsertLocationRequest struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Colour          string   `json:"colour"`
	IsSalesLocation bool     `json:"isSalesLocation"`
	Sources         []string `json:"sources"`
	Timestamp       int64    `json:"timestamp"`
}

type deleteLocationSourceRequest struct {
	SourceID  string `json:"sourceId"`
	Timestamp int64  `json:"timestamp"`
}
