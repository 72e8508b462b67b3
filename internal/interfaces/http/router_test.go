package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
	apphttp "github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/interfaces/http"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/pkg/logger"
	"github.com/shopspring/decimal"
)

func buildTestApp() *fiber.App {
	ds := engine.Dataset{
		Locations: []entity.Location{
			{ID: "warehouse", Name: "Warehouse", Sources: []string{"external-supplier"}},
			{ID: "shelf-a", Name: "Shelf A", IsSalesLocation: true, Sources: []string{"warehouse"}},
		},
		Antennas: []entity.Antenna{
			{ID: "ant-warehouse", LocationID: "warehouse"},
			{ID: "ant-shelf-a", LocationID: "shelf-a"},
		},
		SKUs: []entity.SKU{
			{ID: "SKU-NR-1", Source: entity.SourceNonRFID},
		},
	}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	eng := engine.New(ds, engine.Config{}, log)
	eng.SeedLedgerBaseline("shelf-a", "SKU-NR-1", decimal.NewFromInt(1), time.Unix(0, 0).UTC())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Engine: eng})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// TestSalesEventUnknownLocationReturns404 checks that a domain not-found
// error surfaces as HTTP 404 through mapError rather than a generic 500.
func TestSalesEventUnknownLocationReturns404(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/sales/events", map[string]any{
		"skuId":      "SKU-NR-1",
		"locationId": "no-such-zone",
		"eventType":  "SALE",
		"qty":        "1",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body apphttp.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Code)
}

// TestAddCustomerItemInsufficientInventoryReturns409 checks that
// InsufficientInventoryError maps to 409 with the available quantity
// surfaced in the body.
func TestAddCustomerItemInsufficientInventoryReturns409(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/basket/items", map[string]any{
		"customerId": "cust-1",
		"locationId": "shelf-a",
		"skuId":      "SKU-NR-1",
		"qty":        "5",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_INVENTORY", body["code"])
	assert.Equal(t, "1", body["availableQty"])
}

// TestSalesEventSaleAccepted checks the golden path end to end: a valid
// sale against a real location/sku returns 200 with the discriminated
// result string.
func TestSalesEventSaleAccepted(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/sales/events", map[string]any{
		"skuId":      "SKU-NR-1",
		"locationId": "shelf-a",
		"eventType":  "SALE",
		"qty":        "1",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body apphttp.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "accepted", body.Status)
}
