package engine

import (
	"time"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/pkg/logger"
	"github.com/shopspring/decimal"
)

// baseTime anchors every test's timeline so assertions never depend on
// wall-clock time.
var baseTime = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func at(seconds int) time.Time {
	return baseTime.Add(time.Duration(seconds) * time.Second)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// storeFixture builds a small two-shelf, one-warehouse store: shelf-a
// sells a NON_RFID SKU, shelf-b sells an RFID SKU, both sourced from the
// warehouse, with one on-shift associate.
func storeFixture() Dataset {
	return Dataset{
		Locations: []entity.Location{
			{ID: "warehouse", Name: "Warehouse", Sources: []string{"external-supplier"}},
			{ID: "shelf-a", Name: "Shelf A", IsSalesLocation: true, Sources: []string{"warehouse"}},
			{ID: "shelf-b", Name: "Shelf B", IsSalesLocation: true, Sources: []string{"warehouse"}},
			{ID: entity.LocationCashierStorage, Name: "Cashier Storage"},
			{ID: entity.LocationPrintingWall, Name: "Printing Wall", Sources: []string{"external-printer"}},
		},
		Antennas: []entity.Antenna{
			{ID: "ant-warehouse", LocationID: "warehouse"},
			{ID: "ant-shelf-a", LocationID: "shelf-a"},
			{ID: "ant-shelf-b", LocationID: "shelf-b"},
			{ID: "ant-cashier-storage", LocationID: entity.LocationCashierStorage},
			{ID: "ant-printing-wall", LocationID: entity.LocationPrintingWall},
		},
		SKUs: []entity.SKU{
			{ID: "SKU-NR-1", Source: entity.SourceNonRFID},
			{ID: "SKU-RFID-1", Source: entity.SourceRFID},
		},
		Staff: []entity.StaffMember{
			{ID: "staff-1", Role: entity.RoleAssociate, OnShift: true, AllZones: true},
		},
	}
}

func newTestEngine(ds Dataset) *Engine {
	return New(ds, Config{DedupWindow: 15 * time.Second, PresenceTTL: 300 * time.Second}, testLogger())
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
