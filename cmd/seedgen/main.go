// seedgen builds a runnable sample store: a handful of locations, SKUs,
// staff, and rule templates, then seeds opening inventory and prints the
// resulting dashboard. It exists for manual runs against a fresh engine:
// a standalone main that hand-builds a fixture instead of reading one
// from a database.
//
// Usage: go run ./cmd/seedgen
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/pkg/logger"
	"github.com/shopspring/decimal"
)

func main() {
	log := logger.New(logger.Config{Env: "development", Level: "info"})

	now := time.Now().UTC()

	ds := buildDataset()
	eng := engine.New(ds, engine.Config{}, log)

	seedOpeningInventory(eng, now)

	log.Info().Msg("seed dataset loaded")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(eng.Dashboard()); err != nil {
		fmt.Fprintln(os.Stderr, "encode dashboard:", err)
		os.Exit(1)
	}
}

// buildDataset assembles the master data an Engine is constructed from:
// two sales floors, a warehouse, the two reserved staging zones, one RFID
// and one NON_RFID SKU, two associates, and two generic store-wide
// templates, one per SKU.
func buildDataset() engine.Dataset {
	warehouse := entity.Location{
		ID:              "warehouse",
		Name:            "Central Warehouse",
		Colour:          "#8884d8",
		IsSalesLocation: false,
		Sources:         []string{"external-supplier-1"},
	}
	shelfA := entity.Location{
		ID:              "shelf-a",
		Name:            "Shelf A",
		Colour:          "#82ca9d",
		IsSalesLocation: true,
		Sources:         []string{"warehouse"},
	}
	shelfB := entity.Location{
		ID:              "shelf-b",
		Name:            "Shelf B",
		Colour:          "#ffc658",
		IsSalesLocation: true,
		Sources:         []string{"warehouse"},
	}
	cashierStorage := entity.Location{
		ID:              entity.LocationCashierStorage,
		Name:            "Cashier Storage",
		IsSalesLocation: false,
	}
	printingWall := entity.Location{
		ID:              entity.LocationPrintingWall,
		Name:            "Printing Wall",
		IsSalesLocation: false,
		Sources:         []string{"external-printer-1"},
	}

	antennas := []entity.Antenna{
		{ID: "ant-warehouse", LocationID: warehouse.ID},
		{ID: "ant-shelf-a", LocationID: shelfA.ID},
		{ID: "ant-shelf-b", LocationID: shelfB.ID},
		{ID: "ant-cashier-storage", LocationID: cashierStorage.ID},
		{ID: "ant-printing-wall", LocationID: printingWall.ID},
	}

	skus := []entity.SKU{
		{ID: "SKU-NR-1", Source: entity.SourceNonRFID, Attrs: entity.CatalogAttrs{Title: "Club Scarf"}},
		{ID: "SKU-RFID-1", Source: entity.SourceRFID, Attrs: entity.CatalogAttrs{Role: "player", Title: "Home JSY"}},
	}

	staff := []entity.StaffMember{
		{ID: "staff-1", Name: "Alex Rivera", Role: entity.RoleAssociate, OnShift: true, AllZones: true},
		{ID: "staff-2", Name: "Jamie Ortiz", Role: entity.RoleAssociate, OnShift: true, AllZones: true},
	}

	templates := []entity.RuleTemplate{
		{
			ID:         uuid.NewString(),
			Scope:      entity.ScopeGeneric,
			Selector:   entity.SelectorSKU,
			SKUID:      "SKU-NR-1",
			Source:     entity.SourceNonRFID,
			Min:        decimal.NewFromInt(2),
			Max:        decimal.NewFromInt(8),
			Priority:   1,
			Active:     true,
			UpdatedAt:  time.Now().UTC(),
		},
		{
			ID:         uuid.NewString(),
			Scope:      entity.ScopeGeneric,
			Selector:   entity.SelectorSKU,
			SKUID:      "SKU-RFID-1",
			Source:     entity.SourceRFID,
			Min:        decimal.NewFromInt(1),
			Max:        decimal.NewFromInt(5),
			Priority:   1,
			Active:     true,
			UpdatedAt:  time.Now().UTC(),
		},
	}

	return engine.Dataset{
		Locations: []entity.Location{warehouse, shelfA, shelfB, cashierStorage, printingWall},
		Antennas:  antennas,
		SKUs:      skus,
		Staff:     staff,
		Templates: templates,
	}
}

// seedOpeningInventory places opening stock: a NON_RFID baseline at
// shelf-a and the warehouse, and RFID reads tagging physical units at
// shelf-b and the warehouse (scenario-S1/S2-shaped fixtures).
func seedOpeningInventory(eng *engine.Engine, at time.Time) {
	eng.SeedLedgerBaseline("shelf-a", "SKU-NR-1", decimal.NewFromInt(7), at)
	eng.SeedLedgerBaseline("warehouse", "SKU-NR-1", decimal.NewFromInt(180), at)

	for i := 0; i < 3; i++ {
		eng.SeedRFIDRead(fmt.Sprintf("EPC-SHELF-B-%04d", i), "SKU-RFID-1", "shelf-b", at)
	}
	for i := 0; i < 40; i++ {
		eng.SeedRFIDRead(fmt.Sprintf("EPC-WAREHOUSE-%04d", i), "SKU-RFID-1", "warehouse", at)
	}
}
