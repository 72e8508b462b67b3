package engine

import (
	"testing"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReservationSafety covers property 9: a basket reservation can never
// push current - reserved below zero; a second add that would overdraw
// the last unit is rejected with the available quantity attached.
func TestReservationSafety(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.bindEPC("EPC-0001", "SKU-RFID-1", at(0))
	outcome, err := e.ingestRFIDRead(RFIDRead{EPC: "EPC-0001", AntennaID: "ant-shelf-b", Timestamp: at(0)})
	require.NoError(t, err)
	require.Equal(t, IngestAccepted, outcome)

	item, err := e.addCustomerItem("cust-1", "shelf-b", "SKU-RFID-1", dec(1), at(5))
	require.NoError(t, err)
	require.NotNil(t, item)

	_, err = e.addCustomerItem("cust-2", "shelf-b", "SKU-RFID-1", dec(1), at(6))
	require.Error(t, err)
	var insufficient *domain.InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.AvailableQty.IsZero(), "the sole unit is already reserved by cust-1's basket")
}

// TestScenarioS5PersonalisationLastUnit covers scenario S5: checking out
// the last unit of a personalisable RFID SKU routes the replacement
// target to the printing wall once the origin zone's projected supply is
// exhausted, and the sold unit itself lands in cashier staging.
func TestScenarioS5PersonalisationLastUnit(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.skus["SKU-JSY-1"] = &entity.SKU{
		ID:     "SKU-JSY-1",
		Source: entity.SourceRFID,
		Attrs:  entity.CatalogAttrs{Role: "player"},
	}
	e.bindEPC("EPC-JSY-0001", "SKU-JSY-1", at(0))
	outcome, err := e.ingestRFIDRead(RFIDRead{EPC: "EPC-JSY-0001", AntennaID: "ant-shelf-b", Timestamp: at(0)})
	require.NoError(t, err)
	require.Equal(t, IngestAccepted, outcome)

	item, err := e.addCustomerItem("cust-1", "shelf-b", "SKU-JSY-1", dec(1), at(5))
	require.NoError(t, err)

	sold, err := e.checkoutCustomer("cust-1", at(10))
	require.NoError(t, err)
	require.Len(t, sold, 1)
	assert.Equal(t, entity.BasketItemSold, sold[0].Status)
	assert.Equal(t, item.ID, sold[0].ID)

	assert.True(t, e.snapshotQty("shelf-b", "SKU-JSY-1", entity.SourceRFID).IsZero(), "the sole unit left the origin zone")
	assert.True(t, e.snapshotQty(entity.LocationCashierStorage, "SKU-JSY-1", entity.SourceRFID).Equal(dec(1)), "the sold unit is re-tagged into cashier staging")
	_, stillPending := e.pendingPicks[item.ID]
	assert.False(t, stillPending, "checkout must clear the item's pending pick")

	open := e.TaskList(TaskListFilter{DestinationID: entity.LocationPrintingWall, OnlyOpen: true})
	require.Len(t, open, 1, "exhausted projected supply must generate a replacement task destined for the printing wall")
	assert.True(t, open[0].DeficitQty.Equal(dec(1)))
	assert.Equal(t, "SKU-JSY-1", open[0].SKUID)
}
