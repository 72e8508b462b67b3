package engine

import (
	"testing"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLedgerConservation covers property 4: qty = max(0, baseline + sum
// of signed entries since baseline).
func TestLedgerConservation(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.setLedgerBaseline("shelf-a", "SKU-NR-1", dec(7), at(0))

	e.appendLedgerEntry("shelf-a", "SKU-NR-1", entity.LedgerEntrySale, dec(-2), at(10))
	e.appendLedgerEntry("shelf-a", "SKU-NR-1", entity.LedgerEntrySale, dec(-1), at(20))
	assert.True(t, e.ledgerQty("shelf-a", "SKU-NR-1").Equal(dec(4)))

	e.appendLedgerEntry("shelf-a", "SKU-NR-1", entity.LedgerEntrySale, dec(-10), at(30))
	assert.True(t, e.ledgerQty("shelf-a", "SKU-NR-1").IsZero(), "qty must floor at zero, never go negative")
}

// TestScenarioS1NonRFIDMinTrigger reproduces the non-RFID min trigger
// scenario: a sale that pushes current to or below min creates a task
// with the expected deficit/target, auto-assigned to the only associate.
// (current ≤ min per §4.6 step 6 — the trigger fires at the threshold
// itself, not only strictly below it.)
func TestScenarioS1NonRFIDMinTrigger(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.setLedgerBaseline("shelf-a", "SKU-NR-1", dec(5), at(0))
	e.setLedgerBaseline("warehouse", "SKU-NR-1", dec(180), at(0))

	_, err := e.UpsertEffectiveRule("shelf-a", "SKU-NR-1", entity.SourceNonRFID, dec(4), dec(8), 1, "", at(0))
	require.NoError(t, err)
	assert.Empty(t, e.TaskList(TaskListFilter{DestinationID: "shelf-a", OnlyOpen: true}))

	_, err = e.IngestSalesEvent("SKU-NR-1", "shelf-a", SalesEventSale, dec(2), at(10))
	require.NoError(t, err)
	assert.True(t, e.ledgerQty("shelf-a", "SKU-NR-1").Equal(dec(3)), "qty=3 is at or below min=4")

	open := e.TaskList(TaskListFilter{DestinationID: "shelf-a", OnlyOpen: true})
	require.Len(t, open, 1)
	task := open[0]
	assert.True(t, task.DeficitQty.Equal(dec(5)), "deficit = max(8) - current(3)")
	assert.True(t, task.TargetQty.Equal(dec(8)))
	assert.Equal(t, "warehouse", task.SelectedSourceZone)
	assert.Equal(t, "staff-1", task.AssignedStaffID, "sole on-shift associate must be auto-assigned")
}
