package engine

import (
	"testing"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioS4ConfirmPartial covers property 8 and scenario S4: a task
// confirmed against a source with less stock than the deficit moves only
// what exists, reports confirmed_partial, and never oversells the source.
func TestScenarioS4ConfirmPartial(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.setLedgerBaseline("shelf-a", "SKU-NR-1", dec(1), at(0))
	e.setLedgerBaseline("warehouse", "SKU-NR-1", dec(0), at(0))

	_, err := e.UpsertEffectiveRule("shelf-a", "SKU-NR-1", entity.SourceNonRFID, dec(4), dec(8), 1, "", at(0))
	require.NoError(t, err)

	open := e.TaskList(TaskListFilter{DestinationID: "shelf-a", OnlyOpen: true})
	require.Len(t, open, 1)
	task := open[0]
	require.True(t, task.DeficitQty.Equal(dec(7)), "deficit = max(8) - current(1)")

	_, err = e.AssignTask(task.ID, "staff-1", at(10))
	require.NoError(t, err)
	_, err = e.StartTask(task.ID, "staff-1", at(20))
	require.NoError(t, err)

	// The task was sized while the warehouse was empty; only 2 units have
	// arrived there by the time it is confirmed.
	e.setLedgerBaseline("warehouse", "SKU-NR-1", dec(2), at(25))

	result, err := e.ConfirmTask(task.ID, dec(0), "staff-1", "", at(30))
	require.NoError(t, err)
	assert.Equal(t, TaskConfirmPartial, result)

	assert.True(t, e.ledgerQty("warehouse", "SKU-NR-1").IsZero(), "warehouse must never go negative: only its 2 units move")
	assert.True(t, e.ledgerQty("shelf-a", "SKU-NR-1").Equal(dec(3)), "shelf-a receives baseline(1) + moved(2)")

	closed := e.tasks[task.ID]
	require.NotNil(t, closed)
	assert.Equal(t, entity.TaskConfirmed, closed.Status)
	assert.Equal(t, "confirmed_partial", closed.CloseReason)
	require.NotNil(t, closed.ConfirmedQty)
	assert.True(t, closed.ConfirmedQty.Equal(dec(2)), "confirmed qty must equal what actually moved, not what was requested")
}

// TestConfirmNoMovementLeavesTaskOpen covers the no_inventory_moved branch
// of property 8: an empty source leaves the task IN_PROGRESS rather than
// silently closing it.
func TestConfirmNoMovementLeavesTaskOpen(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.setLedgerBaseline("shelf-a", "SKU-NR-1", dec(1), at(0))
	e.setLedgerBaseline("warehouse", "SKU-NR-1", dec(0), at(0))

	_, err := e.UpsertEffectiveRule("shelf-a", "SKU-NR-1", entity.SourceNonRFID, dec(4), dec(8), 1, "", at(0))
	require.NoError(t, err)

	open := e.TaskList(TaskListFilter{DestinationID: "shelf-a", OnlyOpen: true})
	require.Len(t, open, 1)
	task := open[0]

	_, err = e.AssignTask(task.ID, "staff-1", at(10))
	require.NoError(t, err)
	_, err = e.StartTask(task.ID, "staff-1", at(20))
	require.NoError(t, err)

	result, err := e.ConfirmTask(task.ID, dec(0), "staff-1", "", at(30))
	require.NoError(t, err)
	assert.Equal(t, TaskConfirmNoMovement, result)

	stillOpen := e.tasks[task.ID]
	require.NotNil(t, stillOpen)
	assert.Equal(t, entity.TaskInProgress, stillOpen.Status, "a task with no available source stays open for a later retry")
}
