package engine

import (
	"testing"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTaskDeficitAndTargetBounds covers property 6: every open task's
// target equals its rule's max, and its deficit never exceeds
// max - current at creation time.
func TestTaskDeficitAndTargetBounds(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.setLedgerBaseline("shelf-a", "SKU-NR-1", dec(5), at(0))
	e.setLedgerBaseline("warehouse", "SKU-NR-1", dec(200), at(0))

	_, err := e.UpsertEffectiveRule("shelf-a", "SKU-NR-1", entity.SourceNonRFID, dec(4), dec(8), 1, "", at(0))
	require.NoError(t, err)

	_, err = e.IngestSalesEvent("SKU-NR-1", "shelf-a", SalesEventSale, dec(2), at(10))
	require.NoError(t, err)

	open := e.TaskList(TaskListFilter{DestinationID: "shelf-a", OnlyOpen: true})
	require.Len(t, open, 1)
	task := open[0]
	assert.True(t, task.TargetQty.Equal(dec(8)), "target must equal rule max")
	assert.True(t, task.DeficitQty.LessThanOrEqual(task.TargetQty.Sub(dec(3))), "deficit must not exceed max - current at trigger time")
	assert.False(t, task.DeficitQty.IsNegative())
}

// TestScenarioS3MergeOnSecondTrigger covers property 7 and scenario S3:
// two trigger events against the same single-source rule each append a
// task without merging mid-pass, but the next evaluation pass (a forced
// sweep here) merges them into a single open task carrying the summed
// deficit.
func TestScenarioS3MergeOnSecondTrigger(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.setLedgerBaseline("shelf-a", "SKU-NR-1", dec(5), at(0))
	e.setLedgerBaseline("warehouse", "SKU-NR-1", dec(200), at(0))

	_, err := e.UpsertEffectiveRule("shelf-a", "SKU-NR-1", entity.SourceNonRFID, dec(4), dec(8), 1, "", at(0))
	require.NoError(t, err)

	_, err = e.IngestSalesEvent("SKU-NR-1", "shelf-a", SalesEventSale, dec(2), at(10))
	require.NoError(t, err)
	_, err = e.IngestSalesEvent("SKU-NR-1", "shelf-a", SalesEventSale, dec(2), at(20))
	require.NoError(t, err)

	beforeMerge := e.TaskList(TaskListFilter{DestinationID: "shelf-a", OnlyOpen: true})
	require.Len(t, beforeMerge, 2, "two separate trigger passes must each append their own task before any merge runs")

	_, err = e.ForceZoneSweep("shelf-a", at(30))
	require.NoError(t, err)

	after := e.TaskList(TaskListFilter{DestinationID: "shelf-a", OnlyOpen: true})
	require.Len(t, after, 1, "a single-source rule with more than one open auto-adjustable task must merge down to one")
	assert.True(t, after[0].DeficitQty.Equal(dec(7)), "merged deficit = sum of the two pre-merge deficits (5+2)")
	assert.Equal(t, "warehouse", after[0].SelectedSourceZone)
}
