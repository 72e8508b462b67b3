package engine

import (
	"testing"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRuleProjectionDeterminism covers property 5: projecting twice in a
// row with no template change yields the same effective rule set.
func TestRuleProjectionDeterminism(t *testing.T) {
	e := newTestEngine(storeFixture())
	_, err := e.UpsertRuleTemplate(UpsertRuleTemplateInput{
		Scope:    entity.ScopeGeneric,
		Selector: entity.SelectorSKU,
		SKUID:    "SKU-NR-1",
		Source:   entity.SourceNonRFID,
		Min:      dec(2),
		Max:      dec(8),
	}, at(0))
	require.NoError(t, err)

	before := make(map[string]entity.EffectiveRule, len(e.rules))
	for id, r := range e.rules {
		before[id] = *r
	}

	e.projectTemplates()

	require.Equal(t, len(before), len(e.rules))
	for id, r := range before {
		got, ok := e.rules[id]
		require.True(t, ok)
		assert.Equal(t, r.Min, got.Min)
		assert.Equal(t, r.Max, got.Max)
		assert.Equal(t, r.TemplateID, got.TemplateID)
	}
}

// TestScenarioS6RuleDeletionCascade covers scenario S6: deleting a
// LOCATION/SKU template rejects its open tasks with rule_deleted and the
// effective rule disappears.
func TestScenarioS6RuleDeletionCascade(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.bindEPC("EPC-0001", "SKU-RFID-1", at(0))

	tpl, err := e.UpsertRuleTemplate(UpsertRuleTemplateInput{
		Scope:      entity.ScopeLocation,
		LocationID: "shelf-b",
		Selector:   entity.SelectorSKU,
		SKUID:      "SKU-RFID-1",
		Source:     entity.SourceRFID,
		Min:        dec(3),
		Max:        dec(6),
	}, at(0))
	require.NoError(t, err)

	ruleID := entity.EffectiveRuleID("shelf-b", "SKU-RFID-1", entity.SourceRFID)
	_, ok := e.rules[ruleID]
	require.True(t, ok, "effective rule must exist before deletion")

	open := e.TaskList(TaskListFilter{DestinationID: "shelf-b", OnlyOpen: true})
	require.NotEmpty(t, open, "zero stock against min=3 must have triggered a task")

	err = e.DeleteRuleTemplate(tpl.ID, at(10))
	require.NoError(t, err)

	_, stillExists := e.rules[ruleID]
	assert.False(t, stillExists, "effective rule must disappear once its template is deleted")

	for _, id := range []string{open[0].ID} {
		rejected := false
		for _, task := range e.tasks {
			if task.ID == id {
				rejected = task.Status == entity.TaskRejected && task.CloseReason == "rule_deleted"
			}
		}
		assert.True(t, rejected, "open task owned by the deleted rule must be rejected with rule_deleted")
	}

	assert.Empty(t, e.TaskList(TaskListFilter{DestinationID: "shelf-b", OnlyOpen: true}), "re-projection must report zero managed descendants")
}
