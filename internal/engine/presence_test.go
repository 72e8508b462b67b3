package engine

import (
	"testing"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDedupIdempotence covers property 1: replaying the same
// (epc, antenna, t) read twice within DEDUP_WINDOW_SEC leaves state
// unchanged.
func TestDedupIdempotence(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.bindEPC("EPC-0001", "SKU-RFID-1", at(0))

	outcome, err := e.ingestRFIDRead(RFIDRead{EPC: "EPC-0001", AntennaID: "ant-warehouse", Timestamp: at(0)})
	require.NoError(t, err)
	require.Equal(t, IngestAccepted, outcome)

	before := e.snapshotQty("warehouse", "SKU-RFID-1", entity.SourceRFID)

	outcome, err = e.ingestRFIDRead(RFIDRead{EPC: "EPC-0001", AntennaID: "ant-warehouse", Timestamp: at(10)})
	require.NoError(t, err)
	assert.Equal(t, IngestDuplicateIgnored, outcome)

	after := e.snapshotQty("warehouse", "SKU-RFID-1", entity.SourceRFID)
	assert.True(t, before.Equal(after), "duplicate read must not change snapshot qty")
}

// TestCursorMonotonicity covers property 2: the cursor never decreases,
// even when a later command carries an earlier timestamp.
func TestCursorMonotonicity(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.bindEPC("EPC-0001", "SKU-RFID-1", at(0))

	_, err := e.ingestRFIDRead(RFIDRead{EPC: "EPC-0001", AntennaID: "ant-warehouse", Timestamp: at(100)})
	require.NoError(t, err)
	cursorAfterFirst := e.clock.Current()

	// A duplicate-ignored read does not advance the cursor at all, per
	// the documented exception in §7.
	_, err = e.ingestRFIDRead(RFIDRead{EPC: "EPC-0001", AntennaID: "ant-warehouse", Timestamp: at(50)})
	require.NoError(t, err)
	assert.True(t, e.clock.Current().Equal(cursorAfterFirst) || e.clock.Current().After(cursorAfterFirst))
}

// TestTTLPurity covers property 3 and scenario S2: an EPC stops
// contributing to the RFID snapshot once its last read is older than the
// presence TTL, absent a deduction-floor override.
func TestTTLPurity(t *testing.T) {
	e := newTestEngine(storeFixture())
	e.bindEPC("EPC-0001", "SKU-RFID-1", at(0))

	outcome, err := e.ingestRFIDRead(RFIDRead{EPC: "EPC-0001", AntennaID: "ant-warehouse", Timestamp: at(0)})
	require.NoError(t, err)
	require.Equal(t, IngestAccepted, outcome)

	outcome, err = e.ingestRFIDRead(RFIDRead{EPC: "EPC-0001", AntennaID: "ant-warehouse", Timestamp: at(10)})
	require.NoError(t, err)
	assert.Equal(t, IngestDuplicateIgnored, outcome, "10s is within the 15s dedup window")

	outcome, err = e.ingestRFIDRead(RFIDRead{EPC: "EPC-0001", AntennaID: "ant-warehouse", Timestamp: at(16)})
	require.NoError(t, err)
	assert.Equal(t, IngestAccepted, outcome, "16s is outside the dedup window")

	present := e.epcsAt("warehouse", "SKU-RFID-1", at(16))
	assert.Len(t, present, 1)

	// At t+400s (well past the 300s TTL) with no new reads, a recompute
	// does not resurrect the tag and the RFID snapshot reports zero.
	e.recomputeLocation("warehouse", at(400))
	qty := e.snapshotQty("warehouse", "SKU-RFID-1", entity.SourceRFID)
	assert.True(t, qty.IsZero(), "expired presence must not contribute to the snapshot")
}

// TestUnknownEPCOutcome covers the unknown_epc outcome:
// a read for an EPC with no active mapping is recorded for dedup purposes
// but contributes no presence.
func TestUnknownEPCOutcome(t *testing.T) {
	e := newTestEngine(storeFixture())

	outcome, err := e.ingestRFIDRead(RFIDRead{EPC: "EPC-GHOST", AntennaID: "ant-warehouse", Timestamp: at(0)})
	require.NoError(t, err)
	assert.Equal(t, IngestUnknownEPC, outcome)
	_, present := e.presence["EPC-GHOST"]
	assert.False(t, present)
}
