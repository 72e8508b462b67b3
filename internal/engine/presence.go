package engine

import (
	"fmt"
	"time"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
)

// RFIDRead is a single raw antenna read, as delivered by the reader
// network (§4.2).
type RFIDRead struct {
	EPC       string
	AntennaID string
	Timestamp time.Time
	RSSI      *float64
}

// IngestOutcome reports what ingestRFIDRead did with a read, for the
// caller to log or surface through the command gateway (§7).
type IngestOutcome string

const (
	IngestAccepted         IngestOutcome = "accepted"
	IngestDuplicateIgnored IngestOutcome = "duplicate_ignored"
	IngestUnknownEPC       IngestOutcome = "unknown_epc"
)

// dedupKey identifies a read for the purposes of the dedup window: the
// same EPC seen twice on the same antenna within the window is noise,
// not movement (§4.3).
func dedupKey(epc, antennaID string) string {
	return epc + "|" + antennaID
}

// ingestRFIDRead processes one raw read. A read within DedupWindow of the
// last accepted read for the same (epc, antenna) pair is dropped without
// advancing the clock or touching presence. Otherwise the clock advances,
// the presence record is upserted (possibly moving the EPC to a new
// location), the affected location(s) are recomputed, and pending picks
// are resolved.
func (e *Engine) ingestRFIDRead(read RFIDRead) (IngestOutcome, error) {
	if read.EPC == "" || read.AntennaID == "" {
		return "", domain.ErrInvalidInput
	}

	ant, ok := e.antennas[read.AntennaID]
	if !ok {
		return "", fmt.Errorf("%w: antenna %s", domain.ErrNotFound, read.AntennaID)
	}

	key := dedupKey(read.EPC, read.AntennaID)
	if last, seen := e.lastRead[key]; seen && !read.Timestamp.After(last.Add(e.cfg.DedupWindow)) {
		return IngestDuplicateIgnored, nil
	}

	skuID, ok := e.resolveEPC(read.EPC, read.Timestamp)
	if !ok {
		e.lastRead[key] = read.Timestamp
		return IngestUnknownEPC, nil
	}

	e.clock.Advance(read.Timestamp)
	e.lastRead[key] = read.Timestamp

	prev, existed := e.presence[read.EPC]

	e.presence[read.EPC] = entity.PresenceRecord{
		EPC:        read.EPC,
		SKUID:      skuID,
		LocationID: ant.LocationID,
		AntennaID:  read.AntennaID,
		LastSeenAt: read.Timestamp,
		RSSI:       read.RSSI,
	}

	e.recomputeLocation(ant.LocationID, read.Timestamp)
	if existed && prev.LocationID != ant.LocationID {
		e.recomputeLocation(prev.LocationID, read.Timestamp)
	}

	e.resolvePendingPicks(ant.LocationID, skuID, read.Timestamp)

	return IngestAccepted, nil
}

// resolveEPC finds the sku bound to epc at time t through its mapping
// history (§4.2: an EPC may be re-encoded across its lifetime, so only
// the mapping active at read time counts).
func (e *Engine) resolveEPC(epc string, t time.Time) (string, bool) {
	for _, m := range e.epcMappings[epc] {
		if m.EPC == epc && m.ActiveAt(t) {
			return m.SKUID, true
		}
	}
	return "", false
}

// bindEPC records a new active mapping for epc, closing out any mapping
// currently open (used when receiving/transfer flows synthesise new
// tagged units, §4.8).
func (e *Engine) bindEPC(epc, skuID string, at time.Time) {
	mappings := e.epcMappings[epc]
	for i := range mappings {
		if mappings[i].ActiveTo == nil {
			closed := at
			mappings[i].ActiveTo = &closed
		}
	}
	mappings = append(mappings, entity.EPCMapping{
		EPC:        epc,
		SKUID:      skuID,
		ActiveFrom: at,
	})
	e.epcMappings[epc] = mappings
}

// isPresent reports whether epc's last read is still within PresenceTTL
// of now (§4.3). Expired presence records are never deleted; stock counts
// treat them as absent, while ZoneDetail still lists them as reads.
func (e *Engine) isPresent(epc string, now time.Time) bool {
	rec, ok := e.presence[epc]
	if !ok {
		return false
	}
	return rec.Present(now, e.cfg.PresenceTTL)
}

// epcsAt returns the EPCs currently present (within TTL) at locationID
// carrying skuID.
func (e *Engine) epcsAt(locationID, skuID string, now time.Time) []string {
	var epcs []string
	for epc, rec := range e.presence {
		if rec.LocationID == locationID && rec.SKUID == skuID && rec.Present(now, e.cfg.PresenceTTL) {
			epcs = append(epcs, epc)
		}
	}
	return epcs
}

// forceZoneSweep refreshes LastSeenAt for every EPC bound to locationID
// that is still within PresenceTTL, without changing any binding. This models a manual or
// scheduled reconciliation sweep of a zone's antennas (§4.3, §6
// AUTO_SWEEP_INTERVAL_SEC) and never creates new presence.
func (e *Engine) forceZoneSweep(locationID string, at time.Time) int {
	e.clock.Advance(at)
	touched := 0
	for epc, rec := range e.presence {
		if rec.LocationID != locationID {
			continue
		}
		if !rec.Present(at, e.cfg.PresenceTTL) {
			continue
		}
		rec.LastSeenAt = at
		e.presence[epc] = rec
		touched++
	}
	// Recompute unconditionally: a NON_RFID sales zone has no presence to
	// refresh but still needs its rules re-evaluated on every sweep (§4.6).
	e.recomputeLocation(locationID, at)
	return touched
}
