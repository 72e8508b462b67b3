// Package engine implements the store inventory engine: event ingestion,
// presence and ledger tracking, min/max evaluation, replenishment and
// receiving state machines, customer cart handling, and staff assignment
// (spec §2–§4).
//
// Engine is the single owner of all state (Design Notes §9). It is built
// from an explicit Dataset, never from package-level initialisation, and
// every exported command method holds mu for its entire duration so that
// commands are processed end-to-end before the next one starts (§5).
package engine

import (
	"sync"
	"time"

	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/pkg/logger"
	"github.com/shopspring/decimal"
)

// Config carries the tuning constants for dedup/presence/sweep behavior (§6).
type Config struct {
	DedupWindow       time.Duration
	PresenceTTL       time.Duration
	AutoSweepInterval time.Duration
}

// Dataset is the explicit set of master data an Engine is constructed
// from (Design Notes §9: "construct it from an explicit dataset rather
// than module-level initialisation").
type Dataset struct {
	Locations []entity.Location
	Antennas  []entity.Antenna
	SKUs      []entity.SKU
	Staff     []entity.StaffMember
	Templates []entity.RuleTemplate
}

// Engine owns every piece of state named in §3: presence, ledger,
// snapshots, rules, templates, tasks, orders, baskets, staff, audit.
type Engine struct {
	mu sync.Mutex

	cfg Config
	log *logger.Logger

	clock *Clock

	locations    map[string]*entity.Location
	antennas     map[string]*entity.Antenna
	antennaOrder []string // dataset load order, used to pick a deterministic primary antenna
	skus         map[string]*entity.SKU

	epcMappings map[string][]entity.EPCMapping // epc -> mappings, oldest first
	presence    map[string]entity.PresenceRecord
	lastRead    map[string]time.Time // "epc|antenna" -> last accepted read time

	ledgerBaselines map[entity.SnapshotKey]entity.LedgerBaseline
	ledgerEntries   map[entity.SnapshotKey][]entity.LedgerEntry

	snapshots       map[entity.SnapshotKey]*entity.Snapshot
	deductionFloors map[entity.SnapshotKey]decimal.Decimal

	templates map[string]*entity.RuleTemplate
	rules     map[string]*entity.EffectiveRule

	tasks  map[string]*entity.ReplenishmentTask
	orders map[string]*entity.ReceivingOrder

	basketItems  map[string]*entity.BasketItem
	pendingPicks map[string]*entity.PendingPick // keyed by basket item id

	staff map[string]*entity.StaffMember

	audit []entity.AuditEntry

	epcSeq int // monotonic suffix for synthesised EPCs
}

// New constructs an Engine from an explicit dataset and configuration.
func New(ds Dataset, cfg Config, log *logger.Logger) *Engine {
	if cfg.DedupWindow == 0 {
		cfg.DedupWindow = 15 * time.Second
	}
	if cfg.PresenceTTL == 0 {
		cfg.PresenceTTL = 300 * time.Second
	}
	if cfg.AutoSweepInterval == 0 {
		cfg.AutoSweepInterval = 30 * time.Second
	}

	e := &Engine{
		cfg:             cfg,
		log:             log,
		clock:           NewClock(),
		locations:       make(map[string]*entity.Location),
		antennas:        make(map[string]*entity.Antenna),
		skus:            make(map[string]*entity.SKU),
		epcMappings:     make(map[string][]entity.EPCMapping),
		presence:        make(map[string]entity.PresenceRecord),
		lastRead:        make(map[string]time.Time),
		ledgerBaselines: make(map[entity.SnapshotKey]entity.LedgerBaseline),
		ledgerEntries:   make(map[entity.SnapshotKey][]entity.LedgerEntry),
		snapshots:       make(map[entity.SnapshotKey]*entity.Snapshot),
		deductionFloors: make(map[entity.SnapshotKey]decimal.Decimal),
		templates:       make(map[string]*entity.RuleTemplate),
		rules:           make(map[string]*entity.EffectiveRule),
		tasks:           make(map[string]*entity.ReplenishmentTask),
		orders:          make(map[string]*entity.ReceivingOrder),
		basketItems:     make(map[string]*entity.BasketItem),
		pendingPicks:    make(map[string]*entity.PendingPick),
		staff:           make(map[string]*entity.StaffMember),
	}

	for i := range ds.Locations {
		loc := ds.Locations[i]
		e.locations[loc.ID] = &loc
	}
	for i := range ds.Antennas {
		ant := ds.Antennas[i]
		e.antennas[ant.ID] = &ant
		e.antennaOrder = append(e.antennaOrder, ant.ID)
	}
	for i := range ds.SKUs {
		sku := ds.SKUs[i]
		e.skus[sku.ID] = &sku
	}
	for i := range ds.Staff {
		st := ds.Staff[i]
		e.staff[st.ID] = &st
	}
	for i := range ds.Templates {
		tpl := ds.Templates[i]
		e.templates[tpl.ID] = &tpl
	}

	e.projectTemplates()

	return e
}

// primaryAntenna returns the id of locationID's primary antenna (the first
// one registered for it), or "" if none exists.
func (e *Engine) primaryAntenna(locationID string) string {
	// Antennas carry no ordering field of their own; the dataset's
	// insertion order into the antennas map is not stable, so ordering is
	// tracked at load time in antennaOrder instead.
	for _, id := range e.antennaOrder {
		ant, ok := e.antennas[id]
		if ok && ant.LocationID == locationID {
			return id
		}
	}
	return ""
}
