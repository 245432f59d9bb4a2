// Package profile owns all mutable user state: emission totals, the point
// economy, mission lifecycle and cosmetics. Every other component reads and
// writes through the Store; the store itself never performs I/O.
package profile

import (
	"math"
	"strings"
	"sync"

	"github.com/MarceloDChagas/Respira/internal/carbon"
	"github.com/MarceloDChagas/Respira/internal/catalog"
	"github.com/MarceloDChagas/Respira/internal/economy"
	"github.com/MarceloDChagas/Respira/internal/mission"
	"github.com/MarceloDChagas/Respira/internal/telemetry"
)

// Reason explains a rejected mutation.
type Reason string

const (
	ReasonUnknownMission    Reason = Reason(mission.ReasonUnknownMission)
	ReasonMissionLocked     Reason = Reason(mission.ReasonLocked)
	ReasonMissionCompleted  Reason = Reason(mission.ReasonCompleted)
	ReasonMissionNotReady   Reason = Reason(mission.ReasonNotReady)
	ReasonNotAccepted       Reason = Reason(mission.ReasonNotAccepted)
	ReasonMissionActive     Reason = Reason(mission.ReasonMissionActive)
	ReasonInvalidSteps      Reason = Reason(mission.ReasonInvalidSteps)
	ReasonInvalidAmount     Reason = "invalid_amount"
	ReasonUnknownCategory   Reason = "unknown_category"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonNotOwned          Reason = "item_not_owned"
	ReasonInvalidSlot       Reason = "invalid_slot"
	ReasonEmptyName         Reason = "empty_name"
)

// Outcome is the explicit result of a mutation. Rejected mutations leave the
// store untouched; none of them panic or return Go errors for well-typed
// input.
type Outcome struct {
	OK     bool   `json:"ok"`
	Reason Reason `json:"reason,omitempty"`
}

func accepted() Outcome         { return Outcome{OK: true} }
func rejected(r Reason) Outcome { return Outcome{Reason: r} }

func missionOutcome(r mission.Reason) Outcome {
	if r == mission.ReasonNone {
		return accepted()
	}
	return rejected(Reason(r))
}

// Snapshot is an immutable view of the full user state. Snapshots taken
// before a mutation remain valid afterwards.
type Snapshot struct {
	Name              string             `json:"name"`
	TransportEmission float64            `json:"transportEmission"`
	EnergyEmission    float64            `json:"energyEmission"`
	FoodEmission      float64            `json:"foodEmission"`
	TotalPoints       int                `json:"totalPoints"`
	Level             int                `json:"level"`
	Levels            []catalog.LevelDef `json:"levels"`
	TotalReducedCO2   float64            `json:"totalReducedCO2"`
	Missions          []mission.State    `json:"missions"`
	ActiveMission     *mission.State     `json:"activeMission"`
	OwnedItems        []string           `json:"ownedItems"`
	EquippedItems     economy.Equipped   `json:"equippedItems"`
}

// Seed is the injected initial data a Store is constructed from.
type Seed struct {
	Name           string
	StartingPoints int
	Levels         []catalog.LevelDef
	Missions       []catalog.Mission
	Targets        map[string]int
	CO2Reduction   map[string]float64
	OwnedItems     []string
	Equipped       economy.Equipped
}

// DefaultSeed wires the launch catalog into a seed.
func DefaultSeed() Seed {
	return Seed{
		StartingPoints: catalog.StartingPoints,
		Levels:         catalog.DefaultLevels(),
		Missions:       catalog.SeedMissions(),
		Targets:        catalog.MissionTargets(),
		CO2Reduction:   catalog.MissionCO2Reduction(),
		OwnedItems:     []string{catalog.DefaultItemID},
		Equipped:       economy.Equipped{Background: catalog.DefaultItemID},
	}
}

// Store is the aggregate root. One instance per profile, constructed at
// start; there is no package-level singleton.
type Store struct {
	mu sync.RWMutex

	name            string
	transport       float64
	energy          float64
	food            float64
	totalPoints     int
	level           int
	levels          []catalog.LevelDef
	totalReducedCO2 float64
	missions        []mission.State
	owned           []string
	equipped        economy.Equipped

	reductions map[string]float64

	events   telemetry.Repository
	onChange func(Snapshot)
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithTelemetry records an impact event for every successful mutation.
func WithTelemetry(repo telemetry.Repository) Option {
	return func(s *Store) { s.events = repo }
}

// WithOnChange registers a listener invoked with the new snapshot after
// every successful mutation, while the store lock is not held.
func WithOnChange(fn func(Snapshot)) Option {
	return func(s *Store) { s.onChange = fn }
}

// NewStore builds a store from seed data.
func NewStore(seed Seed, opts ...Option) *Store {
	levels := append([]catalog.LevelDef(nil), seed.Levels...)
	s := &Store{
		name:        seed.Name,
		totalPoints: seed.StartingPoints,
		levels:      levels,
		missions:    mission.Seed(seed.Missions, seed.Targets),
		owned:       append([]string(nil), seed.OwnedItems...),
		equipped:    seed.Equipped,
		reductions:  seed.CO2Reduction,
	}
	s.level = economy.LevelForPoints(s.totalPoints, s.levels)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Name:              s.name,
		TransportEmission: s.transport,
		EnergyEmission:    s.energy,
		FoodEmission:      s.food,
		TotalPoints:       s.totalPoints,
		Level:             s.level,
		Levels:            append([]catalog.LevelDef(nil), s.levels...),
		TotalReducedCO2:   s.totalReducedCO2,
		Missions:          append([]mission.State(nil), s.missions...),
		OwnedItems:        append([]string(nil), s.owned...),
		EquippedItems:     s.equipped,
	}
	if active, ok := mission.Active(s.missions); ok {
		snap.ActiveMission = &active
	}
	return snap
}

func (s *Store) record(eventType telemetry.EventType, metadata telemetry.EventMetadata) {
	if s.events != nil {
		_ = s.events.RecordEvent(eventType, metadata)
	}
}

func (s *Store) notify(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}

// AddEmission adds an externally computed amount of kg CO2e to one of the
// running totals. The amount must be finite and non-negative; the economy is
// untouched.
func (s *Store) AddEmission(category carbon.Category, kg float64) Outcome {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < 0 {
		return rejected(ReasonInvalidAmount)
	}

	s.mu.Lock()
	switch category {
	case carbon.CategoryTransport:
		s.transport += kg
	case carbon.CategoryEnergy:
		s.energy += kg
	case carbon.CategoryFood:
		s.food += kg
	default:
		s.mu.Unlock()
		return rejected(ReasonUnknownCategory)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.record(telemetry.EventEmissionLogged, telemetry.EventMetadata{"category": string(category), "kg": kg})
	s.notify(snap)
	return accepted()
}

// AddPoints adds to the point total and refreshes the level.
func (s *Store) AddPoints(amount int) Outcome {
	s.mu.Lock()
	s.totalPoints += amount
	prev := s.level
	s.level = economy.LevelForPoints(s.totalPoints, s.levels)
	leveledUp := s.level > prev
	newLevel := s.level
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.record(telemetry.EventPointsAdded, telemetry.EventMetadata{"points": amount})
	if leveledUp {
		s.record(telemetry.EventLevelUp, telemetry.EventMetadata{"level": newLevel})
	}
	s.notify(snap)
	return accepted()
}

// BuyItem purchases a cosmetic with points. Buying an owned item succeeds as
// a no-op; insufficient funds is a rejection, never an error. Level is
// re-derived from the new balance on a debit.
func (s *Store) BuyItem(itemID string, price int) Outcome {
	s.mu.Lock()
	res := economy.Purchase(itemID, price, s.totalPoints, s.owned)
	if !res.OK {
		s.mu.Unlock()
		return rejected(ReasonInsufficientFunds)
	}
	if res.AlreadyOwned {
		s.mu.Unlock()
		return accepted()
	}
	s.totalPoints = res.Balance
	s.owned = res.Owned
	s.level = economy.LevelForPoints(s.totalPoints, s.levels)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.record(telemetry.EventItemPurchased, telemetry.EventMetadata{"item_id": itemID, "price": price})
	s.notify(snap)
	return accepted()
}

// EquipItem toggles an owned cosmetic in a slot.
func (s *Store) EquipItem(itemID string, slot economy.Slot) Outcome {
	if slot != economy.SlotAccessory && slot != economy.SlotBackground {
		return rejected(ReasonInvalidSlot)
	}

	s.mu.Lock()
	next, ok := economy.Equip(itemID, slot, s.equipped, s.owned)
	if !ok {
		s.mu.Unlock()
		return rejected(ReasonNotOwned)
	}
	s.equipped = next
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.record(telemetry.EventItemEquipped, telemetry.EventMetadata{"item_id": itemID, "slot": string(slot)})
	s.notify(snap)
	return accepted()
}

// SetName sets the display name.
func (s *Store) SetName(name string) Outcome {
	name = strings.TrimSpace(name)
	if name == "" {
		return rejected(ReasonEmptyName)
	}

	s.mu.Lock()
	s.name = name
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return accepted()
}

// AcceptMission moves an available mission into the single active slot.
func (s *Store) AcceptMission(id string) Outcome {
	s.mu.Lock()
	next, reason := mission.Accept(s.missions, id)
	if reason != mission.ReasonNone {
		s.mu.Unlock()
		return missionOutcome(reason)
	}
	s.missions = next
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.record(telemetry.EventMissionAccepted, telemetry.EventMetadata{"mission_id": id})
	s.notify(snap)
	return accepted()
}

// IncrementMission advances the active mission's progress, clamped at its
// target.
func (s *Store) IncrementMission(id string, steps int) Outcome {
	s.mu.Lock()
	next, reason := mission.Advance(s.missions, id, steps)
	if reason != mission.ReasonNone {
		s.mu.Unlock()
		return missionOutcome(reason)
	}
	s.missions = next
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.record(telemetry.EventMissionProgress, telemetry.EventMetadata{"mission_id": id, "steps": steps})
	s.notify(snap)
	return accepted()
}

// CompleteMission finishes a ready mission, folds its reward into the point
// total (with level refresh) and the CO2 impact counter, and recomputes the
// difficulty locks.
func (s *Store) CompleteMission(id string) Outcome {
	s.mu.Lock()
	next, reward, reason := mission.Complete(s.missions, id, s.reductions)
	if reason != mission.ReasonNone {
		s.mu.Unlock()
		return missionOutcome(reason)
	}
	s.missions = next
	s.totalPoints += reward.Points
	s.totalReducedCO2 += reward.CO2Reduced
	prev := s.level
	s.level = economy.LevelForPoints(s.totalPoints, s.levels)
	leveledUp := s.level > prev
	newLevel := s.level
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.record(telemetry.EventMissionCompleted, telemetry.EventMetadata{
		"mission_id":  id,
		"points":      reward.Points,
		"co2_reduced": reward.CO2Reduced,
	})
	if leveledUp {
		s.record(telemetry.EventLevelUp, telemetry.EventMetadata{"level": newLevel})
	}
	s.notify(snap)
	return accepted()
}
