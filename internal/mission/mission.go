// Package mission implements the per-mission state machine:
// locked → available → accepted → completed, with cross-difficulty unlock
// rules. All transitions are copy-on-write over the full mission slice so the
// store can hand out snapshots without aliasing.
package mission

import (
	"sort"

	"github.com/MarceloDChagas/Respira/internal/catalog"
)

// State is one mission's definition plus its lifecycle fields.
// Invariants: Completed ⇒ !Accepted ∧ Progress == Target; Locked ⇒ !Accepted.
type State struct {
	catalog.Mission

	Accepted  bool `json:"accepted"`
	Completed bool `json:"completed"`
	Progress  int  `json:"progress"`
	Target    int  `json:"target"`
	Locked    bool `json:"locked"`
}

// Reward is what completing a mission yields.
type Reward struct {
	Points     int
	CO2Reduced float64
}

// Reason explains why a transition was rejected.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonUnknownMission Reason = "unknown_mission"
	ReasonLocked         Reason = "mission_locked"
	ReasonCompleted      Reason = "mission_completed"
	ReasonNotAccepted    Reason = "mission_not_accepted"
	ReasonMissionActive  Reason = "another_mission_active"
	ReasonNotReady       Reason = "progress_below_target"
	ReasonInvalidSteps   Reason = "invalid_steps"
)

// Seed builds the initial state slice from the catalog: easy missions start
// available, medium and hard start locked. Ordering follows the catalog.
func Seed(defs []catalog.Mission, targets map[string]int) []State {
	out := make([]State, 0, len(defs))
	for _, d := range defs {
		target := targets[d.ID]
		if target < 1 {
			target = 1
		}
		out = append(out, State{
			Mission: d,
			Target:  target,
			Locked:  d.Difficulty != catalog.DifficultyEasy,
		})
	}
	return out
}

func find(missions []State, id string) int {
	for i := range missions {
		if missions[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(missions []State) []State {
	out := make([]State, len(missions))
	copy(out, missions)
	return out
}

// Active returns the single accepted-and-incomplete mission, if any.
// Acceptance is mutually exclusive (see Accept), so at most one exists.
func Active(missions []State) (State, bool) {
	for _, m := range missions {
		if m.Accepted && !m.Completed {
			return m, true
		}
	}
	return State{}, false
}

// Accept marks a mission as accepted. Locked, completed and unknown missions
// are rejected, as is accepting while another mission is in flight: the
// active-mission slot is an enforced rule, not a display convention.
func Accept(missions []State, id string) ([]State, Reason) {
	i := find(missions, id)
	if i < 0 {
		return missions, ReasonUnknownMission
	}
	m := missions[i]
	switch {
	case m.Completed:
		return missions, ReasonCompleted
	case m.Locked:
		return missions, ReasonLocked
	case m.Accepted:
		return missions, ReasonNone // accepting the active mission again is harmless
	}
	if _, busy := Active(missions); busy {
		return missions, ReasonMissionActive
	}

	out := clone(missions)
	out[i].Accepted = true
	return out, ReasonNone
}

// Advance adds steps to an accepted mission's progress, clamped at its
// target. Non-positive steps are rejected rather than clamped to keep
// progress strictly monotone.
func Advance(missions []State, id string, steps int) ([]State, Reason) {
	if steps <= 0 {
		return missions, ReasonInvalidSteps
	}
	i := find(missions, id)
	if i < 0 {
		return missions, ReasonUnknownMission
	}
	m := missions[i]
	switch {
	case m.Completed:
		return missions, ReasonCompleted
	case !m.Accepted:
		return missions, ReasonNotAccepted
	}

	out := clone(missions)
	p := m.Progress + steps
	if p > m.Target {
		p = m.Target
	}
	out[i].Progress = p
	return out, ReasonNone
}

// Complete finishes an accepted mission whose progress has reached its
// target. On success the mission becomes terminal (completed, no longer
// accepted), locks are recomputed for the whole set, and the reward is
// returned for the store to fold into the economy and impact counters.
func Complete(missions []State, id string, reductions map[string]float64) ([]State, Reward, Reason) {
	i := find(missions, id)
	if i < 0 {
		return missions, Reward{}, ReasonUnknownMission
	}
	m := missions[i]
	switch {
	case m.Completed:
		return missions, Reward{}, ReasonCompleted
	case !m.Accepted:
		return missions, Reward{}, ReasonNotAccepted
	case m.Progress < m.Target:
		return missions, Reward{}, ReasonNotReady
	}

	out := clone(missions)
	out[i].Completed = true
	out[i].Accepted = false
	out = RecomputeLocks(out)

	// an id missing from the reduction table contributes zero, never an error
	return out, Reward{Points: m.Points, CO2Reduced: reductions[m.ID]}, ReasonNone
}

// RecomputeLocks re-derives every mission's lock from completion counts:
// medium stays locked until two easy missions are completed, hard until two
// medium. Easy missions are never locked and completed missions never
// re-lock. Full recomputation keeps counts and locks from drifting; the pass
// is idempotent.
func RecomputeLocks(missions []State) []State {
	easyDone, mediumDone := 0, 0
	for _, m := range missions {
		if !m.Completed {
			continue
		}
		switch m.Difficulty {
		case catalog.DifficultyEasy:
			easyDone++
		case catalog.DifficultyMedium:
			mediumDone++
		}
	}

	out := clone(missions)
	for i := range out {
		switch out[i].Difficulty {
		case catalog.DifficultyMedium:
			out[i].Locked = easyDone < 2 && !out[i].Completed
		case catalog.DifficultyHard:
			out[i].Locked = mediumDone < 2 && !out[i].Completed
		default:
			out[i].Locked = false
		}
	}
	return out
}

// CountCompleted tallies completed missions per difficulty.
func CountCompleted(missions []State) map[catalog.Difficulty]int {
	out := map[catalog.Difficulty]int{}
	for _, m := range missions {
		if m.Completed {
			out[m.Difficulty]++
		}
	}
	return out
}

// SortByID orders a copy of the slice by id, handy for stable API output.
func SortByID(missions []State) []State {
	out := clone(missions)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
