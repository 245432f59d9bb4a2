package profile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/MarceloDChagas/Respira/internal/economy"
	"github.com/MarceloDChagas/Respira/internal/mission"
)

const snapshotFile = "profile.json"

// SaveFile writes the current snapshot to <dataDir>/profile.json. This is
// the explicit serialization boundary at process stop; the store stays
// memory-only unless a data dir is configured.
func (s *Store) SaveFile(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	snap := s.Snapshot()
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dataDir, snapshotFile), b, 0o644)
}

// LoadFile builds a store from a previously saved snapshot, falling back to
// the seed when no snapshot exists. The second return reports whether a
// snapshot was restored. Level and locks are re-derived after load so a
// hand-edited or stale file cannot violate the store invariants.
func LoadFile(dataDir string, seed Seed, opts ...Option) (*Store, bool, error) {
	b, err := os.ReadFile(filepath.Join(dataDir, snapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(seed, opts...), false, nil
		}
		return nil, false, err
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, false, err
	}

	s := NewStore(seed, opts...)
	s.mu.Lock()
	s.name = snap.Name
	s.transport = snap.TransportEmission
	s.energy = snap.EnergyEmission
	s.food = snap.FoodEmission
	s.totalPoints = snap.TotalPoints
	s.totalReducedCO2 = snap.TotalReducedCO2
	if len(snap.Missions) > 0 {
		s.missions = mission.RecomputeLocks(snap.Missions)
	}
	if len(snap.OwnedItems) > 0 {
		s.owned = append([]string(nil), snap.OwnedItems...)
	}
	s.equipped = snap.EquippedItems
	s.level = economy.LevelForPoints(s.totalPoints, s.levels)
	s.mu.Unlock()
	return s, true, nil
}
