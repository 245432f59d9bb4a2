package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_RecordAndFilter(t *testing.T) {
	repo := NewMemoryRepository()

	require.NoError(t, repo.RecordEvent(EventEmissionLogged, EventMetadata{"category": "energy", "kg": 2.33}))
	require.NoError(t, repo.RecordEvent(EventMissionCompleted, EventMetadata{"points": 50, "co2_reduced": 1.5}))

	all, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NotEmpty(t, all[0].ID)
	assert.NotEqual(t, all[0].ID, all[1].ID)

	onlyMissions, err := repo.GetEvents(time.Time{}, []EventType{EventMissionCompleted})
	require.NoError(t, err)
	require.Len(t, onlyMissions, 1)
	assert.Equal(t, EventMissionCompleted, onlyMissions[0].Type)

	require.NoError(t, repo.Clear())
	all, err = repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCalculateStats(t *testing.T) {
	repo := NewMemoryRepository()

	require.NoError(t, repo.RecordEvent(EventEmissionLogged, EventMetadata{"category": "transportation", "kg": 19.2}))
	require.NoError(t, repo.RecordEvent(EventEmissionLogged, EventMetadata{"category": "transportation", "kg": 0.8}))
	require.NoError(t, repo.RecordEvent(EventMissionAccepted, EventMetadata{"mission_id": "banho_flash"}))
	require.NoError(t, repo.RecordEvent(EventMissionCompleted, EventMetadata{"mission_id": "banho_flash", "points": 50, "co2_reduced": 1.5}))
	require.NoError(t, repo.RecordEvent(EventItemPurchased, EventMetadata{"item_id": "hat", "price": 350}))
	require.NoError(t, repo.RecordEvent(EventLevelUp, EventMetadata{"level": 3}))

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)

	stats, err := CalculateStats(events)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.EmissionsLogged)
	assert.InDelta(t, 20.0, stats.EmissionsByCat["transportation"], 1e-9)
	assert.Equal(t, 1, stats.MissionsAccepted)
	assert.Equal(t, 1, stats.MissionsCompleted)
	assert.Equal(t, 50, stats.PointsEarned)
	assert.Equal(t, 350, stats.PointsSpent)
	assert.InDelta(t, 1.5, stats.CO2ReducedTotal, 1e-9)
	assert.Equal(t, 1, stats.ItemsPurchased)
	assert.Equal(t, 1, stats.PurchasedByItem["hat"])
	assert.Equal(t, 1, stats.LevelUps)
}
