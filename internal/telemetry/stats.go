package telemetry

import "encoding/json"

type Stats struct {
	EventCounts       map[EventType]int  `json:"event_counts"`
	EmissionsLogged   int                `json:"emissions_logged"`
	EmissionsByCat    map[string]float64 `json:"emissions_kg_by_category"`
	MissionsAccepted  int                `json:"missions_accepted"`
	MissionsCompleted int                `json:"missions_completed"`
	PointsEarned      int                `json:"points_earned"`
	PointsSpent       int                `json:"points_spent"`
	CO2ReducedTotal   float64            `json:"co2_reduced_total"`
	ItemsPurchased    int                `json:"items_purchased"`
	PurchasedByItem   map[string]int     `json:"purchased_by_item"`
	LevelUps          int                `json:"level_ups"`
}

// CalculateStats folds the event log into aggregate impact stats.
func CalculateStats(events []Event) (Stats, error) {
	stats := Stats{
		EventCounts:     make(map[EventType]int),
		EmissionsByCat:  make(map[string]float64),
		PurchasedByItem: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventEmissionLogged:
			stats.EmissionsLogged++
			if cat, ok := metadata["category"].(string); ok {
				if kg, ok := metadata["kg"].(float64); ok {
					stats.EmissionsByCat[cat] += kg
				}
			}
		case EventMissionAccepted:
			stats.MissionsAccepted++
		case EventMissionCompleted:
			stats.MissionsCompleted++
			if pts, ok := metadata["points"].(float64); ok {
				stats.PointsEarned += int(pts)
			}
			if kg, ok := metadata["co2_reduced"].(float64); ok {
				stats.CO2ReducedTotal += kg
			}
		case EventPointsAdded:
			if pts, ok := metadata["points"].(float64); ok {
				stats.PointsEarned += int(pts)
			}
		case EventItemPurchased:
			stats.ItemsPurchased++
			if id, ok := metadata["item_id"].(string); ok {
				stats.PurchasedByItem[id]++
			}
			if price, ok := metadata["price"].(float64); ok {
				stats.PointsSpent += int(price)
			}
		case EventLevelUp:
			stats.LevelUps++
		}
	}

	return stats, nil
}
