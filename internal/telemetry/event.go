package telemetry

import "time"

type EventType string

const (
	EventEmissionLogged   EventType = "emission_logged"
	EventPointsAdded      EventType = "points_added"
	EventMissionAccepted  EventType = "mission_accepted"
	EventMissionProgress  EventType = "mission_progress"
	EventMissionCompleted EventType = "mission_completed"
	EventItemPurchased    EventType = "item_purchased"
	EventItemEquipped     EventType = "item_equipped"
	EventLevelUp          EventType = "level_up"
)

type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
