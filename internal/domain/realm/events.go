package realm

import "time"

const (
	EventParcelAcquired  = "parcel_acquired"
	EventCastleUpgraded  = "castle_upgraded"
	EventStatAllocated   = "stat_allocated"
	EventResourcesSold   = "resources_sold"
	EventResourcesBought = "resources_bought"
	EventAnimalPurchased = "animal_purchased"
	EventGroundsBuilt    = "grounds_built"
	EventPlayerRenamed   = "player_renamed"
	EventLevelUp         = "level_up"
	EventGameStarted     = "game_started"
	EventGameReset       = "game_reset"
)

type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

type ResultCode string

const (
	ResultOK       ResultCode = "OK"
	ResultLevelUp  ResultCode = "LEVEL_UP"
	ResultRejected ResultCode = "REJECTED"
)
