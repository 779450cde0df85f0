package events

import (
	"time"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountClaimed  EventType = "account_claimed"
	EventStockRestocked  EventType = "stock_restocked"
	EventAccessGranted   EventType = "access_granted"
	EventCooldownUpdated EventType = "cooldown_updated"
	EventStockCleared    EventType = "stock_cleared"
)

// Event represents a state mutation emitted by the account service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountClaimedPayload payload.
type AccountClaimedPayload struct {
	Category domain.Category `json:"category"`
	Service  string          `json:"service"`
}

// StockRestockedPayload payload.
type StockRestockedPayload struct {
	Category domain.Category `json:"category"`
	Service  string          `json:"service"`
	Stored   int             `json:"stored"`
}

// AccessGrantedPayload payload.
type AccessGrantedPayload struct {
	UserID   string          `json:"user_id"`
	Category domain.Category `json:"category"`
	// ExpiryMillis is zero for permanent grants.
	ExpiryMillis int64 `json:"expiry_millis,omitempty"`
}

// CooldownUpdatedPayload payload.
type CooldownUpdatedPayload struct {
	Category domain.Category `json:"category"`
	Millis   int64           `json:"millis"`
}

// StockClearedPayload payload.
type StockClearedPayload struct {
	Category domain.Category `json:"category"`
	Service  string          `json:"service,omitempty"`
	Deleted  int             `json:"deleted"`
}
