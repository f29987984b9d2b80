package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of domain event
type EventType string

// Domain event types
const (
	// Run lifecycle
	RunStartedEvent     EventType = "run.started"
	BlindCompletedEvent EventType = "blind.completed"
	LifeLostEvent       EventType = "life.lost"
	GameOverEvent       EventType = "game.over"

	// Player actions
	HandPlayedEvent     EventType = "hand.played"
	CardsDiscardedEvent EventType = "cards.discarded"
	TarotUsedEvent      EventType = "tarot.used"
	PlanetUsedEvent     EventType = "planet.used"

	// Jokers and shop
	JokerAddedEvent    EventType = "joker.added"
	JokerSoldEvent     EventType = "joker.sold"
	ShopPurchaseEvent  EventType = "shop.purchase"
	CardDestroyedEvent EventType = "card.destroyed"
)

// BaseEvent contains common fields for all domain events
type BaseEvent struct {
	ID          uuid.UUID `json:"id"`
	EventType   EventType `json:"event_type"`
	AggregateID uuid.UUID `json:"aggregate_id"`
	Version     int64     `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
	UserID      string    `json:"user_id,omitempty"`
}

// DomainEvent interface that all events must implement
type DomainEvent interface {
	GetID() uuid.UUID
	GetEventType() EventType
	GetAggregateID() uuid.UUID
	GetVersion() int64
	GetTimestamp() time.Time
	GetUserID() string
}

func (e BaseEvent) GetID() uuid.UUID {
	return e.ID
}

func (e BaseEvent) GetEventType() EventType {
	return e.EventType
}

func (e BaseEvent) GetAggregateID() uuid.UUID {
	return e.AggregateID
}

func (e BaseEvent) GetVersion() int64 {
	return e.Version
}

func (e BaseEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

func (e BaseEvent) GetUserID() string {
	return e.UserID
}

// NewBaseEvent creates a new base event
func NewBaseEvent(eventType EventType, runID uuid.UUID, version int64, userID string) BaseEvent {
	return BaseEvent{
		ID:          uuid.New(),
		EventType:   eventType,
		AggregateID: runID,
		Version:     version,
		Timestamp:   time.Now().UTC(),
		UserID:      userID,
	}
}
