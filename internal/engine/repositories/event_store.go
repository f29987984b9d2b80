package repositories

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/database"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/events"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionConflict means the run's history moved on since the caller last saw it
var ErrVersionConflict = errors.New("run event version conflict")

// EventModel is one stored run event
type EventModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	EventType   string    `gorm:"not null;index"`
	AggregateID uuid.UUID `gorm:"type:uuid;not null;index"`
	Version     int64     `gorm:"not null"`
	UserID      string    `gorm:"size:128;index"`
	Data        EventData `gorm:"type:jsonb;not null"`
	Timestamp   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (EventModel) TableName() string {
	return "run_events"
}

// EventData is the JSON body of a run event
type EventData map[string]interface{}

func (ed *EventData) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*ed = EventData{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan EventData from %T", value)
	}
	return json.Unmarshal(raw, ed)
}

func (ed EventData) Value() (driver.Value, error) {
	if ed == nil {
		return nil, nil
	}
	return json.Marshal(ed)
}

var eventFactories = map[events.EventType]func() events.DomainEvent{
	events.RunStartedEvent:     func() events.DomainEvent { return &events.RunStarted{} },
	events.HandPlayedEvent:     func() events.DomainEvent { return &events.HandPlayed{} },
	events.CardsDiscardedEvent: func() events.DomainEvent { return &events.CardsDiscarded{} },
	events.BlindCompletedEvent: func() events.DomainEvent { return &events.BlindCompleted{} },
	events.LifeLostEvent:       func() events.DomainEvent { return &events.LifeLost{} },
	events.GameOverEvent:       func() events.DomainEvent { return &events.GameOver{} },
	events.CardDestroyedEvent:  func() events.DomainEvent { return &events.CardDestroyed{} },
	events.JokerAddedEvent:     func() events.DomainEvent { return &events.JokerAdded{} },
	events.JokerSoldEvent:      func() events.DomainEvent { return &events.JokerSold{} },
	events.TarotUsedEvent:      func() events.DomainEvent { return &events.TarotUsed{} },
	events.PlanetUsedEvent:     func() events.DomainEvent { return &events.PlanetUsed{} },
	events.ShopPurchaseEvent:   func() events.DomainEvent { return &events.ShopPurchase{} },
}

// PostgreSQLEventStore keeps the append-only history of every run
type PostgreSQLEventStore struct {
	db *gorm.DB
}

func NewPostgreSQLEventStore(db *gorm.DB) *PostgreSQLEventStore {
	return &PostgreSQLEventStore{db: db}
}

// Migrate creates run_events and the per-run version index
func (es *PostgreSQLEventStore) Migrate() error {
	if err := es.db.AutoMigrate(&EventModel{}); err != nil {
		return err
	}
	return es.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_run_events_version
		ON run_events(aggregate_id, version)
	`).Error
}

// SaveEvents appends events to a run whose stored history must end at
// expectedVersion. Two writers racing past the check still collide on the
// version index, and both cases report ErrVersionConflict.
func (es *PostgreSQLEventStore) SaveEvents(ctx context.Context, aggregateID uuid.UUID, domainEvents []events.DomainEvent, expectedVersion int64) error {
	if len(domainEvents) == 0 {
		return nil
	}

	rows := make([]*EventModel, 0, len(domainEvents))
	for _, event := range domainEvents {
		row, err := toEventModel(event)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current int64
		err := tx.Model(&EventModel{}).
			Where("aggregate_id = ?", aggregateID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&current).Error
		if err != nil {
			return fmt.Errorf("failed to read run version: %w", err)
		}
		if current != expectedVersion {
			return fmt.Errorf("%w: run %s is at version %d, expected %d", ErrVersionConflict, aggregateID, current, expectedVersion)
		}

		if err := tx.Create(rows).Error; err != nil {
			if errors.Is(database.Classify(err), database.ErrDuplicate) {
				return fmt.Errorf("%w: %w", ErrVersionConflict, err)
			}
			return fmt.Errorf("failed to save run events: %w", err)
		}
		return nil
	})
}

// GetEvents returns a run's full history in version order
func (es *PostgreSQLEventStore) GetEvents(ctx context.Context, aggregateID uuid.UUID) ([]events.DomainEvent, error) {
	return es.load(ctx, aggregateID, 0)
}

// GetEventsFromVersion returns the events recorded after version
func (es *PostgreSQLEventStore) GetEventsFromVersion(ctx context.Context, aggregateID uuid.UUID, version int64) ([]events.DomainEvent, error) {
	return es.load(ctx, aggregateID, version)
}

func (es *PostgreSQLEventStore) load(ctx context.Context, aggregateID uuid.UUID, after int64) ([]events.DomainEvent, error) {
	var rows []*EventModel
	err := es.db.WithContext(ctx).
		Where("aggregate_id = ? AND version > ?", aggregateID, after).
		Order("version ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get run events: %w", err)
	}

	history := make([]events.DomainEvent, 0, len(rows))
	for _, row := range rows {
		event, err := fromEventModel(row)
		if err != nil {
			return nil, err
		}
		history = append(history, event)
	}
	return history, nil
}

func toEventModel(event events.DomainEvent) (*EventModel, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", event.GetEventType(), err)
	}
	var data EventData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", event.GetEventType(), err)
	}

	return &EventModel{
		EventType:   string(event.GetEventType()),
		AggregateID: event.GetAggregateID(),
		Version:     event.GetVersion(),
		UserID:      event.GetUserID(),
		Data:        data,
		Timestamp:   event.GetTimestamp(),
	}, nil
}

func fromEventModel(row *EventModel) (events.DomainEvent, error) {
	newEvent, ok := eventFactories[events.EventType(row.EventType)]
	if !ok {
		return nil, fmt.Errorf("unknown run event type %q", row.EventType)
	}

	raw, err := json.Marshal(row.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s event: %w", row.EventType, err)
	}
	event := newEvent()
	if err := json.Unmarshal(raw, event); err != nil {
		return nil, fmt.Errorf("failed to decode %s event: %w", row.EventType, err)
	}
	return event, nil
}
