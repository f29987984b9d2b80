package aggregates

import (
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/events"
	"github.com/google/uuid"
)

// AggregateRoot buffers the domain events an aggregate raises until the
// event store has them. Version counts every event ever raised, pending or not.
type AggregateRoot struct {
	ID      uuid.UUID            `json:"id"`
	Version int64                `json:"version"`
	Changes []events.DomainEvent `json:"-"`
}

func (ar *AggregateRoot) GetID() uuid.UUID {
	return ar.ID
}

func (ar *AggregateRoot) GetVersion() int64 {
	return ar.Version
}

// NextVersion is the version the next recorded event must carry
func (ar *AggregateRoot) NextVersion() int64 {
	return ar.Version + 1
}

// CommittedVersion is the version the event store holds when every pending
// change is still unsaved
func (ar *AggregateRoot) CommittedVersion() int64 {
	return ar.Version - int64(len(ar.Changes))
}

func (ar *AggregateRoot) GetUncommittedChanges() []events.DomainEvent {
	return ar.Changes
}

// MarkChangesAsCommitted drops the pending changes
func (ar *AggregateRoot) MarkChangesAsCommitted() {
	ar.Changes = nil
}

// ApplyChange records an event and bumps the version
func (ar *AggregateRoot) ApplyChange(event events.DomainEvent) {
	ar.Changes = append(ar.Changes, event)
	ar.Version++
}
