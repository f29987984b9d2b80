package handlers

import (
	"context"
	"fmt"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/engine"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/game"
	"github.com/anhbaysgalan1/balatro/internal/validation"
	"github.com/google/uuid"
)

// QueryHandler builds read models of runs
type QueryHandler struct {
	eventStore engine.EventStore
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(eventStore engine.EventStore) *QueryHandler {
	return &QueryHandler{
		eventStore: eventStore,
	}
}

// GameView returns what the player sees of their run
func (qh *QueryHandler) GameView(session *game.Session) *dto.GameView {
	view := &dto.GameView{
		RunID:           session.ID.String(),
		UserID:          session.UserID,
		Seed:            session.Seed,
		Progress:        session.Progress(),
		Hand:            session.Hand(),
		DeckSize:        session.DeckSize(),
		DiscardPileSize: len(session.DiscardPile()),
		Jokers:          session.Jokers(),
		Tarots:          qh.convertTarots(session),
		PlanetLevels:    session.PlanetLevels(),
		ShopOpen:        session.ShopOpen(),
		Shop:            session.Shop(),
		IsOver:          session.IsOver(),
	}
	return view
}

// PreviewHand scores a selection without playing it
func (qh *QueryHandler) PreviewHand(session *game.Session, cmd dto.PreviewHandCommand) (*dto.HandPreviewView, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidSelection, err)
	}

	hr, score, err := session.PreviewHand(cmd.CardIDs)
	if err != nil {
		return nil, err
	}

	view := &dto.HandPreviewView{
		Chips:      score.Chips,
		Multiplier: score.Multiplier,
		TotalScore: score.TotalScore,
	}
	if hr != nil {
		view.HandType = hr.Name()
		view.Description = hr.Description
		view.Cards = hr.Cards
	}
	return view, nil
}

// RunHistory returns the recorded events of a run, oldest first
func (qh *QueryHandler) RunHistory(ctx context.Context, runID uuid.UUID) ([]dto.RunEventView, error) {
	if qh.eventStore == nil {
		return []dto.RunEventView{}, nil
	}

	domainEvents, err := qh.eventStore.GetEvents(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run events: %w", err)
	}

	history := make([]dto.RunEventView, 0, len(domainEvents))
	for _, event := range domainEvents {
		history = append(history, dto.RunEventView{
			Type:      string(event.GetEventType()),
			Version:   event.GetVersion(),
			Timestamp: event.GetTimestamp(),
			Data:      event,
		})
	}
	return history, nil
}

func (qh *QueryHandler) convertTarots(session *game.Session) []dto.TarotView {
	views := []dto.TarotView{}
	for _, t := range session.TarotCards() {
		views = append(views, dto.TarotView{
			ID:             t.ID(),
			Name:           t.Name(),
			Description:    t.Description(),
			RequiresTarget: t.RequiresTarget(),
		})
	}
	return views
}
