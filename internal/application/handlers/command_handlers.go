package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/engine"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/game"
	"github.com/anhbaysgalan1/balatro/internal/validation"
)

// CommandHandler applies player commands to a live run and records the
// resulting events
type CommandHandler struct {
	eventStore engine.EventStore
}

// NewCommandHandler creates a new command handler. A nil event store keeps
// the run history in memory only.
func NewCommandHandler(eventStore engine.EventStore) *CommandHandler {
	return &CommandHandler{
		eventStore: eventStore,
	}
}

// NewGame deals a fresh run for the user
func (ch *CommandHandler) NewGame(ctx context.Context, userID string, cmd dto.NewGameCommand) (*game.Session, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidSelection, err)
	}

	session := game.NewSession(userID, cmd.Seed)
	slog.Info("Run started", "user_id", userID, "run_id", session.ID, "seed", session.Seed)

	ch.commit(ctx, session)
	return session, nil
}

// PlayHand handles the play hand command
func (ch *CommandHandler) PlayHand(ctx context.Context, session *game.Session, cmd dto.PlayHandCommand) (*dto.HandResultView, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidSelection, err)
	}

	result, err := session.PlayHand(cmd.CardIDs)
	if err != nil {
		return nil, err
	}
	ch.commit(ctx, session)

	view := &dto.HandResultView{
		Chips:       result.Score.Chips,
		Multiplier:  result.Score.Multiplier,
		TotalScore:  result.Score.TotalScore,
		MoneyEarned: result.MoneyEarned,
		Outcome:     result.Outcome,
		Destroyed:   result.Destroyed,
		ShopOpened:  result.ShopOpened,
	}
	if result.Hand != nil {
		view.HandType = result.Hand.Name()
		view.Description = result.Hand.Description
		view.Cards = result.Hand.Cards
	}

	slog.Info("Hand played", "user_id", session.UserID, "run_id", session.ID,
		"hand", view.HandType, "score", view.TotalScore, "outcome", view.Outcome)
	return view, nil
}

// Discard handles the discard command
func (ch *CommandHandler) Discard(ctx context.Context, session *game.Session, cmd dto.DiscardCommand) error {
	if err := validation.Validate(cmd); err != nil {
		return fmt.Errorf("%w: %v", game.ErrInvalidSelection, err)
	}

	if _, err := session.Discard(cmd.CardIDs); err != nil {
		return err
	}
	ch.commit(ctx, session)
	return nil
}

// UseTarot handles the use tarot command. It reports whether the tarot took
// effect; a tarot that fails is kept.
func (ch *CommandHandler) UseTarot(ctx context.Context, session *game.Session, cmd dto.UseTarotCommand) (bool, error) {
	if err := validation.Validate(cmd); err != nil {
		return false, err
	}

	applied, err := session.UseTarot(cmd.Index, cmd.TargetID)
	if err != nil {
		return false, err
	}
	ch.commit(ctx, session)
	return applied, nil
}

// BuyItem handles the buy item command
func (ch *CommandHandler) BuyItem(ctx context.Context, session *game.Session, cmd dto.BuyItemCommand) (*dto.PurchaseView, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}

	purchase, err := session.Buy(cmd.Index)
	if err != nil {
		return nil, err
	}
	ch.commit(ctx, session)

	return &dto.PurchaseView{
		Item:    purchase.Item,
		Granted: purchase.Granted,
		Dropped: purchase.Dropped,
	}, nil
}

// SellJoker handles the sell joker command and returns the money received
func (ch *CommandHandler) SellJoker(ctx context.Context, session *game.Session, cmd dto.JokerCommand) (int, error) {
	if err := validation.Validate(cmd); err != nil {
		return 0, err
	}

	value, err := session.SellJoker(cmd.Index)
	if err != nil {
		return 0, err
	}
	ch.commit(ctx, session)
	return value, nil
}

// ToggleJoker handles the toggle joker command
func (ch *CommandHandler) ToggleJoker(ctx context.Context, session *game.Session, cmd dto.JokerCommand) error {
	if err := validation.Validate(cmd); err != nil {
		return err
	}
	return session.ToggleJoker(cmd.Index)
}

// RerollShop handles the reroll command
func (ch *CommandHandler) RerollShop(ctx context.Context, session *game.Session) error {
	if err := session.RerollShop(); err != nil {
		return err
	}
	ch.commit(ctx, session)
	return nil
}

// LeaveShop closes the shop without buying
func (ch *CommandHandler) LeaveShop(ctx context.Context, session *game.Session) {
	session.LeaveShop()
	ch.commit(ctx, session)
}

// commit persists the session's uncommitted events. History is best effort:
// a failed write is logged and the events are dropped, the run itself goes on.
func (ch *CommandHandler) commit(ctx context.Context, session *game.Session) {
	changes := session.GetUncommittedChanges()
	if len(changes) == 0 {
		return
	}

	if ch.eventStore != nil {
		if err := ch.eventStore.SaveEvents(ctx, session.GetID(), changes, session.CommittedVersion()); err != nil {
			slog.Warn("Failed to save run events", "run_id", session.ID, "count", len(changes), "error", err)
		}
	}

	session.MarkChangesAsCommitted()
}
