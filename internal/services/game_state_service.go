package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/engine"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/game"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/anhbaysgalan1/balatro/internal/validation"
)

// GameStateService saves and loads one run per user
type GameStateService struct {
	store engine.GameStateStore
	cache engine.Cache
}

// NewGameStateService creates a new game state service. cache may be nil.
func NewGameStateService(store engine.GameStateStore, cache engine.Cache) *GameStateService {
	return &GameStateService{store: store, cache: cache}
}

// Save validates the document and stores it as the user's run
func (s *GameStateService) Save(ctx context.Context, state dto.GameState) (*dto.SaveGameStateResult, error) {
	if err := validation.Validate(state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if _, err := game.Restore(state.Document()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	document, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game state: %w", err)
	}

	existing, err := s.store.FindByUserID(ctx, state.UserID)
	if err != nil {
		return nil, err
	}

	record := &models.PlayerState{
		UserID:          state.UserID,
		RunID:           state.RunID,
		Seed:            state.Seed,
		CurrentScore:    state.CurrentScore,
		TotalScore:      state.TotalScore,
		CurrentBlind:    state.CurrentBlind,
		CurrentAnte:     state.CurrentAnte,
		Money:           state.Money,
		Lives:           state.Lives,
		BlindsCompleted: state.BlindsCompleted,
		Document:        models.JSONB(document),
	}
	if err := s.store.Upsert(ctx, record); err != nil {
		slog.Error("Failed to save game state", "user_id", state.UserID, "error", err)
		return nil, storeError(err)
	}

	if s.cache != nil {
		if err := s.cache.SetGameState(ctx, state.UserID, document); err != nil {
			slog.Warn("Failed to cache game state", "user_id", state.UserID, "error", err)
		}
	}

	slog.Info("Game state saved", "user_id", state.UserID, "blind", state.CurrentBlind, "score", state.CurrentScore)
	return &dto.SaveGameStateResult{
		UserID:   state.UserID,
		Created:  existing == nil,
		Modified: existing != nil,
	}, nil
}

// Load returns the user's saved run
func (s *GameStateService) Load(ctx context.Context, userID string) (*dto.GameState, error) {
	if err := validation.ValidateUserID(userID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if s.cache != nil {
		document, err := s.cache.GetGameState(ctx, userID)
		if err != nil {
			slog.Warn("Failed to read cached game state", "user_id", userID, "error", err)
		} else if document != nil {
			var state dto.GameState
			if err := json.Unmarshal(document, &state); err == nil {
				return &state, nil
			}
			slog.Warn("Discarding unreadable cached game state", "user_id", userID)
		}
	}

	record, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}

	var state dto.GameState
	if err := json.Unmarshal(record.Document, &state); err != nil {
		return nil, fmt.Errorf("failed to decode stored game state: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetGameState(ctx, userID, record.Document); err != nil {
			slog.Warn("Failed to cache game state", "user_id", userID, "error", err)
		}
	}

	return &state, nil
}

// Delete removes the user's saved run
func (s *GameStateService) Delete(ctx context.Context, userID string) error {
	if err := validation.ValidateUserID(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	deleted, err := s.store.DeleteByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateGameState(ctx, userID); err != nil {
			slog.Warn("Failed to invalidate cached game state", "user_id", userID, "error", err)
		}
	}

	if !deleted {
		return ErrNotFound
	}

	slog.Info("Game state deleted", "user_id", userID)
	return nil
}
