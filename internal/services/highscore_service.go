package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/engine"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/anhbaysgalan1/balatro/internal/validation"
	"github.com/google/uuid"
)

// HighscoreService records finished runs and serves the leaderboard
type HighscoreService struct {
	store   engine.HighscoreStore
	players engine.PlayerStore
	cache   engine.Cache
}

// NewHighscoreService creates a new highscore service. players and cache may be nil.
func NewHighscoreService(store engine.HighscoreStore, players engine.PlayerStore, cache engine.Cache) *HighscoreService {
	return &HighscoreService{store: store, players: players, cache: cache}
}

// Submit stores a highscore
func (s *HighscoreService) Submit(ctx context.Context, req dto.CreateHighscoreRequest) (*models.Highscore, error) {
	if err := validation.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	highscore := &models.Highscore{
		UserID:     req.UserID,
		PlayerName: req.PlayerName,
		Score:      req.Score,
		FinalBlind: req.FinalBlind,
		JokersUsed: models.StringList(req.JokersUsed),
		Seed:       req.Seed,
	}
	if err := s.store.Create(ctx, highscore); err != nil {
		slog.Error("Failed to save highscore", "user_id", req.UserID, "error", err)
		return nil, storeError(err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateHighscores(ctx); err != nil {
			slog.Warn("Failed to invalidate leaderboard cache", "error", err)
		}
	}

	// Highscores may come from ids that are not guest accounts
	if playerID, err := uuid.Parse(req.UserID); err == nil && s.players != nil {
		if err := s.players.RecordRun(ctx, playerID, req.Score); err != nil {
			slog.Warn("Failed to update player stats", "user_id", req.UserID, "error", err)
		}
	}

	slog.Info("Highscore saved", "user_id", req.UserID, "score", req.Score, "final_blind", req.FinalBlind)
	return highscore, nil
}

// NormalizePage clamps leaderboard paging the way the API documents it:
// limits outside 1..100 fall back to the default, negative offsets to zero
func NormalizePage(limit, offset int) (int, int) {
	if validation.ValidateRange(int64(limit), 1, dto.MaxHighscoreLimit, "limit") != nil {
		limit = dto.DefaultHighscoreLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// List returns a leaderboard page, optionally for one user
func (s *HighscoreService) List(ctx context.Context, limit, offset int, userID string) (*models.HighscorePage, error) {
	if userID != "" {
		if err := validation.ValidateUserID(userID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	limit, offset = NormalizePage(limit, offset)

	if s.cache != nil {
		page, err := s.cache.GetHighscorePage(ctx, limit, offset, userID)
		if err != nil {
			slog.Warn("Failed to read cached leaderboard", "error", err)
		} else if page != nil {
			return page, nil
		}
	}

	page, err := s.store.List(ctx, limit, offset, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetHighscorePage(ctx, limit, offset, userID, page); err != nil {
			slog.Warn("Failed to cache leaderboard", "error", err)
		}
	}

	return page, nil
}

// UserBest returns the user's best highscore and its leaderboard rank
func (s *HighscoreService) UserBest(ctx context.Context, userID string) (*models.Highscore, int64, error) {
	if err := validation.ValidateUserID(userID); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	best, err := s.store.BestForUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if best == nil {
		return nil, 0, ErrNotFound
	}

	rank, err := s.store.Rank(ctx, best)
	if err != nil {
		return nil, 0, err
	}
	return best, rank, nil
}
