package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/auth"
	"github.com/anhbaysgalan1/balatro/internal/engine"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/anhbaysgalan1/balatro/internal/validation"
	"github.com/google/uuid"
)

type AuthService struct {
	players    engine.PlayerStore
	jwtManager *auth.JWTManager
}

func NewAuthService(players engine.PlayerStore, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		players:    players,
		jwtManager: jwtManager,
	}
}

// CreateGuest registers a guest account and hands back its recovery key.
// The key is not stored and cannot be shown again.
func (s *AuthService) CreateGuest(ctx context.Context, req dto.GuestRequest) (*dto.GuestSession, error) {
	if err := validation.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	recoveryKey, err := auth.GenerateRecoveryKey()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashRecoveryKey(recoveryKey)
	if err != nil {
		return nil, err
	}

	player := &models.Player{
		ID:           uuid.New(),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		RecoveryHash: hash,
	}
	if player.DisplayName == "" {
		player.DisplayName = "Guest-" + player.ID.String()[:8]
	}

	if err := s.players.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", storeError(err))
	}

	session, err := s.issue(player)
	if err != nil {
		return nil, err
	}
	session.RecoveryKey = recoveryKey

	slog.Info("Guest player created", "user_id", player.ID, "display_name", player.DisplayName)
	return session, nil
}

// Resume issues a fresh token for an existing guest
func (s *AuthService) Resume(ctx context.Context, req dto.ResumeRequest) (*dto.GuestSession, error) {
	if err := validation.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	playerID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	player, err := s.players.FindByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find player: %w", err)
	}
	if player == nil {
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyRecoveryKey(req.RecoveryKey, player.RecoveryHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.players.Touch(ctx, player.ID); err != nil {
		slog.Warn("Failed to update last seen", "user_id", player.ID, "error", err)
	}

	slog.Info("Guest player resumed", "user_id", player.ID)
	return s.issue(player)
}

func (s *AuthService) issue(player *models.Player) (*dto.GuestSession, error) {
	token, expiresAt, err := s.jwtManager.GenerateToken(player.ID, player.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &dto.GuestSession{
		UserID:      player.ID.String(),
		DisplayName: player.DisplayName,
		Token:       token,
		ExpiresAt:   expiresAt,
	}, nil
}
