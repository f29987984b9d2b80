package repositories

import (
	"context"
	"fmt"

	"github.com/anhbaysgalan1/balatro/internal/database"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameStateRepository stores saved runs in player_states
type GameStateRepository struct {
	db *gorm.DB
}

// NewGameStateRepository creates a new game state repository
func NewGameStateRepository(db *gorm.DB) *GameStateRepository {
	return &GameStateRepository{db: db}
}

// Upsert inserts the run or replaces the user's existing one
func (r *GameStateRepository) Upsert(ctx context.Context, state *models.PlayerState) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"run_id", "seed", "current_score", "total_score", "current_blind",
			"current_ante", "money", "lives", "blinds_completed", "document", "updated_at",
		}),
	}).Create(state).Error
	if err != nil {
		return fmt.Errorf("failed to upsert game state: %w", database.Classify(err))
	}
	return nil
}

// FindByUserID returns the user's saved run, or nil if there is none
func (r *GameStateRepository) FindByUserID(ctx context.Context, userID string) (*models.PlayerState, error) {
	var state models.PlayerState
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&state).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	return &state, nil
}

// DeleteByUserID removes the user's saved run and reports whether one existed
func (r *GameStateRepository) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.PlayerState{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete game state: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
