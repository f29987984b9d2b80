package repositories

import (
	"context"
	"fmt"

	"github.com/anhbaysgalan1/balatro/internal/database"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"gorm.io/gorm"
)

const leaderboardOrder = "score DESC, date_achieved DESC"

// HighscoreRepository stores finished runs
type HighscoreRepository struct {
	db *gorm.DB
}

// NewHighscoreRepository creates a new highscore repository
func NewHighscoreRepository(db *gorm.DB) *HighscoreRepository {
	return &HighscoreRepository{db: db}
}

// Create inserts a new highscore
func (r *HighscoreRepository) Create(ctx context.Context, highscore *models.Highscore) error {
	if err := r.db.WithContext(ctx).Create(highscore).Error; err != nil {
		return fmt.Errorf("failed to create highscore: %w", database.Classify(err))
	}
	return nil
}

// List returns one page of the leaderboard, optionally restricted to a user
func (r *HighscoreRepository) List(ctx context.Context, limit, offset int, userID string) (*models.HighscorePage, error) {
	scope := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Highscore{})
		if userID != "" {
			query = query.Where("user_id = ?", userID)
		}
		return query
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count highscores: %w", err)
	}

	entries := []models.Highscore{}
	if err := scope().Order(leaderboardOrder).Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list highscores: %w", err)
	}

	return &models.HighscorePage{
		Entries:    entries,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// BestForUser returns the user's top highscore, or nil if they have none
func (r *HighscoreRepository) BestForUser(ctx context.Context, userID string) (*models.Highscore, error) {
	var best models.Highscore
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(leaderboardOrder).
		First(&best).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get best highscore: %w", err)
	}
	return &best, nil
}

// Rank returns the 1-based leaderboard position of a highscore. Equal
// scores share a rank.
func (r *HighscoreRepository) Rank(ctx context.Context, highscore *models.Highscore) (int64, error) {
	var ahead int64
	err := r.db.WithContext(ctx).Model(&models.Highscore{}).
		Where("score > ?", highscore.Score).
		Count(&ahead).Error
	if err != nil {
		return 0, fmt.Errorf("failed to rank highscore: %w", err)
	}
	return ahead + 1, nil
}
