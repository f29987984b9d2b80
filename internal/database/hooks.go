package database

import (
	"log/slog"
)

// SetupIndexes creates additional indexes that GORM can't handle automatically
func (db *DB) SetupIndexes() error {
	slog.Info("Setting up additional database indexes")

	// Leaderboard ordering: best score first, newest first on ties
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_highscores_leaderboard
		ON highscores(score DESC, date_achieved DESC)
	`).Error; err != nil {
		return err
	}

	// Per-user best score lookup
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_highscores_user_score
		ON highscores(user_id, score DESC)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_player_states_updated
		ON player_states(updated_at DESC)
	`).Error; err != nil {
		return err
	}

	slog.Info("Additional database indexes created successfully")
	return nil
}
