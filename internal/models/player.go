package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player is a guest account. Its ID is the userId used by saved runs and
// highscores.
type Player struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DisplayName  string         `json:"display_name" gorm:"size:50"`
	RecoveryHash string         `json:"-" gorm:"size:255"`
	GamesPlayed  int            `json:"games_played" gorm:"default:0"`
	BestScore    int64          `json:"best_score" gorm:"default:0"`
	LastSeenAt   time.Time      `json:"last_seen_at"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets the ID if not already set
func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.LastSeenAt.IsZero() {
		p.LastSeenAt = time.Now().UTC()
	}
	return nil
}
