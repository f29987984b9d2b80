package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Highscore struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       string     `json:"user_id" gorm:"not null;size:128;index"`
	PlayerName   string     `json:"player_name" gorm:"not null;size:50"`
	Score        int64      `json:"score" gorm:"not null;check:chk_highscores_score,score > 0;index:idx_highscores_score,sort:desc"`
	DateAchieved time.Time  `json:"date_achieved" gorm:"not null;index:idx_highscores_date,sort:desc"`
	FinalBlind   int        `json:"final_blind" gorm:"not null"`
	JokersUsed   StringList `json:"jokers_used" gorm:"type:jsonb"`
	Seed         string     `json:"seed" gorm:"size:64"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate sets the ID and achievement time if not already set
func (h *Highscore) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.DateAchieved.IsZero() {
		h.DateAchieved = time.Now().UTC()
	}
	return nil
}

// HighscorePage is one page of the leaderboard
type HighscorePage struct {
	Entries    []Highscore
	TotalCount int64
	Limit      int
	Offset     int
}

// HasMore reports whether entries exist past this page
func (p HighscorePage) HasMore() bool {
	return int64(p.Offset+p.Limit) < p.TotalCount
}
