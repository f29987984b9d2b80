package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerState is the saved run of a single user. The scalar columns mirror
// the document so the table can be inspected without decoding it.
type PlayerState struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          string    `json:"user_id" gorm:"uniqueIndex;not null;size:128"`
	RunID           string    `json:"run_id" gorm:"size:36"`
	Seed            string    `json:"seed" gorm:"size:64"`
	CurrentScore    int64     `json:"current_score" gorm:"default:0"`
	TotalScore      int64     `json:"total_score" gorm:"default:0"`
	CurrentBlind    int       `json:"current_blind" gorm:"default:1"`
	CurrentAnte     int       `json:"current_ante" gorm:"default:1"`
	Money           int       `json:"money" gorm:"default:0"`
	Lives           int       `json:"lives" gorm:"default:0"`
	BlindsCompleted int       `json:"blinds_completed" gorm:"default:0"`
	Document        JSONB     `json:"document" gorm:"type:jsonb;not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate sets the ID if not already set
func (ps *PlayerState) BeforeCreate(tx *gorm.DB) error {
	if ps.ID == uuid.Nil {
		ps.ID = uuid.New()
	}
	return nil
}

// IsGameOver returns true if the saved run has no lives left
func (ps *PlayerState) IsGameOver() bool {
	return ps.Lives <= 0
}
