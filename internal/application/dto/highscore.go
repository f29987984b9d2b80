package dto

import (
	"time"

	"github.com/anhbaysgalan1/balatro/internal/models"
)

const (
	DefaultHighscoreLimit = 10
	MaxHighscoreLimit     = 100
)

type CreateHighscoreRequest struct {
	UserID     string   `json:"userId" validate:"required,user_id"`
	PlayerName string   `json:"playerName" validate:"required,max=50,player_name"`
	Score      int64    `json:"score" validate:"required,gt=0"`
	FinalBlind int      `json:"finalBlind" validate:"gte=0"`
	JokersUsed []string `json:"jokersUsed" validate:"max=64,dive,max=64"`
	Seed       string   `json:"seed" validate:"max=64"`
}

// Highscore is the API view of a stored highscore
type Highscore struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	PlayerName   string    `json:"playerName"`
	Score        int64     `json:"score"`
	DateAchieved time.Time `json:"dateAchieved"`
	FinalBlind   int       `json:"finalBlind"`
	JokersUsed   []string  `json:"jokersUsed"`
	Seed         string    `json:"seed"`
}

type CreateHighscoreResult struct {
	InsertedID string `json:"insertedId"`
	Score      int64  `json:"score"`
}

type HighscoreList struct {
	Highscores []Highscore `json:"highscores"`
	TotalCount int64       `json:"totalCount"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
	HasMore    bool        `json:"hasMore"`
}

type UserHighscore struct {
	Highscore Highscore `json:"highscore"`
	Rank      int64     `json:"rank"`
}

// HighscoreFromModel converts a stored highscore
func HighscoreFromModel(h models.Highscore) Highscore {
	jokersUsed := []string(h.JokersUsed)
	if jokersUsed == nil {
		jokersUsed = []string{}
	}
	return Highscore{
		ID:           h.ID.String(),
		UserID:       h.UserID,
		PlayerName:   h.PlayerName,
		Score:        h.Score,
		DateAchieved: h.DateAchieved,
		FinalBlind:   h.FinalBlind,
		JokersUsed:   jokersUsed,
		Seed:         h.Seed,
	}
}

// HighscoreListFromPage converts a leaderboard page
func HighscoreListFromPage(page *models.HighscorePage) HighscoreList {
	list := HighscoreList{
		Highscores: make([]Highscore, 0, len(page.Entries)),
		TotalCount: page.TotalCount,
		Limit:      page.Limit,
		Offset:     page.Offset,
		HasMore:    page.HasMore(),
	}
	for _, h := range page.Entries {
		list.Highscores = append(list.Highscores, HighscoreFromModel(h))
	}
	return list
}
