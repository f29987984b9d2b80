package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type highscoreRequest struct {
	UserID     string   `json:"userId" validate:"required,user_id"`
	PlayerName string   `json:"playerName" validate:"required,max=50,player_name"`
	Score      int64    `json:"score" validate:"required,gt=0"`
	JokersUsed []string `json:"jokersUsed" validate:"max=3"`
}

func TestValidate_HighscoreRequest(t *testing.T) {
	tests := []struct {
		name      string
		request   highscoreRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:    "Valid request",
			request: highscoreRequest{UserID: "user_1", PlayerName: "Anonymous", Score: 1200},
		},
		{
			name:      "Missing user id",
			request:   highscoreRequest{PlayerName: "Anonymous", Score: 1200},
			wantError: true,
			errorMsg:  "userId is required",
		},
		{
			name:      "User id with spaces",
			request:   highscoreRequest{UserID: "user 1", PlayerName: "Anonymous", Score: 1200},
			wantError: true,
			errorMsg:  "userId must contain only letters, numbers, dashes, dots, and underscores",
		},
		{
			name:      "Blank player name",
			request:   highscoreRequest{UserID: "user_1", PlayerName: "   ", Score: 1200},
			wantError: true,
			errorMsg:  "playerName must not be blank or contain control characters",
		},
		{
			name:      "Player name with control characters",
			request:   highscoreRequest{UserID: "user_1", PlayerName: "bad\x07name", Score: 1200},
			wantError: true,
			errorMsg:  "playerName must not be blank or contain control characters",
		},
		{
			name:      "Player name too long",
			request:   highscoreRequest{UserID: "user_1", PlayerName: strings.Repeat("a", 51), Score: 1200},
			wantError: true,
			errorMsg:  "playerName must be at most 50 characters long",
		},
		{
			name:      "Zero score",
			request:   highscoreRequest{UserID: "user_1", PlayerName: "Anonymous"},
			wantError: true,
			errorMsg:  "score is required",
		},
		{
			name:      "Too many jokers",
			request:   highscoreRequest{UserID: "user_1", PlayerName: "A", Score: 1, JokersUsed: []string{"a", "b", "c", "d"}},
			wantError: true,
			errorMsg:  "jokersUsed must have at most 3 entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.request)
			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_MultipleErrorsAreJoined(t *testing.T) {
	err := Validate(highscoreRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "userId is required")
	assert.Contains(t, err.Error(), "playerName is required")
	assert.Contains(t, err.Error(), ", ")
}

func TestValidateUserID(t *testing.T) {
	assert.NoError(t, ValidateUserID("player-1.guest_2"))
	assert.NoError(t, ValidateUserID("0b8e2c1a-6f1e-4c39-9a51-0f7d7d1c2e11"))
	assert.Error(t, ValidateUserID(""))
	assert.Error(t, ValidateUserID("../etc"))
	assert.Error(t, ValidateUserID(strings.Repeat("a", 129)))
}

type resumeRequest struct {
	UserID      string   `json:"userId" validate:"required,uuid"`
	RecoveryKey string   `json:"recoveryKey" validate:"required,len=4"`
	Tags        []string `json:"tags" validate:"unique"`
	Token       string   `json:"token" validate:"omitempty,hexadecimal"`
}

func TestValidate_TagMessages(t *testing.T) {
	err := Validate(resumeRequest{UserID: "nope", RecoveryKey: "abc", Tags: []string{"a", "a"}, Token: "xyz"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "userId must be a valid UUID")
	assert.Contains(t, err.Error(), "recoveryKey must be exactly 4 characters long")
	assert.Contains(t, err.Error(), "tags contains duplicate entries")
	assert.Contains(t, err.Error(), "token must be hexadecimal")
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange(10, 1, 100, "limit"))
	err := ValidateRange(101, 1, 100, "limit")
	assert.EqualError(t, err, "limit must be between 1 and 100")
}
