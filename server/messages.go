package server

import (
	"github.com/anhbaysgalan1/balatro/internal/application/dto"
)

// inbound (client) actions
const (
	actionNewGame         string = "new-game"
	actionPlayHand        string = "play-hand"
	actionDiscard         string = "discard"
	actionPreviewHand     string = "preview-hand"
	actionUseTarot        string = "use-tarot"
	actionBuyItem         string = "buy-item"
	actionSellJoker       string = "sell-joker"
	actionToggleJoker     string = "toggle-joker"
	actionRerollShop      string = "reroll-shop"
	actionLeaveShop       string = "leave-shop"
	actionSaveGame        string = "save-game"
	actionLoadGame        string = "load-game"
	actionSubmitHighscore string = "submit-highscore"
	actionRunHistory      string = "run-history"
)

type base struct {
	// allows for correctly identifying messages
	Action string `json:"action"`
}

type newGame struct {
	base // actionNewGame
	dto.NewGameCommand
}

type selectCards struct {
	base             // actionPlayHand, actionDiscard, actionPreviewHand
	CardIDs []string `json:"cardIds"`
}

type useTarot struct {
	base // actionUseTarot
	dto.UseTarotCommand
}

type slotAction struct {
	base      // actionBuyItem, actionSellJoker, actionToggleJoker
	Index int `json:"index"`
}

type submitHighscore struct {
	base // actionSubmitHighscore
	dto.SubmitHighscoreCommand
}

// outbound (server) actions
const (
	actionUpdateGame         string = "update-game"
	actionHandResult         string = "hand-result"
	actionHandPreview        string = "hand-preview"
	actionPurchase           string = "purchase"
	actionGameSaved          string = "game-saved"
	actionHighscoreSaved     string = "highscore-saved"
	actionLeaderboardUpdated string = "leaderboard-updated"
	actionRunEvents          string = "run-events"
	actionError              string = "error"
)

type updateGame struct {
	base               // actionUpdateGame
	Game *dto.GameView `json:"game"`
}

type handResult struct {
	base                       // actionHandResult
	Result *dto.HandResultView `json:"result"`
	Game   *dto.GameView       `json:"game"`
}

type handPreview struct {
	base                         // actionHandPreview
	Preview *dto.HandPreviewView `json:"preview"`
}

type purchase struct {
	base                       // actionPurchase
	Purchase *dto.PurchaseView `json:"purchase"`
	Game     *dto.GameView     `json:"game"`
}

type gameSaved struct {
	base                            // actionGameSaved
	Result *dto.SaveGameStateResult `json:"result"`
}

type highscoreSaved struct {
	base                             // actionHighscoreSaved
	Result dto.CreateHighscoreResult `json:"result"`
}

type leaderboardUpdated struct {
	base              // actionLeaderboardUpdated
	PlayerName string `json:"playerName"`
	Score      int64  `json:"score"`
}

type runEvents struct {
	base                      // actionRunEvents
	Events []dto.RunEventView `json:"events"`
}

type errorMessage struct {
	base           // actionError
	Message string `json:"message"`
	Time    string `json:"time"`
}
