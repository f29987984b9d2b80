package dto

import (
	"encoding/json"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/game"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/jokers"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/planets"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/progression"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/shop"
)

// GameState is the saved-run document exchanged with the persistence API.
// Keys missing from a decoded document take the values of a fresh run.
type GameState struct {
	UserID               string          `json:"userId" validate:"required,user_id"`
	RunID                string          `json:"runId,omitempty" validate:"omitempty,uuid"`
	Version              int64           `json:"version,omitempty" validate:"gte=0"`
	Seed                 string          `json:"seed,omitempty" validate:"max=64"`
	CurrentScore         int64           `json:"currentScore" validate:"gte=0"`
	TotalScore           int64           `json:"totalScore" validate:"gte=0"`
	CurrentBlind         int             `json:"currentBlind" validate:"gte=0"`
	CurrentAnte          int             `json:"currentAnte" validate:"gte=0"`
	Money                int             `json:"money" validate:"gte=0"`
	Lives                int             `json:"lives" validate:"gte=0,lte=3"`
	DiscardsLeft         int             `json:"discardsLeft" validate:"gte=0"`
	HandsLeft            int             `json:"handsLeft" validate:"gte=0"`
	BlindsCompleted      int             `json:"blindsCompleted" validate:"gte=0"`
	NoLivesLostThisRound bool            `json:"noLivesLostThisRound"`
	DeckCards            []cards.Card    `json:"deckCards" validate:"max=256"`
	HandCards            []cards.Card    `json:"handCards" validate:"max=64"`
	DiscardPile          []cards.Card    `json:"discardPile,omitempty" validate:"max=256"`
	Jokers               []*jokers.Joker `json:"jokers" validate:"max=5"`
	JokersUsed           []string        `json:"jokersUsed,omitempty"`
	TarotCards           []string        `json:"tarotCards"`
	PlanetLevels         planets.Levels  `json:"planetLevels"`
	Shop                 []shop.Item     `json:"shop,omitempty"`
}

// NewGameState returns the document of a run that has not started yet
func NewGameState(userID string) GameState {
	return GameState{
		UserID:               userID,
		CurrentBlind:         1,
		CurrentAnte:          1,
		Money:                progression.StartingMoney,
		Lives:                progression.StartingLives,
		DiscardsLeft:         progression.DiscardsPerBlind,
		HandsLeft:            progression.HandsPerBlind,
		NoLivesLostThisRound: true,
		DeckCards:            []cards.Card{},
		HandCards:            []cards.Card{},
		Jokers:               []*jokers.Joker{},
		TarotCards:           []string{},
		PlanetLevels:         planets.Levels{},
	}
}

func (g *GameState) UnmarshalJSON(data []byte) error {
	type plain GameState
	decoded := plain(NewGameState(""))
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*g = GameState(decoded)
	return nil
}

// Document converts the API form into the engine's saved-run form
func (g GameState) Document() game.Document {
	return game.Document{
		UserID:               g.UserID,
		RunID:                g.RunID,
		Version:              g.Version,
		Seed:                 g.Seed,
		CurrentScore:         g.CurrentScore,
		TotalScore:           g.TotalScore,
		CurrentBlind:         g.CurrentBlind,
		CurrentAnte:          g.CurrentAnte,
		Money:                g.Money,
		Lives:                g.Lives,
		DiscardsLeft:         g.DiscardsLeft,
		HandsLeft:            g.HandsLeft,
		BlindsCompleted:      g.BlindsCompleted,
		NoLivesLostThisRound: g.NoLivesLostThisRound,
		DeckCards:            g.DeckCards,
		HandCards:            g.HandCards,
		DiscardPile:          g.DiscardPile,
		Jokers:               g.Jokers,
		JokersUsed:           g.JokersUsed,
		TarotCards:           g.TarotCards,
		PlanetLevels:         g.PlanetLevels,
		Shop:                 g.Shop,
	}
}

// GameStateFromDocument converts an engine snapshot into the API form
func GameStateFromDocument(doc game.Document) GameState {
	return GameState{
		UserID:               doc.UserID,
		RunID:                doc.RunID,
		Version:              doc.Version,
		Seed:                 doc.Seed,
		CurrentScore:         doc.CurrentScore,
		TotalScore:           doc.TotalScore,
		CurrentBlind:         doc.CurrentBlind,
		CurrentAnte:          doc.CurrentAnte,
		Money:                doc.Money,
		Lives:                doc.Lives,
		DiscardsLeft:         doc.DiscardsLeft,
		HandsLeft:            doc.HandsLeft,
		BlindsCompleted:      doc.BlindsCompleted,
		NoLivesLostThisRound: doc.NoLivesLostThisRound,
		DeckCards:            doc.DeckCards,
		HandCards:            doc.HandCards,
		DiscardPile:          doc.DiscardPile,
		Jokers:               doc.Jokers,
		JokersUsed:           doc.JokersUsed,
		TarotCards:           doc.TarotCards,
		PlanetLevels:         doc.PlanetLevels,
		Shop:                 doc.Shop,
	}
}
