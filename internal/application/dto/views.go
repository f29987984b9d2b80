package dto

import (
	"time"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/jokers"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/planets"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/progression"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/shop"
)

// Views for queries
type GameView struct {
	RunID           string            `json:"runId"`
	UserID          string            `json:"userId"`
	Seed            string            `json:"seed"`
	Progress        progression.State `json:"progress"`
	Hand            []cards.Card      `json:"hand"`
	DeckSize        int               `json:"deckSize"`
	DiscardPileSize int               `json:"discardPileSize"`
	Jokers          []*jokers.Joker   `json:"jokers"`
	Tarots          []TarotView       `json:"tarots"`
	PlanetLevels    planets.Levels    `json:"planetLevels"`
	ShopOpen        bool              `json:"shopOpen"`
	Shop            []shop.Item       `json:"shop,omitempty"`
	IsOver          bool              `json:"isOver"`
}

type TarotView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	RequiresTarget bool   `json:"requiresTarget"`
}

type HandResultView struct {
	HandType    string            `json:"handType"`
	Description string            `json:"description"`
	Cards       []cards.Card      `json:"cards"`
	Chips       int               `json:"chips"`
	Multiplier  int               `json:"multiplier"`
	TotalScore  int64             `json:"totalScore"`
	MoneyEarned int               `json:"moneyEarned"`
	Outcome     progression.Phase `json:"outcome"`
	Destroyed   []cards.Card      `json:"destroyed,omitempty"`
	ShopOpened  bool              `json:"shopOpened"`
}

type HandPreviewView struct {
	HandType    string       `json:"handType"`
	Description string       `json:"description"`
	Cards       []cards.Card `json:"cards"`
	Chips       int          `json:"chips"`
	Multiplier  int          `json:"multiplier"`
	TotalScore  int64        `json:"totalScore"`
}

type PurchaseView struct {
	Item    shop.Item   `json:"item"`
	Granted []shop.Item `json:"granted"`
	Dropped []shop.Item `json:"dropped,omitempty"`
}

// RunEventView is one entry of a run's history
type RunEventView struct {
	Type      string      `json:"type"`
	Version   int64       `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}
