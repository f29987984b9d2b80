package game

import (
	"fmt"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/aggregates"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/jokers"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/planets"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/progression"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/shop"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/tarots"
	"github.com/google/uuid"
)

// Document is the saved form of a run
type Document struct {
	UserID               string          `json:"userId"`
	RunID                string          `json:"runId,omitempty"`
	Version              int64           `json:"version,omitempty"`
	Seed                 string          `json:"seed,omitempty"`
	CurrentScore         int64           `json:"currentScore"`
	TotalScore           int64           `json:"totalScore"`
	CurrentBlind         int             `json:"currentBlind"`
	CurrentAnte          int             `json:"currentAnte"`
	Money                int             `json:"money"`
	Lives                int             `json:"lives"`
	DiscardsLeft         int             `json:"discardsLeft"`
	HandsLeft            int             `json:"handsLeft"`
	BlindsCompleted      int             `json:"blindsCompleted"`
	NoLivesLostThisRound bool            `json:"noLivesLostThisRound"`
	DeckCards            []cards.Card    `json:"deckCards"`
	HandCards            []cards.Card    `json:"handCards"`
	DiscardPile          []cards.Card    `json:"discardPile,omitempty"`
	Jokers               []*jokers.Joker `json:"jokers"`
	JokersUsed           []string        `json:"jokersUsed,omitempty"`
	TarotCards           []string        `json:"tarotCards"`
	PlanetLevels         planets.Levels  `json:"planetLevels"`
	Shop                 []shop.Item     `json:"shop,omitempty"`
}

// Snapshot captures the run for saving
func (s *Session) Snapshot() Document {
	p := s.progress
	doc := Document{
		UserID:               s.UserID,
		RunID:                s.ID.String(),
		Version:              s.Version,
		Seed:                 s.Seed,
		CurrentScore:         p.CurrentScore,
		TotalScore:           p.TotalScore,
		CurrentBlind:         p.CurrentBlind,
		CurrentAnte:          p.CurrentAnte,
		Money:                p.Money,
		Lives:                p.Lives,
		DiscardsLeft:         p.DiscardsLeft,
		HandsLeft:            p.HandsLeft,
		BlindsCompleted:      p.BlindsCompleted,
		NoLivesLostThisRound: p.NoLivesLostThisRound,
		DeckCards:            s.deck.Cards(),
		HandCards:            s.Hand(),
		DiscardPile:          s.DiscardPile(),
		Jokers:               s.jokers.All(),
		JokersUsed:           s.JokersUsed(),
		TarotCards:           s.tarots.IDs(),
		PlanetLevels:         s.levels.Clone(),
		Shop:                 s.Shop(),
	}
	return doc
}

// Restore rebuilds a run from a saved document. A document without blind
// counters is treated as a fresh run.
func Restore(doc Document) (*Session, error) {
	var state *progression.State
	if doc.CurrentBlind == 0 {
		state = progression.New()
	} else {
		state = progression.Restore(progression.State{
			CurrentScore:         doc.CurrentScore,
			TotalScore:           doc.TotalScore,
			Money:                doc.Money,
			Lives:                doc.Lives,
			CurrentBlind:         doc.CurrentBlind,
			CurrentAnte:          doc.CurrentAnte,
			HandsLeft:            doc.HandsLeft,
			DiscardsLeft:         doc.DiscardsLeft,
			BlindsCompleted:      doc.BlindsCompleted,
			NoLivesLostThisRound: doc.NoLivesLostThisRound,
		})
	}

	runID := uuid.New()
	if doc.RunID != "" {
		parsed, err := uuid.Parse(doc.RunID)
		if err != nil {
			return nil, fmt.Errorf("invalid run id: %w", err)
		}
		runID = parsed
	}

	deck, err := cards.NewDeck(doc.DeckCards)
	if err != nil {
		return nil, fmt.Errorf("restore deck: %w", err)
	}
	// ids must be unique across deck, hand and discard pile
	owned, _ := cards.NewDeck(doc.DeckCards)
	if err := owned.Add(doc.HandCards...); err != nil {
		return nil, fmt.Errorf("restore hand: %w", err)
	}
	if err := owned.Add(doc.DiscardPile...); err != nil {
		return nil, fmt.Errorf("restore discard pile: %w", err)
	}
	if owned.Len() == 0 {
		deck = cards.NewStandardDeck()
	}

	inventory, err := tarots.FromIDs(doc.TarotCards)
	if err != nil {
		return nil, fmt.Errorf("restore tarots: %w", err)
	}

	collection := jokers.NewCollection()
	for _, j := range doc.Jokers {
		if j == nil {
			continue
		}
		if !collection.Add(j) {
			return nil, fmt.Errorf("restore jokers: more than %d jokers", jokers.MaxJokers)
		}
	}

	levels := planets.Levels{}
	for hand, level := range doc.PlanetLevels {
		if level > 0 {
			levels[hand] = level
		}
	}

	seed := doc.Seed
	if seed == "" {
		seed = runID.String()
	}

	s := &Session{
		AggregateRoot: aggregates.AggregateRoot{ID: runID, Version: doc.Version},
		UserID:        doc.UserID,
		Seed:          seed,
		deck:          deck,
		hand:          cloneCards(doc.HandCards),
		discardPile:   cloneCards(doc.DiscardPile),
		jokers:        collection,
		levels:        levels,
		tarots:        inventory,
		progress:      state,
		jokersUsed:    append([]string(nil), doc.JokersUsed...),
		rng:           newRand(seed, doc.Version),
	}
	if doc.Shop != nil {
		s.offer = append([]shop.Item(nil), doc.Shop...)
	}
	for _, j := range collection.All() {
		s.noteJokerUsed(j.ID)
	}
	if state.Phase == progression.BlindCompleted || state.Phase == progression.LifeLost {
		s.settle()
	}
	if len(s.hand) == 0 && !state.IsOver() {
		s.newRound()
	}
	return s, nil
}

// settle resolves the outcome a saved blind left pending and deals the next round
func (s *Session) settle() {
	bossBeaten := s.progress.Phase == progression.BlindCompleted && s.progress.BlindType == progression.Boss
	s.progress.SetExtraDiscards(s.jokers.PassiveExtra(jokers.ExtraDiscards))
	if _, err := s.progress.Resolve(); err != nil || s.progress.IsOver() {
		return
	}
	s.newRound()
	if bossBeaten && s.offer == nil {
		s.openShop()
	}
}
