package game

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/aggregates"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/events"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/jokers"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/planets"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/progression"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/shop"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/tarots"
	"github.com/google/uuid"
)

const (
	// HandSize is how many cards the player holds
	HandSize = 8
	// MaxSelection is the most cards a hand or discard may use
	MaxSelection = 5
)

var (
	ErrInvalidSelection = errors.New("invalid card selection")
	ErrNoSuchJoker      = errors.New("no joker at index")
	ErrNoSuchCard       = errors.New("card not found")
)

// Session is one run: deck, hand, jokers, consumables and progression.
// A Session is not safe for concurrent use; one goroutine owns it.
type Session struct {
	aggregates.AggregateRoot

	UserID string
	Seed   string

	deck        *cards.Deck
	hand        []cards.Card
	discardPile []cards.Card
	jokers      *jokers.Collection
	levels      planets.Levels
	tarots      *tarots.Inventory
	progress    *progression.State
	offer       []shop.Item
	jokersUsed  []string

	rng *rand.Rand
}

// NewSession deals a fresh run. An empty seed gets a random one.
func NewSession(userID, seed string) *Session {
	if seed == "" {
		seed = uuid.New().String()
	}
	s := &Session{
		AggregateRoot: aggregates.AggregateRoot{ID: uuid.New()},
		UserID:        userID,
		Seed:          seed,
		deck:          cards.NewStandardDeck(),
		jokers:        jokers.NewCollection(),
		levels:        planets.Levels{},
		tarots:        &tarots.Inventory{},
		progress:      progression.New(),
	}
	s.rng = newRand(seed, 0)
	s.deck.Shuffle(s.rng)
	s.hand = s.deck.Draw(HandSize)
	s.ApplyChange(events.NewRunStarted(s.ID, userID, seed, s.NextVersion()))
	return s
}

func newRand(seed string, version int64) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d", seed, version)
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// Hand returns the held cards in order
func (s *Session) Hand() []cards.Card {
	return cloneCards(s.hand)
}

// DeckCards returns the undrawn cards in draw order
func (s *Session) DeckCards() []cards.Card {
	return s.deck.Cards()
}

// DeckSize is the number of undrawn cards
func (s *Session) DeckSize() int {
	return s.deck.Len()
}

// DiscardPile returns the cards played or discarded this round
func (s *Session) DiscardPile() []cards.Card {
	return cloneCards(s.discardPile)
}

// Jokers returns the owned jokers in slot order
func (s *Session) Jokers() []*jokers.Joker {
	return s.jokers.All()
}

// PlanetLevels returns a copy of the hand levels
func (s *Session) PlanetLevels() planets.Levels {
	return s.levels.Clone()
}

// Tarots returns the held tarot ids
func (s *Session) Tarots() []string {
	return s.tarots.IDs()
}

// TarotCards returns the held tarots in inventory order
func (s *Session) TarotCards() []tarots.Tarot {
	out := make([]tarots.Tarot, 0, s.tarots.Len())
	for i := 0; i < s.tarots.Len(); i++ {
		out = append(out, s.tarots.At(i))
	}
	return out
}

// Progress returns a copy of the progression state
func (s *Session) Progress() progression.State {
	return *s.progress
}

// JokersUsed lists every joker id owned during the run, first acquisition first
func (s *Session) JokersUsed() []string {
	return append([]string(nil), s.jokersUsed...)
}

// IsOver reports a finished run
func (s *Session) IsOver() bool {
	return s.progress.IsOver()
}

// selection resolves ids against the hand and enforces the play rules:
// one to five distinct held cards
func (s *Session) selection(ids []string) ([]cards.Card, error) {
	if len(ids) == 0 || len(ids) > MaxSelection {
		return nil, fmt.Errorf("%w: %d cards selected, want 1-%d", ErrInvalidSelection, len(ids), MaxSelection)
	}
	seen := make(map[string]bool, len(ids))
	selected := make([]cards.Card, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: card %s selected twice", ErrInvalidSelection, id)
		}
		seen[id] = true
		i := s.handIndex(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: card %s is not in hand", ErrInvalidSelection, id)
		}
		selected = append(selected, s.hand[i].Clone())
	}
	return selected, nil
}

func (s *Session) handIndex(id string) int {
	for i := range s.hand {
		if s.hand[i].ID == id {
			return i
		}
	}
	return -1
}

// takeFromHand removes the given ids from the hand
func (s *Session) takeFromHand(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.hand[:0]
	for _, c := range s.hand {
		if !drop[c.ID] {
			kept = append(kept, c)
		}
	}
	s.hand = kept
}

// DrawHand draws up to n cards from the deck into the hand and returns them.
// A short deck yields fewer cards.
func (s *Session) DrawHand(n int) []cards.Card {
	drawn := s.deck.Draw(n)
	s.hand = append(s.hand, drawn...)
	return cloneCards(drawn)
}

func (s *Session) refillHand() []cards.Card {
	return s.DrawHand(HandSize - len(s.hand))
}

// newRound gathers every owned card back into a reshuffled deck and deals a new hand
func (s *Session) newRound() {
	owned := append(s.deck.Cards(), s.hand...)
	owned = append(owned, s.discardPile...)
	deck, err := cards.NewDeck(owned)
	if err != nil {
		// ids are unique by construction; keep the current deck if not
		return
	}
	s.deck = deck
	s.deck.Shuffle(s.rng)
	s.hand = s.deck.Draw(HandSize)
	s.discardPile = nil
}

func (s *Session) gameState() jokers.GameState {
	return jokers.GameState{NoLivesLostThisRound: s.progress.NoLivesLostThisRound}
}

func cloneCards(in []cards.Card) []cards.Card {
	out := make([]cards.Card, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
