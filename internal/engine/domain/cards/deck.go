package cards

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Deck is an ordered pile of cards. Draw takes from the front.
type Deck struct {
	cards []Card
}

// NewCard builds an unenhanced card with a fresh id
func NewCard(suit Suit, rank Rank) Card {
	return Card{
		ID:           uuid.New().String(),
		Suit:         suit,
		Rank:         rank,
		Enhancements: []Enhancement{},
	}
}

// NewStandardDeck creates the 52 card deck, one card per suit and rank
func NewStandardDeck() *Deck {
	deck := &Deck{cards: make([]Card, 0, len(Suits)*len(Ranks))}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck.cards = append(deck.cards, NewCard(suit, rank))
		}
	}
	return deck
}

// NewDeck wraps existing cards. Duplicate ids are rejected.
func NewDeck(cards []Card) (*Deck, error) {
	deck := &Deck{cards: make([]Card, 0, len(cards))}
	if err := deck.Add(cards...); err != nil {
		return nil, err
	}
	return deck, nil
}

// Shuffle shuffles the deck in place using Fisher-Yates
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes up to n cards from the front of the deck. Asking for more cards
// than remain returns whatever is left.
func (d *Deck) Draw(n int) []Card {
	if n <= 0 || len(d.cards) == 0 {
		return nil
	}
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = append(d.cards[:0], d.cards[n:]...)
	return drawn
}

// Add appends cards to the bottom of the deck
func (d *Deck) Add(cards ...Card) error {
	for _, c := range cards {
		if c.ID == "" {
			return fmt.Errorf("card %s has no id", c)
		}
		if _, ok := d.index(c.ID); ok {
			return fmt.Errorf("duplicate card id %s", c.ID)
		}
		d.cards = append(d.cards, c)
	}
	return nil
}

// Remove takes the card with the given id out of the deck
func (d *Deck) Remove(id string) (Card, bool) {
	i, ok := d.index(id)
	if !ok {
		return Card{}, false
	}
	card := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return card, true
}

// Find returns a pointer into the deck so tarots can mutate a card in place
func (d *Deck) Find(id string) *Card {
	if i, ok := d.index(id); ok {
		return &d.cards[i]
	}
	return nil
}

// At returns a pointer to the i-th card
func (d *Deck) At(i int) *Card {
	if i < 0 || i >= len(d.cards) {
		return nil
	}
	return &d.cards[i]
}

// Cards returns a copy of the deck contents in draw order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	for i, c := range d.cards {
		out[i] = c.Clone()
	}
	return out
}

func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) index(id string) (int, bool) {
	for i := range d.cards {
		if d.cards[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
