package cards

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Suit is one of the four French suits
type Suit string

const (
	Spades   Suit = "SPADES"
	Hearts   Suit = "HEARTS"
	Diamonds Suit = "DIAMONDS"
	Clubs    Suit = "CLUBS"
)

// Suits lists every suit in canonical order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Valid reports whether s is a known suit
func (s Suit) Valid() bool {
	switch s {
	case Spades, Hearts, Diamonds, Clubs:
		return true
	}
	return false
}

// Symbol returns the unicode glyph for the suit
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	}
	return "?"
}

// Rank is a card rank. The numeric value doubles as the ordering value (ACE high).
type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Ranks lists every rank from TWO to ACE
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Valid reports whether r is a known rank
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Value is the ordering value used by the hand evaluator (2..14)
func (r Rank) Value() int {
	return int(r)
}

// ChipValue is the number of chips the rank contributes when scored
func (r Rank) ChipValue() int {
	switch {
	case r == Ace:
		return 11
	case r >= Jack:
		return 10
	case r.Valid():
		return int(r)
	}
	return 0
}

// Next returns the following rank, wrapping ACE back to TWO
func (r Rank) Next() Rank {
	if r >= Ace {
		return Two
	}
	return r + 1
}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "JACK"
	case Queen:
		return "QUEEN"
	case King:
		return "KING"
	case Ace:
		return "ACE"
	}
	return strconv.Itoa(int(r))
}

// short is the one or two character label used in card strings
func (r Rank) short() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	return strconv.Itoa(int(r))
}

// ParseRank converts "2".."10", "JACK", "QUEEN", "KING", "ACE" into a Rank
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "JACK", "J":
		return Jack, nil
	case "QUEEN", "Q":
		return Queen, nil
	case "KING", "K":
		return King, nil
	case "ACE", "A":
		return Ace, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !Rank(n).Valid() || Rank(n) > Ten {
		return 0, fmt.Errorf("unknown rank %q", s)
	}
	return Rank(n), nil
}

func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown rank %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Rank) UnmarshalText(b []byte) error {
	parsed, err := ParseRank(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Card is a single playing card. Cards are identified by ID, never by suit and rank.
type Card struct {
	ID           string        `json:"id"`
	Suit         Suit          `json:"suit"`
	Rank         Rank          `json:"rank"`
	Enhancements []Enhancement `json:"enhancements"`
}

// HasEnhancement reports whether the card carries e
func (c Card) HasEnhancement(e Enhancement) bool {
	for _, have := range c.Enhancements {
		if have == e {
			return true
		}
	}
	return false
}

// AddEnhancement attaches e to the card. Returns false if it was already present.
func (c *Card) AddEnhancement(e Enhancement) bool {
	if c.HasEnhancement(e) {
		return false
	}
	c.Enhancements = append(c.Enhancements, e)
	return true
}

// RemoveEnhancement detaches e. Returns false if the card did not carry it.
func (c *Card) RemoveEnhancement(e Enhancement) bool {
	for i, have := range c.Enhancements {
		if have == e {
			c.Enhancements = append(c.Enhancements[:i], c.Enhancements[i+1:]...)
			return true
		}
	}
	return false
}

// BaseChipValue is the chip value of the rank alone
func (c Card) BaseChipValue() int {
	return c.Rank.ChipValue()
}

// OrderValue is the evaluator ordering value of the rank
func (c Card) OrderValue() int {
	return c.Rank.Value()
}

// TotalChipValue is the rank chip value plus every enhancement chip bonus
func (c Card) TotalChipValue() int {
	total := c.BaseChipValue()
	for _, e := range c.Enhancements {
		total += e.ChipBonus()
	}
	return total
}

// MultiplierBonus sums the multiplier contribution of every enhancement
func (c Card) MultiplierBonus() int {
	total := 0
	for _, e := range c.Enhancements {
		total += e.MultiplierBonus()
	}
	return total
}

// IsPlayable is false for STONE cards
func (c Card) IsPlayable() bool {
	return !c.HasEnhancement(Stone)
}

// IsWild reports a WILD enhancement
func (c Card) IsWild() bool {
	return c.HasEnhancement(Wild)
}

// ShouldBreak rolls the GLASS destruction chance for a card that has just been played
func (c Card) ShouldBreak(rng *rand.Rand) bool {
	if !c.HasEnhancement(Glass) || rng == nil {
		return false
	}
	return rng.Float64() < GlassBreakChance
}

// Clone returns a copy that does not share the enhancement slice
func (c Card) Clone() Card {
	out := c
	if c.Enhancements != nil {
		out.Enhancements = make([]Enhancement, len(c.Enhancements))
		copy(out.Enhancements, c.Enhancements)
	}
	return out
}

func (c Card) String() string {
	s := c.Rank.short() + c.Suit.Symbol()
	if len(c.Enhancements) == 0 {
		return s
	}
	names := make([]string, len(c.Enhancements))
	for i, e := range c.Enhancements {
		names[i] = string(e)
	}
	return s + " [" + strings.Join(names, ",") + "]"
}

// wireCard mirrors Card on the wire. Documents written by older clients use
// "value" instead of "rank".
type wireCard struct {
	ID           string        `json:"id"`
	Suit         Suit          `json:"suit"`
	Rank         *Rank         `json:"rank,omitempty"`
	Value        *Rank         `json:"value,omitempty"`
	Enhancements []Enhancement `json:"enhancements"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	rank := c.Rank
	enh := c.Enhancements
	if enh == nil {
		enh = []Enhancement{}
	}
	return json.Marshal(wireCard{ID: c.ID, Suit: c.Suit, Rank: &rank, Enhancements: enh})
}

func (c *Card) UnmarshalJSON(b []byte) error {
	var w wireCard
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	rank := w.Rank
	if rank == nil {
		rank = w.Value
	}
	if rank == nil {
		return fmt.Errorf("card %q: missing rank", w.ID)
	}
	if !w.Suit.Valid() {
		return fmt.Errorf("card %q: unknown suit %q", w.ID, w.Suit)
	}
	seen := make(map[Enhancement]bool, len(w.Enhancements))
	for _, e := range w.Enhancements {
		if !e.Valid() {
			return fmt.Errorf("card %q: unknown enhancement %q", w.ID, e)
		}
		if seen[e] {
			return fmt.Errorf("card %q: duplicate enhancement %q", w.ID, e)
		}
		seen[e] = true
	}
	*c = Card{ID: w.ID, Suit: w.Suit, Rank: *rank, Enhancements: w.Enhancements}
	return nil
}
