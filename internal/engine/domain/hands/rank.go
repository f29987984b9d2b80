package hands

import (
	"fmt"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
)

// HandRank orders the poker hand categories, weakest first
type HandRank int

const (
	HighCard HandRank = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

type handInfo struct {
	name  string
	chips int
	mult  int
}

var handTable = map[HandRank]handInfo{
	RoyalFlush:    {"Royal Flush", 100, 8},
	StraightFlush: {"Straight Flush", 100, 8},
	FourOfAKind:   {"Four of a Kind", 60, 7},
	FullHouse:     {"Full House", 40, 4},
	Flush:         {"Flush", 35, 4},
	Straight:      {"Straight", 30, 4},
	ThreeOfAKind:  {"Three of a Kind", 30, 3},
	TwoPair:       {"Two Pair", 20, 2},
	Pair:          {"Pair", 10, 2},
	HighCard:      {"High Card", 5, 1},
}

// AllRanks lists every hand category from strongest to weakest
var AllRanks = []HandRank{
	RoyalFlush, StraightFlush, FourOfAKind, FullHouse, Flush,
	Straight, ThreeOfAKind, TwoPair, Pair, HighCard,
}

// Name is the display name, also used as the planet level key
func (h HandRank) Name() string {
	return handTable[h].name
}

func (h HandRank) BaseChips() int {
	return handTable[h].chips
}

func (h HandRank) BaseMultiplier() int {
	return handTable[h].mult
}

func (h HandRank) String() string {
	if name := h.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("HandRank(%d)", int(h))
}

// ParseHandRank looks a category up by display name
func ParseHandRank(name string) (HandRank, error) {
	for _, h := range AllRanks {
		if h.Name() == name {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown hand %q", name)
}

func (h HandRank) MarshalText() ([]byte, error) {
	if _, ok := handTable[h]; !ok {
		return nil, fmt.Errorf("unknown hand rank %d", int(h))
	}
	return []byte(h.Name()), nil
}

func (h *HandRank) UnmarshalText(b []byte) error {
	parsed, err := ParseHandRank(string(b))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Result is the evaluated hand: its category and the cards that form it
type Result struct {
	Rank           HandRank     `json:"handType"`
	Cards          []cards.Card `json:"cards"`
	BaseChips      int          `json:"baseChips"`
	BaseMultiplier int          `json:"baseMultiplier"`
	Description    string       `json:"description"`
}

// Name is shorthand for Rank.Name()
func (r *Result) Name() string {
	return r.Rank.Name()
}

// Compare orders results by category only. A nil result is weaker than any hand.
func Compare(a, b *Result) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Rank > b.Rank:
		return 1
	case a.Rank < b.Rank:
		return -1
	}
	return 0
}
