package hands

import (
	"fmt"
	"strings"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/paulhankin/poker"
)

func describe(rank HandRank, constituent []cards.Card) string {
	if len(constituent) == 5 {
		if text, err := describeFive(constituent); err == nil && text != "" {
			return text
		}
	}

	labels := make([]string, len(constituent))
	for i, c := range constituent {
		labels[i] = c.Rank.String() + c.Suit.Symbol()
	}
	return fmt.Sprintf("%s (%s)", strings.ToLower(rank.Name()), strings.Join(labels, " "))
}

// describeFive hands a five card hand to the poker library for a textual
// description. Repeated suit/rank pairs (possible after tarot mutation) are
// not representable there and are reported as an error.
func describeFive(constituent []cards.Card) (string, error) {
	seen := make(map[poker.Card]bool, 5)
	pc := make([]poker.Card, 0, 5)
	for _, c := range constituent {
		card, err := toPokerCard(c)
		if err != nil {
			return "", err
		}
		if seen[card] {
			return "", fmt.Errorf("repeated card %s", c)
		}
		seen[card] = true
		pc = append(pc, card)
	}
	return poker.Describe(pc)
}

func toPokerCard(c cards.Card) (poker.Card, error) {
	var zero poker.Card
	var suit int
	switch c.Suit {
	case cards.Clubs:
		suit = 0
	case cards.Diamonds:
		suit = 1
	case cards.Hearts:
		suit = 2
	case cards.Spades:
		suit = 3
	default:
		return zero, fmt.Errorf("unknown suit %q", c.Suit)
	}

	rank := c.Rank.Value()
	if c.Rank == cards.Ace {
		rank = 1
	}
	return poker.MakeCard(poker.Suit(suit), poker.Rank(rank))
}
