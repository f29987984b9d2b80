package jokers

import (
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/hands"
)

// suitChips adds chips for every played card of the listed suits
type suitChips struct {
	suits []cards.Suit
	chips int
}

func (e suitChips) Apply(ctx Context) Delta {
	var d Delta
	for _, c := range ctx.PlayedCards {
		for _, s := range e.suits {
			if c.Suit == s {
				d.Chips += e.chips
				break
			}
		}
	}
	return d
}

// rankMult adds multiplier for every played card of the listed ranks
type rankMult struct {
	ranks []cards.Rank
	mult  int
}

func (e rankMult) Apply(ctx Context) Delta {
	var d Delta
	for _, c := range ctx.PlayedCards {
		for _, r := range e.ranks {
			if c.Rank == r {
				d.Multiplier += e.mult
				break
			}
		}
	}
	return d
}

// handChips adds chips when the evaluated hand is of one category
type handChips struct {
	hand  hands.HandRank
	chips int
}

func (e handChips) Apply(ctx Context) Delta {
	if ctx.HandResult == nil || ctx.HandResult.Rank != e.hand {
		return Delta{}
	}
	return Delta{Chips: e.chips}
}

// flawlessMult adds multiplier while the round is still flawless
type flawlessMult struct {
	mult int
}

func (e flawlessMult) Apply(ctx Context) Delta {
	if !ctx.GameState.NoLivesLostThisRound {
		return Delta{}
	}
	return Delta{Multiplier: e.mult}
}

// extraGrant reports a standing bonus through the Extra map
type extraGrant struct {
	key    string
	amount int
}

func (e extraGrant) Apply(Context) Delta {
	return Delta{Extra: map[string]int{e.key: e.amount}}
}
