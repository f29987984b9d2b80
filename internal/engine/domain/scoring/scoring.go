package scoring

import (
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/hands"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/jokers"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/planets"
)

// Result is the outcome of scoring one played hand
type Result struct {
	HandName   string         `json:"handName"`
	Chips      int            `json:"chips"`
	Multiplier int            `json:"multiplier"`
	TotalScore int64          `json:"totalScore"`
	Money      int            `json:"money"`
	Extra      map[string]int `json:"extra,omitempty"`
}

// Compute scores a hand assuming a flawless round
func Compute(hr *hands.Result, selected []cards.Card, owned []*jokers.Joker, levels planets.Levels) Result {
	return ComputeWithState(hr, selected, owned, levels, jokers.GameState{NoLivesLostThisRound: true})
}

// ComputeWithState runs the scoring pipeline:
//
//	base hand values, planet levels, every selected card's chips and
//	enhancement multipliers, then joker deltas, clamped to a multiplier of 1.
//
// Every selected card scores, not just the cards forming the hand.
func ComputeWithState(hr *hands.Result, selected []cards.Card, owned []*jokers.Joker, levels planets.Levels, state jokers.GameState) Result {
	if hr == nil {
		return Result{Multiplier: 1}
	}

	chips := hr.BaseChips
	mult := hr.BaseMultiplier

	planetChips, planetMult := planets.Bonus(levels, hr.Name())
	chips += planetChips
	mult += planetMult

	for _, c := range selected {
		chips += c.TotalChipValue()
		mult += c.MultiplierBonus()
	}

	delta := jokers.Calculate(owned, jokers.Context{
		HandResult:         hr,
		PlayedCards:        selected,
		IsPlayingHand:      true,
		IsScoreCalculation: true,
		GameState:          state,
	})
	chips += delta.Chips
	mult += delta.Multiplier

	if mult < 1 {
		mult = 1
	}

	return Result{
		HandName:   hr.Name(),
		Chips:      chips,
		Multiplier: mult,
		TotalScore: int64(chips) * int64(mult),
		Money:      delta.Money,
		Extra:      delta.Extra,
	}
}

// MoneyReward is the cash earned for a played hand of the given score
func MoneyReward(total int64) int {
	reward := 3
	if total > 100 {
		reward += 2
	}
	if total > 300 {
		reward += 3
	}
	return reward
}
