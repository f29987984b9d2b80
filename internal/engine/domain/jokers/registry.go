package jokers

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/hands"
)

var ErrUnknownJoker = errors.New("unknown joker")

// ExtraDiscards is the Extra key passive jokers use to grant discards
const ExtraDiscards = "extraDiscards"

// FallbackID is handed out when a rolled rarity has no jokers
const FallbackID = "red_card"

type definition struct {
	name        string
	description string
	rarity      Rarity
	trigger     Trigger
	effect      Effect
}

var registry = map[string]definition{
	"red_card": {
		name:        "Red Card",
		description: "+4 chips for each Heart or Diamond played",
		rarity:      Common,
		trigger:     OnCardPlayed,
		effect:      suitChips{suits: []cards.Suit{cards.Hearts, cards.Diamonds}, chips: 4},
	},
	"odd_todd": {
		name:        "Odd Todd",
		description: "+2 multiplier for each odd numbered card played (3, 5, 7, 9)",
		rarity:      Common,
		trigger:     OnCardPlayed,
		effect:      rankMult{ranks: []cards.Rank{cards.Three, cards.Five, cards.Seven, cards.Nine}, mult: 2},
	},
	"greedy_joker": {
		name:        "Greedy Joker",
		description: "+20 chips when the hand is a Flush",
		rarity:      Uncommon,
		trigger:     OnHandPlayed,
		effect:      handChips{hand: hands.Flush, chips: 20},
	},
	"fibonacci": {
		name:        "Fibonacci",
		description: "+3 multiplier for each 2, 3, 5 or 8 played",
		rarity:      Rare,
		trigger:     OnCardPlayed,
		effect:      rankMult{ranks: []cards.Rank{cards.Two, cards.Three, cards.Five, cards.Eight}, mult: 3},
	},
	"perfectionist": {
		name:        "Perfectionist",
		description: "+5 multiplier if no life has been lost this round",
		rarity:      Legendary,
		trigger:     OnScoreCalc,
		effect:      flawlessMult{mult: 5},
	},
	"juggler": {
		name:        "Juggler",
		description: "+1 discard each blind",
		rarity:      Common,
		trigger:     Passive,
		effect:      extraGrant{key: ExtraDiscards, amount: 1},
	},
}

// New builds a fresh level 1 active joker
func New(id string) (*Joker, error) {
	def, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJoker, id)
	}
	return &Joker{
		ID:          id,
		Name:        def.name,
		Description: def.description,
		Rarity:      def.rarity,
		Level:       1,
		IsActive:    true,
		Trigger:     def.trigger,
		effect:      def.effect,
	}, nil
}

// IDs returns every registered joker id, sorted
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IDsByRarity returns the sorted ids of one rarity bucket
func IDsByRarity(r Rarity) []string {
	var ids []string
	for _, id := range IDs() {
		if registry[id].rarity == r {
			ids = append(ids, id)
		}
	}
	return ids
}

// RarityWeights are relative odds per rarity
type RarityWeights map[Rarity]int

var DefaultRarityWeights = RarityWeights{
	Common:    60,
	Uncommon:  25,
	Rare:      12,
	Legendary: 3,
}

// Random rolls a rarity by weight, then picks uniformly inside that bucket.
// An empty bucket yields the fallback joker.
func Random(rng *rand.Rand, weights RarityWeights) *Joker {
	if weights == nil {
		weights = DefaultRarityWeights
	}
	rarity := rollRarity(rng, weights)

	id := FallbackID
	if bucket := IDsByRarity(rarity); len(bucket) > 0 {
		id = bucket[rng.Intn(len(bucket))]
	}
	j, _ := New(id)
	return j
}

func rollRarity(rng *rand.Rand, weights RarityWeights) Rarity {
	total := 0
	for _, r := range Rarities {
		if w := weights[r]; w > 0 {
			total += w
		}
	}
	if total == 0 {
		return Common
	}
	roll := rng.Intn(total)
	for _, r := range Rarities {
		w := weights[r]
		if w <= 0 {
			continue
		}
		if roll < w {
			return r
		}
		roll -= w
	}
	return Common
}
