package jokers

import (
	"encoding/json"
	"fmt"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/hands"
)

// Trigger says when a joker's effect is consulted
type Trigger string

const (
	OnPlay       Trigger = "ON_PLAY"
	OnDiscard    Trigger = "ON_DISCARD"
	OnHandPlayed Trigger = "ON_HAND_PLAYED"
	OnCardPlayed Trigger = "ON_CARD_PLAYED"
	OnScoreCalc  Trigger = "ON_SCORE_CALC"
	Passive      Trigger = "PASSIVE"
)

// Rarity drives shop odds and sell value
type Rarity string

const (
	Common    Rarity = "common"
	Uncommon  Rarity = "uncommon"
	Rare      Rarity = "rare"
	Legendary Rarity = "legendary"
)

// Rarities in roulette order
var Rarities = []Rarity{Common, Uncommon, Rare, Legendary}

// SellValue is the money returned when a joker of this rarity is sold
func (r Rarity) SellValue() int {
	switch r {
	case Common:
		return 2
	case Uncommon:
		return 5
	case Rare:
		return 8
	case Legendary:
		return 15
	}
	return 0
}

// GameState is the slice of run state a joker may look at
type GameState struct {
	NoLivesLostThisRound bool
}

// Context is everything an effect may inspect during one invocation
type Context struct {
	HandResult         *hands.Result
	PlayedCards        []cards.Card
	IsPlayingHand      bool
	IsScoreCalculation bool
	IsDiscarding       bool
	GameState          GameState
}

// Delta is the contribution of one or more jokers
type Delta struct {
	Chips      int            `json:"chips"`
	Multiplier int            `json:"multiplier"`
	Money      int            `json:"money"`
	Extra      map[string]int `json:"extra,omitempty"`
}

// Merge adds other into d
func (d *Delta) Merge(other Delta) {
	d.Chips += other.Chips
	d.Multiplier += other.Multiplier
	d.Money += other.Money
	for k, v := range other.Extra {
		if d.Extra == nil {
			d.Extra = make(map[string]int)
		}
		d.Extra[k] += v
	}
}

// Effect computes a joker's contribution for a context. Effects must treat
// missing context data as contributing nothing.
type Effect interface {
	Apply(ctx Context) Delta
}

// EffectFunc adapts a plain function to Effect
type EffectFunc func(ctx Context) Delta

func (f EffectFunc) Apply(ctx Context) Delta {
	return f(ctx)
}

// Stats accumulate over the joker's lifetime
type Stats struct {
	TimesTriggered       int `json:"timesTriggered"`
	TotalChipsAdded      int `json:"totalChipsAdded"`
	TotalMultiplierAdded int `json:"totalMultiplierAdded"`
	WheelActivations     int `json:"wheelActivations,omitempty"`
}

// Joker is an owned joker instance
type Joker struct {
	ID          string
	Name        string
	Description string
	Rarity      Rarity
	Level       int
	IsActive    bool
	Trigger     Trigger
	Stats       Stats

	effect Effect
}

// NewCustom builds a joker outside the registry. Custom jokers cannot be
// restored from a saved document.
func NewCustom(id, name string, rarity Rarity, trigger Trigger, effect Effect) *Joker {
	return &Joker{
		ID:       id,
		Name:     name,
		Rarity:   rarity,
		Level:    1,
		IsActive: true,
		Trigger:  trigger,
		effect:   effect,
	}
}

// Clone copies the joker, sharing its effect
func (j *Joker) Clone() *Joker {
	c := *j
	return &c
}

// SellValue of this joker
func (j *Joker) SellValue() int {
	return j.Rarity.SellValue()
}

// Eligible reports whether the joker's trigger matches the context
func (j *Joker) Eligible(ctx Context) bool {
	switch j.Trigger {
	case OnHandPlayed:
		return ctx.HandResult != nil
	case OnCardPlayed:
		return len(ctx.PlayedCards) > 0
	case OnScoreCalc:
		return ctx.IsScoreCalculation
	case Passive:
		return true
	case OnPlay:
		return ctx.IsPlayingHand
	case OnDiscard:
		return ctx.IsDiscarding
	}
	return false
}

// Calculate sums the effects of every active, eligible joker and records the
// invocation in each joker's stats
func Calculate(jokers []*Joker, ctx Context) Delta {
	var total Delta
	for _, j := range jokers {
		if j == nil || !j.IsActive || j.effect == nil || !j.Eligible(ctx) {
			continue
		}
		delta := j.effect.Apply(ctx)
		total.Merge(delta)

		j.Stats.TimesTriggered++
		j.Stats.TotalChipsAdded += delta.Chips
		j.Stats.TotalMultiplierAdded += delta.Multiplier
	}
	return total
}

type jokerJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Rarity      Rarity  `json:"rarity,omitempty"`
	Level       int     `json:"level"`
	IsActive    bool    `json:"isActive"`
	Trigger     Trigger `json:"trigger,omitempty"`
	Stats       Stats   `json:"stats"`
}

func (j *Joker) MarshalJSON() ([]byte, error) {
	return json.Marshal(jokerJSON{
		ID:          j.ID,
		Name:        j.Name,
		Description: j.Description,
		Rarity:      j.Rarity,
		Level:       j.Level,
		IsActive:    j.IsActive,
		Trigger:     j.Trigger,
		Stats:       j.Stats,
	})
}

// storedJoker accepts both the current "isActive" key and the older "is_active"
type storedJoker struct {
	ID             string `json:"id"`
	Level          int    `json:"level"`
	IsActive       *bool  `json:"isActive"`
	LegacyIsActive *bool  `json:"is_active"`
	Stats          Stats  `json:"stats"`
}

// UnmarshalJSON rebuilds the joker from the registry; only level, active flag
// and stats come from the document.
func (j *Joker) UnmarshalJSON(b []byte) error {
	var doc storedJoker
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	restored, err := New(doc.ID)
	if err != nil {
		return fmt.Errorf("restore joker: %w", err)
	}
	if doc.Level > 0 {
		restored.Level = doc.Level
	}
	switch {
	case doc.IsActive != nil:
		restored.IsActive = *doc.IsActive
	case doc.LegacyIsActive != nil:
		restored.IsActive = *doc.LegacyIsActive
	}
	restored.Stats = doc.Stats
	*j = *restored
	return nil
}
