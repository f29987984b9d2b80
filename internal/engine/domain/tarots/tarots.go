package tarots

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sort"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/jokers"
)

var (
	ErrUnknownTarot = errors.New("unknown tarot")
	ErrNoSuchTarot  = errors.New("no tarot at index")
)

// Context is what a tarot may touch when used
type Context struct {
	Deck   *cards.Deck
	Hand   *[]cards.Card
	Target *cards.Card
	Jokers *jokers.Collection
	Rand   *rand.Rand
}

// Tarot is a one shot card. Apply returns false when nothing happened.
type Tarot interface {
	ID() string
	Name() string
	Description() string
	RequiresTarget() bool
	Apply(ctx *Context) bool
}

type base struct {
	id, name, description string
	target                bool
}

func (b base) ID() string           { return b.id }
func (b base) Name() string         { return b.name }
func (b base) Description() string  { return b.description }
func (b base) RequiresTarget() bool { return b.target }

type fool struct{ base }

func (fool) Apply(ctx *Context) bool {
	if ctx.Target == nil || ctx.Rand == nil {
		return false
	}
	ctx.Target.Suit = cards.Suits[ctx.Rand.Intn(len(cards.Suits))]
	return true
}

type magician struct{ base }

func (magician) Apply(ctx *Context) bool {
	if ctx.Target == nil {
		return false
	}
	ctx.Target.Rank = ctx.Target.Rank.Next()
	return true
}

type hermit struct{ base }

// Apply removes the target from the deck or the hand by id. Only a target whose
// id is owned nowhere falls back to the first deck card with the same suit and rank.
func (hermit) Apply(ctx *Context) bool {
	if ctx.Target == nil {
		return false
	}
	id := ctx.Target.ID
	if ctx.Deck != nil {
		if _, ok := ctx.Deck.Remove(id); ok {
			return true
		}
	}
	if ctx.Hand != nil {
		if i := slices.IndexFunc(*ctx.Hand, func(c cards.Card) bool { return c.ID == id }); i >= 0 {
			*ctx.Hand = slices.Delete(*ctx.Hand, i, i+1)
			return true
		}
	}
	if ctx.Deck == nil {
		return false
	}
	for _, c := range ctx.Deck.Cards() {
		if c.Suit == ctx.Target.Suit && c.Rank == ctx.Target.Rank {
			_, ok := ctx.Deck.Remove(c.ID)
			return ok
		}
	}
	return false
}

type strength struct{ base }

func (strength) Apply(ctx *Context) bool {
	if ctx.Target == nil {
		return false
	}
	return ctx.Target.AddEnhancement(cards.Steel)
}

type emperor struct{ base }

func (emperor) Apply(ctx *Context) bool {
	if ctx.Deck == nil {
		return false
	}
	enhanced := 0
	for i := 0; i < ctx.Deck.Len(); i++ {
		if ctx.Deck.At(i).AddEnhancement(cards.BonusChip1) {
			enhanced++
		}
	}
	return enhanced > 0
}

type wheel struct{ base }

func (wheel) Apply(ctx *Context) bool {
	if ctx.Jokers == nil || ctx.Jokers.Len() == 0 || ctx.Rand == nil {
		return false
	}
	ctx.Jokers.At(ctx.Rand.Intn(ctx.Jokers.Len())).Stats.WheelActivations++
	return true
}

var registry = map[string]Tarot{
	"fool":     fool{base{"fool", "The Fool", "Changes the suit of the selected card at random", true}},
	"magician": magician{base{"magician", "The Magician", "Raises the rank of the selected card by one", true}},
	"hermit":   hermit{base{"hermit", "The Hermit", "Removes the selected card from the deck", true}},
	"strength": strength{base{"strength", "Strength", "Makes the selected card STEEL", true}},
	"emperor":  emperor{base{"emperor", "The Emperor", "Adds +1 chip to every card in the deck", false}},
	"wheel":    wheel{base{"wheel", "Wheel of Fortune", "Spins the wheel on a random joker", false}},
}

func New(id string) (Tarot, error) {
	t, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarot, id)
	}
	return t, nil
}

// IDs lists the registered tarots, sorted
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Random picks a tarot uniformly
func Random(rng *rand.Rand) Tarot {
	ids := IDs()
	return registry[ids[rng.Intn(len(ids))]]
}
