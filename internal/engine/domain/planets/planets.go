package planets

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/hands"
)

var ErrUnknownPlanet = errors.New("unknown planet")

// BonusType says which pool a planet levels up
type BonusType string

const (
	BonusChips      BonusType = "chips"
	BonusMultiplier BonusType = "multiplier"
)

// Planet permanently levels one hand category
type Planet struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Hand      hands.HandRank `json:"handType"`
	BonusType BonusType      `json:"bonusType"`
	Amount    int            `json:"bonusAmount"`
}

// Description renders the per-level bonus for display
func (p Planet) Description() string {
	pool := "chips"
	if p.BonusType == BonusMultiplier {
		pool = "multiplier"
	}
	return fmt.Sprintf("%s: +%d %s per level", p.Hand.Name(), p.Amount, pool)
}

var registry = map[string]Planet{
	"mercury": {ID: "mercury", Name: "Mercury", Hand: hands.Pair, BonusType: BonusChips, Amount: 15},
	"venus":   {ID: "venus", Name: "Venus", Hand: hands.TwoPair, BonusType: BonusMultiplier, Amount: 1},
	"earth":   {ID: "earth", Name: "Earth", Hand: hands.ThreeOfAKind, BonusType: BonusChips, Amount: 20},
	"mars":    {ID: "mars", Name: "Mars", Hand: hands.FourOfAKind, BonusType: BonusChips, Amount: 25},
	"jupiter": {ID: "jupiter", Name: "Jupiter", Hand: hands.Flush, BonusType: BonusMultiplier, Amount: 2},
	"saturn":  {ID: "saturn", Name: "Saturn", Hand: hands.Straight, BonusType: BonusChips, Amount: 30},
	"uranus":  {ID: "uranus", Name: "Uranus", Hand: hands.FullHouse, BonusType: BonusMultiplier, Amount: 2},
	"neptune": {ID: "neptune", Name: "Neptune", Hand: hands.StraightFlush, BonusType: BonusChips, Amount: 40},
	"pluto":   {ID: "pluto", Name: "Pluto", Hand: hands.RoyalFlush, BonusType: BonusMultiplier, Amount: 3},
	"sun":     {ID: "sun", Name: "Sun", Hand: hands.HighCard, BonusType: BonusChips, Amount: 10},
}

// byHand indexes the registry by hand name; one planet per category
var byHand = func() map[string]Planet {
	m := make(map[string]Planet, len(registry))
	for _, p := range registry {
		m[p.Hand.Name()] = p
	}
	return m
}()

func New(id string) (Planet, error) {
	p, ok := registry[id]
	if !ok {
		return Planet{}, fmt.Errorf("%w: %q", ErrUnknownPlanet, id)
	}
	return p, nil
}

// IDs lists the registered planets, sorted
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Random picks a planet uniformly
func Random(rng *rand.Rand) Planet {
	ids := IDs()
	return registry[ids[rng.Intn(len(ids))]]
}

// Levels maps a hand name to the number of planets used on it
type Levels map[string]int

// Use levels the planet's hand up by one. There is no cap.
func Use(levels Levels, p Planet) {
	levels[p.Hand.Name()]++
}

// Bonus returns the chips and multiplier earned by levels for the named hand
func Bonus(levels Levels, handName string) (chips, mult int) {
	level := levels[handName]
	if level <= 0 {
		return 0, 0
	}
	p, ok := byHand[handName]
	if !ok {
		return 0, 0
	}
	switch p.BonusType {
	case BonusChips:
		chips = level * p.Amount
	case BonusMultiplier:
		mult = level * p.Amount
	}
	return chips, mult
}

// Clone copies the levels map
func (l Levels) Clone() Levels {
	out := make(Levels, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
