package shop

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/jokers"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/planets"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/tarots"
)

var (
	ErrNoSuchItem     = errors.New("no shop item at index")
	ErrJokerSlotsFull = errors.New("joker slots full")
	ErrUnknownPack    = errors.New("unknown pack")
	ErrShopClosed     = errors.New("shop is closed")
)

// Kind of a shop item
type Kind string

const (
	KindJoker  Kind = "joker"
	KindPack   Kind = "pack"
	KindTarot  Kind = "tarot"
	KindPlanet Kind = "planet"
)

const (
	OfferSize   = 5
	BasePrice   = 5
	PackPrice   = 10
	TarotPrice  = 8
	PlanetPrice = 13
	RerollPrice = 5
)

var kindWeights = []struct {
	kind   Kind
	weight int
}{
	{KindJoker, 40},
	{KindPack, 30},
	{KindTarot, 15},
	{KindPlanet, 15},
}

// Item is one thing on offer. ID refers to the joker, pack, tarot or planet registry.
type Item struct {
	Kind        Kind   `json:"kind"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Sold        bool   `json:"sold"`
}

// Generate rolls a fresh offer
func Generate(rng *rand.Rand) []Item {
	items := make([]Item, OfferSize)
	for i := range items {
		items[i] = roll(rng, rollKind(rng))
	}
	return items
}

func rollKind(rng *rand.Rand) Kind {
	total := 0
	for _, kw := range kindWeights {
		total += kw.weight
	}
	n := rng.Intn(total)
	for _, kw := range kindWeights {
		if n < kw.weight {
			return kw.kind
		}
		n -= kw.weight
	}
	return KindJoker
}

func roll(rng *rand.Rand, kind Kind) Item {
	switch kind {
	case KindPack:
		p := packs[packIDs[rng.Intn(len(packIDs))]]
		return Item{Kind: KindPack, ID: p.id, Name: p.name, Description: p.description, Price: PackPrice}
	case KindTarot:
		return tarotItem(tarots.Random(rng), TarotPrice)
	case KindPlanet:
		return planetItem(planets.Random(rng), PlanetPrice)
	}
	return jokerItem(jokers.Random(rng, nil), BasePrice+rng.Intn(10))
}

func jokerItem(j *jokers.Joker, price int) Item {
	return Item{Kind: KindJoker, ID: j.ID, Name: j.Name, Description: j.Description, Price: price}
}

func tarotItem(t tarots.Tarot, price int) Item {
	return Item{Kind: KindTarot, ID: t.ID(), Name: t.Name(), Description: t.Description(), Price: price}
}

func planetItem(p planets.Planet, price int) Item {
	return Item{Kind: KindPlanet, ID: p.ID, Name: p.Name, Description: p.Description(), Price: price}
}

type pack struct {
	id, name, description string
	contents              []Kind
}

var packs = map[string]pack{
	"arcana_pack": {
		id: "arcana_pack", name: "Arcana Pack", description: "4 tarot cards",
		contents: []Kind{KindTarot, KindTarot, KindTarot, KindTarot},
	},
	"celestial_pack": {
		id: "celestial_pack", name: "Celestial Pack", description: "4 planet cards",
		contents: []Kind{KindPlanet, KindPlanet, KindPlanet, KindPlanet},
	},
	"standard_pack": {
		id: "standard_pack", name: "Standard Pack", description: "2 jokers, 1 tarot and 1 planet",
		contents: []Kind{KindJoker, KindJoker, KindTarot, KindPlanet},
	},
}

var packIDs = []string{"arcana_pack", "celestial_pack", "standard_pack"}

// Open rolls the contents of a pack. Contents carry no price.
func Open(packID string, rng *rand.Rand) ([]Item, error) {
	p, ok := packs[packID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPack, packID)
	}
	items := make([]Item, len(p.contents))
	for i, kind := range p.contents {
		item := roll(rng, kind)
		item.Price = 0
		items[i] = item
	}
	return items, nil
}
