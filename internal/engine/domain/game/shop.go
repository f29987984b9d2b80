package game

import (
	"fmt"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/events"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/jokers"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/planets"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/shop"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/tarots"
)

// Purchase is the result of buying a shop item
type Purchase struct {
	Item    shop.Item   `json:"item"`
	Granted []shop.Item `json:"granted"`
	Dropped []shop.Item `json:"dropped,omitempty"`
}

// ShopOpen reports whether an offer is on the table
func (s *Session) ShopOpen() bool {
	return s.offer != nil
}

// Shop returns the current offer, nil when the shop is closed
func (s *Session) Shop() []shop.Item {
	if s.offer == nil {
		return nil
	}
	return append([]shop.Item(nil), s.offer...)
}

func (s *Session) openShop() {
	s.offer = shop.Generate(s.rng)
}

// LeaveShop closes the shop until the next boss blind is beaten
func (s *Session) LeaveShop() {
	s.offer = nil
}

// RerollShop pays for a fresh offer
func (s *Session) RerollShop() error {
	if s.offer == nil {
		return shop.ErrShopClosed
	}
	if err := s.progress.Spend(shop.RerollPrice); err != nil {
		return err
	}
	s.openShop()
	return nil
}

// Buy pays for the item at index and grants it. A joker bought with every slot
// taken is refused before any money changes hands.
func (s *Session) Buy(index int) (*Purchase, error) {
	if s.offer == nil {
		return nil, shop.ErrShopClosed
	}
	if index < 0 || index >= len(s.offer) || s.offer[index].Sold {
		return nil, fmt.Errorf("%w %d", shop.ErrNoSuchItem, index)
	}
	item := s.offer[index]
	if item.Kind == shop.KindJoker && s.jokers.IsFull() {
		return nil, shop.ErrJokerSlotsFull
	}
	if err := s.progress.Spend(item.Price); err != nil {
		return nil, err
	}
	s.offer[index].Sold = true
	s.ApplyChange(events.NewShopPurchase(s.ID, s.UserID, string(item.Kind), item.ID, item.Price, s.NextVersion()))

	purchase := &Purchase{Item: item}
	if item.Kind == shop.KindPack {
		contents, err := shop.Open(item.ID, s.rng)
		if err != nil {
			return nil, err
		}
		for _, c := range contents {
			if s.grant(c, "pack") {
				purchase.Granted = append(purchase.Granted, c)
			} else {
				purchase.Dropped = append(purchase.Dropped, c)
			}
		}
		return purchase, nil
	}

	s.grant(item, "shop")
	purchase.Granted = []shop.Item{item}
	return purchase, nil
}

// grant hands a single item to the player. Planets are used on the spot.
func (s *Session) grant(item shop.Item, source string) bool {
	switch item.Kind {
	case shop.KindJoker:
		j, err := jokers.New(item.ID)
		if err != nil {
			return false
		}
		return s.AddJoker(j, source)
	case shop.KindTarot:
		t, err := tarots.New(item.ID)
		if err != nil {
			return false
		}
		s.AddTarot(t)
		return true
	case shop.KindPlanet:
		p, err := planets.New(item.ID)
		if err != nil {
			return false
		}
		s.UsePlanet(p)
		return true
	}
	return false
}
