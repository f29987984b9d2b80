package tarots

import (
	"encoding/json"
	"fmt"
)

// Inventory holds unused tarot cards in acquisition order
type Inventory struct {
	cards []Tarot
}

func (inv *Inventory) Add(t Tarot) {
	inv.cards = append(inv.cards, t)
}

func (inv *Inventory) At(i int) Tarot {
	if i < 0 || i >= len(inv.cards) {
		return nil
	}
	return inv.cards[i]
}

func (inv *Inventory) Len() int {
	return len(inv.cards)
}

// Use applies the tarot at index i. The card is consumed only when it applied.
func (inv *Inventory) Use(i int, ctx *Context) (bool, error) {
	t := inv.At(i)
	if t == nil {
		return false, fmt.Errorf("%w %d", ErrNoSuchTarot, i)
	}
	if !t.Apply(ctx) {
		return false, nil
	}
	inv.cards = append(inv.cards[:i], inv.cards[i+1:]...)
	return true, nil
}

// IDs returns the held tarot ids in order
func (inv *Inventory) IDs() []string {
	ids := make([]string, len(inv.cards))
	for i, t := range inv.cards {
		ids[i] = t.ID()
	}
	return ids
}

// FromIDs rebuilds an inventory from stored ids
func FromIDs(ids []string) (*Inventory, error) {
	inv := &Inventory{}
	for _, id := range ids {
		t, err := New(id)
		if err != nil {
			return nil, err
		}
		inv.Add(t)
	}
	return inv, nil
}

func (inv *Inventory) MarshalJSON() ([]byte, error) {
	return json.Marshal(inv.IDs())
}

func (inv *Inventory) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	restored, err := FromIDs(ids)
	if err != nil {
		return err
	}
	*inv = *restored
	return nil
}
