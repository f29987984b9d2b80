package events

import (
	"github.com/google/uuid"
)

// JokerAdded is emitted when a joker takes a slot
type JokerAdded struct {
	BaseEvent
	JokerID string `json:"joker_id"`
	Source  string `json:"source"` // "shop", "pack"
}

func NewJokerAdded(runID uuid.UUID, userID, jokerID, source string, version int64) *JokerAdded {
	return &JokerAdded{
		BaseEvent: NewBaseEvent(JokerAddedEvent, runID, version, userID),
		JokerID:   jokerID,
		Source:    source,
	}
}

// JokerSold is emitted when a joker is sold back
type JokerSold struct {
	BaseEvent
	JokerID string `json:"joker_id"`
	Value   int    `json:"value"`
}

func NewJokerSold(runID uuid.UUID, userID, jokerID string, value int, version int64) *JokerSold {
	return &JokerSold{
		BaseEvent: NewBaseEvent(JokerSoldEvent, runID, version, userID),
		JokerID:   jokerID,
		Value:     value,
	}
}

// TarotUsed is emitted after a tarot applied successfully
type TarotUsed struct {
	BaseEvent
	TarotID  string `json:"tarot_id"`
	TargetID string `json:"target_id,omitempty"`
}

func NewTarotUsed(runID uuid.UUID, userID, tarotID, targetID string, version int64) *TarotUsed {
	return &TarotUsed{
		BaseEvent: NewBaseEvent(TarotUsedEvent, runID, version, userID),
		TarotID:   tarotID,
		TargetID:  targetID,
	}
}

// PlanetUsed is emitted when a hand category levels up
type PlanetUsed struct {
	BaseEvent
	PlanetID string `json:"planet_id"`
	HandType string `json:"hand_type"`
	Level    int    `json:"level"`
}

func NewPlanetUsed(runID uuid.UUID, userID, planetID, handType string, level int, version int64) *PlanetUsed {
	return &PlanetUsed{
		BaseEvent: NewBaseEvent(PlanetUsedEvent, runID, version, userID),
		PlanetID:  planetID,
		HandType:  handType,
		Level:     level,
	}
}

// ShopPurchase is emitted for every paid shop item
type ShopPurchase struct {
	BaseEvent
	Kind   string `json:"kind"`
	ItemID string `json:"item_id"`
	Price  int    `json:"price"`
}

func NewShopPurchase(runID uuid.UUID, userID, kind, itemID string, price int, version int64) *ShopPurchase {
	return &ShopPurchase{
		BaseEvent: NewBaseEvent(ShopPurchaseEvent, runID, version, userID),
		Kind:      kind,
		ItemID:    itemID,
		Price:     price,
	}
}
