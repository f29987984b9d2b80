package dto

// Commands sent over the game websocket. Each carries only the payload of
// its action; the connection supplies the user.
type NewGameCommand struct {
	Seed string `json:"seed,omitempty" validate:"max=64"`
}

type PlayHandCommand struct {
	CardIDs []string `json:"cardIds" validate:"required,min=1,max=5,unique,dive,required"`
}

type DiscardCommand struct {
	CardIDs []string `json:"cardIds" validate:"required,min=1,max=5,unique,dive,required"`
}

type PreviewHandCommand struct {
	CardIDs []string `json:"cardIds" validate:"required,min=1,max=5,unique,dive,required"`
}

type UseTarotCommand struct {
	Index    int    `json:"index" validate:"gte=0"`
	TargetID string `json:"targetId,omitempty"`
}

type BuyItemCommand struct {
	Index int `json:"index" validate:"gte=0"`
}

// JokerCommand addresses an owned joker by slot
type JokerCommand struct {
	Index int `json:"index" validate:"gte=0"`
}

type SubmitHighscoreCommand struct {
	PlayerName string `json:"playerName" validate:"required,max=50,player_name"`
}
