package events

import (
	"github.com/google/uuid"
)

// RunStarted is emitted when a new run is dealt
type RunStarted struct {
	BaseEvent
	Seed string `json:"seed"`
}

func NewRunStarted(runID uuid.UUID, userID, seed string, version int64) *RunStarted {
	return &RunStarted{
		BaseEvent: NewBaseEvent(RunStartedEvent, runID, version, userID),
		Seed:      seed,
	}
}

// HandPlayed is emitted for every scored hand
type HandPlayed struct {
	BaseEvent
	HandType   string   `json:"hand_type"`
	CardIDs    []string `json:"card_ids"`
	Chips      int      `json:"chips"`
	Multiplier int      `json:"multiplier"`
	Score      int64    `json:"score"`
	Money      int      `json:"money"`
}

func NewHandPlayed(runID uuid.UUID, userID, handType string, cardIDs []string, chips, mult int, score int64, money int, version int64) *HandPlayed {
	return &HandPlayed{
		BaseEvent:  NewBaseEvent(HandPlayedEvent, runID, version, userID),
		HandType:   handType,
		CardIDs:    cardIDs,
		Chips:      chips,
		Multiplier: mult,
		Score:      score,
		Money:      money,
	}
}

// CardsDiscarded is emitted when the player throws cards away
type CardsDiscarded struct {
	BaseEvent
	CardIDs []string `json:"card_ids"`
}

func NewCardsDiscarded(runID uuid.UUID, userID string, cardIDs []string, version int64) *CardsDiscarded {
	return &CardsDiscarded{
		BaseEvent: NewBaseEvent(CardsDiscardedEvent, runID, version, userID),
		CardIDs:   cardIDs,
	}
}

// BlindCompleted is emitted when a blind target is reached
type BlindCompleted struct {
	BaseEvent
	Blind  int   `json:"blind"`
	Ante   int   `json:"ante"`
	Score  int64 `json:"score"`
	Reward int   `json:"reward"`
}

func NewBlindCompleted(runID uuid.UUID, userID string, blind, ante int, score int64, reward int, version int64) *BlindCompleted {
	return &BlindCompleted{
		BaseEvent: NewBaseEvent(BlindCompletedEvent, runID, version, userID),
		Blind:     blind,
		Ante:      ante,
		Score:     score,
		Reward:    reward,
	}
}

// LifeLost is emitted when a blind runs out of hands
type LifeLost struct {
	BaseEvent
	Blind          int `json:"blind"`
	LivesRemaining int `json:"lives_remaining"`
}

func NewLifeLost(runID uuid.UUID, userID string, blind, livesRemaining int, version int64) *LifeLost {
	return &LifeLost{
		BaseEvent:      NewBaseEvent(LifeLostEvent, runID, version, userID),
		Blind:          blind,
		LivesRemaining: livesRemaining,
	}
}

// GameOver is emitted once, when the last life is lost
type GameOver struct {
	BaseEvent
	FinalBlind      int      `json:"final_blind"`
	BlindsCompleted int      `json:"blinds_completed"`
	JokersUsed      []string `json:"jokers_used"`
}

func NewGameOver(runID uuid.UUID, userID string, finalBlind, blindsCompleted int, jokersUsed []string, version int64) *GameOver {
	return &GameOver{
		BaseEvent:       NewBaseEvent(GameOverEvent, runID, version, userID),
		FinalBlind:      finalBlind,
		BlindsCompleted: blindsCompleted,
		JokersUsed:      jokersUsed,
	}
}

// CardDestroyed is emitted when a played GLASS card shatters
type CardDestroyed struct {
	BaseEvent
	CardID string `json:"card_id"`
}

func NewCardDestroyed(runID uuid.UUID, userID, cardID string, version int64) *CardDestroyed {
	return &CardDestroyed{
		BaseEvent: NewBaseEvent(CardDestroyedEvent, runID, version, userID),
		CardID:    cardID,
	}
}
