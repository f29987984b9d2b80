package game

import (
	"fmt"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/events"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/hands"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/jokers"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/planets"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/progression"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/scoring"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/tarots"
)

// PlayResult describes everything a played hand caused
type PlayResult struct {
	Hand        *hands.Result     `json:"hand"`
	Score       scoring.Result    `json:"score"`
	MoneyEarned int               `json:"moneyEarned"`
	Outcome     progression.Phase `json:"outcome"`
	Destroyed   []cards.Card      `json:"destroyed,omitempty"`
	Drawn       []cards.Card      `json:"drawn,omitempty"`
	State       progression.State `json:"state"`
	ShopOpened  bool              `json:"shopOpened"`
}

// EvaluateSelection classifies the selected hand cards without playing them
func (s *Session) EvaluateSelection(ids []string) (*hands.Result, error) {
	selected, err := s.selection(ids)
	if err != nil {
		return nil, err
	}
	return hands.Evaluate(selected), nil
}

// PreviewHand scores the selection as if it were played, leaving the run
// and joker stats untouched
func (s *Session) PreviewHand(ids []string) (*hands.Result, scoring.Result, error) {
	selected, err := s.selection(ids)
	if err != nil {
		return nil, scoring.Result{}, err
	}
	owned := s.jokers.All()
	for i, j := range owned {
		owned[i] = j.Clone()
	}
	hr := hands.Evaluate(selected)
	return hr, scoring.ComputeWithState(hr, selected, owned, s.levels, s.gameState()), nil
}

// PlayHand scores the selected cards and advances the run. The outcome is
// PlayingBlind, BlindCompleted, LifeLost or GameOver; the last three are
// already resolved when PlayHand returns.
func (s *Session) PlayHand(ids []string) (*PlayResult, error) {
	if s.progress.IsOver() {
		return nil, progression.ErrGameOver
	}
	selected, err := s.selection(ids)
	if err != nil {
		return nil, err
	}
	for _, c := range selected {
		if !c.IsPlayable() {
			return nil, fmt.Errorf("%w: card %s cannot be played", ErrInvalidSelection, c.ID)
		}
	}
	s.offer = nil

	hr := hands.Evaluate(selected)
	score := scoring.ComputeWithState(hr, selected, s.jokers.All(), s.levels, s.gameState())

	phase, err := s.progress.RecordHand(score.TotalScore)
	if err != nil {
		return nil, err
	}
	earned := scoring.MoneyReward(score.TotalScore) + score.Money
	s.progress.AddMoney(earned)

	result := &PlayResult{Hand: hr, Score: score, MoneyEarned: earned, Outcome: phase}
	s.ApplyChange(events.NewHandPlayed(s.ID, s.UserID, hr.Name(), ids, score.Chips, score.Multiplier, score.TotalScore, earned, s.NextVersion()))

	s.takeFromHand(ids)
	for _, c := range selected {
		if c.ShouldBreak(s.rng) {
			result.Destroyed = append(result.Destroyed, c)
			s.ApplyChange(events.NewCardDestroyed(s.ID, s.UserID, c.ID, s.NextVersion()))
			continue
		}
		s.discardPile = append(s.discardPile, c)
	}

	switch phase {
	case progression.BlindCompleted:
		completedType := s.progress.BlindType
		completedBlind, ante, blindScore := s.progress.CurrentBlind, s.progress.CurrentAnte, s.progress.CurrentScore
		s.progress.SetExtraDiscards(s.jokers.PassiveExtra(jokers.ExtraDiscards))
		if _, err := s.progress.Resolve(); err != nil {
			return nil, err
		}
		s.ApplyChange(events.NewBlindCompleted(s.ID, s.UserID, completedBlind, ante, blindScore, progression.BlindReward, s.NextVersion()))
		s.newRound()
		if completedType == progression.Boss {
			s.openShop()
			result.ShopOpened = true
		}
	case progression.LifeLost:
		blind := s.progress.CurrentBlind
		s.progress.SetExtraDiscards(s.jokers.PassiveExtra(jokers.ExtraDiscards))
		if _, err := s.progress.Resolve(); err != nil {
			return nil, err
		}
		if s.progress.IsOver() {
			result.Outcome = progression.GameOver
			s.ApplyChange(events.NewGameOver(s.ID, s.UserID, blind, s.progress.BlindsCompleted, s.JokersUsed(), s.NextVersion()))
			break
		}
		s.ApplyChange(events.NewLifeLost(s.ID, s.UserID, blind, s.progress.Lives, s.NextVersion()))
		s.newRound()
	default:
		result.Drawn = s.refillHand()
	}

	result.State = *s.progress
	return result, nil
}

// Discard throws away up to five held cards and draws replacements
func (s *Session) Discard(ids []string) ([]cards.Card, error) {
	selected, err := s.selection(ids)
	if err != nil {
		return nil, err
	}
	if err := s.progress.UseDiscard(); err != nil {
		return nil, err
	}

	var discardJokers []*jokers.Joker
	for _, j := range s.jokers.All() {
		if j.Trigger == jokers.OnDiscard {
			discardJokers = append(discardJokers, j)
		}
	}
	delta := jokers.Calculate(discardJokers, jokers.Context{
		PlayedCards:  selected,
		IsDiscarding: true,
		GameState:    s.gameState(),
	})
	s.progress.AddMoney(delta.Money)

	s.takeFromHand(ids)
	s.discardPile = append(s.discardPile, selected...)
	s.ApplyChange(events.NewCardsDiscarded(s.ID, s.UserID, ids, s.NextVersion()))
	return s.refillHand(), nil
}

// UseTarot applies the held tarot at index. targetID may name a card in hand
// or in the deck; tarots that need no target ignore it. The tarot is only
// consumed when it applied.
func (s *Session) UseTarot(index int, targetID string) (bool, error) {
	if s.progress.IsOver() {
		return false, progression.ErrGameOver
	}
	ctx := &tarots.Context{
		Deck:   s.deck,
		Hand:   &s.hand,
		Jokers: s.jokers,
		Rand:   s.rng,
	}
	if targetID != "" {
		if i := s.handIndex(targetID); i >= 0 {
			ctx.Target = &s.hand[i]
		} else if c := s.deck.Find(targetID); c != nil {
			ctx.Target = c
		} else {
			return false, fmt.Errorf("%w: %s", ErrNoSuchCard, targetID)
		}
	}

	t := s.tarots.At(index)
	ok, err := s.tarots.Use(index, ctx)
	if err != nil || !ok {
		return ok, err
	}
	s.ApplyChange(events.NewTarotUsed(s.ID, s.UserID, t.ID(), targetID, s.NextVersion()))
	return true, nil
}

// AddTarot puts a tarot in the inventory
func (s *Session) AddTarot(t tarots.Tarot) {
	s.tarots.Add(t)
}

// UsePlanet levels up the planet's hand
func (s *Session) UsePlanet(p planets.Planet) {
	planets.Use(s.levels, p)
	s.ApplyChange(events.NewPlanetUsed(s.ID, s.UserID, p.ID, p.Hand.Name(), s.levels[p.Hand.Name()], s.NextVersion()))
}

// AddJoker takes a joker slot. Returns false when all slots are full.
func (s *Session) AddJoker(j *jokers.Joker, source string) bool {
	if !s.jokers.Add(j) {
		return false
	}
	s.noteJokerUsed(j.ID)
	s.ApplyChange(events.NewJokerAdded(s.ID, s.UserID, j.ID, source, s.NextVersion()))
	return true
}

func (s *Session) noteJokerUsed(id string) {
	for _, used := range s.jokersUsed {
		if used == id {
			return
		}
	}
	s.jokersUsed = append(s.jokersUsed, id)
}

// SellJoker removes the joker at index and pays out its sell value
func (s *Session) SellJoker(index int) (int, error) {
	j := s.jokers.At(index)
	if j == nil {
		return 0, fmt.Errorf("%w %d", ErrNoSuchJoker, index)
	}
	value, _ := s.jokers.Sell(index)
	s.progress.AddMoney(value)
	s.ApplyChange(events.NewJokerSold(s.ID, s.UserID, j.ID, value, s.NextVersion()))
	return value, nil
}

// ToggleJoker switches the joker at index on or off
func (s *Session) ToggleJoker(index int) error {
	if !s.jokers.Toggle(index) {
		return fmt.Errorf("%w %d", ErrNoSuchJoker, index)
	}
	return nil
}
