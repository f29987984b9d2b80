package progression

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrGameOver          = errors.New("game is over")
	ErrTransitionPending = errors.New("blind outcome not resolved")
	ErrNoDiscardsLeft    = errors.New("no discards left")
	ErrNoHandsLeft       = errors.New("no hands left")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

const (
	StartingMoney    = 50
	StartingLives    = 3
	HandsPerBlind    = 4
	DiscardsPerBlind = 3
	BlindReward      = 10
	BaseBlindTarget  = 300
	AnteExponent     = 1.6
	BlindsPerAnte    = 3
)

// BlindType is the position of a blind inside its ante
type BlindType string

const (
	Small BlindType = "small"
	Big   BlindType = "big"
	Boss  BlindType = "boss"
)

func (b BlindType) multiplier() float64 {
	switch b {
	case Big:
		return 1.5
	case Boss:
		return 2.0
	}
	return 1.0
}

// BlindTypeFor maps a 1-based blind number onto small, big, boss
func BlindTypeFor(blind int) BlindType {
	switch ((blind-1)%BlindsPerAnte + BlindsPerAnte) % BlindsPerAnte {
	case 1:
		return Big
	case 2:
		return Boss
	}
	return Small
}

// BlindTarget is floor(300 * ante^1.6 * type multiplier)
func BlindTarget(ante int, blindType BlindType) int64 {
	return int64(math.Floor(BaseBlindTarget * math.Pow(float64(ante), AnteExponent) * blindType.multiplier()))
}

// Phase of the run
type Phase string

const (
	PlayingBlind   Phase = "playing_blind"
	BlindCompleted Phase = "blind_completed"
	LifeLost       Phase = "life_lost"
	GameOver       Phase = "game_over"
)

// State is the blind/ante progression of a run
type State struct {
	CurrentScore         int64     `json:"currentScore"`
	TotalScore           int64     `json:"totalScore"`
	Money                int       `json:"money"`
	Lives                int       `json:"lives"`
	CurrentBlind         int       `json:"currentBlind"`
	CurrentAnte          int       `json:"currentAnte"`
	BlindTarget          int64     `json:"blindTarget"`
	BlindType            BlindType `json:"blindType"`
	HandsLeft            int       `json:"handsLeft"`
	DiscardsLeft         int       `json:"discardsLeft"`
	BlindsCompleted      int       `json:"blindsCompleted"`
	Phase                Phase     `json:"phase"`
	NoLivesLostThisRound bool      `json:"noLivesLostThisRound"`
	ExtraDiscards        int       `json:"extraDiscards"`
}

// New returns the opening state of a run
func New() *State {
	s := &State{
		Money:                StartingMoney,
		Lives:                StartingLives,
		CurrentBlind:         1,
		CurrentAnte:          1,
		Phase:                PlayingBlind,
		NoLivesLostThisRound: true,
	}
	s.refreshBlind()
	s.resetHands()
	return s
}

// Restore rebuilds a state from persisted counters and normalizes derived fields
func Restore(s State) *State {
	out := s
	if out.CurrentBlind < 1 {
		out.CurrentBlind = 1
	}
	if out.CurrentAnte < 1 {
		out.CurrentAnte = anteFor(out.CurrentBlind)
	}
	out.refreshBlind()
	switch {
	case out.Lives <= 0:
		out.Phase = GameOver
	case out.Phase == "":
		out.Phase = PlayingBlind
	}
	// a blind saved with no hands left still owes its outcome
	if out.Phase == PlayingBlind && out.HandsLeft <= 0 {
		out.Phase = LifeLost
		if out.CurrentScore >= out.BlindTarget {
			out.Phase = BlindCompleted
		}
	}
	return &out
}

func anteFor(blind int) int {
	return (blind-1)/BlindsPerAnte + 1
}

func (s *State) refreshBlind() {
	s.BlindType = BlindTypeFor(s.CurrentBlind)
	s.BlindTarget = BlindTarget(s.CurrentAnte, s.BlindType)
}

func (s *State) resetHands() {
	s.HandsLeft = HandsPerBlind
	s.DiscardsLeft = DiscardsPerBlind + s.ExtraDiscards
}

// SetExtraDiscards sets the bonus discards granted on every reset
func (s *State) SetExtraDiscards(n int) {
	if n < 0 {
		n = 0
	}
	s.ExtraDiscards = n
}

// IsOver reports the terminal phase
func (s *State) IsOver() bool {
	return s.Phase == GameOver
}

// RecordHand adds a played hand's score and moves to the resulting phase
func (s *State) RecordHand(score int64) (Phase, error) {
	if err := s.requirePlaying(); err != nil {
		return s.Phase, err
	}
	if s.HandsLeft <= 0 {
		return s.Phase, ErrNoHandsLeft
	}

	s.CurrentScore += score
	s.TotalScore += score
	s.HandsLeft--

	switch {
	case s.CurrentScore >= s.BlindTarget:
		s.Phase = BlindCompleted
	case s.HandsLeft <= 0:
		s.Phase = LifeLost
	}
	return s.Phase, nil
}

// UseDiscard spends one discard
func (s *State) UseDiscard() error {
	if err := s.requirePlaying(); err != nil {
		return err
	}
	if s.DiscardsLeft <= 0 {
		return ErrNoDiscardsLeft
	}
	s.DiscardsLeft--
	return nil
}

// Resolve applies the pending blind outcome. It returns the phase that was resolved.
func (s *State) Resolve() (Phase, error) {
	switch s.Phase {
	case BlindCompleted:
		s.CompleteBlind()
		return BlindCompleted, nil
	case LifeLost:
		s.LoseLife()
		return LifeLost, nil
	case GameOver:
		return GameOver, ErrGameOver
	}
	return s.Phase, nil
}

// CompleteBlind pays the blind reward and advances to the next blind. The ante
// goes up each time a new small blind starts.
func (s *State) CompleteBlind() {
	if s.IsOver() {
		return
	}
	s.Money += BlindReward
	s.BlindsCompleted++
	s.CurrentBlind++
	if s.CurrentBlind%BlindsPerAnte == 1 {
		s.CurrentAnte++
	}
	s.refreshBlind()
	s.resetHands()
	s.CurrentScore = 0
	s.NoLivesLostThisRound = true
	s.Phase = PlayingBlind
}

// LoseLife costs a life. The blind is retried with fresh hands and the score
// accumulated so far is kept.
func (s *State) LoseLife() {
	if s.IsOver() {
		return
	}
	s.Lives--
	s.NoLivesLostThisRound = false
	if s.Lives <= 0 {
		s.Lives = 0
		s.Phase = GameOver
		return
	}
	s.resetHands()
	s.Phase = PlayingBlind
}

// AddMoney credits the run's wallet
func (s *State) AddMoney(amount int) {
	s.Money += amount
}

// Spend debits amount or fails without change
func (s *State) Spend(amount int) error {
	if amount > s.Money {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, amount, s.Money)
	}
	s.Money -= amount
	return nil
}

func (s *State) requirePlaying() error {
	switch s.Phase {
	case GameOver:
		return ErrGameOver
	case PlayingBlind:
		return nil
	}
	return ErrTransitionPending
}
