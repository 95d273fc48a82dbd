package domain

import (
	"errors"
	"math"
	"math/rand"
)

var (
	ErrRoundResolved = errors.New("round already resolved")
	ErrNotPlaying    = errors.New("session not in playing phase")
	ErrNotInMenu     = errors.New("session not in menu phase")
)

// RaceRules holds the numeric tuning for a time race run. Values come from the
// arcade config; the zero value is not usable.
type RaceRules struct {
	TotalRounds    int
	StartPos       float64
	FinishPos      float64
	TimerSeconds   float64
	OpponentSpeed  float64
	BaseScore      int
	BonusScale     int
	WinBonus       int
	CorrectAdvance Range
	WrongPenalty   Range
	TimeoutPenalty Range
}

// Race is the authoritative state of one time race session. Both cars move
// along a 0..FinishPos track; the opponent drifts on its own timer while the
// player advances by answering clock questions.
type Race struct {
	Phase       Phase
	Tier        Tier
	Rules       RaceRules
	Round       int
	Score       int
	PlayerPos   float64
	OpponentPos float64
	Timer       float64
	Question    *ClockQuestion
	Answered    bool
	Won         bool
	Recent      RecentTimes
}

// NewRace returns a race in the menu phase.
func NewRace(tier Tier, rules RaceRules) *Race {
	return &Race{
		Phase:       PhaseMenu,
		Tier:        tier,
		Rules:       rules,
		PlayerPos:   rules.StartPos,
		OpponentPos: rules.StartPos,
	}
}

// Start resets run state and enters the countdown phase.
func (r *Race) Start() {
	r.Phase = PhaseCountdown
	r.Round = 0
	r.Score = 0
	r.PlayerPos = r.Rules.StartPos
	r.OpponentPos = r.Rules.StartPos
	r.Timer = 0
	r.Question = nil
	r.Answered = false
	r.Won = false
	r.Recent = RecentTimes{}
}

// NextRound starts the next round, or ends the race as won when the round
// budget is exhausted or the player already crossed the finish line. It
// reports whether a new round began. An ended race stays ended.
func (r *Race) NextRound(rng *rand.Rand) bool {
	if r.Phase == PhaseEnded {
		return false
	}
	if r.Round >= r.Rules.TotalRounds || r.PlayerPos >= r.Rules.FinishPos {
		r.finish(true)
		return false
	}
	q := GenerateClockQuestion(rng, r.Tier, &r.Recent)
	r.Round++
	r.Question = &q
	r.Timer = r.Rules.TimerSeconds
	r.Answered = false
	r.Phase = PhasePlaying
	return true
}

// Answer resolves the current round against the selected option. The first
// resolution wins; a late answer after a timeout (or a second click) returns
// ErrRoundResolved and mutates nothing.
func (r *Race) Answer(option string, rng *rand.Rand) (Outcome, error) {
	if r.Phase != PhasePlaying {
		return "", ErrNotPlaying
	}
	if r.Answered {
		return "", ErrRoundResolved
	}
	r.Answered = true
	r.Phase = PhaseResolved

	if option == r.Question.Correct {
		bonus := int(math.Ceil(r.Timer / r.Rules.TimerSeconds * float64(r.Rules.BonusScale)))
		r.Score += r.Rules.BaseScore + bonus
		r.PlayerPos = Clamp(r.PlayerPos+float64(r.Rules.CorrectAdvance.Roll(rng)), 0, r.Rules.FinishPos)
		if r.PlayerPos >= r.Rules.FinishPos {
			r.finish(true)
		}
		return OutcomeCorrect, nil
	}

	r.applyOpponentGain(float64(r.Rules.WrongPenalty.Roll(rng)))
	return OutcomeWrong, nil
}

// TickTimer decrements the round countdown by dt seconds. Crossing zero clamps
// the timer and resolves the round as a timeout exactly once; ticks that land
// after a manual answer are no-ops.
func (r *Race) TickTimer(dt float64, rng *rand.Rand) (timedOut bool) {
	if r.Phase != PhasePlaying || r.Answered {
		return false
	}
	r.Timer -= dt
	if r.Timer > 0 {
		return false
	}
	r.Timer = 0
	r.Answered = true
	r.Phase = PhaseResolved
	r.applyOpponentGain(float64(r.Rules.TimeoutPenalty.Roll(rng)))
	return true
}

// DriftOpponent advances the opponent car by delta. It runs while the race is
// in progress and may end the race in the opponent's favour.
func (r *Race) DriftOpponent(delta float64) {
	if !r.InProgress() {
		return
	}
	r.applyOpponentGain(delta)
}

// InProgress reports whether gameplay timers should run.
func (r *Race) InProgress() bool {
	return r.Phase == PhasePlaying || r.Phase == PhaseResolved
}

func (r *Race) applyOpponentGain(delta float64) {
	r.OpponentPos = Clamp(r.OpponentPos+delta, 0, r.Rules.FinishPos)
	if r.OpponentPos >= r.Rules.FinishPos {
		r.finish(false)
	}
}

func (r *Race) finish(won bool) {
	r.Phase = PhaseEnded
	r.Won = won
	if won {
		r.Score += r.Rules.WinBonus
	}
}
