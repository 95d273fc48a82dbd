package domain

import "math/rand"

// Phase represents the lifecycle stage of an arcade session.
type Phase string

const (
	// PhaseMenu is the pre-game state where settings can be changed.
	PhaseMenu Phase = "menu"
	// PhaseCountdown is the 3-2-1 lead-in before play begins.
	PhaseCountdown Phase = "countdown"
	// PhasePlaying is the active state with a question awaiting an answer.
	PhasePlaying Phase = "playing"
	// PhaseResolved is the short display window after a round resolves.
	PhaseResolved Phase = "resolved"
	// PhaseEnded is the state after a session concludes.
	PhaseEnded Phase = "ended"
)

// Outcome classifies how a round resolved.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomeTimeout Outcome = "timeout"
)

// Tier identifies a difficulty level shared by the question generators.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// ValidTier reports whether t names a known difficulty tier.
func ValidTier(t Tier) bool {
	switch t {
	case TierEasy, TierMedium, TierHard:
		return true
	}
	return false
}

// Range is an inclusive integer interval used for random rolls.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Roll draws a uniform value from the inclusive interval.
func (r Range) Roll(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
