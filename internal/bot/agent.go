package bot

import "math/rand"

// Agent is one rival racer. It owns no clock; the session rolls it forward on
// the match's drift cadence.
type Agent struct {
	Identity RivalIdentity
	speed    float64
	tuning   Tuning
}

// NewAgent builds a rival with the given base speed and the default tuning.
func NewAgent(identity RivalIdentity, speed float64) *Agent {
	return &Agent{Identity: identity, speed: speed, tuning: DefaultTuning}
}

// Drift rolls how far the rival advances this interval.
func (a *Agent) Drift(rng *rand.Rand) float64 {
	return rng.Float64() * a.speed * a.tuning.DriftFactor
}

// Taunt sometimes returns a line when the rival gains ground, empty otherwise.
func (a *Agent) Taunt(rng *rand.Rand) string {
	if len(a.Identity.Taunts) == 0 {
		return ""
	}
	if rng.Float64() > a.tuning.TauntChance {
		return ""
	}
	return a.Identity.Taunts[rng.Intn(len(a.Identity.Taunts))]
}
