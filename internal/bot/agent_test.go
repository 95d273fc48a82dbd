package bot

import (
	"math/rand"
	"testing"
)

func TestAgentDriftBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	agent := NewAgent(GetRivalIdentity(0), 2.2)

	for i := 0; i < 1000; i++ {
		d := agent.Drift(rng)
		if d < 0 || d >= 2.2*DefaultTuning.DriftFactor {
			t.Fatalf("drift = %v, want within [0, %v)", d, 2.2*DefaultTuning.DriftFactor)
		}
	}
}

func TestAgentDriftScalesWithSpeed(t *testing.T) {
	slow := NewAgent(GetRivalIdentity(0), 1.2)
	fast := NewAgent(GetRivalIdentity(1), 2.2)

	sum := func(a *Agent, seed int64) float64 {
		rng := rand.New(rand.NewSource(seed))
		var total float64
		for i := 0; i < 2000; i++ {
			total += a.Drift(rng)
		}
		return total
	}
	if sum(slow, 7) >= sum(fast, 7) {
		t.Error("slower tier out-drifted the faster tier")
	}
}

func TestAgentTaunt(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	agent := NewAgent(GetRivalIdentity(0), 1.2)

	var taunted, quiet bool
	for i := 0; i < 200; i++ {
		if agent.Taunt(rng) != "" {
			taunted = true
		} else {
			quiet = true
		}
	}
	if !taunted || !quiet {
		t.Errorf("taunted=%v quiet=%v over 200 rolls, want both", taunted, quiet)
	}

	silent := NewAgent(RivalIdentity{Name: "Mute"}, 1.2)
	if silent.Taunt(rng) != "" {
		t.Error("rival with no lines taunted")
	}
}

func TestGetRivalIdentityWraps(t *testing.T) {
	n := PoolSize()
	if n == 0 {
		t.Fatal("empty default pool")
	}
	if GetRivalIdentity(0).Name != GetRivalIdentity(n).Name {
		t.Error("index did not wrap around the pool")
	}
	if GetRivalIdentity(-1).Name == "" {
		t.Error("negative index returned an empty identity")
	}
}
