package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func testRaceRules() RaceRules {
	return RaceRules{
		TotalRounds:    7,
		StartPos:       8,
		FinishPos:      92,
		TimerSeconds:   20,
		OpponentSpeed:  1.2,
		BaseScore:      10,
		BonusScale:     15,
		WinBonus:       50,
		CorrectAdvance: Range{Min: 10, Max: 14},
		WrongPenalty:   Range{Min: 6, Max: 10},
		TimeoutPenalty: Range{Min: 8, Max: 12},
	}
}

func TestRaceCorrectAnswerScoresAndAdvances(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := NewRace(TierEasy, testRaceRules())
	r.Start()
	if !r.NextRound(rng) {
		t.Fatal("first round did not start")
	}

	before := r.PlayerPos
	outcome, err := r.Answer(r.Question.Correct, rng)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if outcome != OutcomeCorrect {
		t.Fatalf("outcome = %q, want correct", outcome)
	}
	// Full timer remaining: base 10 plus the whole bonus scale.
	if r.Score != 25 {
		t.Errorf("score = %d, want 25", r.Score)
	}
	gain := r.PlayerPos - before
	if gain < 10 || gain > 14 {
		t.Errorf("player advanced %v, want within [10, 14]", gain)
	}
	if r.Phase != PhaseResolved {
		t.Errorf("phase = %q, want resolved", r.Phase)
	}
}

func TestRaceWrongAnswerAdvancesOpponentOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	r := NewRace(TierEasy, testRaceRules())
	r.Start()
	r.NextRound(rng)

	wrong := ""
	for _, opt := range r.Question.Options {
		if opt != r.Question.Correct {
			wrong = opt
			break
		}
	}

	playerBefore := r.PlayerPos
	outcome, err := r.Answer(wrong, rng)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if outcome != OutcomeWrong {
		t.Fatalf("outcome = %q, want wrong", outcome)
	}
	if r.Score != 0 {
		t.Errorf("score = %d, want 0", r.Score)
	}
	if r.PlayerPos != playerBefore {
		t.Errorf("player moved on wrong answer: %v -> %v", playerBefore, r.PlayerPos)
	}
	gain := r.OpponentPos - testRaceRules().StartPos
	if gain < 6 || gain > 10 {
		t.Errorf("opponent advanced %v, want within [6, 10]", gain)
	}
}

func TestRaceRoundResolvesExactlyOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	r := NewRace(TierMedium, testRaceRules())
	r.Start()
	r.NextRound(rng)

	if _, err := r.Answer(r.Question.Correct, rng); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	score := r.Score
	if _, err := r.Answer(r.Question.Correct, rng); !errors.Is(err, ErrRoundResolved) {
		t.Fatalf("second answer err = %v, want ErrRoundResolved", err)
	}
	if r.Score != score {
		t.Errorf("second answer changed score: %d -> %d", score, r.Score)
	}
	if r.TickTimer(100, rng) {
		t.Error("timer fired on a resolved round")
	}
}

func TestRaceTimeoutResolvesOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	r := NewRace(TierEasy, testRaceRules())
	r.Start()
	r.NextRound(rng)

	for i := 0; i < 199; i++ {
		if r.TickTimer(0.1, rng) {
			t.Fatalf("timed out early at tick %d", i)
		}
	}
	if !r.TickTimer(0.1, rng) {
		t.Fatal("timer did not fire at zero")
	}
	if r.Timer != 0 {
		t.Errorf("timer = %v, want clamped to 0", r.Timer)
	}
	gain := r.OpponentPos - testRaceRules().StartPos
	if gain < 8 || gain > 12 {
		t.Errorf("opponent advanced %v on timeout, want within [8, 12]", gain)
	}
	if _, err := r.Answer(r.Question.Correct, rng); !errors.Is(err, ErrRoundResolved) {
		t.Fatalf("answer after timeout err = %v, want ErrRoundResolved", err)
	}
}

func TestRaceAnswerOutsidePlaying(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	r := NewRace(TierEasy, testRaceRules())
	if _, err := r.Answer("3:00", rng); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("menu answer err = %v, want ErrNotPlaying", err)
	}
	r.Start()
	if _, err := r.Answer("3:00", rng); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("countdown answer err = %v, want ErrNotPlaying", err)
	}
}

func TestRaceEndsWonAfterAllRounds(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	rules := testRaceRules()
	rules.CorrectAdvance = Range{Min: 1, Max: 1} // keep the player off the finish line
	r := NewRace(TierEasy, rules)
	r.Start()

	rounds := 0
	for r.NextRound(rng) {
		rounds++
		if rounds > rules.TotalRounds {
			t.Fatal("round budget exceeded")
		}
		if _, err := r.Answer(r.Question.Correct, rng); err != nil {
			t.Fatalf("round %d: %v", rounds, err)
		}
	}
	if rounds != rules.TotalRounds {
		t.Errorf("played %d rounds, want %d", rounds, rules.TotalRounds)
	}
	if r.Phase != PhaseEnded || !r.Won {
		t.Errorf("phase = %q won = %v, want ended and won", r.Phase, r.Won)
	}
	// Score includes the win bonus on top of the per-round awards.
	if r.Score != rules.TotalRounds*25+rules.WinBonus {
		t.Errorf("score = %d, want %d", r.Score, rules.TotalRounds*25+rules.WinBonus)
	}
}

func TestRacePlayerCrossingFinishEndsEarly(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rules := testRaceRules()
	rules.CorrectAdvance = Range{Min: 100, Max: 100}
	r := NewRace(TierEasy, rules)
	r.Start()
	r.NextRound(rng)

	if _, err := r.Answer(r.Question.Correct, rng); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if r.Phase != PhaseEnded || !r.Won {
		t.Fatalf("phase = %q won = %v, want ended and won", r.Phase, r.Won)
	}
	if r.PlayerPos != rules.FinishPos {
		t.Errorf("player pos = %v, want clamped to %v", r.PlayerPos, rules.FinishPos)
	}
}

func TestRaceOpponentCrossingFinishEndsLost(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	r := NewRace(TierEasy, testRaceRules())
	r.Start()
	r.NextRound(rng)

	r.DriftOpponent(1000)
	if r.Phase != PhaseEnded || r.Won {
		t.Fatalf("phase = %q won = %v, want ended and lost", r.Phase, r.Won)
	}
	if r.OpponentPos != testRaceRules().FinishPos {
		t.Errorf("opponent pos = %v, want clamped to %v", r.OpponentPos, testRaceRules().FinishPos)
	}
	if r.DriftOpponent(5); r.OpponentPos != testRaceRules().FinishPos {
		t.Error("drift after the race ended moved the opponent")
	}
}

func TestRaceNextRoundAfterEndedIsNoOp(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	r := NewRace(TierEasy, testRaceRules())
	r.Start()
	r.NextRound(rng)

	r.DriftOpponent(1000)
	if r.Phase != PhaseEnded {
		t.Fatalf("phase = %q, want ended", r.Phase)
	}

	round, score := r.Round, r.Score
	if r.NextRound(rng) {
		t.Fatal("a lost race started another round")
	}
	if r.Phase != PhaseEnded || r.Won {
		t.Errorf("phase = %q won = %v, want still ended and lost", r.Phase, r.Won)
	}
	if r.Round != round || r.Score != score {
		t.Errorf("ended race mutated: round %d -> %d, score %d -> %d", round, r.Round, score, r.Score)
	}
}
