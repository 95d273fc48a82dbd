package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func testBattleRules() BattleRules {
	return BattleRules{
		MaxHP:          100,
		TimerSeconds:   8,
		MaxTable:       5,
		HardTableRange: Range{Min: 6, Max: 12},
		BaseScore:      10,
		BonusScale:     10,
		WinBonus:       100,
		AttackDamage:   15,
		IncomingDamage: Range{Min: 15, Max: 20},
		FailPenalty:    Range{Min: 18, Max: 25},
	}
}

func TestSpeedTier(t *testing.T) {
	tests := []struct {
		fraction float64
		want     float64
	}{
		{1.0, 1.3},
		{0.67, 1.3},
		{0.66, 1.0},
		{0.34, 1.0},
		{0.33, 0.7},
		{0.0, 0.7},
	}
	for _, tt := range tests {
		if got := speedTier(tt.fraction, 1.3, 1.0, 0.7); got != tt.want {
			t.Errorf("speedTier(%v) = %v, want %v", tt.fraction, got, tt.want)
		}
	}
}

func TestBattleTurnParity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBattle(TierEasy, testBattleRules())
	b.Start(rng)

	want := []BattlePhase{BattleAttack, BattleDefend, BattleAttack, BattleDefend}
	for i, phase := range want {
		if !b.NextTurn(rng) {
			t.Fatalf("turn %d did not start", i+1)
		}
		if b.TurnPhase != phase {
			t.Fatalf("turn %d phase = %q, want %q", i+1, b.TurnPhase, phase)
		}
		if _, err := b.Answer(b.Question.AnswerText(), rng); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
	}
}

func TestBattleFastAttackDamage(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	b := NewBattle(TierEasy, testBattleRules())
	b.Start(rng)
	b.NextTurn(rng)

	// Full timer remaining: 15 × 1.3 rounds to 20 damage, bonus ceil(1.0×10).
	if _, err := b.Answer(b.Question.AnswerText(), rng); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if b.EnemyHP != 80 {
		t.Errorf("enemy HP = %v, want 80", b.EnemyHP)
	}
	if b.Score != 20 {
		t.Errorf("score = %d, want 20", b.Score)
	}
	if b.PlayerHP != 100 {
		t.Errorf("player HP = %v, want untouched 100", b.PlayerHP)
	}
}

func TestBattleSlowAttackDamage(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := NewBattle(TierEasy, testBattleRules())
	b.Start(rng)
	b.NextTurn(rng)

	// Run the timer down to under a third: 15 × 0.7 rounds to 11 damage.
	for b.Timer > 0.2*b.Rules.TimerSeconds {
		b.TickTimer(0.1, rng)
	}
	if _, err := b.Answer(b.Question.AnswerText(), rng); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if b.EnemyHP != 89 {
		t.Errorf("enemy HP = %v, want 89", b.EnemyHP)
	}
}

func TestBattleDefendBlocksPartOfShot(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	rules := testBattleRules()
	rules.IncomingDamage = Range{Min: 20, Max: 20}
	b := NewBattle(TierEasy, rules)
	b.Start(rng)
	b.NextTurn(rng)
	if _, err := b.Answer(b.Question.AnswerText(), rng); err != nil {
		t.Fatalf("attack turn: %v", err)
	}
	b.NextTurn(rng)
	if b.TurnPhase != BattleDefend {
		t.Fatalf("turn phase = %q, want defend", b.TurnPhase)
	}

	// Fast block: 20 incoming, 20 × 0.6 = 12 blocked, 8 through.
	if _, err := b.Answer(b.Question.AnswerText(), rng); err != nil {
		t.Fatalf("defend turn: %v", err)
	}
	if b.PlayerHP != 92 {
		t.Errorf("player HP = %v, want 92", b.PlayerHP)
	}
}

func TestBattleFailedDefenceTakesPenalty(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	rules := testBattleRules()
	rules.FailPenalty = Range{Min: 25, Max: 25}
	b := NewBattle(TierEasy, rules)
	b.Start(rng)
	b.NextTurn(rng)
	if _, err := b.Answer(b.Question.AnswerText(), rng); err != nil {
		t.Fatalf("attack turn: %v", err)
	}
	b.NextTurn(rng)

	outcome, err := b.Answer("not a number", rng)
	if err != nil {
		t.Fatalf("defend turn: %v", err)
	}
	if outcome != OutcomeWrong {
		t.Fatalf("outcome = %q, want wrong", outcome)
	}
	if b.PlayerHP != 75 {
		t.Errorf("player HP = %v, want 75", b.PlayerHP)
	}
}

func TestBattleMissedAttackDealsNothing(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	b := NewBattle(TierEasy, testBattleRules())
	b.Start(rng)
	b.NextTurn(rng)

	if _, err := b.Answer("0", rng); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if b.EnemyHP != 100 {
		t.Errorf("enemy HP = %v, want untouched 100", b.EnemyHP)
	}
	if b.PlayerHP != 100 {
		t.Errorf("player HP = %v, want untouched 100", b.PlayerHP)
	}
}

func TestBattleTimeoutResolvesOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewBattle(TierEasy, testBattleRules())
	b.Start(rng)
	b.NextTurn(rng)
	if _, err := b.Answer(b.Question.AnswerText(), rng); err != nil {
		t.Fatalf("attack turn: %v", err)
	}
	b.NextTurn(rng)

	fired := false
	for i := 0; i < 100; i++ {
		if b.TickTimer(0.1, rng) {
			fired = true
			break
		}
	}
	if !fired {
		t.Fatal("timer never fired")
	}
	hp := b.PlayerHP
	if hp >= 100-18+1 || hp < 100-25 {
		t.Errorf("player HP = %v after timed-out defence, want within [75, 82]", hp)
	}
	if b.TickTimer(0.1, rng) {
		t.Error("timer fired twice")
	}
	if _, err := b.Answer(b.Question.AnswerText(), rng); !errors.Is(err, ErrRoundResolved) {
		t.Fatalf("answer after timeout err = %v, want ErrRoundResolved", err)
	}
}

func TestBattleEndsWhenEnemyDestroyed(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	b := NewBattle(TierEasy, testBattleRules())
	b.Start(rng)
	b.EnemyHP = 5
	b.NextTurn(rng)
	if _, err := b.Answer(b.Question.AnswerText(), rng); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if b.EnemyHP != 0 {
		t.Fatalf("enemy HP = %v, want clamped to 0", b.EnemyHP)
	}
	score := b.Score
	if b.NextTurn(rng) {
		t.Fatal("a new turn started after the enemy tank was destroyed")
	}
	if b.Phase != PhaseEnded || !b.Won {
		t.Errorf("phase = %q won = %v, want ended and won", b.Phase, b.Won)
	}
	if b.Score != score+b.Rules.WinBonus {
		t.Errorf("score = %d, want win bonus added to %d", b.Score, score)
	}
}

func TestBattleEndsWhenPlayerDestroyed(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	b := NewBattle(TierEasy, testBattleRules())
	b.Start(rng)
	b.PlayerHP = 0
	if b.NextTurn(rng) {
		t.Fatal("a new turn started after the player tank was destroyed")
	}
	if b.Phase != PhaseEnded || b.Won {
		t.Errorf("phase = %q won = %v, want ended and lost", b.Phase, b.Won)
	}
}

func TestBattleHardTierLocksTable(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	b := NewBattle(TierHard, testBattleRules())
	b.Start(rng)
	if b.LockedTable < 6 || b.LockedTable > 12 {
		t.Fatalf("locked table = %d, want within [6, 12]", b.LockedTable)
	}
	for i := 0; i < 10; i++ {
		b.NextTurn(rng)
		if b.Question.A != b.LockedTable {
			t.Fatalf("turn %d operand = %d, want locked table %d", i+1, b.Question.A, b.LockedTable)
		}
		if b.Question.B < 1 || b.Question.B > 12 {
			t.Fatalf("turn %d multiplier = %d, want within [1, 12]", i+1, b.Question.B)
		}
		if _, err := b.Answer(b.Question.AnswerText(), rng); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
		if b.Phase == PhaseEnded {
			break
		}
	}
}
