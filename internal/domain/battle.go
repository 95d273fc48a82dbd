package domain

import (
	"math"
	"math/rand"
)

// BattlePhase distinguishes the two alternating turn kinds.
type BattlePhase string

const (
	BattleAttack BattlePhase = "attack"
	BattleDefend BattlePhase = "defend"
)

// BattleRules holds the numeric tuning for a tank battle run.
type BattleRules struct {
	MaxHP          float64
	TimerSeconds   float64
	MaxTable       int
	HardTableRange Range // table locked for the whole run on the hard tier
	BaseScore      int
	BonusScale     int
	WinBonus       int
	AttackDamage   float64 // base damage of a landed shot
	IncomingDamage Range   // enemy shot strength while defending
	FailPenalty    Range   // damage taken on a failed defence
}

// speedTier maps the remaining-time fraction to a multiplier: fast answers hit
// harder and block more.
func speedTier(fraction, fast, mid, slow float64) float64 {
	switch {
	case fraction > 0.66:
		return fast
	case fraction > 0.33:
		return mid
	default:
		return slow
	}
}

// Battle is the authoritative state of one math tank battle session.
type Battle struct {
	Phase       Phase
	Tier        Tier
	Rules       BattleRules
	Turn        int
	TurnPhase   BattlePhase
	Score       int
	PlayerHP    float64
	EnemyHP     float64
	Timer       float64
	Question    *MathQuestion
	Answered    bool
	Won         bool
	LockedTable int // table of the run on the hard tier, 0 otherwise
}

// NewBattle returns a battle in the menu phase.
func NewBattle(tier Tier, rules BattleRules) *Battle {
	return &Battle{
		Phase:    PhaseMenu,
		Tier:     tier,
		Rules:    rules,
		PlayerHP: rules.MaxHP,
		EnemyHP:  rules.MaxHP,
	}
}

// Start resets run state, locks the hard-tier table, and enters countdown.
func (b *Battle) Start(rng *rand.Rand) {
	b.Phase = PhaseCountdown
	b.Turn = 0
	b.Score = 0
	b.PlayerHP = b.Rules.MaxHP
	b.EnemyHP = b.Rules.MaxHP
	b.Timer = 0
	b.Question = nil
	b.Answered = false
	b.Won = false
	b.LockedTable = 0
	if b.Tier == TierHard {
		b.LockedTable = b.Rules.HardTableRange.Roll(rng)
	}
}

// NextTurn starts the next turn, or ends the battle when a tank is destroyed.
// Odd turns attack, even turns defend. Reports whether a turn began.
func (b *Battle) NextTurn(rng *rand.Rand) bool {
	if b.PlayerHP <= 0 {
		b.finish(false)
		return false
	}
	if b.EnemyHP <= 0 {
		b.finish(true)
		return false
	}
	q := GenerateBattleQuestion(rng, b.Rules.MaxTable, b.LockedTable)
	b.Turn++
	if b.Turn%2 == 1 {
		b.TurnPhase = BattleAttack
	} else {
		b.TurnPhase = BattleDefend
	}
	b.Question = &q
	b.Timer = b.Rules.TimerSeconds
	b.Answered = false
	b.Phase = PhasePlaying
	return true
}

// Answer resolves the current turn against the typed value. Empty input is
// ignored without resolving; a second resolution returns ErrRoundResolved.
func (b *Battle) Answer(value string, rng *rand.Rand) (Outcome, error) {
	if b.Phase != PhasePlaying {
		return "", ErrNotPlaying
	}
	if b.Answered {
		return "", ErrRoundResolved
	}
	b.Answered = true
	b.Phase = PhaseResolved

	fraction := b.Timer / b.Rules.TimerSeconds
	if value == b.Question.AnswerText() {
		bonus := int(math.Ceil(fraction * float64(b.Rules.BonusScale)))
		b.Score += b.Rules.BaseScore + bonus
		if b.TurnPhase == BattleAttack {
			damage := math.Round(b.Rules.AttackDamage * speedTier(fraction, 1.3, 1.0, 0.7))
			b.EnemyHP = Clamp(b.EnemyHP-damage, 0, b.Rules.MaxHP)
		} else {
			incoming := float64(b.Rules.IncomingDamage.Roll(rng))
			blocked := math.Round(incoming * speedTier(fraction, 0.6, 0.3, 0.1))
			b.PlayerHP = Clamp(b.PlayerHP-(incoming-blocked), 0, b.Rules.MaxHP)
		}
		return OutcomeCorrect, nil
	}

	b.applyMiss(rng)
	return OutcomeWrong, nil
}

// TickTimer decrements the turn countdown by dt seconds, resolving the turn as
// a timeout exactly once when it crosses zero.
func (b *Battle) TickTimer(dt float64, rng *rand.Rand) (timedOut bool) {
	if b.Phase != PhasePlaying || b.Answered {
		return false
	}
	b.Timer -= dt
	if b.Timer > 0 {
		return false
	}
	b.Timer = 0
	b.Answered = true
	b.Phase = PhaseResolved
	b.applyMiss(rng)
	return true
}

// InProgress reports whether gameplay timers should run.
func (b *Battle) InProgress() bool {
	return b.Phase == PhasePlaying || b.Phase == PhaseResolved
}

// Finished reports whether either tank has been destroyed.
func (b *Battle) Finished() bool {
	return b.PlayerHP <= 0 || b.EnemyHP <= 0
}

// applyMiss handles a wrong answer or timeout: a missed shot deals no damage,
// a failed defence takes an unblocked hit.
func (b *Battle) applyMiss(rng *rand.Rand) {
	if b.TurnPhase == BattleDefend {
		b.PlayerHP = Clamp(b.PlayerHP-float64(b.Rules.FailPenalty.Roll(rng)), 0, b.Rules.MaxHP)
	}
}

func (b *Battle) finish(won bool) {
	b.Phase = PhaseEnded
	b.Won = won
	if won {
		b.Score += b.Rules.WinBonus
	}
}
