package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"otterly/internal/domain"
)

// TimingConfig holds the tick-based pacing shared by every arcade session.
// All delays are match ticks; at the default 10 ticks per second one tick is
// 100ms.
type TimingConfig struct {
	TickRate            int `json:"tick_rate"`
	CountdownStepTicks  int `json:"countdown_step_ticks"`
	GoFlashTicks        int `json:"go_flash_ticks"`
	ResolveDelayTicks   int `json:"resolve_delay_ticks"`
	WrongDelayTicks     int `json:"wrong_delay_ticks"`
	NextQuestionTicks   int `json:"next_question_ticks"`
	WrittenAdvanceTicks int `json:"written_advance_ticks"`
	EndDelayTicks       int `json:"end_delay_ticks"`
	DriftIntervalTicks  int `json:"drift_interval_ticks"`
}

// RaceTierConfig is the per-difficulty tuning of the time race.
type RaceTierConfig struct {
	TimerSeconds  float64 `json:"timer_seconds"`
	OpponentSpeed float64 `json:"opponent_speed"`
}

// BattleTierConfig is the per-difficulty tuning of the tank battle.
type BattleTierConfig struct {
	TimerSeconds float64 `json:"timer_seconds"`
	MaxTable     int     `json:"max_table"`
}

// RaceConfig groups the tier-independent race tuning.
type RaceConfig struct {
	TotalRounds    int                            `json:"total_rounds"`
	StartPos       float64                        `json:"start_pos"`
	FinishPos      float64                        `json:"finish_pos"`
	BaseScore      int                            `json:"base_score"`
	BonusScale     int                            `json:"bonus_scale"`
	WinBonus       int                            `json:"win_bonus"`
	CorrectAdvance domain.Range                   `json:"correct_advance"`
	WrongPenalty   domain.Range                   `json:"wrong_penalty"`
	TimeoutPenalty domain.Range                   `json:"timeout_penalty"`
	Tiers          map[domain.Tier]RaceTierConfig `json:"tiers"`
}

// BattleConfig groups the tier-independent battle tuning.
type BattleConfig struct {
	MaxHP          float64                          `json:"max_hp"`
	HardTable      domain.Range                     `json:"hard_table"`
	BaseScore      int                              `json:"base_score"`
	BonusScale     int                              `json:"bonus_scale"`
	WinBonus       int                              `json:"win_bonus"`
	AttackDamage   float64                          `json:"attack_damage"`
	IncomingDamage domain.Range                     `json:"incoming_damage"`
	FailPenalty    domain.Range                     `json:"fail_penalty"`
	Tiers          map[domain.Tier]BattleTierConfig `json:"tiers"`
}

// QuizConfig groups the speed quiz tuning.
type QuizConfig struct {
	TotalSeconds float64 `json:"total_seconds"`
	BaseScore    int     `json:"base_score"`
	StreakScale  int     `json:"streak_scale"`
}

// ArcadeConfig is the whole game tuning file.
type ArcadeConfig struct {
	Timing TimingConfig `json:"timing"`
	Race   RaceConfig   `json:"race"`
	Battle BattleConfig `json:"battle"`
	Quiz   QuizConfig   `json:"quiz"`
}

var (
	cfg      *ArcadeConfig
	loadOnce sync.Once
	loadErr  error
)

// DefaultArcadeConfig returns the built-in tuning, used when no config file is
// deployed alongside the plugin.
func DefaultArcadeConfig() *ArcadeConfig {
	return &ArcadeConfig{
		Timing: TimingConfig{
			TickRate:            10,
			CountdownStepTicks:  8,
			GoFlashTicks:        5,
			ResolveDelayTicks:   12,
			WrongDelayTicks:     20,
			NextQuestionTicks:   8,
			WrittenAdvanceTicks: 25,
			EndDelayTicks:       25,
			DriftIntervalTicks:  5,
		},
		Race: RaceConfig{
			TotalRounds:    7,
			StartPos:       8,
			FinishPos:      92,
			BaseScore:      10,
			BonusScale:     15,
			WinBonus:       50,
			CorrectAdvance: domain.Range{Min: 10, Max: 14},
			WrongPenalty:   domain.Range{Min: 6, Max: 10},
			TimeoutPenalty: domain.Range{Min: 8, Max: 12},
			Tiers: map[domain.Tier]RaceTierConfig{
				domain.TierEasy:   {TimerSeconds: 20, OpponentSpeed: 1.2},
				domain.TierMedium: {TimerSeconds: 15, OpponentSpeed: 1.6},
				domain.TierHard:   {TimerSeconds: 12, OpponentSpeed: 2.2},
			},
		},
		Battle: BattleConfig{
			MaxHP:          100,
			HardTable:      domain.Range{Min: 6, Max: 12},
			BaseScore:      10,
			BonusScale:     10,
			WinBonus:       100,
			AttackDamage:   15,
			IncomingDamage: domain.Range{Min: 15, Max: 20},
			FailPenalty:    domain.Range{Min: 18, Max: 25},
			Tiers: map[domain.Tier]BattleTierConfig{
				domain.TierEasy:   {TimerSeconds: 8, MaxTable: 5},
				domain.TierMedium: {TimerSeconds: 7, MaxTable: 10},
				domain.TierHard:   {TimerSeconds: 6, MaxTable: 12},
			},
		},
		Quiz: QuizConfig{
			TotalSeconds: 30,
			BaseScore:    10,
			StreakScale:  2,
		},
	}
}

// LoadArcadeConfig loads the game tuning from the given path. A missing or
// broken file leaves the built-in defaults active.
func LoadArcadeConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read arcade config: %w", err)
			return
		}

		c := DefaultArcadeConfig()
		if err := json.Unmarshal(data, c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal arcade config: %w", err)
			return
		}
		cfg = c
	})
	return loadErr
}

// GetArcadeConfig returns the active tuning, falling back to defaults when no
// file was loaded.
func GetArcadeConfig() *ArcadeConfig {
	if cfg == nil {
		return DefaultArcadeConfig()
	}
	return cfg
}

// RaceRules assembles the domain tuning for a race at the given tier.
func (c *ArcadeConfig) RaceRules(tier domain.Tier) domain.RaceRules {
	tc, ok := c.Race.Tiers[tier]
	if !ok {
		tc = c.Race.Tiers[domain.TierEasy]
	}
	return domain.RaceRules{
		TotalRounds:    c.Race.TotalRounds,
		StartPos:       c.Race.StartPos,
		FinishPos:      c.Race.FinishPos,
		TimerSeconds:   tc.TimerSeconds,
		OpponentSpeed:  tc.OpponentSpeed,
		BaseScore:      c.Race.BaseScore,
		BonusScale:     c.Race.BonusScale,
		WinBonus:       c.Race.WinBonus,
		CorrectAdvance: c.Race.CorrectAdvance,
		WrongPenalty:   c.Race.WrongPenalty,
		TimeoutPenalty: c.Race.TimeoutPenalty,
	}
}

// BattleRules assembles the domain tuning for a battle at the given tier.
func (c *ArcadeConfig) BattleRules(tier domain.Tier) domain.BattleRules {
	tc, ok := c.Battle.Tiers[tier]
	if !ok {
		tc = c.Battle.Tiers[domain.TierEasy]
	}
	return domain.BattleRules{
		MaxHP:          c.Battle.MaxHP,
		TimerSeconds:   tc.TimerSeconds,
		MaxTable:       tc.MaxTable,
		HardTableRange: c.Battle.HardTable,
		BaseScore:      c.Battle.BaseScore,
		BonusScale:     c.Battle.BonusScale,
		WinBonus:       c.Battle.WinBonus,
		AttackDamage:   c.Battle.AttackDamage,
		IncomingDamage: c.Battle.IncomingDamage,
		FailPenalty:    c.Battle.FailPenalty,
	}
}

// QuizRules assembles the domain tuning for a speed quiz.
func (c *ArcadeConfig) QuizRules() domain.QuizRules {
	return domain.QuizRules{
		TotalSeconds: c.Quiz.TotalSeconds,
		BaseScore:    c.Quiz.BaseScore,
		StreakScale:  c.Quiz.StreakScale,
	}
}
