package app

import (
	"math/rand"
	"time"

	"otterly/internal/config"
	"otterly/internal/domain"
)

// Service builds arcade sessions from the active tuning. All randomness flows
// through the injected rng so tests stay deterministic.
type Service struct {
	rng   *rand.Rand
	cfg   *config.ArcadeConfig
	words domain.WordList
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		rng:   rng,
		cfg:   config.GetArcadeConfig(),
		words: config.GetWords(),
	}
}

// NewSession builds a session for the requested game and difficulty. An
// invalid tier falls back to easy rather than failing the match.
func (s *Service) NewSession(game Game, tier domain.Tier) (Session, error) {
	if !domain.ValidTier(tier) {
		tier = domain.TierEasy
	}
	switch game {
	case GameRace:
		return newRaceSession(s, tier), nil
	case GameBattle:
		return newBattleSession(s, tier), nil
	case GameQuiz:
		return newQuizSession(s, tier), nil
	case GameSpelling:
		return newSpellingSession(s, tier), nil
	case GameMultiply:
		return newPracticeSession(s, domain.PracticeMultiply), nil
	case GameDivide:
		return newPracticeSession(s, domain.PracticeDivide), nil
	case GameWritten:
		return newWrittenSession(s), nil
	case GameCalculator:
		return newCalculatorSession(), nil
	}
	return nil, ErrUnknownGame
}

// secondsPerTick converts the configured tick rate to the dt fed into domain
// timers.
func (s *Service) secondsPerTick() float64 {
	rate := s.cfg.Timing.TickRate
	if rate <= 0 {
		rate = 10
	}
	return 1.0 / float64(rate)
}
