package app

import (
	"otterly/internal/bot"
	"otterly/internal/domain"
)

// BattleSession drives one tank battle on match ticks: the 3-2-1 lead-in, the
// per-turn countdown, and the pause between turns.
type BattleSession struct {
	svc    *Service
	battle *domain.Battle
	rival  bot.RivalIdentity

	countdownStep int
	waitTicks     int
}

func newBattleSession(svc *Service, tier domain.Tier) *BattleSession {
	return &BattleSession{
		svc:    svc,
		battle: domain.NewBattle(tier, svc.cfg.BattleRules(tier)),
		rival:  bot.GetRivalIdentity(svc.rng.Intn(bot.PoolSize())),
	}
}

func (s *BattleSession) Game() Game { return GameBattle }

func (s *BattleSession) Finished() bool {
	return s.battle.Phase == domain.PhaseEnded
}

func (s *BattleSession) Handle(cmd Command) ([]Event, error) {
	switch cmd.Action {
	case ActionStart:
		if s.battle.Phase != domain.PhaseMenu {
			return nil, ErrAlreadyStarted
		}
		s.battle.Start(s.svc.rng)
		s.countdownStep = 3
		s.waitTicks = s.svc.cfg.Timing.CountdownStepTicks
		return []Event{{Kind: EventCountdownStep, Payload: CountdownStepPayload{Step: 3}}}, nil

	case ActionAnswer:
		if cmd.Value == "" {
			return nil, nil
		}
		outcome, err := s.battle.Answer(cmd.Value, s.svc.rng)
		if err != nil {
			return nil, err
		}
		return s.resolvedEvents(outcome), nil
	}
	return nil, ErrUnknownAction
}

func (s *BattleSession) Step() []Event {
	switch s.battle.Phase {
	case domain.PhaseCountdown:
		return s.stepCountdown()
	case domain.PhasePlaying:
		if !s.battle.TickTimer(s.svc.secondsPerTick(), s.svc.rng) {
			return nil
		}
		return s.resolvedEvents(domain.OutcomeTimeout)
	case domain.PhaseResolved:
		s.waitTicks--
		if s.waitTicks > 0 {
			return nil
		}
		return s.beginTurn()
	}
	return nil
}

func (s *BattleSession) stepCountdown() []Event {
	s.waitTicks--
	if s.waitTicks > 0 {
		return nil
	}
	s.countdownStep--
	if s.countdownStep > 0 {
		s.waitTicks = s.svc.cfg.Timing.CountdownStepTicks
		return []Event{{Kind: EventCountdownStep, Payload: CountdownStepPayload{Step: s.countdownStep}}}
	}
	if s.countdownStep == 0 {
		s.waitTicks = s.svc.cfg.Timing.GoFlashTicks
		return []Event{{Kind: EventCountdownStep, Payload: CountdownStepPayload{Step: 0}}}
	}
	return s.beginTurn()
}

func (s *BattleSession) beginTurn() []Event {
	if !s.battle.NextTurn(s.svc.rng) {
		return []Event{s.endedEvent()}
	}
	q := s.battle.Question
	return []Event{{Kind: EventRoundStarted, Payload: RoundStartedPayload{
		Turn:      s.battle.Turn,
		TurnPhase: s.battle.TurnPhase,
		Timer:     s.battle.Timer,
		Math:      &MathQuestionView{Prompt: q.Prompt, Visual: q.Visual},
	}}}
}

func (s *BattleSession) resolvedEvents(outcome domain.Outcome) []Event {
	events := []Event{{Kind: EventRoundResolved, Payload: RoundResolvedPayload{
		Outcome:  outcome,
		Answer:   s.battle.Question.AnswerText(),
		Score:    s.battle.Score,
		Player:   s.battle.PlayerHP,
		Opponent: s.battle.EnemyHP,
	}}}
	if s.battle.Finished() {
		// Let NextTurn settle the win/loss on the next transition so the
		// destroyed tank stays on screen through the resolve pause.
		s.waitTicks = s.svc.cfg.Timing.EndDelayTicks
		return events
	}
	s.waitTicks = s.svc.cfg.Timing.ResolveDelayTicks
	return events
}

func (s *BattleSession) endedEvent() Event {
	return Event{Kind: EventGameEnded, Payload: GameEndedPayload{
		Won:   s.battle.Won,
		Score: s.battle.Score,
	}}
}

type battleSnapshot struct {
	Game      Game               `json:"game"`
	Phase     domain.Phase       `json:"phase"`
	Tier      domain.Tier        `json:"tier"`
	Rival     string             `json:"rival"`
	Turn      int                `json:"turn"`
	TurnPhase domain.BattlePhase `json:"turn_phase,omitempty"`
	Score     int                `json:"score"`
	PlayerHP  float64            `json:"player_hp"`
	EnemyHP   float64            `json:"enemy_hp"`
	Timer     float64            `json:"timer"`
	Math      *MathQuestionView  `json:"math,omitempty"`
}

func (s *BattleSession) Snapshot() any {
	snap := battleSnapshot{
		Game:      GameBattle,
		Phase:     s.battle.Phase,
		Tier:      s.battle.Tier,
		Rival:     s.rival.Name,
		Turn:      s.battle.Turn,
		TurnPhase: s.battle.TurnPhase,
		Score:     s.battle.Score,
		PlayerHP:  s.battle.PlayerHP,
		EnemyHP:   s.battle.EnemyHP,
		Timer:     s.battle.Timer,
	}
	if s.battle.Phase == domain.PhasePlaying && s.battle.Question != nil {
		snap.Math = &MathQuestionView{Prompt: s.battle.Question.Prompt, Visual: s.battle.Question.Visual}
	}
	return snap
}
