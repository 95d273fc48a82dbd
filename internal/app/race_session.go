package app

import (
	"otterly/internal/bot"
	"otterly/internal/domain"
)

// RaceSession drives one time race: the 3-2-1 lead-in, per-round countdown
// timers, and the rival car's drift all advance on match ticks.
type RaceSession struct {
	svc   *Service
	race  *domain.Race
	rival *bot.Agent

	countdownStep int // 3..1, then 0 for the GO flash
	waitTicks     int // ticks until the next phase transition
	driftTicks    int
}

func newRaceSession(svc *Service, tier domain.Tier) *RaceSession {
	rules := svc.cfg.RaceRules(tier)
	identity := bot.GetRivalIdentity(svc.rng.Intn(bot.PoolSize()))
	return &RaceSession{
		svc:   svc,
		race:  domain.NewRace(tier, rules),
		rival: bot.NewAgent(identity, rules.OpponentSpeed),
	}
}

func (s *RaceSession) Game() Game { return GameRace }

// Finished reports whether the match can shut down.
func (s *RaceSession) Finished() bool {
	return s.race.Phase == domain.PhaseEnded
}

// Handle applies one client command.
func (s *RaceSession) Handle(cmd Command) ([]Event, error) {
	switch cmd.Action {
	case ActionStart:
		if s.race.Phase != domain.PhaseMenu {
			return nil, ErrAlreadyStarted
		}
		s.race.Start()
		s.countdownStep = 3
		s.waitTicks = s.svc.cfg.Timing.CountdownStepTicks
		return []Event{{Kind: EventCountdownStep, Payload: CountdownStepPayload{Step: 3}}}, nil

	case ActionAnswer:
		outcome, err := s.race.Answer(cmd.Value, s.svc.rng)
		if err != nil {
			return nil, err
		}
		events := []Event{{Kind: EventRoundResolved, Payload: RoundResolvedPayload{
			Outcome:  outcome,
			Answer:   s.race.Question.Correct,
			Score:    s.race.Score,
			Player:   s.race.PlayerPos,
			Opponent: s.race.OpponentPos,
		}}}
		if s.race.Phase == domain.PhaseEnded {
			events = append(events, s.endedEvent())
		} else {
			s.waitTicks = s.svc.cfg.Timing.ResolveDelayTicks
		}
		return events, nil
	}
	return nil, ErrUnknownAction
}

// Step advances one match tick.
func (s *RaceSession) Step() []Event {
	switch s.race.Phase {
	case domain.PhaseCountdown:
		return s.stepCountdown()
	case domain.PhasePlaying:
		return append(s.stepDrift(), s.stepTimer()...)
	case domain.PhaseResolved:
		events := s.stepDrift()
		if s.race.Phase == domain.PhaseEnded {
			// The rival crossed the finish line on this tick; the
			// game_ended event is already in the batch.
			return events
		}
		s.waitTicks--
		if s.waitTicks > 0 {
			return events
		}
		return append(events, s.beginRound()...)
	}
	return nil
}

func (s *RaceSession) stepCountdown() []Event {
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
	return s.beginRound()
}

func (s *RaceSession) stepTimer() []Event {
	if !s.race.TickTimer(s.svc.secondsPerTick(), s.svc.rng) {
		return nil
	}
	events := []Event{{Kind: EventRoundResolved, Payload: RoundResolvedPayload{
		Outcome:  domain.OutcomeTimeout,
		Answer:   s.race.Question.Correct,
		Score:    s.race.Score,
		Player:   s.race.PlayerPos,
		Opponent: s.race.OpponentPos,
	}}}
	if s.race.Phase == domain.PhaseEnded {
		return append(events, s.endedEvent())
	}
	s.waitTicks = s.svc.cfg.Timing.ResolveDelayTicks
	return events
}

// stepDrift advances the rival car on its own cadence.
func (s *RaceSession) stepDrift() []Event {
	s.driftTicks++
	if s.driftTicks < s.svc.cfg.Timing.DriftIntervalTicks {
		return nil
	}
	s.driftTicks = 0
	s.race.DriftOpponent(s.rival.Drift(s.svc.rng))
	events := []Event{{Kind: EventOpponentAdvanced, Payload: OpponentAdvancedPayload{
		Position: s.race.OpponentPos,
		Taunt:    s.rival.Taunt(s.svc.rng),
	}}}
	if s.race.Phase == domain.PhaseEnded {
		events = append(events, s.endedEvent())
	}
	return events
}

func (s *RaceSession) beginRound() []Event {
	if !s.race.NextRound(s.svc.rng) {
		return []Event{s.endedEvent()}
	}
	q := s.race.Question
	return []Event{{Kind: EventRoundStarted, Payload: RoundStartedPayload{
		Round: s.race.Round,
		Timer: s.race.Timer,
		Clock: &ClockQuestionView{
			HourAngle:   q.Time.HourAngle(),
			MinuteAngle: q.Time.MinuteAngle(),
			Options:     q.Options,
		},
	}}}
}

func (s *RaceSession) endedEvent() Event {
	return Event{Kind: EventGameEnded, Payload: GameEndedPayload{
		Won:   s.race.Won,
		Score: s.race.Score,
	}}
}

// raceSnapshot mirrors what a rejoining client needs to redraw the screen.
type raceSnapshot struct {
	Game     Game               `json:"game"`
	Phase    domain.Phase       `json:"phase"`
	Tier     domain.Tier        `json:"tier"`
	Rival    string             `json:"rival"`
	Round    int                `json:"round"`
	Score    int                `json:"score"`
	Player   float64            `json:"player"`
	Opponent float64            `json:"opponent"`
	Timer    float64            `json:"timer"`
	Clock    *ClockQuestionView `json:"clock,omitempty"`
}

func (s *RaceSession) Snapshot() any {
	snap := raceSnapshot{
		Game:     GameRace,
		Phase:    s.race.Phase,
		Tier:     s.race.Tier,
		Rival:    s.rival.Identity.Name,
		Round:    s.race.Round,
		Score:    s.race.Score,
		Player:   s.race.PlayerPos,
		Opponent: s.race.OpponentPos,
		Timer:    s.race.Timer,
	}
	if s.race.Phase == domain.PhasePlaying && s.race.Question != nil {
		snap.Clock = &ClockQuestionView{
			HourAngle:   s.race.Question.Time.HourAngle(),
			MinuteAngle: s.race.Question.Time.MinuteAngle(),
			Options:     s.race.Question.Options,
		}
	}
	return snap
}
