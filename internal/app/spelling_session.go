package app

import "otterly/internal/domain"

// SpellingSession drives one spelling trainer run. There are no gameplay
// timers; the tick loop only paces the short feedback pause between words.
type SpellingSession struct {
	svc       *Service
	spelling  *domain.Spelling
	waitTicks int
}

func newSpellingSession(svc *Service, tier domain.Tier) *SpellingSession {
	return &SpellingSession{
		svc:      svc,
		spelling: domain.NewSpelling(tier, svc.words, svc.rng),
	}
}

func (s *SpellingSession) Game() Game { return GameSpelling }

// Finished is always false; the trainer runs until the player leaves.
func (s *SpellingSession) Finished() bool { return false }

func (s *SpellingSession) Handle(cmd Command) ([]Event, error) {
	switch cmd.Action {
	case ActionAnswer:
		outcome, err := s.spelling.Check(cmd.Value)
		if err != nil {
			return nil, err
		}
		// A revealed word lingers longer than a green check.
		s.waitTicks = s.svc.cfg.Timing.WrongDelayTicks
		if outcome == domain.OutcomeCorrect {
			s.waitTicks = s.svc.cfg.Timing.ResolveDelayTicks
		}
		return []Event{{Kind: EventRoundResolved, Payload: RoundResolvedPayload{
			Outcome: outcome,
			Answer:  s.spelling.Current.Word,
			Score:   s.spelling.Correct,
		}}}, nil

	case ActionSkip:
		if err := s.spelling.Skip(); err != nil {
			return nil, err
		}
		s.waitTicks = s.svc.cfg.Timing.WrongDelayTicks
		return []Event{{Kind: EventRoundResolved, Payload: RoundResolvedPayload{
			Outcome: domain.OutcomeWrong,
			Answer:  s.spelling.Current.Word,
			Score:   s.spelling.Correct,
		}}}, nil

	case ActionSetTier:
		if !domain.ValidTier(domain.Tier(cmd.Tier)) {
			return nil, nil
		}
		s.spelling.SetTier(domain.Tier(cmd.Tier), s.svc.rng)
		if s.spelling.Phase != domain.PhasePlaying {
			return nil, nil
		}
		return []Event{s.wordEvent()}, nil
	}
	return nil, ErrUnknownAction
}

func (s *SpellingSession) Step() []Event {
	if s.spelling.Phase != domain.PhaseResolved {
		return nil
	}
	s.waitTicks--
	if s.waitTicks > 0 {
		return nil
	}
	if !s.spelling.NextWord(s.svc.rng) {
		return nil
	}
	return []Event{s.wordEvent()}
}

func (s *SpellingSession) wordEvent() Event {
	return Event{Kind: EventRoundStarted, Payload: RoundStartedPayload{
		Word: &WordView{Hint: s.spelling.Current.Hint, Length: len(s.spelling.Current.Word)},
	}}
}

type spellingSnapshot struct {
	Game    Game         `json:"game"`
	Phase   domain.Phase `json:"phase"`
	Tier    domain.Tier  `json:"tier"`
	Correct int          `json:"correct"`
	Total   int          `json:"total"`
	Word    *WordView    `json:"word,omitempty"`
}

func (s *SpellingSession) Snapshot() any {
	snap := spellingSnapshot{
		Game:    GameSpelling,
		Phase:   s.spelling.Phase,
		Tier:    s.spelling.Tier,
		Correct: s.spelling.Correct,
		Total:   s.spelling.Total,
	}
	if s.spelling.Phase == domain.PhasePlaying {
		snap.Word = &WordView{Hint: s.spelling.Current.Hint, Length: len(s.spelling.Current.Word)}
	}
	return snap
}
