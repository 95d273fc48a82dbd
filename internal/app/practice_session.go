package app

import "otterly/internal/domain"

// PracticeSession drives one table drill, multiplication or division. The
// study/practice/result flow is entirely command-driven; ticks only pace the
// feedback pause before the next question.
type PracticeSession struct {
	svc       *Service
	drill     *domain.Drill
	waitTicks int
}

func newPracticeSession(svc *Service, op domain.PracticeOp) *PracticeSession {
	return &PracticeSession{svc: svc, drill: domain.NewDrill(op)}
}

func (s *PracticeSession) Game() Game {
	if s.drill.Op == domain.PracticeDivide {
		return GameDivide
	}
	return GameMultiply
}

// Finished is always false; drills loop back to the study screen.
func (s *PracticeSession) Finished() bool { return false }

func (s *PracticeSession) Handle(cmd Command) ([]Event, error) {
	switch cmd.Action {
	case ActionSelectTable:
		if err := s.drill.SelectTable(cmd.Table); err != nil {
			return nil, err
		}
		return []Event{{Kind: EventSnapshot, Payload: s.Snapshot()}}, nil

	case ActionStart:
		if s.drill.Phase != domain.PracticeStudy {
			return nil, ErrAlreadyStarted
		}
		s.drill.Begin(s.svc.rng)
		return []Event{s.questionEvent()}, nil

	case ActionAnswer:
		outcome, err := s.drill.Submit(cmd.Value, s.svc.rng)
		if err != nil {
			return nil, err
		}
		if outcome == "" {
			return nil, nil
		}
		// A wrong answer shows the fact for longer before moving on.
		s.waitTicks = s.svc.cfg.Timing.WrongDelayTicks
		if outcome == domain.OutcomeCorrect {
			s.waitTicks = s.svc.cfg.Timing.ResolveDelayTicks
		}
		q := s.drill.Questions[s.drill.Index]
		return []Event{{Kind: EventRoundResolved, Payload: RoundResolvedPayload{
			Outcome:  outcome,
			Answer:   q.AnswerText(),
			Score:    s.drill.Correct,
			Streak:   s.drill.Streak,
			Feedback: s.drill.Feedback,
		}}}, nil

	case ActionBack:
		s.drill.BackToStudy()
		return []Event{{Kind: EventSnapshot, Payload: s.Snapshot()}}, nil
	}
	return nil, ErrUnknownAction
}

func (s *PracticeSession) Step() []Event {
	if s.drill.Phase != domain.PracticeRunning || !s.drill.Answered {
		return nil
	}
	s.waitTicks--
	if s.waitTicks > 0 {
		return nil
	}
	s.drill.Advance()
	if s.drill.Phase == domain.PracticeFinished {
		return []Event{{Kind: EventGameEnded, Payload: GameEndedPayload{
			Score:      s.drill.Accuracy(),
			Correct:    s.drill.Correct,
			Total:      len(s.drill.Questions),
			BestStreak: s.drill.BestStreak,
			Banner:     s.drill.ResultBanner(),
		}}}
	}
	return []Event{s.questionEvent()}
}

func (s *PracticeSession) questionEvent() Event {
	q := s.drill.Question()
	return Event{Kind: EventRoundStarted, Payload: RoundStartedPayload{
		Round: s.drill.Index + 1,
		Math:  &MathQuestionView{Prompt: q.Prompt},
	}}
}

type practiceSnapshot struct {
	Game      Game                 `json:"game"`
	Phase     domain.PracticePhase `json:"phase"`
	Table     int                  `json:"table"`
	Index     int                  `json:"index"`
	Correct   int                  `json:"correct"`
	Streak    int                  `json:"streak"`
	StudyRows []domain.StudyRow    `json:"study_rows,omitempty"`
	Math      *MathQuestionView    `json:"math,omitempty"`
}

func (s *PracticeSession) Snapshot() any {
	snap := practiceSnapshot{
		Game:    s.Game(),
		Phase:   s.drill.Phase,
		Table:   s.drill.Table,
		Index:   s.drill.Index,
		Correct: s.drill.Correct,
		Streak:  s.drill.Streak,
	}
	switch s.drill.Phase {
	case domain.PracticeStudy:
		snap.StudyRows = s.drill.StudyRows()
	case domain.PracticeRunning:
		if q := s.drill.Question(); q != nil {
			snap.Math = &MathQuestionView{Prompt: q.Prompt}
		}
	}
	return snap
}
