package app

import (
	"strconv"

	"otterly/internal/domain"
)

// QuizSession drives one speed quiz. There is no lead-in; a single global
// clock ticks the whole run down while questions cycle through a short
// resolve pause.
type QuizSession struct {
	svc       *Service
	quiz      *domain.Quiz
	waitTicks int
}

func newQuizSession(svc *Service, tier domain.Tier) *QuizSession {
	return &QuizSession{svc: svc, quiz: domain.NewQuiz(tier, svc.cfg.QuizRules())}
}

func (s *QuizSession) Game() Game { return GameQuiz }

func (s *QuizSession) Finished() bool {
	return s.quiz.Phase == domain.PhaseEnded
}

func (s *QuizSession) Handle(cmd Command) ([]Event, error) {
	switch cmd.Action {
	case ActionStart:
		if s.quiz.Phase != domain.PhaseMenu {
			return nil, ErrAlreadyStarted
		}
		s.quiz.Start(s.svc.rng)
		return []Event{s.questionEvent()}, nil

	case ActionAnswer:
		value, err := strconv.Atoi(cmd.Value)
		if err != nil {
			return nil, nil
		}
		outcome, err := s.quiz.Answer(value, s.svc.rng)
		if err != nil {
			return nil, err
		}
		s.waitTicks = s.svc.cfg.Timing.NextQuestionTicks
		return []Event{{Kind: EventRoundResolved, Payload: RoundResolvedPayload{
			Outcome: outcome,
			Answer:  strconv.Itoa(s.quiz.Question.Correct),
			Score:   s.quiz.Score,
			Streak:  s.quiz.Streak,
		}}}, nil
	}
	return nil, ErrUnknownAction
}

func (s *QuizSession) Step() []Event {
	if !s.quiz.InProgress() {
		return nil
	}
	if s.quiz.TickTimer(s.svc.secondsPerTick()) {
		return []Event{s.endedEvent()}
	}
	if s.quiz.Phase != domain.PhaseResolved {
		return nil
	}
	s.waitTicks--
	if s.waitTicks > 0 {
		return nil
	}
	if !s.quiz.NextQuestion(s.svc.rng) {
		return nil
	}
	return []Event{s.questionEvent()}
}

func (s *QuizSession) questionEvent() Event {
	q := s.quiz.Question
	return Event{Kind: EventRoundStarted, Payload: RoundStartedPayload{
		Timer:  s.quiz.TimeLeft,
		Choice: &ChoiceQuestionView{Prompt: q.Prompt, Options: q.Options},
	}}
}

func (s *QuizSession) endedEvent() Event {
	return Event{Kind: EventGameEnded, Payload: GameEndedPayload{
		Score:      s.quiz.Score,
		BestStreak: s.quiz.BestStreak,
		Total:      s.quiz.Total,
	}}
}

type quizSnapshot struct {
	Game     Game                `json:"game"`
	Phase    domain.Phase        `json:"phase"`
	Tier     domain.Tier         `json:"tier"`
	Score    int                 `json:"score"`
	Streak   int                 `json:"streak"`
	Total    int                 `json:"total"`
	TimeLeft float64             `json:"time_left"`
	Choice   *ChoiceQuestionView `json:"choice,omitempty"`
}

func (s *QuizSession) Snapshot() any {
	snap := quizSnapshot{
		Game:     GameQuiz,
		Phase:    s.quiz.Phase,
		Tier:     s.quiz.Tier,
		Score:    s.quiz.Score,
		Streak:   s.quiz.Streak,
		Total:    s.quiz.Total,
		TimeLeft: s.quiz.TimeLeft,
	}
	if s.quiz.Phase == domain.PhasePlaying && s.quiz.Question != nil {
		snap.Choice = &ChoiceQuestionView{Prompt: s.quiz.Question.Prompt, Options: s.quiz.Question.Options}
	}
	return snap
}
