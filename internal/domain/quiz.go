package domain

import "math/rand"

// QuizRules holds the numeric tuning for a speed quiz run.
type QuizRules struct {
	TotalSeconds float64
	BaseScore    int
	StreakScale  int // per-streak bonus added to each correct answer
}

// Quiz is the authoritative state of one speed quiz session. A single global
// timer bounds the whole run; rounds have no individual timeout.
type Quiz struct {
	Phase      Phase
	Tier       Tier
	Rules      QuizRules
	Score      int
	Streak     int
	BestStreak int
	Total      int
	TimeLeft   float64
	Question   *ChoiceQuestion
	Answered   bool
}

// NewQuiz returns a quiz in the menu phase.
func NewQuiz(tier Tier, rules QuizRules) *Quiz {
	return &Quiz{Phase: PhaseMenu, Tier: tier, Rules: rules}
}

// Start resets run state and begins the first question immediately; the quiz
// has no countdown lead-in.
func (q *Quiz) Start(rng *rand.Rand) {
	q.Score = 0
	q.Streak = 0
	q.BestStreak = 0
	q.Total = 0
	q.TimeLeft = q.Rules.TotalSeconds
	q.nextQuestion(rng)
}

// nextQuestion swaps in a fresh question and reopens the round.
func (q *Quiz) nextQuestion(rng *rand.Rand) {
	question := GenerateQuizQuestion(rng, q.Tier)
	q.Question = &question
	q.Answered = false
	q.Phase = PhasePlaying
}

// NextQuestion advances past a resolved round unless the clock already ran out.
func (q *Quiz) NextQuestion(rng *rand.Rand) bool {
	if q.Phase != PhaseResolved {
		return false
	}
	q.nextQuestion(rng)
	return true
}

// Answer resolves the current question. Correct answers score the base plus a
// growing streak bonus; wrong answers reset the streak.
func (q *Quiz) Answer(value int, rng *rand.Rand) (Outcome, error) {
	if q.Phase != PhasePlaying {
		return "", ErrNotPlaying
	}
	if q.Answered {
		return "", ErrRoundResolved
	}
	q.Answered = true
	q.Phase = PhaseResolved
	q.Total++

	if value == q.Question.Correct {
		q.Score += q.Rules.BaseScore + q.Streak*q.Rules.StreakScale
		q.Streak++
		if q.Streak > q.BestStreak {
			q.BestStreak = q.Streak
		}
		return OutcomeCorrect, nil
	}
	q.Streak = 0
	return OutcomeWrong, nil
}

// TickTimer decrements the global clock by dt seconds. Crossing zero ends the
// run exactly once, regardless of whether a round is open or resolved.
func (q *Quiz) TickTimer(dt float64) (ended bool) {
	if !q.InProgress() {
		return false
	}
	q.TimeLeft -= dt
	if q.TimeLeft > 0 {
		return false
	}
	q.TimeLeft = 0
	q.Phase = PhaseEnded
	return true
}

// InProgress reports whether the global clock should run.
func (q *Quiz) InProgress() bool {
	return q.Phase == PhasePlaying || q.Phase == PhaseResolved
}
