package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func testQuizRules() QuizRules {
	return QuizRules{TotalSeconds: 30, BaseScore: 10, StreakScale: 2}
}

func TestQuizStreakScoring(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := NewQuiz(TierEasy, testQuizRules())
	q.Start(rng)

	// Three in a row: 10, 12, 14.
	want := []int{10, 22, 36}
	for i, total := range want {
		outcome, err := q.Answer(q.Question.Correct, rng)
		if err != nil {
			t.Fatalf("answer %d: %v", i+1, err)
		}
		if outcome != OutcomeCorrect {
			t.Fatalf("answer %d outcome = %q, want correct", i+1, outcome)
		}
		if q.Score != total {
			t.Fatalf("after answer %d score = %d, want %d", i+1, q.Score, total)
		}
		if !q.NextQuestion(rng) {
			t.Fatalf("answer %d: next question did not start", i+1)
		}
	}
	if q.Streak != 3 || q.BestStreak != 3 {
		t.Errorf("streak = %d best = %d, want 3 and 3", q.Streak, q.BestStreak)
	}

	// A miss resets the streak but keeps the best.
	if _, err := q.Answer(q.Question.Correct+1000, rng); err != nil {
		t.Fatalf("wrong answer: %v", err)
	}
	if q.Streak != 0 || q.BestStreak != 3 {
		t.Errorf("streak = %d best = %d after miss, want 0 and 3", q.Streak, q.BestStreak)
	}
	if q.Total != 4 {
		t.Errorf("total = %d, want 4", q.Total)
	}
}

func TestQuizAnswerResolvesOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	q := NewQuiz(TierMedium, testQuizRules())
	q.Start(rng)

	if _, err := q.Answer(q.Question.Correct, rng); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if _, err := q.Answer(q.Question.Correct, rng); !errors.Is(err, ErrRoundResolved) {
		t.Fatalf("second answer err = %v, want ErrRoundResolved", err)
	}
}

func TestQuizGlobalClockEndsRun(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	q := NewQuiz(TierEasy, testQuizRules())
	q.Start(rng)

	ticks := 0
	for !q.TickTimer(0.1) {
		ticks++
		if ticks > 400 {
			t.Fatal("clock never ran out")
		}
	}
	if ticks != 299 {
		t.Errorf("clock ran for %d ticks before the last, want 299", ticks)
	}
	if q.Phase != PhaseEnded || q.TimeLeft != 0 {
		t.Errorf("phase = %q time = %v, want ended at 0", q.Phase, q.TimeLeft)
	}
	if q.TickTimer(0.1) {
		t.Error("clock fired twice")
	}
	if _, err := q.Answer(1, rng); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("answer after end err = %v, want ErrNotPlaying", err)
	}
	if q.NextQuestion(rng) {
		t.Error("a new question started after the clock ran out")
	}
}

func TestQuizClockEndsRunWhileResolved(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	q := NewQuiz(TierHard, testQuizRules())
	q.Start(rng)

	if _, err := q.Answer(q.Question.Correct, rng); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	q.TimeLeft = 0.05
	if !q.TickTimer(0.1) {
		t.Fatal("clock did not end the run from the resolved phase")
	}
	if q.Phase != PhaseEnded {
		t.Errorf("phase = %q, want ended", q.Phase)
	}
}
