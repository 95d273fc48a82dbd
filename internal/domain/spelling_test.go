package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func testWords() WordList {
	return WordList{
		TierEasy:   {{Word: "cat", Hint: "A furry pet that says meow"}},
		TierMedium: {{Word: "planet", Hint: "Earth is one"}},
		TierHard:   {{Word: "necessary", Hint: "Something you must have"}},
	}
}

func TestSpellingCheck(t *testing.T) {
	tests := []struct {
		name    string
		attempt string
		want    Outcome
	}{
		{name: "exact", attempt: "cat", want: OutcomeCorrect},
		{name: "case insensitive", attempt: "CAT", want: OutcomeCorrect},
		{name: "surrounding whitespace", attempt: "  cat  ", want: OutcomeCorrect},
		{name: "wrong", attempt: "kat", want: OutcomeWrong},
		{name: "empty", attempt: "", want: OutcomeWrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			s := NewSpelling(TierEasy, testWords(), rng)
			got, err := s.Check(tt.attempt)
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if got != tt.want {
				t.Errorf("Check(%q) = %q, want %q", tt.attempt, got, tt.want)
			}
			if s.Total != 1 {
				t.Errorf("total = %d, want 1", s.Total)
			}
		})
	}
}

func TestSpellingCheckResolvesOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s := NewSpelling(TierEasy, testWords(), rng)

	if _, err := s.Check("cat"); err != nil {
		t.Fatalf("first check: %v", err)
	}
	if _, err := s.Check("cat"); !errors.Is(err, ErrRoundResolved) {
		t.Fatalf("second check err = %v, want ErrRoundResolved", err)
	}
	if s.Correct != 1 || s.Total != 1 {
		t.Errorf("correct/total = %d/%d, want 1/1", s.Correct, s.Total)
	}
}

func TestSpellingSkipCountsAsAttempt(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := NewSpelling(TierMedium, testWords(), rng)

	if err := s.Skip(); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if s.Correct != 0 || s.Total != 1 {
		t.Errorf("correct/total = %d/%d, want 0/1", s.Correct, s.Total)
	}
	if err := s.Skip(); !errors.Is(err, ErrRoundResolved) {
		t.Fatalf("second skip err = %v, want ErrRoundResolved", err)
	}
}

func TestSpellingSetTierResetsCounters(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	s := NewSpelling(TierEasy, testWords(), rng)
	if _, err := s.Check("cat"); err != nil {
		t.Fatalf("Check: %v", err)
	}

	s.SetTier(TierHard, rng)
	if s.Correct != 0 || s.Total != 0 {
		t.Errorf("correct/total = %d/%d after tier switch, want 0/0", s.Correct, s.Total)
	}
	if s.Current.Word != "necessary" {
		t.Errorf("current word = %q, want the hard tier word", s.Current.Word)
	}
	if s.Phase != PhasePlaying {
		t.Errorf("phase = %q, want playing", s.Phase)
	}
}

func TestSpellingEmptyWordList(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := NewSpelling(TierEasy, WordList{}, rng)
	if s.Phase != PhaseMenu {
		t.Fatalf("phase = %q with no words, want menu", s.Phase)
	}
	if _, err := s.Check("anything"); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("check err = %v, want ErrNotPlaying", err)
	}
}
