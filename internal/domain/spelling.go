package domain

import (
	"math/rand"
	"strings"
)

// Word is a spelling trainer entry.
type Word struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

// WordList groups spelling words by tier.
type WordList map[Tier][]Word

// Spelling is the authoritative state of one spelling trainer session. There
// is no timer; rounds resolve on check or skip.
type Spelling struct {
	Phase    Phase
	Tier     Tier
	Words    WordList
	Current  Word
	Correct  int
	Total    int
	Answered bool
}

// NewSpelling returns a trainer that starts on its first word immediately.
func NewSpelling(tier Tier, words WordList, rng *rand.Rand) *Spelling {
	s := &Spelling{Phase: PhaseMenu, Tier: tier, Words: words}
	s.NextWord(rng)
	return s
}

// NextWord draws a fresh word for the active tier. An empty word list leaves
// the trainer in the menu phase doing nothing.
func (s *Spelling) NextWord(rng *rand.Rand) bool {
	pool := s.Words[s.Tier]
	if len(pool) == 0 {
		s.Phase = PhaseMenu
		return false
	}
	s.Current = pool[rng.Intn(len(pool))]
	s.Answered = false
	s.Phase = PhasePlaying
	return true
}

// SetTier switches difficulty and resets the score counters.
func (s *Spelling) SetTier(tier Tier, rng *rand.Rand) {
	s.Tier = tier
	s.Correct = 0
	s.Total = 0
	s.NextWord(rng)
}

// Check compares the attempt against the current word, ignoring case and
// surrounding whitespace.
func (s *Spelling) Check(attempt string) (Outcome, error) {
	if s.Phase != PhasePlaying {
		return "", ErrNotPlaying
	}
	if s.Answered {
		return "", ErrRoundResolved
	}
	s.Answered = true
	s.Phase = PhaseResolved
	s.Total++

	if strings.EqualFold(strings.TrimSpace(attempt), s.Current.Word) {
		s.Correct++
		return OutcomeCorrect, nil
	}
	return OutcomeWrong, nil
}

// Skip gives up on the current word; it counts as attempted.
func (s *Spelling) Skip() error {
	if s.Phase != PhasePlaying {
		return ErrNotPlaying
	}
	if s.Answered {
		return ErrRoundResolved
	}
	s.Answered = true
	s.Phase = PhaseResolved
	s.Total++
	return nil
}
