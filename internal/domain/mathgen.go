package domain

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// MathQuestion is a free-entry arithmetic round (battle, practice drills).
type MathQuestion struct {
	Prompt string
	A, B   int
	Answer int
	Visual string // emoji grouping aid for small operands, "" otherwise
}

// AnswerText returns the answer the way typed input is compared.
func (q MathQuestion) AnswerText() string {
	return strconv.Itoa(q.Answer)
}

var visualEmojis = []string{"🍎", "⭐", "🌟", "🎈", "🍕", "🍪"}

// GenerateBattleQuestion draws a multiplication fact for the tank battle.
// Easy and medium sample both operands from 2..maxTable; hard locks the first
// operand to the run's table and samples the second from 1..12.
func GenerateBattleQuestion(rng *rand.Rand, maxTable, lockedTable int) MathQuestion {
	var a, b int
	if lockedTable > 0 {
		a = lockedTable
		b = rng.Intn(12) + 1
	} else {
		a = rng.Intn(maxTable-1) + 2
		b = rng.Intn(maxTable-1) + 2
	}

	q := MathQuestion{
		Prompt: fmt.Sprintf("%d × %d = ?", a, b),
		A:      a,
		B:      b,
		Answer: a * b,
	}
	if a <= 5 && b <= 5 {
		emoji := visualEmojis[rng.Intn(len(visualEmojis))]
		groups := make([]string, a)
		for i := range groups {
			groups[i] = strings.Repeat(emoji, b)
		}
		q.Visual = strings.Join(groups, " ")
	}
	return q
}

// ChoiceQuestion is a multiple-choice arithmetic round (speed quiz).
type ChoiceQuestion struct {
	Prompt  string
	Correct int
	Options []int // 4 unique values including Correct, shuffled
}

// GenerateQuizQuestion draws a speed quiz question for the tier and builds its
// distractors as small offsets from the correct answer.
func GenerateQuizQuestion(rng *rand.Rand, tier Tier) ChoiceQuestion {
	var prompt string
	var correct int

	switch tier {
	case TierEasy:
		a, b := rng.Intn(10)+1, rng.Intn(10)+1
		prompt, correct = fmt.Sprintf("%d × %d", a, b), a*b
	case TierMedium:
		if rng.Intn(2) == 0 {
			a, b := rng.Intn(11)+2, rng.Intn(11)+2
			prompt, correct = fmt.Sprintf("%d × %d", a, b), a*b
		} else {
			b := rng.Intn(9) + 2
			a := b * (rng.Intn(9) + 2)
			prompt, correct = fmt.Sprintf("%d ÷ %d", a, b), a/b
		}
	default:
		switch rng.Intn(3) {
		case 0:
			a, b := rng.Intn(10)+11, rng.Intn(11)+2
			prompt, correct = fmt.Sprintf("%d × %d", a, b), a*b
		case 1:
			b := rng.Intn(11) + 2
			a := b * (rng.Intn(11) + 5)
			prompt, correct = fmt.Sprintf("%d ÷ %d", a, b), a/b
		default:
			a, b := rng.Intn(41)+10, rng.Intn(41)+10
			prompt, correct = fmt.Sprintf("%d + %d", a, b), a+b
		}
	}

	options := []int{correct}
	seen := map[int]bool{correct: true}
	for len(options) < 4 {
		wrong := correct + rng.Intn(21) - 10
		if wrong > 0 && !seen[wrong] {
			seen[wrong] = true
			options = append(options, wrong)
		}
	}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return ChoiceQuestion{Prompt: prompt, Correct: correct, Options: options}
}
