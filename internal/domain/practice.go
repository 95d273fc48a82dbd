package domain

import (
	"fmt"
	"math/rand"
)

// PracticeOp selects what a table drill practices.
type PracticeOp string

const (
	PracticeMultiply PracticeOp = "multiply"
	PracticeDivide   PracticeOp = "divide"
)

// PracticeTables are the selectable tables in the study screen.
var PracticeTables = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

// praiseMessages rotate through correct-answer feedback.
var praiseMessages = []string{
	"Amazing! 🌟", "You got it! ⭐", "Super smart! 🧠", "Fantastic! 🎉",
	"Brilliant! ✨", "Way to go! 🚀", "Perfect! 💯", "Awesome! 🎯",
	"Great job! 👏", "You're a star! ⭐",
}

// PracticePhase tracks the drill's study/practice/result flow.
type PracticePhase string

const (
	PracticeStudy    PracticePhase = "study"
	PracticeRunning  PracticePhase = "practice"
	PracticeFinished PracticePhase = "result"
)

// StudyRow is one line of the study table.
type StudyRow struct {
	Multiplier int `json:"multiplier"`
	Result     int `json:"result"`
}

// Drill is the authoritative state of one table practice session
// (multiplication or division).
type Drill struct {
	Phase      PracticePhase
	Op         PracticeOp
	Table      int
	Questions  []MathQuestion
	Index      int
	Correct    int
	Streak     int
	BestStreak int
	Answered   bool
	Feedback   string
}

// NewDrill returns a drill on the study screen for the default table.
func NewDrill(op PracticeOp) *Drill {
	return &Drill{Phase: PracticeStudy, Op: op, Table: PracticeTables[0]}
}

// ValidPracticeTable reports whether n is a selectable table.
func ValidPracticeTable(n int) bool {
	for _, t := range PracticeTables {
		if t == n {
			return true
		}
	}
	return false
}

// StudyRows returns the study lines for the selected table.
func (d *Drill) StudyRows() []StudyRow {
	rows := make([]StudyRow, 10)
	for i := range rows {
		rows[i] = StudyRow{Multiplier: i + 1, Result: d.Table * (i + 1)}
	}
	return rows
}

// SelectTable changes the studied table; only allowed on the study screen.
func (d *Drill) SelectTable(n int) error {
	if d.Phase != PracticeStudy {
		return ErrNotInMenu
	}
	if !ValidPracticeTable(n) {
		return fmt.Errorf("table %d not selectable", n)
	}
	d.Table = n
	return nil
}

// Begin builds the ten-question run over shuffled multipliers 1..10 and enters
// the practice phase.
func (d *Drill) Begin(rng *rand.Rand) {
	multipliers := make([]int, 10)
	for i := range multipliers {
		multipliers[i] = i + 1
	}
	rng.Shuffle(len(multipliers), func(i, j int) {
		multipliers[i], multipliers[j] = multipliers[j], multipliers[i]
	})

	d.Questions = make([]MathQuestion, 0, len(multipliers))
	for _, m := range multipliers {
		if d.Op == PracticeDivide {
			dividend := d.Table * m
			d.Questions = append(d.Questions, MathQuestion{
				Prompt: fmt.Sprintf("%d ÷ %d = ?", dividend, d.Table),
				A:      dividend,
				B:      d.Table,
				Answer: m,
			})
		} else {
			d.Questions = append(d.Questions, MathQuestion{
				Prompt: fmt.Sprintf("%d × %d = ?", d.Table, m),
				A:      d.Table,
				B:      m,
				Answer: d.Table * m,
			})
		}
	}

	d.Index = 0
	d.Correct = 0
	d.Streak = 0
	d.BestStreak = 0
	d.Answered = false
	d.Feedback = ""
	d.Phase = PracticeRunning
}

// Question returns the open question, or nil outside the practice phase.
func (d *Drill) Question() *MathQuestion {
	if d.Phase != PracticeRunning || d.Index >= len(d.Questions) {
		return nil
	}
	return &d.Questions[d.Index]
}

// Submit checks the typed answer for the open question. Empty input is
// ignored entirely: no resolution, no feedback.
func (d *Drill) Submit(value string, rng *rand.Rand) (Outcome, error) {
	q := d.Question()
	if q == nil {
		return "", ErrNotPlaying
	}
	if d.Answered {
		return "", ErrRoundResolved
	}
	if value == "" {
		return "", nil
	}
	d.Answered = true

	if value == q.AnswerText() {
		d.Correct++
		d.Streak++
		if d.Streak > d.BestStreak {
			d.BestStreak = d.Streak
		}
		d.Feedback = praiseMessages[rng.Intn(len(praiseMessages))]
		return OutcomeCorrect, nil
	}
	d.Streak = 0
	if d.Op == PracticeDivide {
		d.Feedback = fmt.Sprintf("Not quite! %d ÷ %d = %d", q.A, q.B, q.Answer)
	} else {
		d.Feedback = fmt.Sprintf("Not quite! %d × %d = %d", q.A, q.B, q.Answer)
	}
	return OutcomeWrong, nil
}

// Advance moves past a resolved question, finishing the run after the last.
func (d *Drill) Advance() {
	if d.Phase != PracticeRunning || !d.Answered {
		return
	}
	d.Index++
	d.Answered = false
	d.Feedback = ""
	if d.Index >= len(d.Questions) {
		d.Phase = PracticeFinished
	}
}

// Accuracy returns the percentage of correct answers, rounded.
func (d *Drill) Accuracy() int {
	if len(d.Questions) == 0 {
		return 0
	}
	return int(float64(d.Correct)/float64(len(d.Questions))*100 + 0.5)
}

// ResultBanner picks the celebration emoji for the result screen.
func (d *Drill) ResultBanner() string {
	pct := d.Accuracy()
	switch {
	case pct >= 90:
		return "🏆"
	case pct >= 70:
		return "⭐"
	case pct >= 50:
		return "👍"
	default:
		return "💪"
	}
}

// BackToStudy returns to the study screen keeping the selected table.
func (d *Drill) BackToStudy() {
	d.Phase = PracticeStudy
	d.Questions = nil
	d.Answered = false
	d.Feedback = ""
}
