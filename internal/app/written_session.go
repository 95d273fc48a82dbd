package app

import (
	"strconv"

	"otterly/internal/domain"
)

// writtenMode selects which worked problem the session serves.
type writtenMode string

const (
	writtenColumn   writtenMode = "multiply"
	writtenDivision writtenMode = "divide"
)

// WrittenSession drives worked column multiplication and long division. After
// a graded answer the next problem arrives on its own; ticks pace that pause
// and the advance command can skip it.
type WrittenSession struct {
	svc       *Service
	mode      writtenMode
	column    *domain.ColumnProblem
	division  *domain.DivisionProblem
	solved    int
	attempts  int
	waitTicks int
}

func newWrittenSession(svc *Service) *WrittenSession {
	return &WrittenSession{svc: svc, mode: writtenColumn}
}

func (s *WrittenSession) Game() Game { return GameWritten }

// Finished is always false; the workbook runs until the player leaves.
func (s *WrittenSession) Finished() bool { return false }

// Step serves the next problem once the grading pause runs out.
func (s *WrittenSession) Step() []Event {
	if s.waitTicks <= 0 {
		return nil
	}
	s.waitTicks--
	if s.waitTicks > 0 {
		return nil
	}
	return s.nextProblem()
}

func (s *WrittenSession) Handle(cmd Command) ([]Event, error) {
	switch cmd.Action {
	case ActionStart:
		switch writtenMode(cmd.Value) {
		case writtenColumn, "":
			s.mode = writtenColumn
		case writtenDivision:
			s.mode = writtenDivision
		default:
			return nil, ErrUnknownAction
		}
		return s.nextProblem(), nil

	case ActionAdvance:
		return s.nextProblem(), nil

	case ActionAnswer:
		return s.check(cmd.Steps)
	}
	return nil, ErrUnknownAction
}

func (s *WrittenSession) nextProblem() []Event {
	s.waitTicks = 0
	payload := RoundStartedPayload{Round: s.attempts + 1}
	if s.mode == writtenDivision {
		p := domain.GenerateDivisionProblem(s.svc.rng)
		s.division = &p
		s.column = nil
		payload.Math = &MathQuestionView{Prompt: strconv.Itoa(p.Dividend) + " ÷ " + strconv.Itoa(p.Divisor)}
	} else {
		p := domain.GenerateColumnProblem(s.svc.rng)
		s.column = &p
		s.division = nil
		payload.Math = &MathQuestionView{Prompt: strconv.Itoa(p.Num1) + " × " + strconv.Itoa(p.Num2)}
	}
	return []Event{{Kind: EventRoundStarted, Payload: payload}}
}

// WrittenResolvedPayload grades the worked steps individually so the client
// can mark each entry field.
type WrittenResolvedPayload struct {
	Outcome domain.Outcome `json:"outcome"`
	StepsOK []bool         `json:"steps_ok"`
	Answer  string         `json:"answer"`
	Solved  int            `json:"solved"`
	Total   int            `json:"total"`
}

func (s *WrittenSession) check(steps []int) ([]Event, error) {
	// An entry field left blank is ignored like an empty numpad submit.
	if len(steps) != 3 {
		return nil, nil
	}
	var stepsOK []bool
	var allOK bool
	var answer string

	switch {
	case s.column != nil:
		c := s.column.Check(steps[0], steps[1], steps[2])
		stepsOK = []bool{c.Partial1OK, c.Partial2OK, c.TotalOK}
		allOK = c.AllOK()
		answer = strconv.Itoa(s.column.Answer)
	case s.division != nil:
		c := s.division.Check(steps[0], steps[1], steps[2])
		stepsOK = []bool{c.TensOK, c.OnesOK, c.RemainderOK}
		allOK = c.AllOK()
		answer = strconv.Itoa(s.division.Quotient) + " r " + strconv.Itoa(s.division.Remainder)
	default:
		return nil, domain.ErrNotPlaying
	}

	s.attempts++
	s.waitTicks = s.svc.cfg.Timing.WrittenAdvanceTicks
	outcome := domain.OutcomeWrong
	if allOK {
		s.solved++
		outcome = domain.OutcomeCorrect
	}
	return []Event{{Kind: EventRoundResolved, Payload: WrittenResolvedPayload{
		Outcome: outcome,
		StepsOK: stepsOK,
		Answer:  answer,
		Solved:  s.solved,
		Total:   s.attempts,
	}}}, nil
}

type writtenSnapshot struct {
	Game   Game        `json:"game"`
	Mode   writtenMode `json:"mode"`
	Solved int         `json:"solved"`
	Total  int         `json:"total"`
	Prompt string      `json:"prompt,omitempty"`
}

func (s *WrittenSession) Snapshot() any {
	snap := writtenSnapshot{Game: GameWritten, Mode: s.mode, Solved: s.solved, Total: s.attempts}
	switch {
	case s.column != nil:
		snap.Prompt = strconv.Itoa(s.column.Num1) + " × " + strconv.Itoa(s.column.Num2)
	case s.division != nil:
		snap.Prompt = strconv.Itoa(s.division.Dividend) + " ÷ " + strconv.Itoa(s.division.Divisor)
	}
	return snap
}
