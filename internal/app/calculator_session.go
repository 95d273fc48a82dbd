package app

import "otterly/internal/domain"

// CalculatorSession wraps the four-function calculator. Pure command/response;
// nothing runs on ticks.
type CalculatorSession struct {
	calc *domain.Calculator
}

func newCalculatorSession() *CalculatorSession {
	return &CalculatorSession{calc: domain.NewCalculator()}
}

func (s *CalculatorSession) Game() Game { return GameCalculator }

// Finished is always false; the calculator runs until the player leaves.
func (s *CalculatorSession) Finished() bool { return false }

// Step is a no-op.
func (s *CalculatorSession) Step() []Event { return nil }

func (s *CalculatorSession) Handle(cmd Command) ([]Event, error) {
	if cmd.Action != ActionKey {
		return nil, ErrUnknownAction
	}
	switch cmd.Value {
	case "+", "-", "×", "÷":
		s.calc.SetOperator(cmd.Value)
	case "=":
		s.calc.Equals()
	case "C":
		s.calc.Clear()
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		s.calc.Input(cmd.Value)
	default:
		return nil, ErrUnknownAction
	}
	return []Event{{Kind: EventSnapshot, Payload: s.Snapshot()}}, nil
}

type calculatorSnapshot struct {
	Game     Game   `json:"game"`
	Display  string `json:"display"`
	Operator string `json:"operator,omitempty"`
}

func (s *CalculatorSession) Snapshot() any {
	return calculatorSnapshot{
		Game:     GameCalculator,
		Display:  s.calc.Display(),
		Operator: s.calc.Operator,
	}
}
