package domain

import "math/rand"

// ColumnProblem is a two-digit column multiplication worked in three steps:
// the ones partial product, the shifted tens partial product, and the total.
type ColumnProblem struct {
	Num1, Num2 int
	OnesDigit  int
	TensDigit  int
	Partial1   int // Num1 × ones digit
	Partial2   int // Num1 × tens digit, before the trailing zero shift
	Answer     int
}

// GenerateColumnProblem draws operands in 11..19 so every problem has a
// genuine tens step.
func GenerateColumnProblem(rng *rand.Rand) ColumnProblem {
	num1 := rng.Intn(9) + 11
	num2 := rng.Intn(9) + 11
	ones := num2 % 10
	tens := num2 / 10
	return ColumnProblem{
		Num1:      num1,
		Num2:      num2,
		OnesDigit: ones,
		TensDigit: tens,
		Partial1:  num1 * ones,
		Partial2:  num1 * tens,
		Answer:    num1 * num2,
	}
}

// ColumnCheck grades the three entered steps. The tens partial is entered
// with its trailing zero, so it is compared against Partial2 × 10.
type ColumnCheck struct {
	Partial1OK bool
	Partial2OK bool
	TotalOK    bool
}

// AllOK reports whether every step was right.
func (c ColumnCheck) AllOK() bool {
	return c.Partial1OK && c.Partial2OK && c.TotalOK
}

// Check grades the worked steps.
func (p ColumnProblem) Check(partial1, partial2, total int) ColumnCheck {
	return ColumnCheck{
		Partial1OK: partial1 == p.Partial1,
		Partial2OK: partial2 == p.Partial2*10,
		TotalOK:    total == p.Answer,
	}
}

// DivisionProblem is a long division worked digit by digit with a remainder.
type DivisionProblem struct {
	Dividend  int
	Divisor   int
	Quotient  int
	Remainder int
	TensDigit int
	OnesDigit int
}

// GenerateDivisionProblem draws a divisor in 2..5 and a two-digit quotient in
// 11..19, then derives the dividend so the remainder is always legal.
func GenerateDivisionProblem(rng *rand.Rand) DivisionProblem {
	divisor := rng.Intn(4) + 2
	quotient := rng.Intn(9) + 11
	remainder := rng.Intn(divisor)
	return DivisionProblem{
		Dividend:  quotient*divisor + remainder,
		Divisor:   divisor,
		Quotient:  quotient,
		Remainder: remainder,
		TensDigit: quotient / 10,
		OnesDigit: quotient % 10,
	}
}

// DivisionCheck grades the three entered steps.
type DivisionCheck struct {
	TensOK      bool
	OnesOK      bool
	RemainderOK bool
}

// AllOK reports whether every step was right.
func (c DivisionCheck) AllOK() bool {
	return c.TensOK && c.OnesOK && c.RemainderOK
}

// Check grades the worked digits and remainder.
func (p DivisionProblem) Check(tens, ones, remainder int) DivisionCheck {
	return DivisionCheck{
		TensOK:      tens == p.TensDigit,
		OnesOK:      ones == p.OnesDigit,
		RemainderOK: remainder == p.Remainder,
	}
}
