package domain

import (
	"math"
	"strconv"
	"strings"
)

// CalcErrorResult is shown instead of a number when a calculation cannot be
// done, e.g. dividing by zero. It is a display value, not an error.
const CalcErrorResult = "Oops!"

// Calculator is a four-function kid calculator. All state is display strings;
// results are rounded to four decimal places.
type Calculator struct {
	Current   string
	Previous  string
	Operator  string
	ResetNext bool
}

// NewCalculator returns a cleared calculator.
func NewCalculator() *Calculator {
	return &Calculator{Current: "0"}
}

// Display returns what the screen shows.
func (c *Calculator) Display() string {
	if c.Current == "" {
		return "0"
	}
	return c.Current
}

// Input appends a digit or decimal point to the current entry. A second
// decimal point is ignored.
func (c *Calculator) Input(key string) {
	if c.ResetNext {
		c.Current = ""
		c.ResetNext = false
	}
	if key == "." && strings.Contains(c.Current, ".") {
		return
	}
	if c.Current == "0" && key != "." {
		c.Current = key
	} else {
		c.Current += key
	}
}

// SetOperator stores the pending operator, first collapsing any chained
// calculation so "2 + 3 + 4 =" works left to right.
func (c *Calculator) SetOperator(op string) {
	if c.Operator != "" && !c.ResetNext {
		c.Equals()
	}
	c.Previous = c.Current
	c.Operator = op
	c.ResetNext = true
}

// Equals applies the pending operation. Division by zero displays
// CalcErrorResult rather than failing.
func (c *Calculator) Equals() {
	if c.Operator == "" || c.Previous == "" {
		return
	}
	a, _ := strconv.ParseFloat(c.Previous, 64)
	b, _ := strconv.ParseFloat(c.Current, 64)

	var result string
	switch c.Operator {
	case "+":
		result = formatCalcResult(a + b)
	case "-":
		result = formatCalcResult(a - b)
	case "×":
		result = formatCalcResult(a * b)
	case "÷":
		if b == 0 {
			result = CalcErrorResult
		} else {
			result = formatCalcResult(a / b)
		}
	default:
		return
	}

	c.Current = result
	c.Previous = ""
	c.Operator = ""
	c.ResetNext = true
}

// Clear resets everything.
func (c *Calculator) Clear() {
	c.Current = "0"
	c.Previous = ""
	c.Operator = ""
	c.ResetNext = false
}

// formatCalcResult rounds to four decimal places and trims the float notation
// down to what a kid calculator screen would show.
func formatCalcResult(v float64) string {
	rounded := math.Round(v*10000) / 10000
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
