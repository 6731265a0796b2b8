// Package money adds decimal-string amounts the way the billing workflow
// stores them: text with two fractional digits. Arithmetic goes through
// float64 on purpose, matching the observed behavior of the invoice totals;
// rounding is half away from zero.
package money

import (
	"fmt"
	"math"
	"strconv"
)

// ErrNotDecimal is returned when an operand does not parse as a finite
// decimal number.
type ErrNotDecimal struct {
	Value string
}

func (e *ErrNotDecimal) Error() string {
	return fmt.Sprintf("money: %q is not a finite decimal number", e.Value)
}

// Add returns a+b formatted with exactly two decimal places.
func Add(a, b string) (string, error) {
	x, err := parse(a)
	if err != nil {
		return "", err
	}
	y, err := parse(b)
	if err != nil {
		return "", err
	}
	return Format(x + y), nil
}

// Format rounds v half away from zero to two decimals and renders it as a
// plain decimal string.
func Format(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}

func parse(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ErrNotDecimal{Value: s}
	}
	return v, nil
}
