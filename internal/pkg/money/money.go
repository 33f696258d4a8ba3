// Package money represents currency amounts as integer minor units (cents).
package money

import (
	"fmt"
	"math"
)

// Cents is an amount in minor currency units.
type Cents int64

// FromMajor converts a major-unit amount (e.g. 45.50) to cents, rounding half away from zero.
func FromMajor(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Major returns the amount in major units. Only for display; never compute with it.
func (c Cents) Major() float64 {
	return float64(c) / 100
}

// Mul multiplies the amount by an integer quantity.
func (c Cents) Mul(n int64) Cents {
	return c * Cents(n)
}

// MulChecked is Mul that reports false instead of wrapping around on int64 overflow.
func (c Cents) MulChecked(n int64) (Cents, bool) {
	if c == 0 || n == 0 {
		return 0, true
	}
	r := int64(c) * n
	if r/n != int64(c) || (n == -1 && int64(c) == math.MinInt64) {
		return 0, false
	}
	return Cents(r), true
}

// Percent returns p percent of c rounded to the nearest cent, half away from zero.
func (c Cents) Percent(p int64) Cents {
	num := int64(c) * p
	if num >= 0 {
		return Cents((num + 50) / 100)
	}
	return Cents((num - 50) / 100)
}

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
