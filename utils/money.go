package utils

import (
	"math"
	"strconv"
	"strings"
)

// ToPaise converts a rupee amount to integer paise, rounding half away from zero.
func ToPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromPaise converts integer paise back to rupees.
func FromPaise(paise int64) float64 {
	return float64(paise) / 100
}

// FormatINR formats an amount in paise as a string like "₹1,23,456.50".
// Uses Indian digit grouping: the last three digits, then groups of two.
func FormatINR(paise int64) string {
	neg := paise < 0
	if neg {
		paise = -paise
	}

	rupees := strconv.FormatInt(paise/100, 10)
	fraction := paise % 100

	var b strings.Builder
	b.Grow(len(rupees) + len(rupees)/2 + 8)
	if neg {
		b.WriteString("-")
	}
	b.WriteString("₹")

	if len(rupees) <= 3 {
		b.WriteString(rupees)
	} else {
		head := rupees[:len(rupees)-3]
		tail := rupees[len(rupees)-3:]

		// Insert separators from the left in pairs.
		rem := len(head) % 2
		if rem == 0 {
			rem = 2
		}
		b.WriteString(head[:rem])
		for i := rem; i < len(head); i += 2 {
			b.WriteByte(',')
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(tail)
	}

	b.WriteByte('.')
	if fraction < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(fraction, 10))

	return b.String()
}
