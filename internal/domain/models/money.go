package models

import (
	"errors"
	"strconv"
	"strings"
)

// Money is a monetary amount in integer cents. Summing cents is exact,
// so aggregation results do not depend on iteration order.
type Money int64

var ErrInvalidAmount = errors.New("invalid amount")

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place.
//
//	ParseDecimalToCents("12.34")  -> 1234, nil
//	ParseDecimalToCents("12.345") -> 1235, nil
//	ParseDecimalToCents("-5")     -> -500, nil
//
// Sign is preserved; callers that require positive amounts check that
// themselves.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "+")
	if s == "" || s == "." {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Guard the *100 below against overflow.
	const maxBeforeCents = (1<<63 - 1) / 100
	if iv > maxBeforeCents {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	cents := iv*100 + frac
	if neg {
		cents = -cents
	}
	return cents, nil
}

// UnmarshalJSON accepts a JSON number (optionally quoted) with at most
// cent precision after rounding.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	cents, err := ParseDecimalToCents(s)
	if err != nil {
		return err
	}
	*m = Money(cents)
	return nil
}

// MarshalJSON encodes the amount as a plain decimal number, trimming
// trailing zero cents: 4050 -> 40.5, 10000 -> 100.
func (m Money) MarshalJSON() ([]byte, error) {
	cents := int64(m)
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10)
	if r := cents % 100; r != 0 {
		s += "." + twoDigits(r)
		s = strings.TrimRight(s, "0")
	}
	if neg {
		s = "-" + s
	}
	return []byte(s), nil
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
