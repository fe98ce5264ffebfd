package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidAmount  = errors.New("invalid monetary amount")
	ErrNegativeAmount = errors.New("negative monetary amount")
)

// ParseCents converts a user-facing decimal amount ("500", "59.90", "0.005")
// into integer cents, rounding to the nearest cent (half away from zero).
// Negative, empty and non-numeric input is rejected rather than coerced to zero.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeAmount
	}
	s = strings.TrimPrefix(s, "+")

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if hasFrac && strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}

	var cents int64
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		d := int64(r - '0')
		if cents > (math.MaxInt64-d)/10 {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidAmount, s)
		}
		cents = cents*10 + d
	}
	// The cent expansion below adds at most 100 (99 cents plus the rounding
	// carry); bound before multiplying.
	if cents > (math.MaxInt64-100)/100 {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidAmount, s)
	}
	cents *= 100

	if hasFrac {
		for _, r := range fracPart {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
			}
		}
		switch {
		case len(fracPart) == 1:
			cents += int64(fracPart[0]-'0') * 10
		case len(fracPart) >= 2:
			cents += int64(fracPart[0]-'0')*10 + int64(fracPart[1]-'0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				cents++
			}
		}
	}
	return cents, nil
}

// FormatCents renders integer cents as a decimal string, e.g. 50000 -> "500.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
