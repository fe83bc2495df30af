package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// All money amounts in the system are integer euro cents. Parsing and
// formatting happen at the API edge only; arithmetic stays integral.

// FormatMoney renders cents as a decimal string ("3332" -> "33.32").
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParseMoney parses a decimal amount ("33.32", "10", "10.5") into cents.
func ParseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimals", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return cents, nil
}

// Percent applies basis points to an amount with half-up rounding.
// Percent(2500, 8000) = 2000 (80%), Percent(20050, 100) = 201 (1%).
func Percent(cents int64, basisPoints int64) int64 {
	if cents == 0 || basisPoints == 0 {
		return 0
	}
	n := cents * basisPoints
	if n >= 0 {
		return (n + 5000) / 10000
	}
	return -((-n + 5000) / 10000)
}
