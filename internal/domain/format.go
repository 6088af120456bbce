package domain

import (
	"strconv"
	"strings"
)

// FormatSalary renders a salary as "N - M CUR", "от N CUR" or "до M CUR",
// with thousands separated by spaces. A nil salary or one without bounds is ""
func FormatSalary(s *Salary) string {
	if s == nil {
		return ""
	}

	var out string
	switch {
	case s.From != nil && s.To != nil:
		out = formatNumber(*s.From) + " - " + formatNumber(*s.To)
	case s.From != nil:
		out = "от " + formatNumber(*s.From)
	case s.To != nil:
		out = "до " + formatNumber(*s.To)
	default:
		return ""
	}

	if s.Currency != nil && *s.Currency != "" {
		out += " " + *s.Currency
	}
	return out
}

// formatNumber separates thousands with spaces
func formatNumber(n int) string {
	digits := strconv.FormatInt(int64(n), 10)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// Truncate shortens s to at most n runes, marking the cut with "..."
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
