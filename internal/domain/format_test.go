package domain

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSalary(t *testing.T) {
	tests := []struct {
		name string
		in   *Salary
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "no bounds", in: &Salary{Currency: ptr("RUR")}, want: ""},
		{name: "both", in: &Salary{From: ptr(100000), To: ptr(150000), Currency: ptr("RUR")}, want: "100 000 - 150 000 RUR"},
		{name: "from only", in: &Salary{From: ptr(80000), Currency: ptr("RUR")}, want: "от 80 000 RUR"},
		{name: "to only", in: &Salary{To: ptr(2500), Currency: ptr("USD")}, want: "до 2 500 USD"},
		{name: "no currency", in: &Salary{From: ptr(999)}, want: "от 999"},
		{name: "millions", in: &Salary{From: ptr(1000001)}, want: "от 1 000 001"},
		{name: "exact thousands", in: &Salary{From: ptr(100000)}, want: "от 100 000"},
		{name: "zero", in: &Salary{To: ptr(0)}, want: "до 0"},
		{name: "negative", in: &Salary{From: ptr(-1234567)}, want: "от -1 234 567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSalary(tt.in))
		})
	}
}

func TestFormatSalaryIntLimits(t *testing.T) {
	if strconv.IntSize != 64 {
		t.Skip("expected strings assume a 64-bit int")
	}

	assert.Equal(t, "от -9 223 372 036 854 775 808", FormatSalary(&Salary{From: ptr(math.MinInt)}))
	assert.Equal(t, "до 9 223 372 036 854 775 807", FormatSalary(&Salary{To: ptr(math.MaxInt)}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 100))
	assert.Equal(t, "абв...", Truncate("абвгд", 3))
	assert.Equal(t, "abc", Truncate("  abc  ", 3))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestSummary(t *testing.T) {
	v := Vacancy{
		ID:       "7",
		Title:    "Go Developer",
		Salary:   &Salary{From: ptr(100000), Currency: ptr("RUR")},
		Employer: &Employer{Name: "Acme"},
		Region:   &Region{Name: "Москва"},
		URL:      ptr("https://hh.ru/vacancy/7"),
		Snippet:  &Snippet{Requirement: ptr("Go")},
	}

	s := v.Summary()
	assert.Equal(t, "7", s.ID)
	assert.Equal(t, "Acme", s.Employer)
	assert.Equal(t, "Москва", s.Region)
	assert.Equal(t, "от 100 000 RUR", s.Salary)
	assert.Equal(t, "RUR", s.Currency)
	assert.Equal(t, "Go", s.Requirement)
	assert.Empty(t, s.Experience)
}
