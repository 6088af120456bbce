package vacancy

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// FilterByKeywords keeps vacancies whose snippet requirement and responsibility
// text contains every word, case-insensitively. No words keeps everything.
func FilterByKeywords(vacancies []domain.Vacancy, words []string) []domain.Vacancy {
	if len(words) == 0 {
		return vacancies
	}

	needles := lowerAll(words)
	out := make([]domain.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		haystack := snippetText(v)
		matched := true
		for _, w := range needles {
			if !strings.Contains(haystack, w) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, v)
		}
	}
	return out
}

// FilterByAnyKeyword keeps vacancies whose description or requirement text
// contains at least one of the words. No words keeps everything.
func FilterByAnyKeyword(vacancies []domain.Vacancy, words []string) []domain.Vacancy {
	if len(words) == 0 {
		return vacancies
	}

	needles := lowerAll(words)
	out := make([]domain.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		haystack := descriptionText(v)
		for _, w := range needles {
			if strings.Contains(haystack, w) {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// RangeKind tells which bounds of a SalaryRange were requested
type RangeKind int

const (
	RangeNone RangeKind = iota
	RangeMin
	RangeMax
	RangeBetween
)

// SalaryRange is a parsed salary filter
type SalaryRange struct {
	Kind RangeKind
	Min  int
	Max  int
}

// ParseSalaryRange accepts "N", "N-M" or "-M". Blank input yields RangeNone.
func ParseSalaryRange(s string) (SalaryRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SalaryRange{Kind: RangeNone}, nil
	}

	if rest, ok := strings.CutPrefix(s, "-"); ok {
		hiBound, err := parseBound(rest)
		if err != nil {
			return SalaryRange{}, &domain.RangeParseError{Input: s, Err: err}
		}
		return SalaryRange{Kind: RangeMax, Max: hiBound}, nil
	}

	if lo, hi, ok := strings.Cut(s, "-"); ok {
		loBound, err := parseBound(lo)
		if err != nil {
			return SalaryRange{}, &domain.RangeParseError{Input: s, Err: err}
		}
		hiBound, err := parseBound(hi)
		if err != nil {
			return SalaryRange{}, &domain.RangeParseError{Input: s, Err: err}
		}
		return SalaryRange{Kind: RangeBetween, Min: loBound, Max: hiBound}, nil
	}

	loBound, err := parseBound(s)
	if err != nil {
		return SalaryRange{}, &domain.RangeParseError{Input: s, Err: err}
	}
	return SalaryRange{Kind: RangeMin, Min: loBound}, nil
}

func parseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty bound")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("negative bound")
	}
	return n, nil
}

// Match reports whether the vacancy salary lies within the range.
// Absent lower bound counts as 0, absent upper bound as unbounded.
func (r SalaryRange) Match(v domain.Vacancy) bool {
	if r.Kind == RangeNone {
		return true
	}
	if v.Salary == nil {
		return false
	}

	from := v.EffectiveFrom()
	to := math.MaxInt
	if v.Salary.To != nil {
		to = *v.Salary.To
	}

	switch r.Kind {
	case RangeMin:
		return from >= r.Min
	case RangeMax:
		return to <= r.Max
	default:
		return from >= r.Min && to <= r.Max
	}
}

// FilterBySalaryRange applies a salary range string to the vacancies.
// A malformed range leaves the input unchanged and returns the *domain.RangeParseError for reporting.
func FilterBySalaryRange(vacancies []domain.Vacancy, rangeSpec string) ([]domain.Vacancy, error) {
	r, err := ParseSalaryRange(rangeSpec)
	if err != nil {
		return vacancies, err
	}
	if r.Kind == RangeNone {
		return vacancies, nil
	}

	out := make([]domain.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		if r.Match(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// SortBySalaryDesc stable-sorts by lower then upper salary bound, highest first
func SortBySalaryDesc(vacancies []domain.Vacancy) []domain.Vacancy {
	out := slices.Clone(vacancies)
	slices.SortStableFunc(out, func(a, b domain.Vacancy) int {
		if c := cmp.Compare(b.EffectiveFrom(), a.EffectiveFrom()); c != 0 {
			return c
		}
		return cmp.Compare(b.SortTo(), a.SortTo())
	})
	return out
}

// TakeTop returns at most n leading vacancies
func TakeTop(vacancies []domain.Vacancy, n int) []domain.Vacancy {
	if n <= 0 {
		return []domain.Vacancy{}
	}
	if n > len(vacancies) {
		n = len(vacancies)
	}
	return vacancies[:n:n]
}

// Query is a full ranking request
type Query struct {
	Keywords    []string
	SalaryRange string
	Top         int
	// MatchAny switches keyword filtering to the disjunctive description mode
	MatchAny bool
}

// Apply runs keyword filter, salary range, sort and top-N in that order
func (q Query) Apply(vacancies []domain.Vacancy, log *logging.Logger) []domain.Vacancy {
	var filtered []domain.Vacancy
	if q.MatchAny {
		filtered = FilterByAnyKeyword(vacancies, q.Keywords)
	} else {
		filtered = FilterByKeywords(vacancies, q.Keywords)
	}

	ranged, err := FilterBySalaryRange(filtered, q.SalaryRange)
	if err != nil && log != nil {
		log.Warn("salary range ignored", "range", q.SalaryRange, "err", err)
	}

	return TakeTop(SortBySalaryDesc(ranged), q.Top)
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.ToLower(w))
	}
	return out
}

func snippetText(v domain.Vacancy) string {
	if v.Snippet == nil {
		return ""
	}
	var b strings.Builder
	if v.Snippet.Requirement != nil {
		b.WriteString(*v.Snippet.Requirement)
	}
	b.WriteByte(' ')
	if v.Snippet.Responsibility != nil {
		b.WriteString(*v.Snippet.Responsibility)
	}
	return strings.ToLower(b.String())
}

func descriptionText(v domain.Vacancy) string {
	var b strings.Builder
	if v.Description != nil {
		b.WriteString(*v.Description)
	}
	b.WriteByte(' ')
	if v.Snippet != nil && v.Snippet.Requirement != nil {
		b.WriteString(*v.Snippet.Requirement)
	}
	return strings.ToLower(b.String())
}
