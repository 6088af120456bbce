package vacancy

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
)

// Normalize maps a raw API or store record into a validated Vacancy.
// Nested objects are kept only when the raw field is itself a keyed mapping.
func Normalize(raw any) (domain.Vacancy, error) {
	rec, ok := asRecord(raw)
	if !ok {
		return domain.Vacancy{}, &domain.ValidationError{Reason: fmt.Sprintf("record must be a keyed mapping, got %T", raw)}
	}

	id, ok := scalarString(rec["id"])
	if !ok || strings.TrimSpace(id) == "" {
		return domain.Vacancy{}, &domain.ValidationError{Field: "id", Reason: "is missing or not a scalar"}
	}

	titleVal, present := rec["name"]
	if !present {
		// records written by older versions of the store used "title"
		titleVal = rec["title"]
	}
	title, ok := scalarString(titleVal)
	if !ok || strings.TrimSpace(title) == "" {
		return domain.Vacancy{}, &domain.ValidationError{Field: "name", Reason: "is missing or not a scalar"}
	}

	v := domain.Vacancy{
		ID:          id,
		Title:       title,
		Salary:      normalizeSalary(rec["salary"]),
		Snippet:     normalizeSnippet(rec["snippet"]),
		URL:         optionalString(rec, "alternate_url", "url"),
		Description: optionalString(rec, "description"),
	}

	if name, ok := nestedName(rec["area"]); ok {
		v.Region = &domain.Region{Name: name}
	}
	if name, ok := nestedName(rec["employer"]); ok {
		v.Employer = &domain.Employer{Name: name}
	}
	if name, ok := nestedName(rec["experience"]); ok {
		v.Experience = &domain.Experience{Name: name}
	}
	if name, ok := nestedName(rec["employment"]); ok {
		v.Employment = &domain.Employment{Name: name}
	}

	return domain.NewVacancy(v)
}

// NormalizeAll normalizes a batch of fetched items or stored records, skipping malformed ones.
// Every skipped item yields one error carrying its index.
func NormalizeAll[T any](raws []T) ([]domain.Vacancy, []error) {
	out := make([]domain.Vacancy, 0, len(raws))
	var skipped []error

	for i, raw := range raws {
		v, err := Normalize(raw)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		out = append(out, v)
	}

	return out, skipped
}

func normalizeSalary(val any) *domain.Salary {
	rec, ok := asRecord(val)
	if !ok {
		return nil
	}
	return &domain.Salary{
		From:     intValue(rec["from"]),
		To:       intValue(rec["to"]),
		Currency: optionalString(rec, "currency"),
	}
}

func normalizeSnippet(val any) *domain.Snippet {
	rec, ok := asRecord(val)
	if !ok {
		return nil
	}
	return &domain.Snippet{
		Requirement:    optionalString(rec, "requirement"),
		Responsibility: optionalString(rec, "responsibility"),
	}
}

func nestedName(val any) (string, bool) {
	rec, ok := asRecord(val)
	if !ok {
		return "", false
	}
	name, ok := scalarString(rec["name"])
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// optionalString returns the first key holding a scalar value
func optionalString(rec domain.RawRecord, keys ...string) *string {
	for _, k := range keys {
		if s, ok := scalarString(rec[k]); ok {
			return &s
		}
	}
	return nil
}

func asRecord(val any) (domain.RawRecord, bool) {
	switch m := val.(type) {
	case map[string]any:
		return m, m != nil
	case map[string]string:
		if m == nil {
			return nil, false
		}
		rec := make(domain.RawRecord, len(m))
		for k, v := range m {
			rec[k] = v
		}
		return rec, true
	default:
		return nil, false
	}
}

func scalarString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func intValue(val any) *int {
	var n int
	switch v := val.(type) {
	case int:
		n = v
	case int64:
		i, ok := int64ToInt(v)
		if !ok {
			return nil
		}
		n = i
	case int32:
		n = int(v)
	case float64:
		i, ok := floatToInt(v)
		if !ok {
			return nil
		}
		n = i
	case json.Number:
		var ok bool
		if i, err := v.Int64(); err == nil {
			n, ok = int64ToInt(i)
		} else if f, err := v.Float64(); err == nil {
			n, ok = floatToInt(f)
		}
		if !ok {
			return nil
		}
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		n = i
	default:
		return nil
	}
	return &n
}

func int64ToInt(v int64) (int, bool) {
	if v < math.MinInt || v > math.MaxInt {
		return 0, false
	}
	return int(v), true
}

// floatToInt truncates toward zero; values outside the int range are rejected
func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}
