package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewVacancy(t *testing.T) {
	tests := []struct {
		name    string
		in      Vacancy
		field   string
		wantErr bool
	}{
		{name: "valid", in: Vacancy{ID: "1", Title: "Go Developer"}},
		{name: "empty id", in: Vacancy{Title: "Go Developer"}, field: "id", wantErr: true},
		{name: "blank id", in: Vacancy{ID: "  ", Title: "Go Developer"}, field: "id", wantErr: true},
		{name: "empty title", in: Vacancy{ID: "1"}, field: "name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVacancy(tt.in)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.in, v)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestVacancyRaw(t *testing.T) {
	v := Vacancy{
		ID:    "42",
		Title: "Backend Developer",
		Salary: &Salary{
			From:     ptr(100000),
			Currency: ptr("RUR"),
		},
		Region:   &Region{Name: "Москва"},
		Employer: &Employer{Name: "Acme"},
		Snippet:  &Snippet{Requirement: ptr("Go, PostgreSQL")},
		URL:      ptr("https://hh.ru/vacancy/42"),
	}

	raw := v.Raw()

	assert.Equal(t, "42", raw["id"])
	assert.Equal(t, "Backend Developer", raw["name"])
	assert.Equal(t, RawRecord{"from": 100000, "currency": "RUR"}, raw["salary"])
	assert.Equal(t, RawRecord{"name": "Москва"}, raw["area"])
	assert.Equal(t, RawRecord{"name": "Acme"}, raw["employer"])
	assert.Equal(t, RawRecord{"requirement": "Go, PostgreSQL"}, raw["snippet"])
	assert.Equal(t, "https://hh.ru/vacancy/42", raw["alternate_url"])
	assert.NotContains(t, raw, "experience")
	assert.NotContains(t, raw, "employment")
	assert.NotContains(t, raw, "description")
}

func TestEffectiveBounds(t *testing.T) {
	assert.Equal(t, 0, Vacancy{}.EffectiveFrom())
	assert.Equal(t, 0, Vacancy{}.SortTo())
	assert.Equal(t, 0, Vacancy{Salary: &Salary{To: ptr(5)}}.EffectiveFrom())

	v := Vacancy{Salary: &Salary{From: ptr(10), To: ptr(20)}}
	assert.Equal(t, 10, v.EffectiveFrom())
	assert.Equal(t, 20, v.SortTo())
}

func TestErrorMessages(t *testing.T) {
	inner := errors.New("boom")

	fe := &FetchError{Op: "search", StatusCode: 503, Err: inner}
	assert.Contains(t, fe.Error(), "503")
	assert.ErrorIs(t, fe, inner)

	se := &StorageError{Op: "read", Path: "data/vacancies.json", Err: inner}
	assert.Contains(t, se.Error(), "data/vacancies.json")
	assert.ErrorIs(t, se, inner)

	re := &RangeParseError{Input: "abc", Err: inner}
	assert.Contains(t, re.Error(), `"abc"`)
	assert.ErrorIs(t, re, inner)
}
