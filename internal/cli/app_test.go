package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
)

type fakeService struct {
	probeErr  error
	searchErr error
	result    vacancy.Result
	got       vacancy.Params
	searched  bool
}

func (f *fakeService) Probe(context.Context) error { return f.probeErr }

func (f *fakeService) Search(_ context.Context, p vacancy.Params) (vacancy.Result, error) {
	f.searched = true
	f.got = p
	return f.result, f.searchErr
}

func (f *fakeService) Stored(context.Context, vacancy.Criteria) ([]domain.Vacancy, error) {
	return nil, nil
}

func (f *fakeService) Delete(context.Context, string) (bool, error) {
	return false, nil
}

type fakeExporter struct {
	got []domain.Vacancy
	err error
}

func (f *fakeExporter) Export(_ context.Context, vs []domain.Vacancy) (int, error) {
	f.got = vs
	return len(vs), f.err
}

func ptr[T any](v T) *T { return &v }

func run(t *testing.T, svc vacancy.Service, input string, opts ...Option) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := New(svc, strings.NewReader(input), &out, opts...).Run(context.Background())
	return out.String(), err
}

func TestRunPrintsResults(t *testing.T) {
	long := strings.Repeat("я", 120)
	svc := &fakeService{result: vacancy.Result{
		Fetched: 3,
		Stored:  2,
		Vacancies: []domain.Vacancy{
			{
				ID:       "1",
				Title:    "Go Developer",
				Salary:   &domain.Salary{From: ptr(150000), To: ptr(250000), Currency: ptr("RUR")},
				Employer: &domain.Employer{Name: "Acme"},
				Region:   &domain.Region{Name: "Москва"},
				URL:      ptr("https://hh.ru/vacancy/1"),
				Snippet:  &domain.Snippet{Requirement: ptr(long)},
			},
			{ID: "2", Title: "Backend Engineer"},
		},
	}}

	out, err := run(t, svc, "golang\n2\ngo  postgres\n100000-300000\n")
	require.NoError(t, err)

	assert.Equal(t, vacancy.Params{
		Query:       "golang",
		Count:       2,
		Keywords:    []string{"go", "postgres"},
		SalaryRange: "100000-300000",
	}, svc.got)

	assert.Contains(t, out, "1. Go Developer")
	assert.Contains(t, out, "Salary: 150 000 - 250 000 RUR")
	assert.Contains(t, out, "Employer: Acme")
	assert.Contains(t, out, "Region: Москва")
	assert.Contains(t, out, "URL: https://hh.ru/vacancy/1")
	assert.Contains(t, out, "Requirements: "+strings.Repeat("я", 100)+"...\n")
	assert.Contains(t, out, "2. Backend Engineer")
	assert.Contains(t, out, "Salary: not specified")
	assert.Contains(t, out, "fetched 3, new 2, shown 2")
}

func TestRunRepromptsInvalidInput(t *testing.T) {
	svc := &fakeService{}

	out, err := run(t, svc, "\n  \ngolang\nzero\n-1\n5\n\n\n")
	require.NoError(t, err)

	assert.Equal(t, "golang", svc.got.Query)
	assert.Equal(t, 5, svc.got.Count)
	assert.Empty(t, svc.got.Keywords)
	assert.Equal(t, 2, strings.Count(out, "Query must not be empty."))
	assert.Equal(t, 2, strings.Count(out, "Enter a positive whole number."))
	assert.Contains(t, out, noResults)
}

func TestRunInputClosed(t *testing.T) {
	svc := &fakeService{}

	_, err := run(t, svc, "golang\n")
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.False(t, svc.searched)
}

func TestRunProbeFailure(t *testing.T) {
	svc := &fakeService{probeErr: &domain.FetchError{Op: "ping", Err: domain.ErrServiceUnreachable}}

	out, err := run(t, svc, "golang\n1\n\n\n")
	require.NoError(t, err)
	assert.False(t, svc.searched)
	assert.Contains(t, out, "Error during connectivity check")
	assert.Contains(t, out, noResults)
}

func TestRunSearchFailureNamesStage(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		stage string
	}{
		{name: "fetch", err: &domain.FetchError{Op: "search", StatusCode: 503, Err: errors.New("unavailable")}, stage: "Error during fetch"},
		{name: "validation", err: &domain.ValidationError{Field: "query", Reason: "must not be empty"}, stage: "Error during parameter validation"},
		{name: "other", err: errors.New("boom"), stage: "Error during search"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, &fakeService{searchErr: tt.err}, "golang\n1\n\n\n")
			require.NoError(t, err)
			assert.Contains(t, out, tt.stage)
			assert.Contains(t, out, noResults)
		})
	}
}

func TestRunReportsWarnings(t *testing.T) {
	svc := &fakeService{result: vacancy.Result{
		Skipped:  1,
		RangeErr: &domain.RangeParseError{Input: "abc", Err: errors.New("not a number")},
		StoreErr: &domain.StorageError{Op: "write", Path: "data/vacancies.json", Err: errors.New("disk full")},
	}}

	out, err := run(t, svc, "golang\n1\n\nabc\n")
	require.NoError(t, err)
	assert.Contains(t, out, "salary range ignored")
	assert.Contains(t, out, "were not saved")
	assert.Contains(t, out, "1 malformed record(s) skipped")
	assert.Contains(t, out, noResults)
}

func TestRunExportsResults(t *testing.T) {
	vs := []domain.Vacancy{{ID: "1", Title: "Go Developer"}}
	exp := &fakeExporter{}

	out, err := run(t, &fakeService{result: vacancy.Result{Vacancies: vs}}, "golang\n1\n\n\n", WithExporter(exp))
	require.NoError(t, err)
	assert.Equal(t, vs, exp.got)
	assert.Contains(t, out, "Exported 1 vacancies")

	failing := &fakeExporter{err: errors.New("quota exceeded")}
	out, err = run(t, &fakeService{result: vacancy.Result{Vacancies: vs}}, "golang\n1\n\n\n", WithExporter(failing))
	require.NoError(t, err)
	assert.Contains(t, out, "Error during export: quota exceeded")
}
