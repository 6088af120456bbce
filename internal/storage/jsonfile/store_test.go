package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
)

func ptr[T any](v T) *T { return &v }

func newStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "data", "vacancies.json"), opts...)
	require.NoError(t, err)
	return s
}

func testVacancy(id string) domain.Vacancy {
	return domain.Vacancy{
		ID:     id,
		Title:  "Test Vacancy " + id,
		Salary: &domain.Salary{From: ptr(100000), To: ptr(150000), Currency: ptr("RUR")},
		URL:    ptr("https://hh.ru/vacancy/" + id),
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	s := newStore(t)

	info, err := os.Stat(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestAppendAndReadBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	added, err := s.AppendIfAbsent(ctx, testVacancy("123"))
	require.NoError(t, err)
	assert.True(t, added)

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "123", records[0]["id"])

	v, err := vacancy.Normalize(records[0])
	require.NoError(t, err)
	assert.Equal(t, testVacancy("123"), v)
}

func TestAppendDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first, err := s.AppendIfAbsent(ctx, testVacancy("123"))
	require.NoError(t, err)
	second, err := s.AppendIfAbsent(ctx, testVacancy("123"))
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestDedupByURL(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, WithDedupKey(DedupByURL))

	a := testVacancy("1")
	b := testVacancy("2")
	b.URL = a.URL

	added, err := s.AppendIfAbsent(ctx, a)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AppendIfAbsent(ctx, b)
	require.NoError(t, err)
	assert.False(t, added, "same URL must be treated as duplicate in url mode")

	noURL := domain.Vacancy{ID: "3", Title: "no url"}
	_, err = s.AppendIfAbsent(ctx, noURL)
	var serr *domain.StorageError
	assert.True(t, errors.As(err, &serr))
}

func TestReadAllTolerantCases(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file", content: nil},
		{name: "empty file", content: ptr("")},
		{name: "whitespace", content: ptr("  \n")},
		{name: "corrupt json", content: ptr(`{"items": [ {"id": `)},
		{name: "empty items", content: ptr(`{"items": []}`)},
		{name: "null items", content: ptr(`{"items": null}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if tt.content != nil {
				require.NoError(t, os.WriteFile(s.Path(), []byte(*tt.content), 0o644))
			}

			records, err := s.ReadAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestReadAllStructurallyInvalid(t *testing.T) {
	contents := []string{
		`42`,
		`"just a string"`,
		`{"items": "nope"}`,
		`{"items": [1, 2]}`,
		`["invalid data"]`,
		`[null]`,
	}

	for _, content := range contents {
		t.Run(content, func(t *testing.T) {
			s := newStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

			_, err := s.ReadAll(context.Background())
			var serr *domain.StorageError
			require.True(t, errors.As(err, &serr), "expected StorageError, got %v", err)
			assert.Equal(t, "decode", serr.Op)
		})
	}
}

func TestReadAllBareArray(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`[{"id": "1", "name": "a"}, {"id": "2", "title": "b"}]`), 0o644))

	records, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2", records[1]["id"])

	added, err := s.AppendIfAbsent(context.Background(), testVacancy("2"))
	require.NoError(t, err)
	assert.False(t, added)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, id := range []string{"1", "2", "3"} {
		_, err := s.AppendIfAbsent(ctx, testVacancy(id))
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "vacancies.json", entries[0].Name())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items"`)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, id := range []string{"1", "2"} {
		_, err := s.AppendIfAbsent(ctx, testVacancy(id))
		require.NoError(t, err)
	}

	deleted, err := s.Delete(ctx, "1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Delete(ctx, "1")
	require.NoError(t, err)
	assert.False(t, deleted)

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2", records[0]["id"])
}

func TestParseDedupKey(t *testing.T) {
	k, err := ParseDedupKey("")
	require.NoError(t, err)
	assert.Equal(t, DedupByID, k)

	k, err = ParseDedupKey("url")
	require.NoError(t, err)
	assert.Equal(t, DedupByURL, k)

	_, err = ParseDedupKey("title")
	assert.Error(t, err)
}

func TestCanceledContext(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.AppendIfAbsent(ctx, testVacancy("1"))
	assert.ErrorIs(t, err, context.Canceled)
}
