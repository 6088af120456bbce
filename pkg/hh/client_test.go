package hh

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL
	cfg.HTTPClient = srv.Client()
	cfg.RatePerSecond = 1000

	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c
}

func TestSearchVacancies(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": "1", "name": "Python Developer", "salary": map[string]any{"from": 100000}},
				{"id": "2", "name": "Java Developer"},
			},
			"found": 2,
			"pages": 1,
		})
	}, Config{OnlyWithSalary: true, UserAgent: "test-agent"})

	items, err := c.SearchVacancies(context.Background(), "python", SearchParams{PerPage: 50})
	require.NoError(t, err)

	require.Len(t, items, 2)
	first, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Python Developer", first["name"])
	salary, ok := first["salary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("100000"), salary["from"])

	require.NotNil(t, got)
	assert.Equal(t, "/vacancies", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "python", q.Get("text"))
	assert.Equal(t, "50", q.Get("per_page"))
	assert.Equal(t, "113", q.Get("area"))
	assert.Equal(t, "true", q.Get("only_with_salary"))
	assert.Equal(t, "test-agent", got.Header.Get("User-Agent"))
}

func TestSearchVacanciesDefaults(t *testing.T) {
	var perPage, onlyWithSalary string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		perPage = r.URL.Query().Get("per_page")
		onlyWithSalary = r.URL.Query().Get("only_with_salary")
		_, _ = w.Write([]byte(`{"items": []}`))
	}, Config{PageSize: 500})

	items, err := c.SearchVacancies(context.Background(), "go", SearchParams{})
	require.NoError(t, err)

	assert.Empty(t, items)
	assert.Equal(t, "100", perPage)
	assert.Empty(t, onlyWithSalary)
}

func TestSearchVacanciesMissingItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"found": 0}`))
	}, Config{})

	items, err := c.SearchVacancies(context.Background(), "go", SearchParams{})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSearchVacanciesKeepsNonObjectItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": [{"id": "1", "name": "Py Dev"}, "garbage", 42, null]}`))
	}, Config{})

	items, err := c.SearchVacancies(context.Background(), "go", SearchParams{})
	require.NoError(t, err)

	require.Len(t, items, 4)
	assert.IsType(t, map[string]any{}, items[0])
	assert.Equal(t, "garbage", items[1])
	assert.Equal(t, json.Number("42"), items[2])
	assert.Nil(t, items[3])
}

func TestSearchVacanciesErrors(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "bad things", http.StatusInternalServerError)
		}, Config{})

		_, err := c.SearchVacancies(context.Background(), "go", SearchParams{})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "bad things", apiErr.Body)
	})

	t.Run("bad json", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"items": [`))
		}, Config{})

		_, err := c.SearchVacancies(context.Background(), "go", SearchParams{})
		assert.ErrorContains(t, err, "decode response")
	})

	t.Run("empty query", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			t.Error("no request expected")
		}, Config{})

		_, err := c.SearchVacancies(context.Background(), " ", SearchParams{})
		assert.Error(t, err)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		c, err := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
		require.NoError(t, err)
		srv.Close()

		_, err = c.SearchVacancies(context.Background(), "go", SearchParams{})
		assert.ErrorContains(t, err, "request failed")
	})
}

func TestPing(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		var rawQuery string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			rawQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`{"items": []}`))
		}, Config{})

		require.NoError(t, c.Ping(context.Background()))
		assert.Empty(t, rawQuery)
	})

	t.Run("forbidden", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}, Config{})

		err := c.Ping(context.Background())
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})
}
