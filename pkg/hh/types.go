package hh

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Config defines hh.ru API client settings
type Config struct {
	BaseURL        string
	Area           string
	OnlyWithSalary bool
	UserAgent      string
	PageSize       int
	// RatePerSecond throttles outgoing requests; <= 0 uses the default
	RatePerSecond float64
	HTTPClient    *http.Client
}

// Client queries the hh.ru vacancies API
type Client struct {
	baseURL        string
	area           string
	onlyWithSalary bool
	userAgent      string
	pageSize       int
	httpClient     *http.Client
	limiter        *rate.Limiter
}

// SearchParams describe a vacancy search request
type SearchParams struct {
	PerPage int
}

// APIError is returned for any non-2xx response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hh: API error (%d): %s", e.StatusCode, e.Body)
}

// searchResponse keeps items untyped so one malformed element cannot fail the page;
// validation happens during normalization
type searchResponse struct {
	Items   []any `json:"items"`
	Found   int   `json:"found"`
	Pages   int   `json:"pages"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}
