package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://api.hh.ru"
	defaultArea      = "113" // Russia
	defaultPageSize  = 100
	maxPageSize      = 100
	defaultRate      = 5
	defaultUserAgent = "hh-vacancies/0.1"
)

// NewClient instantiates an hh.ru API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("hh: parse base url: %w", err)
	}

	area := cfg.Area
	if area == "" {
		area = defaultArea
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	pageSize := clampPageSize(cfg.PageSize)

	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = defaultRate
	}

	return &Client{
		baseURL:        baseURL,
		area:           area,
		onlyWithSalary: cfg.OnlyWithSalary,
		userAgent:      userAgent,
		pageSize:       pageSize,
		httpClient:     httpClient,
		limiter:        rate.NewLimiter(rate.Limit(perSecond), 1),
	}, nil
}

// Ping issues a bare request to the vacancies endpoint to check the API is reachable
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("hh: client is nil")
	}

	u, err := c.endpoint(nil)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, u)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return nil
}

// SearchVacancies returns the first page of vacancies matching the query as raw items.
// Items are not checked to be objects
func (c *Client) SearchVacancies(ctx context.Context, query string, params SearchParams) ([]any, error) {
	if c == nil {
		return nil, fmt.Errorf("hh: client is nil")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("hh: query is required")
	}

	perPage := c.pageSize
	if params.PerPage > 0 {
		perPage = clampPageSize(params.PerPage)
	}

	values := url.Values{}
	values.Set("text", query)
	values.Set("per_page", strconv.Itoa(perPage))
	values.Set("area", c.area)
	if c.onlyWithSalary {
		values.Set("only_with_salary", "true")
	}

	u, err := c.endpoint(values)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var payload searchResponse
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("hh: decode response: %w", err)
	}

	if payload.Items == nil {
		return []any{}, nil
	}
	return payload.Items, nil
}

func (c *Client) endpoint(values url.Values) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("hh: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, "vacancies")
	if values != nil {
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}

// do throttles, sends a GET and turns non-2xx responses into *APIError
func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("hh: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("hh: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hh: request failed: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return resp, nil
}

func clampPageSize(n int) int {
	if n <= 0 {
		return defaultPageSize
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}
