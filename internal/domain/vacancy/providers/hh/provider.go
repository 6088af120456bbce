package hh

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/pkg/hh"
)

// searchClient describes the subset of the hh.ru client used by the provider.
type searchClient interface {
	Ping(ctx context.Context) error
	SearchVacancies(ctx context.Context, query string, params hh.SearchParams) ([]any, error)
}

// Provider implements vacancy.Source using the hh.ru API
type Provider struct {
	client searchClient
}

// NewProvider builds an hh.ru provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("hh provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "hh.ru"
}

// Ping checks that the API answers before any real query is made
func (p *Provider) Ping(ctx context.Context) error {
	if p == nil || p.client == nil {
		return fmt.Errorf("hh provider: client is nil")
	}

	if err := p.client.Ping(ctx); err != nil {
		return fetchError("ping", fmt.Errorf("%w: %w", domain.ErrServiceUnreachable, err))
	}
	return nil
}

// Fetch queries hh.ru and returns the raw vacancy items
func (p *Provider) Fetch(ctx context.Context, query string, perPage int) ([]any, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("hh provider: client is nil")
	}

	items, err := p.client.SearchVacancies(ctx, query, hh.SearchParams{PerPage: perPage})
	if err != nil {
		return nil, fetchError("search", err)
	}
	return items, nil
}

func fetchError(op string, err error) *domain.FetchError {
	fe := &domain.FetchError{Op: op, Err: err}
	var apiErr *hh.APIError
	if errors.As(err, &apiErr) {
		fe.StatusCode = apiErr.StatusCode
	}
	return fe
}

var _ vacancy.Source = (*Provider)(nil)
