package vacancy

import "context"

// Source is an external vacancy data source such as the hh.ru API
type Source interface {
	// e.g. "hh.ru"
	Name() string

	// Ping checks connectivity; failures wrap domain.ErrServiceUnreachable
	Ping(ctx context.Context) error

	// Fetch returns raw items for a free-text query. Items are unvalidated and may not be records.
	// perPage <= 0 uses the source default
	Fetch(ctx context.Context, query string, perPage int) ([]any, error)
}
