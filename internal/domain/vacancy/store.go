package vacancy

import (
	"context"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
)

// Store persists discovered vacancies across runs, deduplicated by identifier
type Store interface {
	// AppendIfAbsent writes the vacancy unless one with the same key exists.
	// It reports whether a new record was written.
	AppendIfAbsent(ctx context.Context, v domain.Vacancy) (bool, error)

	// ReadAll returns every stored record in insertion order
	ReadAll(ctx context.Context) ([]domain.RawRecord, error)

	// Delete removes the record with the given identifier, reporting whether it existed
	Delete(ctx context.Context, id string) (bool, error)
}
