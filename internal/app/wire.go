//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/hh-vacancies/internal/config"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/pkg/hh"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// InitializeResources creates Resources with the configured source, store and exporter wired up
func InitializeResources(ctx context.Context, cfg config.Config, log *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Infrastructure - hh.ru
		provideHHConfig,
		hh.NewClient,
		provideSource,

		// Storage
		provideStore,

		// Services
		provideServiceSettings,
		vacancy.NewServiceWithDeps,

		// Export
		provideExporter,
		newResources,
	)

	return nil, nil, nil
}
