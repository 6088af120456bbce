package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/honeycarbs/hh-vacancies/internal/config"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	hhprovider "github.com/honeycarbs/hh-vacancies/internal/domain/vacancy/providers/hh"
	"github.com/honeycarbs/hh-vacancies/internal/export"
	"github.com/honeycarbs/hh-vacancies/internal/storage/jsonfile"
	storageneo4j "github.com/honeycarbs/hh-vacancies/internal/storage/neo4j"
	storageredis "github.com/honeycarbs/hh-vacancies/internal/storage/redis"
	"github.com/honeycarbs/hh-vacancies/pkg/hh"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
	n4j "github.com/honeycarbs/hh-vacancies/pkg/neo4j"
	"github.com/honeycarbs/hh-vacancies/pkg/sheets"
)

// Resources is the wired runtime graph shared by the binaries
type Resources struct {
	Service vacancy.Service
	// Exporter is nil when Sheets export is not configured
	Exporter *export.SheetsExporter
}

// provideHHConfig extracts hh.ru client config from main config
func provideHHConfig(cfg config.Config) hh.Config {
	return hh.Config{
		BaseURL:        cfg.HH.BaseURL,
		Area:           strconv.Itoa(cfg.HH.Area),
		OnlyWithSalary: cfg.HH.OnlyWithSalary,
		UserAgent:      cfg.HH.UserAgent,
		PageSize:       cfg.HH.PerPage,
		RatePerSecond:  cfg.HH.RatePerSecond,
	}
}

// provideSource creates the hh.ru vacancy source from client
func provideSource(client *hh.Client) (vacancy.Source, error) {
	return hhprovider.NewProvider(client)
}

// provideServiceSettings extracts service tunables from main config
func provideServiceSettings(cfg config.Config) vacancy.ServiceSettings {
	return vacancy.ServiceSettings{
		PerPage:  cfg.HH.PerPage,
		MatchAny: cfg.MatchAny(),
	}
}

// provideStore opens the configured backend. The cleanup releases its connections
func provideStore(ctx context.Context, cfg config.Config, log *logging.Logger) (vacancy.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendNeo4j:
		client, err := n4j.NewClient(ctx, n4j.Config{
			URI:      cfg.Neo4j.URI,
			Username: cfg.Neo4j.Username,
			Password: cfg.Neo4j.Password,
			Database: cfg.Neo4j.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("Neo4j store initialized", "uri", cfg.Neo4j.URI)
		cleanup := func() {
			if err := client.Close(context.Background()); err != nil {
				log.Warn("failed to close neo4j client", "err", err)
			}
		}
		return storageneo4j.NewVacancyStore(client), cleanup, nil

	case config.BackendRedis:
		client, err := storageredis.NewClient(ctx, storageredis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("Redis store initialized", "addr", cfg.Redis.Addr, "key", cfg.Redis.Key)
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close redis client", "err", err)
			}
		}
		return storageredis.New(client, cfg.Redis.Key), cleanup, nil

	case config.BackendFile, "":
		dedup, err := jsonfile.ParseDedupKey(cfg.Store.Dedup)
		if err != nil {
			return nil, nil, err
		}
		store, err := jsonfile.New(cfg.Store.Path,
			jsonfile.WithDedupKey(dedup),
			jsonfile.WithLogger(log),
		)
		if err != nil {
			return nil, nil, err
		}
		log.Info("JSON file store initialized", "path", store.Path(), "dedup", string(dedup))
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("app: unknown store backend %q", cfg.Store.Backend)
	}
}

// provideExporter creates the Sheets exporter, or nil when export is disabled
func provideExporter(ctx context.Context, cfg config.Config, log *logging.Logger) (*export.SheetsExporter, error) {
	if !cfg.SheetsEnabled() {
		return nil, nil
	}

	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		return nil, err
	}
	log.Info("Google Sheets export enabled", "spreadsheet_id", cfg.Sheets.SpreadsheetID, "tab", cfg.Sheets.Tab)
	return export.NewSheetsExporter(client, cfg.Sheets.SpreadsheetID, cfg.Sheets.Tab, log), nil
}

// newResources creates Resources struct
func newResources(svc vacancy.Service, exporter *export.SheetsExporter) *Resources {
	return &Resources{
		Service:  svc,
		Exporter: exporter,
	}
}
