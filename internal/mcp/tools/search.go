package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

const defaultSearchCount = 10

// VacancySearchParams defines the arguments for the vacancy_search tool
type VacancySearchParams struct {
	Query       string   `json:"query" jsonschema:"Free-text hh.ru search query"`
	Count       int      `json:"count,omitempty" jsonschema:"How many top vacancies to return (default 10)"`
	Keywords    []string `json:"keywords,omitempty" jsonschema:"Keywords that must appear in the requirement or responsibility text"`
	SalaryRange string   `json:"salary_range,omitempty" jsonschema:"Salary filter: 100000, 100000-150000 or -150000"`
}

// VacancySearchResult is the structured vacancy_search response
type VacancySearchResult struct {
	RunID     string                  `json:"run_id" jsonschema:"Identifier of this search run"`
	FetchedAt time.Time               `json:"fetched_at" jsonschema:"When the source was queried"`
	Fetched   int                     `json:"fetched" jsonschema:"Raw records returned by hh.ru"`
	Skipped   int                     `json:"skipped" jsonschema:"Malformed records skipped"`
	Stored    int                     `json:"stored" jsonschema:"Vacancies newly persisted"`
	Vacancies []domain.VacancySummary `json:"vacancies" jsonschema:"Ranked vacancies"`
	Warnings  []string                `json:"warnings,omitempty" jsonschema:"Non-fatal problems such as an ignored salary range"`
}

type vacancySearchTool struct {
	svc    vacancy.Service
	logger *logging.Logger
}

// WithVacancySearch registers the vacancy_search tool
func WithVacancySearch(svc vacancy.Service) Option {
	return func(reg *registry) {
		handler := vacancySearchTool{svc: svc, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_search",
			Description: "Search hh.ru vacancies, store new ones and return the top matches ranked by salary",
		}, handler.handle)
	}
}

func (t vacancySearchTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *VacancySearchParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		return nil, nil, fmt.Errorf("vacancy_search: params are required")
	}
	if t.svc == nil {
		return nil, nil, fmt.Errorf("vacancy_search: service not configured")
	}

	count := params.Count
	if count == 0 {
		count = defaultSearchCount
	}

	t.logger.Info("vacancy_search request", "query", params.Query, "count", count, "keywords", params.Keywords)

	res, err := t.svc.Search(ctx, vacancy.Params{
		Query:       params.Query,
		Count:       count,
		Keywords:    params.Keywords,
		SalaryRange: params.SalaryRange,
	})
	if err != nil {
		t.logger.Error("vacancy_search failed", "query", params.Query, "err", err)
		return nil, nil, fmt.Errorf("vacancy_search: %w", err)
	}

	result := VacancySearchResult{
		RunID:     res.RunID.String(),
		FetchedAt: res.FetchedAt.UTC(),
		Fetched:   res.Fetched,
		Skipped:   res.Skipped,
		Stored:    res.Stored,
		Vacancies: summaries(res.Vacancies),
	}
	if res.RangeErr != nil {
		result.Warnings = append(result.Warnings, res.RangeErr.Error())
	}
	if res.StoreErr != nil {
		result.Warnings = append(result.Warnings, "not all vacancies were stored: "+res.StoreErr.Error())
	}

	header := fmt.Sprintf("[vacancy_search] %d of %d fetched vacancies matched %q", len(result.Vacancies), result.Fetched, params.Query)
	return textResult(listing(header, result.Vacancies)), result, nil
}
