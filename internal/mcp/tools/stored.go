package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// StoredVacanciesParams defines the arguments for the stored_vacancies tool
type StoredVacanciesParams struct {
	Employer string `json:"employer,omitempty" jsonschema:"Exact employer name"`
	Region   string `json:"region,omitempty" jsonschema:"Exact region name"`
	Currency string `json:"currency,omitempty" jsonschema:"Salary currency code such as RUR"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of vacancies to return"`
}

// StoredVacanciesResult lists previously persisted vacancies
type StoredVacanciesResult struct {
	Total     int                     `json:"total" jsonschema:"Number of matching vacancies returned"`
	Vacancies []domain.VacancySummary `json:"vacancies"`
}

type storedVacanciesTool struct {
	svc    vacancy.Service
	logger *logging.Logger
}

// WithStoredVacancies registers the stored_vacancies tool
func WithStoredVacancies(svc vacancy.Service) Option {
	return func(reg *registry) {
		handler := storedVacanciesTool{svc: svc, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "stored_vacancies",
			Description: "List vacancies saved by earlier searches, optionally filtered by employer, region or currency",
		}, handler.handle)
	}
}

func (t storedVacanciesTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *StoredVacanciesParams) (*sdkmcp.CallToolResult, any, error) {
	if t.svc == nil {
		return nil, nil, fmt.Errorf("stored_vacancies: service not configured")
	}

	var criteria vacancy.Criteria
	if params != nil {
		criteria = vacancy.Criteria{
			Employer: params.Employer,
			Region:   params.Region,
			Currency: params.Currency,
			Limit:    params.Limit,
		}
	}

	vacancies, err := t.svc.Stored(ctx, criteria)
	if err != nil {
		t.logger.Error("stored_vacancies failed", "err", err)
		return nil, nil, fmt.Errorf("stored_vacancies: %w", err)
	}

	result := StoredVacanciesResult{
		Total:     len(vacancies),
		Vacancies: summaries(vacancies),
	}

	t.logger.Debug("stored_vacancies completed", "total", result.Total)

	header := fmt.Sprintf("[stored_vacancies] %d stored vacancies matched", result.Total)
	return textResult(listing(header, result.Vacancies)), result, nil
}
