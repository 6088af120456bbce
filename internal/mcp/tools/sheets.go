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

// Exporter writes vacancies to an external spreadsheet
type Exporter interface {
	Export(ctx context.Context, vacancies []domain.Vacancy) (int, error)
}

// SheetsExportParams selects stored vacancies to export
type SheetsExportParams struct {
	Employer string `json:"employer,omitempty" jsonschema:"Exact employer name"`
	Region   string `json:"region,omitempty" jsonschema:"Exact region name"`
	Currency string `json:"currency,omitempty" jsonschema:"Salary currency code such as RUR"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of vacancies to export, highest salary first"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	WrittenRows int       `json:"written_rows" jsonschema:"How many vacancy rows were written"`
	CompletedAt time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message     string    `json:"message,omitempty"`
}

type sheetsExportTool struct {
	svc      vacancy.Service
	exporter Exporter
	logger   *logging.Logger
	now      func() time.Time
}

// WithSheetsExport registers the sheets_export tool; a nil exporter skips registration
func WithSheetsExport(svc vacancy.Service, exporter Exporter) Option {
	if exporter == nil {
		return nil
	}
	return func(reg *registry) {
		handler := sheetsExportTool{svc: svc, exporter: exporter, logger: reg.logger, now: time.Now}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Replace the configured Google Sheets tab with stored vacancies ranked by salary",
		}, handler.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	var criteria vacancy.Criteria
	if params != nil {
		criteria = vacancy.Criteria{
			Employer: params.Employer,
			Region:   params.Region,
			Currency: params.Currency,
		}
	}

	stored, err := t.svc.Stored(ctx, criteria)
	if err != nil {
		return nil, nil, fmt.Errorf("sheets_export: %w", err)
	}

	ranked := vacancy.SortBySalaryDesc(stored)
	if params != nil && params.Limit > 0 {
		ranked = vacancy.TakeTop(ranked, params.Limit)
	}

	n, err := t.exporter.Export(ctx, ranked)
	if err != nil {
		t.logger.Error("sheets_export failed", "err", err)
		return nil, nil, fmt.Errorf("sheets_export: %w", err)
	}

	result := SheetsExportResult{
		WrittenRows: n,
		CompletedAt: t.now().UTC(),
		Message:     fmt.Sprintf("successfully exported %d row(s)", n),
	}
	return textResult("[sheets_export] " + result.Message), result, nil
}
