package export

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

const defaultTab = "Vacancies"

var header = []any{"ID", "Title", "Salary", "Employer", "Region", "Experience", "Employment", "URL", "Requirement", "Exported At"}

type valuesWriter interface {
	ClearValues(ctx context.Context, spreadsheetID, rng string) error
	UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]any) error
}

// SheetsExporter replaces the contents of one spreadsheet tab with ranked vacancies
type SheetsExporter struct {
	client        valuesWriter
	spreadsheetID string
	tab           string
	logger        *logging.Logger
	now           func() time.Time
}

// NewSheetsExporter builds an exporter; an empty tab means "Vacancies"
func NewSheetsExporter(client valuesWriter, spreadsheetID, tab string, log *logging.Logger) *SheetsExporter {
	if tab == "" {
		tab = defaultTab
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &SheetsExporter{
		client:        client,
		spreadsheetID: spreadsheetID,
		tab:           tab,
		logger:        log,
		now:           time.Now,
	}
}

// Export clears the tab and writes a header plus one row per vacancy.
// It returns the number of vacancy rows written
func (e *SheetsExporter) Export(ctx context.Context, vacancies []domain.Vacancy) (int, error) {
	if err := e.client.ClearValues(ctx, e.spreadsheetID, e.tab+"!A:Z"); err != nil {
		return 0, fmt.Errorf("export: clear tab %s: %w", e.tab, err)
	}

	values := rows(vacancies, e.now().UTC())
	if err := e.client.UpdateValues(ctx, e.spreadsheetID, e.tab+"!A1", values); err != nil {
		return 0, fmt.Errorf("export: write tab %s: %w", e.tab, err)
	}

	e.logger.Info("vacancies exported to sheets", "spreadsheet_id", e.spreadsheetID, "tab", e.tab, "rows", len(vacancies))
	return len(vacancies), nil
}

func rows(vacancies []domain.Vacancy, exportedAt time.Time) [][]any {
	stamp := exportedAt.Format(time.RFC3339)

	out := make([][]any, 0, len(vacancies)+1)
	out = append(out, header)
	for _, v := range vacancies {
		s := v.Summary()
		out = append(out, []any{
			s.ID,
			s.Title,
			s.Salary,
			s.Employer,
			s.Region,
			s.Experience,
			s.Employment,
			s.URL,
			s.Requirement,
			stamp,
		})
	}
	return out
}
