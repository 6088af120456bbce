package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
)

// DeleteVacancyParams defines the arguments for the delete_vacancy tool
type DeleteVacancyParams struct {
	ID string `json:"id" jsonschema:"hh.ru vacancy identifier"`
}

// DeleteVacancyResult reports whether anything was removed
type DeleteVacancyResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted" jsonschema:"False when no vacancy was stored under the id"`
}

// WithDeleteVacancy registers the delete_vacancy tool
func WithDeleteVacancy(svc vacancy.Service) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "delete_vacancy",
			Description: "Remove a stored vacancy by its hh.ru identifier",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params *DeleteVacancyParams) (*sdkmcp.CallToolResult, any, error) {
			if params == nil {
				return nil, nil, fmt.Errorf("delete_vacancy: id is required")
			}

			deleted, err := svc.Delete(ctx, params.ID)
			if err != nil {
				reg.logger.Error("delete_vacancy failed", "vacancy_id", params.ID, "err", err)
				return nil, nil, fmt.Errorf("delete_vacancy: %w", err)
			}

			result := DeleteVacancyResult{ID: params.ID, Deleted: deleted}
			if !deleted {
				return textResult(fmt.Sprintf("[delete_vacancy] no stored vacancy with id %q", params.ID)), result, nil
			}
			return textResult(fmt.Sprintf("[delete_vacancy] removed vacancy %q", params.ID)), result, nil
		})
	}
}
