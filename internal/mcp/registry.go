package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/internal/mcp/tools"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// Resources are the dependencies exposed through MCP tools
type Resources struct {
	Service vacancy.Service
	// Exporter is optional; sheets_export is only registered when set
	Exporter tools.Exporter
}

type ToolRegistry struct {
	logger *logging.Logger
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res Resources) {
	opts := []tools.Option{
		tools.WithVacancySearch(res.Service),
		tools.WithStoredVacancies(res.Service),
		tools.WithDeleteVacancy(res.Service),
	}
	if res.Exporter != nil {
		opts = append(opts, tools.WithSheetsExport(res.Service, res.Exporter))
	}

	tools.Register(server, r.logger, opts...)
}
