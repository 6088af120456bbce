package tools

import (
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

func summaries(vacancies []domain.Vacancy) []domain.VacancySummary {
	out := make([]domain.VacancySummary, 0, len(vacancies))
	for _, v := range vacancies {
		out = append(out, v.Summary())
	}
	return out
}

// listing renders one line per vacancy for clients that only read text content
func listing(header string, items []domain.VacancySummary) string {
	msg := header
	for i, s := range items {
		line := fmt.Sprintf("\n%d. %s", i+1, s.Title)
		if s.Salary != "" {
			line += " | " + s.Salary
		}
		if s.Employer != "" {
			line += " | " + s.Employer
		}
		if s.URL != "" {
			line += " | " + s.URL
		}
		msg += line
	}
	return msg
}
