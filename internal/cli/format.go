package cli

import (
	"fmt"
	"io"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
)

const (
	noResults      = "No results."
	requirementMax = 100
)

func printVacancies(w io.Writer, vacancies []domain.Vacancy) {
	if len(vacancies) == 0 {
		fmt.Fprintln(w, noResults)
		return
	}

	fmt.Fprintln(w, "\nVacancies found:")
	for i, v := range vacancies {
		s := v.Summary()

		fmt.Fprintf(w, "\n%d. %s\n", i+1, s.Title)
		salary := s.Salary
		if salary == "" {
			salary = "not specified"
		}
		fmt.Fprintf(w, "   Salary: %s\n", salary)
		if s.Employer != "" {
			fmt.Fprintf(w, "   Employer: %s\n", s.Employer)
		}
		if s.Region != "" {
			fmt.Fprintf(w, "   Region: %s\n", s.Region)
		}
		if s.URL != "" {
			fmt.Fprintf(w, "   URL: %s\n", s.URL)
		}
		if s.Requirement != "" {
			fmt.Fprintf(w, "   Requirements: %s\n", domain.Truncate(s.Requirement, requirementMax))
		}
	}
}
