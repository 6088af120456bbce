package domain

import "strings"

// RawRecord is an unvalidated keyed record as returned by the vacancy API or read from a store
type RawRecord = map[string]any

// Salary is the advertised pay interval. A nil bound means open-ended on that side
type Salary struct {
	From     *int
	To       *int
	Currency *string
}

// Region is the display name of the vacancy area
type Region struct {
	Name string
}

// Employer is the display name of the hiring company
type Employer struct {
	Name string
}

// Experience is the required work experience bracket
type Experience struct {
	Name string
}

// Employment is the employment type (full time, part time, ...)
type Employment struct {
	Name string
}

// Snippet holds the short requirement and responsibility texts of a listing
type Snippet struct {
	Requirement    *string
	Responsibility *string
}

// Vacancy is the normalized job listing entity.
// Optional attributes are nil when the source did not provide them.
type Vacancy struct {
	ID          string
	Title       string
	Salary      *Salary
	Region      *Region
	Employer    *Employer
	Experience  *Experience
	Employment  *Employment
	Snippet     *Snippet
	URL         *string
	Description *string
}

// NewVacancy validates the required fields and returns the vacancy
func NewVacancy(v Vacancy) (Vacancy, error) {
	if strings.TrimSpace(v.ID) == "" {
		return Vacancy{}, &ValidationError{Field: "id", Reason: "must be a non-empty string"}
	}
	if strings.TrimSpace(v.Title) == "" {
		return Vacancy{}, &ValidationError{Field: "name", Reason: "must be a non-empty string"}
	}
	return v, nil
}

// Raw renders the vacancy back into the API record shape so that stored records normalize to the same value
func (v Vacancy) Raw() RawRecord {
	raw := RawRecord{
		"id":   v.ID,
		"name": v.Title,
	}

	if v.Salary != nil {
		salary := RawRecord{}
		if v.Salary.From != nil {
			salary["from"] = *v.Salary.From
		}
		if v.Salary.To != nil {
			salary["to"] = *v.Salary.To
		}
		if v.Salary.Currency != nil {
			salary["currency"] = *v.Salary.Currency
		}
		raw["salary"] = salary
	}
	if v.Region != nil {
		raw["area"] = RawRecord{"name": v.Region.Name}
	}
	if v.Employer != nil {
		raw["employer"] = RawRecord{"name": v.Employer.Name}
	}
	if v.Experience != nil {
		raw["experience"] = RawRecord{"name": v.Experience.Name}
	}
	if v.Employment != nil {
		raw["employment"] = RawRecord{"name": v.Employment.Name}
	}
	if v.Snippet != nil {
		snippet := RawRecord{}
		if v.Snippet.Requirement != nil {
			snippet["requirement"] = *v.Snippet.Requirement
		}
		if v.Snippet.Responsibility != nil {
			snippet["responsibility"] = *v.Snippet.Responsibility
		}
		raw["snippet"] = snippet
	}
	if v.URL != nil {
		raw["alternate_url"] = *v.URL
	}
	if v.Description != nil {
		raw["description"] = *v.Description
	}

	return raw
}

// EffectiveFrom is the lower salary bound used for comparisons, 0 when absent
func (v Vacancy) EffectiveFrom() int {
	if v.Salary == nil || v.Salary.From == nil {
		return 0
	}
	return *v.Salary.From
}

// SortTo is the upper salary bound used as the secondary sort key, 0 when absent
func (v Vacancy) SortTo() int {
	if v.Salary == nil || v.Salary.To == nil {
		return 0
	}
	return *v.Salary.To
}

// VacancySummary is the response-friendly vacancy view
type VacancySummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Employer    string `json:"employer,omitempty"`
	Region      string `json:"region,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Employment  string `json:"employment,omitempty"`
	SalaryFrom  *int   `json:"salary_from,omitempty"`
	SalaryTo    *int   `json:"salary_to,omitempty"`
	Currency    string `json:"currency,omitempty"`
	Salary      string `json:"salary,omitempty"`
	URL         string `json:"url,omitempty"`
	Requirement string `json:"requirement,omitempty"`
}

// Summary flattens the vacancy for display and transport
func (v Vacancy) Summary() VacancySummary {
	s := VacancySummary{
		ID:    v.ID,
		Title: v.Title,
	}
	if v.Employer != nil {
		s.Employer = v.Employer.Name
	}
	if v.Region != nil {
		s.Region = v.Region.Name
	}
	if v.Experience != nil {
		s.Experience = v.Experience.Name
	}
	if v.Employment != nil {
		s.Employment = v.Employment.Name
	}
	if v.Salary != nil {
		s.SalaryFrom = v.Salary.From
		s.SalaryTo = v.Salary.To
		if v.Salary.Currency != nil {
			s.Currency = *v.Salary.Currency
		}
		s.Salary = FormatSalary(v.Salary)
	}
	if v.URL != nil {
		s.URL = *v.URL
	}
	if v.Snippet != nil && v.Snippet.Requirement != nil {
		s.Requirement = *v.Snippet.Requirement
	}
	return s
}
