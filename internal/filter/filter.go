// Package filter narrows a vacancy collection by salary bounds and
// keyword inclusion/exclusion before analysis.
package filter

import (
	"strings"

	"hhscout-engine/internal/domain"
)

// Search field names accepted in Criteria.SearchIn.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldSkills      = "skills"
	FieldFullText    = "full_text"
)

// Criteria is the filter configuration for one request. Nil/empty fields
// disable their pass.
type Criteria struct {
	MinSalary       *int
	MaxSalary       *int
	HideEmpty       bool
	IncludeKeywords []string
	ExcludeKeywords []string

	// SearchIn lists the fields keyword passes match against; empty
	// means full text only.
	SearchIn []string
}

// Active reports whether any pass would run.
func (c Criteria) Active() bool {
	return c.MinSalary != nil || c.MaxSalary != nil || c.HideEmpty ||
		len(c.IncludeKeywords) > 0 || len(c.ExcludeKeywords) > 0
}

// Apply runs the active passes in fixed order, each over the output of
// the previous one: hide-empty, minimum salary, maximum salary, include
// keywords, exclude keywords. The input slice is never modified.
func Apply(vacancies []domain.Vacancy, c Criteria) []domain.Vacancy {
	filtered := vacancies

	if c.HideEmpty {
		filtered = keep(filtered, domain.Vacancy.HasSalary)
	}

	if c.MinSalary != nil {
		min := *c.MinSalary
		filtered = keep(filtered, func(v domain.Vacancy) bool {
			return (v.SalaryFrom != nil && *v.SalaryFrom >= min) ||
				(v.SalaryTo != nil && *v.SalaryTo >= min)
		})
	}

	if c.MaxSalary != nil {
		// Unlike the minimum pass, vacancies without any salary survive
		// here. Kept as-is for compatibility with the data the dashboard
		// has always shown.
		max := *c.MaxSalary
		filtered = keep(filtered, func(v domain.Vacancy) bool {
			return (v.SalaryFrom != nil && *v.SalaryFrom <= max) ||
				(v.SalaryTo != nil && *v.SalaryTo <= max) ||
				!v.HasSalary()
		})
	}

	if len(c.IncludeKeywords) > 0 {
		fields := c.searchFields()
		filtered = keep(filtered, func(v domain.Vacancy) bool {
			return containsAll(corpus(v, fields), c.IncludeKeywords)
		})
	}

	if len(c.ExcludeKeywords) > 0 {
		fields := c.searchFields()
		filtered = keep(filtered, func(v domain.Vacancy) bool {
			return !containsAny(corpus(v, fields), c.ExcludeKeywords)
		})
	}

	return filtered
}

func keep(in []domain.Vacancy, pred func(domain.Vacancy) bool) []domain.Vacancy {
	out := make([]domain.Vacancy, 0, len(in))
	for _, v := range in {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func (c Criteria) searchFields() []string {
	if len(c.SearchIn) == 0 {
		return []string{FieldFullText}
	}
	return c.SearchIn
}

// corpus concatenates the requested fields lower-cased. Unknown field
// names contribute nothing.
func corpus(v domain.Vacancy, fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f {
		case FieldName:
			parts = append(parts, v.Name)
		case FieldDescription:
			parts = append(parts, v.Description)
		case FieldSkills:
			parts = append(parts, strings.Join(v.KeySkills, " "))
		case FieldFullText:
			parts = append(parts, v.FullText)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Keyword matching is plain substring containment, not word matching:
// "cat" matches "category".
func containsAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
