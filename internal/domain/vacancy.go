package domain

import "strings"

// Vacancy is one parsed job posting. Optional numeric/bool fields are
// pointers so "not published" survives the trip through storage and JSON
// instead of collapsing to zero.
type Vacancy struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	URL               string   `json:"url"`
	PublishedAt       string   `json:"published_at"`
	CreatedAt         string   `json:"created_at"`
	SalaryFrom        *int     `json:"salary_from"`
	SalaryTo          *int     `json:"salary_to"`
	SalaryCurrency    string   `json:"salary_currency,omitempty"`
	SalaryGross       *bool    `json:"salary_gross,omitempty"`
	CompanyName       string   `json:"company_name"`
	CompanyURL        string   `json:"company_url"`
	Area              string   `json:"area"`
	Experience        string   `json:"experience"`
	Employment        string   `json:"employment"`
	Schedule          string   `json:"schedule"`
	Description       string   `json:"description"`
	KeySkills         []string `json:"key_skills"`
	ProfessionalRoles []string `json:"professional_roles"`

	// FullText is the space-joined concatenation of name, description and
	// skills. It is the default search corpus for filtering and the input
	// for keyword extraction.
	FullText string `json:"full_text"`
}

// HasSalary reports whether at least one salary bound is published.
func (v Vacancy) HasSalary() bool {
	return v.SalaryFrom != nil || v.SalaryTo != nil
}

// BuildFullText joins the non-empty parts with single spaces. Parser and
// storage both go through this so the FullText invariant holds everywhere.
func BuildFullText(name, description string, skills []string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{name, description, strings.Join(skills, " ")} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
