// Package parse turns raw job-board API records into flat domain
// vacancies ready for storage and analysis.
package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hhscout-engine/internal/domain"
)

type namedRef struct {
	Name string `json:"name"`
}

type rawSalary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
	Gross    *bool  `json:"gross"`
}

type rawEmployer struct {
	Name         string `json:"name"`
	AlternateURL string `json:"alternate_url"`
}

type rawVacancy struct {
	ID                json.Number `json:"id"`
	Name              string      `json:"name"`
	AlternateURL      string      `json:"alternate_url"`
	PublishedAt       string      `json:"published_at"`
	CreatedAt         string      `json:"created_at"`
	Salary            *rawSalary  `json:"salary"`
	Employer          rawEmployer `json:"employer"`
	Area              namedRef    `json:"area"`
	Experience        namedRef    `json:"experience"`
	Employment        namedRef    `json:"employment"`
	Schedule          namedRef    `json:"schedule"`
	Description       string      `json:"description"`
	KeySkills         []namedRef  `json:"key_skills"`
	ProfessionalRoles []namedRef  `json:"professional_roles"`
}

// Vacancy parses one raw API record. Missing optional fields are
// tolerated as absent; a record without an id is rejected.
func Vacancy(raw json.RawMessage) (domain.Vacancy, error) {
	var rv rawVacancy
	if err := json.Unmarshal(raw, &rv); err != nil {
		return domain.Vacancy{}, fmt.Errorf("parse vacancy: %w", err)
	}
	if rv.ID.String() == "" {
		return domain.Vacancy{}, fmt.Errorf("parse vacancy: record has no id")
	}

	v := domain.Vacancy{
		ID:          rv.ID.String(),
		Name:        rv.Name,
		URL:         rv.AlternateURL,
		PublishedAt: rv.PublishedAt,
		CreatedAt:   rv.CreatedAt,
		CompanyName: rv.Employer.Name,
		CompanyURL:  rv.Employer.AlternateURL,
		Area:        rv.Area.Name,
		Experience:  rv.Experience.Name,
		Employment:  rv.Employment.Name,
		Schedule:    rv.Schedule.Name,
		Description: CleanHTML(rv.Description),
		KeySkills:   names(rv.KeySkills),
	}
	v.ProfessionalRoles = names(rv.ProfessionalRoles)

	if rv.Salary != nil {
		v.SalaryFrom = rv.Salary.From
		v.SalaryTo = rv.Salary.To
		v.SalaryCurrency = rv.Salary.Currency
		v.SalaryGross = rv.Salary.Gross
	}

	v.FullText = domain.BuildFullText(v.Name, v.Description, v.KeySkills)
	return v, nil
}

// All parses a batch, skipping records that fail individually; the
// collector logs those upstream via the returned count difference.
func All(raws []json.RawMessage) []domain.Vacancy {
	out := make([]domain.Vacancy, 0, len(raws))
	for _, raw := range raws {
		v, err := Vacancy(raw)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// CleanHTML strips markup from a vacancy description and collapses the
// remaining whitespace. Descriptions arrive as HTML fragments with
// entities, which goquery decodes for us.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseSpace(s)
	}
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func names(refs []namedRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Name)
	}
	return out
}
