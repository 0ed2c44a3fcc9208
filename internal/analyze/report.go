package analyze

import "hhscout-engine/internal/domain"

// Report is the composite analysis of one vacancy collection. It is built
// on demand and never mutated afterwards.
type Report struct {
	TotalVacancies  int            `json:"total_vacancies"`
	TopKeywords     []TermCount    `json:"top_keywords"`
	TopSkills       []TermCount    `json:"top_skills"`
	SalaryStats     SalaryStats    `json:"salary_stats"`
	ExperienceStats map[string]int `json:"experience_stats"`
	ResumeTips      []string       `json:"resume_tips"`
}

// CreateReport runs each sub-analysis exactly once over the same input
// and composes the result. Pure and idempotent: calling it twice on the
// same collection yields identical reports.
func (a *Analyzer) CreateReport(vacancies []domain.Vacancy) Report {
	keywords := a.ExtractKeywords(vacancies)
	skills := a.ExtractSkills(vacancies)

	return Report{
		TotalVacancies:  len(vacancies),
		TopKeywords:     a.TopKeywords(keywords, 0),
		TopSkills:       a.TopSkills(skills, 0),
		SalaryStats:     a.AnalyzeSalaries(vacancies),
		ExperienceStats: a.AnalyzeExperience(vacancies),
		ResumeTips:      a.ResumeTips(keywords, skills),
	}
}
