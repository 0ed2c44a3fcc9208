package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hhscout-engine/internal/domain"
)

func intp(v int) *int { return &v }

func TestSalaryStatsNeverDoubleCounts(t *testing.T) {
	a := newTestAnalyzer(3)

	var vacancies []domain.Vacancy
	for i := 0; i < 4; i++ {
		vacancies = append(vacancies, domain.Vacancy{
			SalaryFrom: intp(100),
			SalaryTo:   intp(200),
		})
	}

	stats := a.AnalyzeSalaries(vacancies)
	assert.Equal(t, 4, stats.CountWithSalary)
	assert.Equal(t, 4, stats.CountTotal)
	require.NotNil(t, stats.AvgFrom)
	require.NotNil(t, stats.AvgTo)
	assert.Equal(t, 100.0, *stats.AvgFrom)
	assert.Equal(t, 200.0, *stats.AvgTo)
}

func TestSalaryStatsEmptyPoolsOmitted(t *testing.T) {
	a := newTestAnalyzer(3)

	stats := a.AnalyzeSalaries([]domain.Vacancy{
		{SalaryTo: intp(90000)},
		{},
	})

	assert.Equal(t, 1, stats.CountWithSalary)
	assert.Equal(t, 2, stats.CountTotal)
	assert.Nil(t, stats.MinFrom)
	assert.Nil(t, stats.MaxFrom)
	assert.Nil(t, stats.AvgFrom)
	require.NotNil(t, stats.MinTo)
	assert.Equal(t, 90000, *stats.MinTo)
}

func TestTopKeywordsFloorAndTieBreak(t *testing.T) {
	a := New(Config{MinWordLength: 1, MinFrequency: 2, TopKeywords: 2})

	table := NewFreqTable()
	for i := 0; i < 5; i++ {
		table.Add("a")
	}
	for i := 0; i < 5; i++ {
		table.Add("b")
	}
	table.Add("c")

	top := a.TopKeywords(table, 0)
	require.Len(t, top, 2)
	// Equal counts rank in first-seen order; "c" is below the floor.
	assert.Equal(t, TermCount{Term: "a", Count: 5}, top[0])
	assert.Equal(t, TermCount{Term: "b", Count: 5}, top[1])
}

func TestSkillRepeatedInOneVacancyCountsTwice(t *testing.T) {
	a := newTestAnalyzer(3)

	skills := a.ExtractSkills([]domain.Vacancy{
		{KeySkills: []string{"SQL", "SQL"}},
	})
	assert.Equal(t, 2, skills.Count("SQL"))
}

func TestSkillsCountedVerbatim(t *testing.T) {
	a := newTestAnalyzer(3)

	skills := a.ExtractSkills([]domain.Vacancy{
		{KeySkills: []string{"Excel", "excel"}},
		{KeySkills: []string{"Excel"}},
	})
	assert.Equal(t, 2, skills.Count("Excel"))
	assert.Equal(t, 1, skills.Count("excel"))
}

func TestExperienceSkipsEmptyLabels(t *testing.T) {
	a := newTestAnalyzer(3)

	got := a.AnalyzeExperience([]domain.Vacancy{
		{Experience: "От 1 года до 3 лет"},
		{Experience: ""},
		{Experience: "От 1 года до 3 лет"},
	})
	assert.Equal(t, map[string]int{"От 1 года до 3 лет": 2}, got)
}

func TestCreateReportEndToEnd(t *testing.T) {
	a := New(Config{MinWordLength: 3, MinFrequency: 1, TopKeywords: 50})

	v1 := domain.Vacancy{
		FullText:   "team lead marketing budget",
		SalaryFrom: intp(80000),
		KeySkills:  []string{"Excel", "Excel"},
	}
	v2 := domain.Vacancy{FullText: "intern marketing"}

	report := a.CreateReport([]domain.Vacancy{v1, v2})

	assert.Equal(t, 2, report.TotalVacancies)
	assert.Equal(t, []TermCount{{Term: "Excel", Count: 2}}, report.TopSkills)

	assert.Equal(t, 1, report.SalaryStats.CountWithSalary)
	assert.Equal(t, 2, report.SalaryStats.CountTotal)
	require.NotNil(t, report.SalaryStats.MinFrom)
	assert.Equal(t, 80000, *report.SalaryStats.MinFrom)
	assert.Equal(t, 80000, *report.SalaryStats.MaxFrom)
	assert.Equal(t, 80000.0, *report.SalaryStats.AvgFrom)
	assert.Nil(t, report.SalaryStats.AvgTo)

	// "marketing" appears in both vacancies.
	found := map[string]int{}
	for _, tc := range report.TopKeywords {
		found[tc.Term] = tc.Count
	}
	assert.Equal(t, 2, found["marketing"])
	assert.Equal(t, 1, found["team"])
}

func TestCreateReportIdempotent(t *testing.T) {
	a := New(Config{MinWordLength: 3, MinFrequency: 1, TopKeywords: 10})

	vacancies := []domain.Vacancy{
		{FullText: "go developer remote", KeySkills: []string{"Go", "Docker"}, SalaryFrom: intp(150000), Experience: "1-3"},
		{FullText: "go developer office", KeySkills: []string{"Go"}, Experience: "3-6"},
	}

	first := a.CreateReport(vacancies)
	second := a.CreateReport(vacancies)
	assert.Equal(t, first, second)
}

func TestCreateReportEmptyInput(t *testing.T) {
	a := newTestAnalyzer(3)

	report := a.CreateReport(nil)
	assert.Equal(t, 0, report.TotalVacancies)
	assert.Empty(t, report.TopKeywords)
	assert.Empty(t, report.TopSkills)
	assert.Empty(t, report.ResumeTips)
	assert.Equal(t, 0, report.SalaryStats.CountWithSalary)
	assert.Nil(t, report.SalaryStats.AvgFrom)
}
