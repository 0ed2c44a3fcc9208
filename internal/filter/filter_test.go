package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hhscout-engine/internal/domain"
)

func intp(v int) *int { return &v }

func named(name string, from, to *int) domain.Vacancy {
	return domain.Vacancy{
		Name:       name,
		SalaryFrom: from,
		SalaryTo:   to,
		FullText:   name,
	}
}

func TestHideEmpty(t *testing.T) {
	vacancies := []domain.Vacancy{
		named("a", intp(100), nil),
		named("b", nil, intp(200)),
		named("c", nil, nil),
	}

	got := Apply(vacancies, Criteria{HideEmpty: true})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
}

func TestMinSalaryDropsSalaryless(t *testing.T) {
	vacancies := []domain.Vacancy{
		named("low", intp(40), nil),
		named("high", intp(120), nil),
		named("to-only", nil, intp(90)),
		named("empty", nil, nil),
	}

	got := Apply(vacancies, Criteria{MinSalary: intp(50)})
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].Name)
	assert.Equal(t, "to-only", got[1].Name)
}

func TestMaxSalaryKeepsSalaryless(t *testing.T) {
	// The asymmetry with the minimum pass: a vacancy without any salary
	// survives a maximum filter but not a minimum filter.
	a := named("a", nil, nil)
	b := named("b", intp(50), nil)

	got := Apply([]domain.Vacancy{a, b}, Criteria{MaxSalary: intp(10)})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestIncludeExcludeKeywords(t *testing.T) {
	v := domain.Vacancy{Name: "Senior Python Developer", FullText: "Senior Python Developer"}

	assert.Len(t, Apply([]domain.Vacancy{v}, Criteria{IncludeKeywords: []string{"python"}}), 1)
	assert.Empty(t, Apply([]domain.Vacancy{v}, Criteria{ExcludeKeywords: []string{"senior"}}))

	// Exclude runs last, so it wins over a matching include.
	got := Apply([]domain.Vacancy{v}, Criteria{
		IncludeKeywords: []string{"python"},
		ExcludeKeywords: []string{"senior"},
	})
	assert.Empty(t, got)
}

func TestIncludeRequiresAllKeywords(t *testing.T) {
	v := domain.Vacancy{FullText: "Go developer, remote team"}

	assert.Len(t, Apply([]domain.Vacancy{v}, Criteria{IncludeKeywords: []string{"go", "remote"}}), 1)
	assert.Empty(t, Apply([]domain.Vacancy{v}, Criteria{IncludeKeywords: []string{"go", "office"}}))
}

func TestKeywordMatchIsSubstring(t *testing.T) {
	v := domain.Vacancy{FullText: "Category manager"}
	assert.Len(t, Apply([]domain.Vacancy{v}, Criteria{IncludeKeywords: []string{"cat"}}), 1)
}

func TestSearchInFields(t *testing.T) {
	v := domain.Vacancy{
		Name:        "Marketing lead",
		Description: "builds the docker pipeline",
		KeySkills:   []string{"Excel"},
		FullText:    "Marketing lead builds the docker pipeline Excel",
	}

	// Restricted to the title, a description word must not match.
	got := Apply([]domain.Vacancy{v}, Criteria{
		IncludeKeywords: []string{"docker"},
		SearchIn:        []string{FieldName},
	})
	assert.Empty(t, got)

	got = Apply([]domain.Vacancy{v}, Criteria{
		IncludeKeywords: []string{"excel"},
		SearchIn:        []string{FieldName, FieldSkills},
	})
	assert.Len(t, got, 1)

	// Default corpus is the full text.
	got = Apply([]domain.Vacancy{v}, Criteria{IncludeKeywords: []string{"docker"}})
	assert.Len(t, got, 1)
}

func TestPassesChain(t *testing.T) {
	vacancies := []domain.Vacancy{
		named("keep", intp(100000), nil),
		named("cheap", intp(10000), nil),
		named("empty", nil, nil),
	}
	vacancies[0].FullText = "lead marketing"
	vacancies[1].FullText = "lead marketing"

	got := Apply(vacancies, Criteria{
		HideEmpty:       true,
		MinSalary:       intp(50000),
		IncludeKeywords: []string{"marketing"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].Name)
}

func TestEmptyInput(t *testing.T) {
	got := Apply(nil, Criteria{MinSalary: intp(1), HideEmpty: true})
	assert.Empty(t, got)
}

func TestNoCriteriaReturnsAll(t *testing.T) {
	vacancies := []domain.Vacancy{named("a", nil, nil), named("b", intp(1), nil)}
	assert.Equal(t, vacancies, Apply(vacancies, Criteria{}))
	assert.False(t, Criteria{}.Active())
	assert.True(t, Criteria{HideEmpty: true}.Active())
}
