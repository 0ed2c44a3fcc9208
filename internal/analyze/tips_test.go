package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableOf(counts map[string]int, order ...string) *FreqTable {
	t := NewFreqTable()
	for _, term := range order {
		for i := 0; i < counts[term]; i++ {
			t.Add(term)
		}
	}
	return t
}

func TestResumeTipsSkillsFirstFive(t *testing.T) {
	a := New(Config{MinWordLength: 3, MinFrequency: 1, TopKeywords: 50})

	skills := tableOf(
		map[string]int{"Excel": 7, "SQL": 6, "Python": 5, "BI": 4, "Tableau": 3, "Jira": 2, "Git": 1},
		"Excel", "SQL", "Python", "BI", "Tableau", "Jira", "Git",
	)

	tips := a.ResumeTips(NewFreqTable(), skills)
	require.Len(t, tips, 1)
	assert.Contains(t, tips[0], `"Excel", "SQL", "Python", "BI", "Tableau"`)
	assert.NotContains(t, tips[0], "Jira")
}

func TestResumeTipsKeywordThreshold(t *testing.T) {
	a := New(Config{MinWordLength: 3, MinFrequency: 1, TopKeywords: 50})

	// Three keywords returned by the top-20 query, so the cut is
	// count > 0.9: every entry passes.
	keywords := tableOf(map[string]int{"маркетинг": 4, "бюджет": 2, "стратегия": 1},
		"маркетинг", "бюджет", "стратегия")

	tips := a.ResumeTips(keywords, NewFreqTable())
	require.Len(t, tips, 1)
	assert.Contains(t, tips[0], `"маркетинг"`)
	assert.Contains(t, tips[0], `"стратегия"`)
}

func TestResumeTipsKeywordThresholdCuts(t *testing.T) {
	a := New(Config{MinWordLength: 3, MinFrequency: 1, TopKeywords: 50})

	// Ten entries: cut is count > 3.
	counts := map[string]int{}
	order := []string{"k0", "k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9"}
	for i, term := range order {
		counts[term] = 10 - i // k0:10 ... k9:1
	}

	tips := a.ResumeTips(tableOf(counts, order...), NewFreqTable())
	require.Len(t, tips, 1)
	assert.Contains(t, tips[0], `"k6"`) // count 4 > 3
	assert.NotContains(t, tips[0], `"k7"`) // count 3 is not strictly above the cut
}

func TestResumeTipsOrderAndOmission(t *testing.T) {
	a := New(Config{MinWordLength: 3, MinFrequency: 1, TopKeywords: 50})

	assert.Empty(t, a.ResumeTips(NewFreqTable(), NewFreqTable()))

	skills := tableOf(map[string]int{"Go": 3}, "Go")
	keywords := tableOf(map[string]int{"backend": 5}, "backend")

	tips := a.ResumeTips(keywords, skills)
	require.Len(t, tips, 2)
	assert.Contains(t, tips[0], "навыки")
	assert.Contains(t, tips[1], "ключевые слова")
}

func TestResumeTipsRespectsMinFrequency(t *testing.T) {
	a := New(Config{MinWordLength: 3, MinFrequency: 3, TopKeywords: 50})

	// Both terms fall below the frequency floor, so the top-20 query is
	// empty and no keyword tip is produced.
	keywords := tableOf(map[string]int{"redis": 2, "kafka": 1}, "redis", "kafka")
	assert.Empty(t, a.ResumeTips(keywords, NewFreqTable()))
}
