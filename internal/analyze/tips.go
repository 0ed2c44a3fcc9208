package analyze

import (
	"fmt"
	"strings"
)

// ResumeTips derives 0, 1 or 2 recommendation strings: one naming the top
// skills, one naming the keywords worth repeating in the experience
// section. Each is emitted only when its source table has data.
func (a *Analyzer) ResumeTips(keywords, skills *FreqTable) []string {
	var tips []string

	if top := a.TopSkills(skills, 10); len(top) > 0 {
		if len(top) > 5 {
			top = top[:5]
		}
		tips = append(tips, "Включите следующие ключевые навыки: "+joinQuoted(top))
	}

	// From the top-20 keywords keep those whose count strictly exceeds
	// 30% of the number of entries the top-20 query actually returned
	// (fewer than 20 for small tables), capped at the first 10 by rank.
	topWords := a.TopKeywords(keywords, 20)
	threshold := float64(len(topWords)) * 0.3
	var important []TermCount
	for _, tc := range topWords {
		if float64(tc.Count) > threshold {
			important = append(important, tc)
		}
	}
	if len(important) > 10 {
		important = important[:10]
	}
	if len(important) > 0 {
		tips = append(tips, "Используйте эти ключевые слова в описании опыта: "+joinQuoted(important))
	}

	return tips
}

func joinQuoted(entries []TermCount) string {
	quoted := make([]string, len(entries))
	for i, e := range entries {
		quoted[i] = fmt.Sprintf("%q", e.Term)
	}
	return strings.Join(quoted, ", ")
}
