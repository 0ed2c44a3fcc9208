package analyze

import (
	"strings"

	"hhscout-engine/internal/domain"
)

// Config carries the analysis knobs from the yaml config.
type Config struct {
	MinWordLength int
	MinFrequency  int
	TopKeywords   int
	StopWords     []string
}

// Analyzer turns a vacancy collection into keyword/skill/salary analytics.
// It holds no mutable state: every method is a pure function over its
// input, so one Analyzer is safe to share across requests.
type Analyzer struct {
	minWordLength int
	minFrequency  int
	topKeywords   int
	stopWords     map[string]struct{}
}

func New(cfg Config) *Analyzer {
	stop := make(map[string]struct{}, len(cfg.StopWords)+len(baselineStopWords))
	for _, w := range cfg.StopWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			stop[w] = struct{}{}
		}
	}
	for _, w := range baselineStopWords {
		stop[w] = struct{}{}
	}
	return &Analyzer{
		minWordLength: cfg.MinWordLength,
		minFrequency:  cfg.MinFrequency,
		topKeywords:   cfg.TopKeywords,
		stopWords:     stop,
	}
}

// FreqTable counts terms and remembers first-seen order, which is the
// documented tie-break for ranked output.
type FreqTable struct {
	counts map[string]int
	order  []string
}

func NewFreqTable() *FreqTable {
	return &FreqTable{counts: make(map[string]int)}
}

func (t *FreqTable) Add(term string) {
	if _, seen := t.counts[term]; !seen {
		t.order = append(t.order, term)
	}
	t.counts[term]++
}

func (t *FreqTable) Count(term string) int { return t.counts[term] }
func (t *FreqTable) Len() int              { return len(t.counts) }

// TermCount is one ranked entry of a frequency table.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// top returns up to limit entries with count >= floor, ordered by
// descending count; equal counts keep first-seen order.
func (t *FreqTable) top(limit, floor int) []TermCount {
	out := make([]TermCount, 0, len(t.order))
	for _, term := range t.order {
		if c := t.counts[term]; c >= floor {
			out = append(out, TermCount{Term: term, Count: c})
		}
	}
	// Insertion sort keeps the scan stable; tables here are small.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Count > out[j-1].Count; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ExtractKeywords tokenizes every vacancy's full text into one table.
func (a *Analyzer) ExtractKeywords(vacancies []domain.Vacancy) *FreqTable {
	t := NewFreqTable()
	for _, v := range vacancies {
		for _, w := range a.Tokenize(v.FullText) {
			t.Add(w)
		}
	}
	return t
}

// ExtractSkills counts listed skill strings verbatim: no tokenization, no
// case folding, and a skill repeated inside one vacancy counts each time.
func (a *Analyzer) ExtractSkills(vacancies []domain.Vacancy) *FreqTable {
	t := NewFreqTable()
	for _, v := range vacancies {
		for _, s := range v.KeySkills {
			t.Add(s)
		}
	}
	return t
}

// TopKeywords applies the minimum-frequency floor before ranking.
func (a *Analyzer) TopKeywords(t *FreqTable, limit int) []TermCount {
	if limit <= 0 {
		limit = a.topKeywords
	}
	return t.top(limit, a.minFrequency)
}

// TopSkills ranks skills with no frequency floor.
func (a *Analyzer) TopSkills(t *FreqTable, limit int) []TermCount {
	if limit <= 0 {
		limit = a.topKeywords
	}
	return t.top(limit, 0)
}

// SalaryStats summarizes the from/to bounds of a collection. Pool fields
// stay nil when no vacancy published that bound, so JSON omits them
// instead of reporting a misleading zero.
type SalaryStats struct {
	CountWithSalary int      `json:"count_with_salary"`
	CountTotal      int      `json:"count_total"`
	MinFrom         *int     `json:"min_from,omitempty"`
	MaxFrom         *int     `json:"max_from,omitempty"`
	AvgFrom         *float64 `json:"avg_from,omitempty"`
	MinTo           *int     `json:"min_to,omitempty"`
	MaxTo           *int     `json:"max_to,omitempty"`
	AvgTo           *float64 `json:"avg_to,omitempty"`
}

// AnalyzeSalaries collects the published bounds into independent pools.
// A vacancy with either bound counts once toward CountWithSalary.
func (a *Analyzer) AnalyzeSalaries(vacancies []domain.Vacancy) SalaryStats {
	var from, to []int
	stats := SalaryStats{CountTotal: len(vacancies)}

	for _, v := range vacancies {
		if v.SalaryFrom != nil {
			from = append(from, *v.SalaryFrom)
		}
		if v.SalaryTo != nil {
			to = append(to, *v.SalaryTo)
		}
		if v.HasSalary() {
			stats.CountWithSalary++
		}
	}

	stats.MinFrom, stats.MaxFrom, stats.AvgFrom = poolStats(from)
	stats.MinTo, stats.MaxTo, stats.AvgTo = poolStats(to)
	return stats
}

func poolStats(pool []int) (min, max *int, avg *float64) {
	if len(pool) == 0 {
		return nil, nil, nil
	}
	lo, hi, sum := pool[0], pool[0], 0
	for _, s := range pool {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
		sum += s
	}
	mean := float64(sum) / float64(len(pool))
	return &lo, &hi, &mean
}

// AnalyzeExperience counts vacancies per experience label; postings
// without a label are skipped entirely.
func (a *Analyzer) AnalyzeExperience(vacancies []domain.Vacancy) map[string]int {
	out := make(map[string]int)
	for _, v := range vacancies {
		if v.Experience != "" {
			out[v.Experience]++
		}
	}
	return out
}
