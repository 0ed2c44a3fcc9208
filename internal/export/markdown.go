package export

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"hhscout-engine/internal/analyze"
)

// WriteMarkdown renders an analysis report as a human-readable markdown
// document and writes it to the export directory.
func WriteMarkdown(dir string, report analyze.Report) (string, error) {
	path, err := timestamped(dir, "report", "md")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(RenderMarkdown(report)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func RenderMarkdown(report analyze.Report) string {
	var md []string

	md = append(md, "# Отчёт по анализу вакансий")
	md = append(md, fmt.Sprintf("\n**Дата анализа:** %s", time.Now().Format("2006-01-02 15:04:05")))
	md = append(md, fmt.Sprintf("\n**Всего вакансий:** %d", report.TotalVacancies))
	md = append(md, "\n---\n")

	md = append(md, "## Топ ключевых слов\n")
	md = append(md, "| № | Ключевое слово | Частота |")
	md = append(md, "|---|----------------|---------|")
	for i, kw := range report.TopKeywords {
		md = append(md, fmt.Sprintf("| %d | %s | %d |", i+1, kw.Term, kw.Count))
	}

	md = append(md, "\n## Топ навыков\n")
	md = append(md, "| № | Навык | Вакансий |")
	md = append(md, "|---|-------|----------|")
	for i, sk := range report.TopSkills {
		md = append(md, fmt.Sprintf("| %d | %s | %d |", i+1, sk.Term, sk.Count))
	}

	md = append(md, "\n## Статистика зарплат\n")
	s := report.SalaryStats
	md = append(md, fmt.Sprintf("- **Вакансий с указанной зарплатой:** %d из %d\n", s.CountWithSalary, s.CountTotal))
	if s.AvgFrom != nil {
		md = append(md, "### Зарплата ОТ:")
		md = append(md, fmt.Sprintf("- Минимум: **%d руб.**", *s.MinFrom))
		md = append(md, fmt.Sprintf("- Максимум: **%d руб.**", *s.MaxFrom))
		md = append(md, fmt.Sprintf("- Среднее: **%.0f руб.**\n", *s.AvgFrom))
	}
	if s.AvgTo != nil {
		md = append(md, "### Зарплата ДО:")
		md = append(md, fmt.Sprintf("- Минимум: **%d руб.**", *s.MinTo))
		md = append(md, fmt.Sprintf("- Максимум: **%d руб.**", *s.MaxTo))
		md = append(md, fmt.Sprintf("- Среднее: **%.0f руб.**\n", *s.AvgTo))
	}

	md = append(md, "## Требования по опыту\n")
	md = append(md, "| Уровень опыта | Количество вакансий |")
	md = append(md, "|---------------|---------------------|")
	for _, label := range sortedKeys(report.ExperienceStats) {
		md = append(md, fmt.Sprintf("| %s | %d |", label, report.ExperienceStats[label]))
	}

	if len(report.ResumeTips) > 0 {
		md = append(md, "\n## Рекомендации для резюме\n")
		for _, tip := range report.ResumeTips {
			md = append(md, "- "+tip)
		}
	}

	return strings.Join(md, "\n") + "\n"
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Highest count first so the table reads like a ranking; labels
	// break ties so output is reproducible.
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
