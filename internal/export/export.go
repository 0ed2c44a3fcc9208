// Package export writes vacancy collections and analysis reports to
// files under the export directory for download from the dashboard.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"hhscout-engine/internal/domain"
)

// timestamped returns dir/prefix_20060102_150405.ext, creating dir.
func timestamped(dir, prefix, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
	return filepath.Join(dir, name), nil
}

// WriteJSON dumps the full vacancy records, indented for humans.
func WriteJSON(dir string, vacancies []domain.Vacancy) (string, error) {
	path, err := timestamped(dir, "vacancies", "json")
	if err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(vacancies, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

var csvColumns = []string{
	"id", "name", "company_name", "area", "experience",
	"salary_from", "salary_to", "salary_currency",
	"url", "published_at",
}

// WriteCSV exports the tabular subset of the collection.
func WriteCSV(dir string, vacancies []domain.Vacancy) (string, error) {
	path, err := timestamped(dir, "vacancies", "csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return "", err
	}
	for _, v := range vacancies {
		row := []string{
			v.ID, v.Name, v.CompanyName, v.Area, v.Experience,
			intField(v.SalaryFrom), intField(v.SalaryTo), v.SalaryCurrency,
			v.URL, v.PublishedAt,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, f.Close()
}

func intField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// CleanupOld deletes export files older than keepDays. Zero keeps
// everything.
func CleanupOld(dir string, keepDays int) (removed int, err error) {
	if keepDays <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
