package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a UI
// should surface before the config is saved.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Analysis.StopWords = trimList(out.Analysis.StopWords)

	// ---- Validation rules ----

	if strings.TrimSpace(out.API.BaseURL) == "" {
		res.addErr("api.base_url is required")
	}
	if strings.TrimSpace(out.API.UserAgent) == "" {
		res.addWarn("api.user_agent is empty; the job-board API rejects anonymous clients.")
	}
	if out.API.TimeoutSeconds <= 0 {
		res.addErr("api.timeout_seconds must be > 0")
	}
	if out.API.RequestsPerSecond <= 0 {
		res.addErr("api.requests_per_second must be > 0")
	} else if out.API.RequestsPerSecond > 10 {
		res.addWarn("api.requests_per_second is very high (%.1f) and may trigger rate limits.", out.API.RequestsPerSecond)
	}
	if out.API.MaxPages <= 0 {
		res.addErr("api.max_pages must be > 0")
	}
	if out.API.PerPage <= 0 || out.API.PerPage > 100 {
		res.addErr("api.per_page must be 1..100")
	}

	if out.Analysis.MinWordLength < 1 {
		res.addErr("analysis.min_word_length must be >= 1")
	}
	if out.Analysis.MinFrequency < 1 {
		res.addErr("analysis.min_frequency must be >= 1")
	}
	if out.Analysis.TopKeywords <= 0 {
		res.addErr("analysis.top_keywords must be > 0")
	}
	if len(out.Analysis.StopWords) > 500 {
		res.addWarn("analysis.stop_words has %d entries; the embedded baseline already covers common words.", len(out.Analysis.StopWords))
	}

	if out.Export.KeepDays < 0 {
		res.addErr("export.keep_days must be >= 0")
	}

	return out, res
}
