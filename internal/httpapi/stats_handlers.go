package httpapi

import (
	"net/http"
	"sync/atomic"

	"hhscout-engine/internal/analyze"
	"hhscout-engine/internal/config"
	"hhscout-engine/internal/filter"
	"hhscout-engine/internal/store"
)

type StatsHandler struct {
	DB     *store.DB
	CfgVal *atomic.Value // stores config.Config
}

// Get runs the analysis pipeline over the project's vacancies, after
// the same filter pass /vacancies uses, so the dashboard's numbers line
// up with the table it shows.
func (h StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	projectID, err := projectIDFrom(q)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	criteria, err := criteriaFrom(q)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	all, err := h.DB.LoadVacancies(r.Context(), projectID)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	matched := filter.Apply(all, criteria)

	cfg := h.CfgVal.Load().(config.Config)
	analyzer := analyze.New(analyze.Config{
		MinWordLength: cfg.Analysis.MinWordLength,
		MinFrequency:  cfg.Analysis.MinFrequency,
		TopKeywords:   cfg.Analysis.TopKeywords,
		StopWords:     cfg.Analysis.StopWords,
	})
	report := analyzer.CreateReport(matched)

	writeJSON(w, map[string]any{
		"total_vacancies": len(matched),
		"report":          report,
		"filtered":        criteria.Active(),
		"original_count":  len(all),
	})
}
