package httpapi

import (
	"net/http"

	"hhscout-engine/internal/domain"
	"hhscout-engine/internal/filter"
	"hhscout-engine/internal/store"
)

type VacanciesHandler struct {
	DB *store.DB
}

func (h VacanciesHandler) List(w http.ResponseWriter, r *http.Request) {
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

	page, perPage := pageFrom(q)
	pages := (len(matched) + perPage - 1) / perPage
	start := (page - 1) * perPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}
	slice := matched[start:end]
	if slice == nil {
		slice = []domain.Vacancy{}
	}

	writeJSON(w, map[string]any{
		"vacancies":      slice,
		"total":          len(matched),
		"page":           page,
		"per_page":       perPage,
		"pages":          pages,
		"filtered":       criteria.Active(),
		"original_count": len(all),
	})
}
