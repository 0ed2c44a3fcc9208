package httpapi

import (
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"

	"hhscout-engine/internal/analyze"
	"hhscout-engine/internal/config"
	"hhscout-engine/internal/export"
	"hhscout-engine/internal/filter"
	"hhscout-engine/internal/store"
)

type ExportHandler struct {
	DB     *store.DB
	CfgVal *atomic.Value // config.Config
}

// GetByPath handles /export/{format}. The export is written to the
// export directory first, then served, so every download also leaves a
// file on disk.
func (h ExportHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	format := strings.TrimPrefix(r.URL.Path, "/export/")
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
	if len(matched) == 0 {
		WriteError(w, r, http.StatusNotFound, "no_data", "nothing to export for this project")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)

	var path string
	switch format {
	case "json":
		path, err = export.WriteJSON(cfg.Export.Dir, matched)
	case "csv":
		path, err = export.WriteCSV(cfg.Export.Dir, matched)
	case "report":
		analyzer := analyze.New(analyze.Config{
			MinWordLength: cfg.Analysis.MinWordLength,
			MinFrequency:  cfg.Analysis.MinFrequency,
			TopKeywords:   cfg.Analysis.TopKeywords,
			StopWords:     cfg.Analysis.StopWords,
		})
		path, err = export.WriteMarkdown(cfg.Export.Dir, analyzer.CreateReport(matched))
	default:
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "unknown export format "+format)
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "export_error", err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}
