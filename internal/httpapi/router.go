package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Projects
	ph := ProjectsHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/projects", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ph.List,
		http.MethodPost: ph.Create,
	}))
	mux.HandleFunc("/projects/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut:    ph.UpdateByPath,    // expects /projects/{id}
		http.MethodDelete: ph.DeleteByPath,
	}))

	// Vacancies and analysis
	vh := VacanciesHandler{DB: d.DB}
	mux.HandleFunc("/vacancies", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: vh.List,
	}))
	sh := StatsHandler{DB: d.DB, CfgVal: d.CfgVal}
	mux.HandleFunc("/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Get,
	}))

	// Collection
	colh := CollectHandler{
		DB:            d.DB,
		CfgVal:        d.CfgVal,
		CollectStatus: d.CollectStatus,
		Hub:           d.Hub,
		RunCollect:    d.RunCollect,
	}
	mux.HandleFunc("/collect", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: colh.Run,
	}))
	mux.HandleFunc("/collect/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: colh.Status,
	}))

	// Exports
	exh := ExportHandler{DB: d.DB, CfgVal: d.CfgVal}
	mux.HandleFunc("/export/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: exh.GetByPath, // expects /export/{json|csv|report}
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets (keyring only, never the config file)
	seh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/hh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: seh.SetAPIToken,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dbh.Checkpoint,
	}))

	return mux
}
