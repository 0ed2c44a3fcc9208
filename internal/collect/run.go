package collect

import (
	"context"
	"fmt"
	"log"

	"hhscout-engine/internal/config"
	"hhscout-engine/internal/parse"
	"hhscout-engine/internal/secrets"
	"hhscout-engine/internal/store"
)

// Status is the polled snapshot of a collection run. It lives in an
// atomic.Value owned by the HTTP layer; a run never shares mutable
// state with its readers.
type Status struct {
	Running     bool   `json:"running"`
	Progress    int    `json:"progress"`
	Total       int    `json:"total"`
	CurrentPage int    `json:"current_page"`
	Message     string `json:"message"`
	LastOkAt    string `json:"last_ok_at,omitempty"`
	LastError   string `json:"last_error,omitempty"`
}

// Request describes one collection run. ProjectID is always explicit;
// there is no process-wide "current project".
type Request struct {
	Query       string `json:"query"`
	Area        *int   `json:"area,omitempty"`
	Period      *int   `json:"period,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Employment  string `json:"employment,omitempty"`
	MaxPages    int    `json:"max_pages,omitempty"`
	PerPage     int    `json:"per_page,omitempty"`
	ProjectID   int64  `json:"project,omitempty"`
	WithDetails *bool  `json:"with_details,omitempty"`
}

// Run fetches, parses and stores one collection. report receives
// progress snapshots as pages come in; the final snapshot is written by
// the caller, which owns the status value.
func Run(ctx context.Context, db *store.DB, cfg config.Config, req Request, report func(Status)) (saved int, err error) {
	if req.MaxPages <= 0 {
		req.MaxPages = cfg.API.MaxPages
	}
	if req.PerPage <= 0 {
		req.PerPage = cfg.API.PerPage
	}
	withDetails := true
	if req.WithDetails != nil {
		withDetails = *req.WithDetails
	}

	token, err := secrets.GetAPIToken()
	if err != nil {
		token = "" // anonymous access is fine for search
	}
	client := NewClient(cfg, token)

	report(Status{Running: true, Message: fmt.Sprintf("Collecting vacancies for %q...", req.Query)})

	raws, err := client.CollectAll(ctx, SearchParams{
		Text:       req.Query,
		Area:       req.Area,
		Period:     req.Period,
		Experience: req.Experience,
		Employment: req.Employment,
		PerPage:    req.PerPage,
	}, req.MaxPages, withDetails, func(page, totalPages, collected int) {
		progress := 0
		if totalPages > 0 {
			limit := min(totalPages, req.MaxPages)
			progress = page * 100 / limit
		}
		report(Status{
			Running:     true,
			Progress:    progress,
			Total:       collected,
			CurrentPage: page,
			Message:     fmt.Sprintf("Fetched page %d, %d vacancies so far", page, collected),
		})
	})
	if err != nil {
		return 0, fmt.Errorf("collect: %w", err)
	}
	log.Printf("[collect] fetched %d raw vacancies for %q", len(raws), req.Query)

	vacancies := parse.All(raws)
	if dropped := len(raws) - len(vacancies); dropped > 0 {
		log.Printf("[collect] skipped %d unparseable records", dropped)
	}

	report(Status{Running: true, Progress: 100, Total: len(vacancies),
		Message: fmt.Sprintf("Saving %d vacancies to project %d...", len(vacancies), req.ProjectID)})

	if err := db.SaveVacancies(ctx, req.ProjectID, vacancies); err != nil {
		return 0, fmt.Errorf("save collection: %w", err)
	}
	return len(vacancies), nil
}
