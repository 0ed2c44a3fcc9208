package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"hhscout-engine/internal/collect"
	"hhscout-engine/internal/config"
	"hhscout-engine/internal/events"
	"hhscout-engine/internal/store"
)

type CollectHandler struct {
	DB            *store.DB
	CfgVal        *atomic.Value // config.Config
	CollectStatus *atomic.Value // collect.Status
	Hub           *events.Hub
	RunCollect    func(ctx context.Context, db *store.DB, cfg config.Config, req collect.Request, report func(collect.Status)) (saved int, err error)
}

type collectReq struct {
	collect.Request
	// NewProjectName creates a fresh project for this run instead of
	// collecting into an existing one.
	NewProjectName string `json:"new_project_name,omitempty"`
}

func (h CollectHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.CollectStatus.Load().(collect.Status)
	writeJSON(w, st)
}

func (h CollectHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.CollectStatus.Load().(collect.Status)
	if st.Running {
		WriteError(w, r, http.StatusConflict, "already_running", "a collection is already in progress")
		return
	}

	var req collectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "query is required")
		return
	}

	if name := strings.TrimSpace(req.NewProjectName); name != "" {
		id, err := h.DB.CreateProject(r.Context(), name, req.Query)
		if err != nil {
			WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
			return
		}
		req.ProjectID = id
	}
	if req.ProjectID <= 0 {
		req.ProjectID = store.DefaultProjectID
	}
	if _, err := h.DB.GetProject(r.Context(), req.ProjectID); err != nil {
		WriteError(w, r, http.StatusNotFound, "not_found", "project not found")
		return
	}

	h.CollectStatus.Store(collect.Status{
		Running: true,
		Message: "Starting collection...",
		LastOkAt: st.LastOkAt,
	})

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeCollectionStarted, 1, map[string]any{
		"project": req.ProjectID, "query": req.Query,
	}))

	go func() {
		cfg := h.CfgVal.Load().(config.Config)

		saved, err := h.RunCollect(context.Background(), h.DB, cfg, req.Request, func(st collect.Status) {
			h.CollectStatus.Store(st)
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeCollectionProgress, 1, st))
		})

		now := time.Now().Format(time.RFC3339)
		next := h.CollectStatus.Load().(collect.Status)
		next.Running = false
		next.Total = saved
		if err != nil {
			next.LastError = err.Error()
			next.Message = "Collection failed"
		} else {
			next.LastError = ""
			next.LastOkAt = now
			next.Progress = 100
			next.Message = "Collection finished"
		}
		h.CollectStatus.Store(next)

		h.Hub.Publish(events.MakeEvent(reqID, events.TypeCollectionFinished, 1, map[string]any{
			"project": req.ProjectID, "saved": saved, "ok": err == nil,
		}))
	}()

	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true, "project": req.ProjectID})
}
