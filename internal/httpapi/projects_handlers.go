package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hhscout-engine/internal/events"
	"hhscout-engine/internal/store"
)

type ProjectsHandler struct {
	DB  *store.DB
	Hub *events.Hub
}

type projectReq struct {
	Name  *string `json:"name"`
	Query *string `json:"query"`
}

func (h ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.DB.ListProjects(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"projects": projects})
}

func (h ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "project name is required")
		return
	}

	query := ""
	if req.Query != nil {
		query = strings.TrimSpace(*req.Query)
	}
	id, err := h.DB.CreateProject(r.Context(), strings.TrimSpace(*req.Name), query)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	project, err := h.DB.GetProject(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeProjectCreated, 1, map[string]any{"id": id}))
	WriteJSON(w, http.StatusCreated, project)
}

func (h ProjectsHandler) UpdateByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDFromPath(w, r)
	if !ok {
		return
	}

	var req projectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Name == nil && req.Query == nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "nothing to update")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "project name cannot be blank")
		return
	}

	if err := h.DB.UpdateProject(r.Context(), id, req.Name, req.Query); err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			WriteError(w, r, http.StatusNotFound, "not_found", "project not found")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	project, err := h.DB.GetProject(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeProjectUpdated, 1, map[string]any{"id": id}))
	writeJSON(w, project)
}

func (h ProjectsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.DB.DeleteProject(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrDefaultProject):
			WriteError(w, r, http.StatusBadRequest, "default_project", "the default project cannot be deleted")
		case errors.Is(err, store.ErrProjectNotFound):
			WriteError(w, r, http.StatusNotFound, "not_found", "project not found")
		default:
			WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		}
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeProjectDeleted, 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

func projectIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, "/projects/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "invalid project id")
		return 0, false
	}
	return id, true
}
