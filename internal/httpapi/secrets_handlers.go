package httpapi

import (
	"encoding/json"
	"net/http"

	"hhscout-engine/internal/secrets"
)

type SecretsHandler struct{}

type setAPITokenReq struct {
	Token string `json:"token"`
}

// SetAPIToken stores the HH API token in the OS keyring. An empty token
// clears the stored one and drops back to anonymous access.
func (h SecretsHandler) SetAPIToken(w http.ResponseWriter, r *http.Request) {
	var req setAPITokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if req.Token == "" {
		if err := secrets.DeleteAPIToken(); err != nil {
			WriteError(w, r, http.StatusBadRequest, "keyring_error", "failed to clear token: "+err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := secrets.SetAPIToken(req.Token); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_error", "failed to store token: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
