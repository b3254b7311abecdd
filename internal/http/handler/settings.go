package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"moodflow/internal/app"
	"moodflow/internal/mood"
)

type SettingsHandler struct {
	App *app.App
}

type settingsDTO struct {
	HasAPIKey bool `json:"hasApiKey"`
}

type setKeyReq struct {
	APIKey string `json:"apiKey"`
}

// Get never echoes the key back.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, ok := h.App.Credential(r.Context())
	writeJSON(w, http.StatusOK, settingsDTO{HasAPIKey: ok})
}

func (h *SettingsHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req setKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "bad json")
		return
	}
	if err := h.App.SetCredential(r.Context(), req.APIKey); err != nil {
		if errors.Is(err, mood.ErrPersistenceFailed) {
			writeError(w, http.StatusInternalServerError, "persistence_failed", "could not save the key")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", "server error")
		return
	}

	_, ok := h.App.Credential(r.Context())
	writeJSON(w, http.StatusOK, settingsDTO{HasAPIKey: ok})
}
