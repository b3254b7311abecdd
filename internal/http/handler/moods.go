package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"moodflow/internal/app"
	"moodflow/internal/mood"
)

type MoodHandler struct {
	App *app.App
}

type createMoodReq struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMoodReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "bad json")
		return
	}
	m, err := mood.Parse(req.Mood)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_mood", "mood must be one of happy, neutral, sad, angry, anxious")
		return
	}

	rec, err := h.App.RecordMood(r.Context(), m, req.Note)
	if err != nil {
		if errors.Is(err, mood.ErrPersistenceFailed) {
			writeError(w, http.StatusInternalServerError, "persistence_failed", "could not save the entry")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", "server error")
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f mood.HistoryFilter
	if v := strings.TrimSpace(q.Get("mood")); v != "" {
		m, err := mood.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_mood", "unknown mood filter")
			return
		}
		f.Mood = m
	}
	f.Tag = q.Get("tag")
	f.Query = q.Get("q")
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}

	writeJSON(w, http.StatusOK, h.App.History(r.Context(), f))
}

func (h *MoodHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mood.Catalog())
}
