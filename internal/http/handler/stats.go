package handler

import (
	"net/http"
	"strconv"
	"strings"

	"moodflow/internal/app"
	"moodflow/internal/mood"
)

type StatsHandler struct {
	App *app.App
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > mood.MaxStatsDays {
			writeError(w, http.StatusBadRequest, "invalid_days", "days must be between 1 and 366")
			return
		}
		days = n
	}
	writeJSON(w, http.StatusOK, h.App.Stats(r.Context(), days))
}
