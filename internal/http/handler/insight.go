package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"moodflow/internal/app"
	"moodflow/internal/insight"

	"go.uber.org/zap"
)

type InsightHandler struct {
	App            *app.App
	RevealInterval time.Duration
	Log            *zap.Logger
}

type attemptDTO struct {
	Model     string `json:"model"`
	ElapsedMs int64  `json:"elapsedMs"`
	Error     string `json:"error,omitempty"`
}

type diagnosticDTO struct {
	Attempts        []attemptDTO `json:"attempts"`
	AvailableModels []string     `json:"availableModels,omitempty"`
}

type insightDTO struct {
	Status     insight.Status `json:"status"`
	Text       string         `json:"text,omitempty"`
	Model      string         `json:"model,omitempty"`
	Diagnostic *diagnosticDTO `json:"diagnostic,omitempty"`
}

func toDTO(res insight.Result) insightDTO {
	out := insightDTO{Status: res.Status, Text: res.Text, Model: res.Model}
	if res.Status == insight.StatusFailed {
		d := &diagnosticDTO{AvailableModels: res.DiagnosticModels}
		for _, a := range res.Attempts {
			ad := attemptDTO{Model: a.Model, ElapsedMs: a.Elapsed.Milliseconds()}
			if a.Err != nil {
				ad.Error = a.Err.Error()
			}
			d.Attempts = append(d.Attempts, ad)
		}
		out.Diagnostic = d
	}
	return out
}

// writeFailure maps a failed fetch to a status code. It reports false when
// err is nil.
func writeFailure(w http.ResponseWriter, res insight.Result, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, insight.ErrNoCredential):
		writeError(w, http.StatusPreconditionFailed, "no_credential", "set an API key first")
	case errors.Is(err, insight.ErrInFlight):
		writeError(w, http.StatusConflict, "in_flight", "an insight is already being generated")
	case errors.Is(err, insight.ErrAllModelsExhausted):
		writeJSON(w, http.StatusBadGateway, toDTO(res))
	default:
		writeError(w, http.StatusServiceUnavailable, "insight_unavailable", "insight request was interrupted")
	}
	return true
}

func (h *InsightHandler) Generate(w http.ResponseWriter, r *http.Request) {
	res, err := h.App.FetchRecentInsight(r.Context())
	if writeFailure(w, res, err) {
		return
	}
	writeJSON(w, http.StatusOK, toDTO(res))
}

// Stream fetches the whole insight first, then replays it as server-sent
// events, one growing prefix per event.
func (h *InsightHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "no_streaming", "streaming unsupported")
		return
	}

	res, err := h.App.FetchRecentInsight(r.Context())
	if writeFailure(w, res, err) {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	err = insight.Play(r.Context(), res.Text, h.RevealInterval, func(prefix string) error {
		b, _ := json.Marshal(prefix)
		if _, err := fmt.Fprintf(w, "event: frame\ndata: %s\n\n", b); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		if h.Log != nil {
			h.Log.Debug("insight stream ended early", zap.Error(err))
		}
		return
	}

	b, _ := json.Marshal(toDTO(res))
	_, _ = fmt.Fprintf(w, "event: done\ndata: %s\n\n", b)
	flusher.Flush()
}
