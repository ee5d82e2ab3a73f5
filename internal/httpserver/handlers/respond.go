package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"complianceai/internal/workflow"
)

func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondMessage(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"message": msg})
}

// respondWorkflowError maps domain errors to statuses. Internal detail
// stays in the log; the caller gets a stable message.
func respondWorkflowError(w http.ResponseWriter, lg *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, workflow.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, workflow.ErrAlreadyReviewed):
		respondMessage(w, http.StatusConflict, "transaction already reviewed")
	default:
		lg.Errorw("request failed", "error", err)
		respondMessage(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

func pageParams(r *http.Request) (page, perPage int) {
	page, perPage = 1, 10
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		perPage = v
	}
	return page, perPage
}

func requestMeta(r *http.Request) workflow.Meta {
	return workflow.Meta{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
