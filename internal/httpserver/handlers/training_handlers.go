package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"complianceai/internal/auth"
	"complianceai/internal/workflow"
)

func ListTrainingModules(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modules, err := engine.ListTrainingModules(r.Context())
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, modules)
	}
}

func ListRegulatoryUpdates(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updates, err := engine.ListRegulatoryUpdates(r.Context())
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, updates)
	}
}

type assignTrainingReq struct {
	UserID   string `json:"user_id"`
	ModuleID string `json:"module_id"`
}

func AssignTraining(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignTrainingReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.UserID == "" || req.ModuleID == "" {
			respondMessage(w, http.StatusBadRequest, "missing required fields")
			return
		}
		ut, err := engine.AssignTraining(r.Context(), auth.Subject(r.Context()), requestMeta(r), req.UserID, req.ModuleID)
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{
			"message":          "Training module assigned successfully",
			"user_training_id": ut.ID,
		})
	}
}

type updateTrainingReq struct {
	Status string `json:"status"`
}

func UpdateTrainingStatus(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req updateTrainingReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
			respondMessage(w, http.StatusBadRequest, "missing required fields")
			return
		}
		if err := engine.UpdateTrainingStatus(r.Context(), auth.Subject(r.Context()), requestMeta(r), id, req.Status); err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondMessage(w, http.StatusOK, "User training status updated successfully")
	}
}
