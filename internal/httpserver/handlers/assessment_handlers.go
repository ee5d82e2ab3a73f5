package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"complianceai/internal/auth"
	"complianceai/internal/workflow"
)

func ListRiskAssessments(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := engine.ListAssessments(r.Context(), auth.Subject(r.Context()))
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

type createAssessmentReq struct {
	AssessmentType string `json:"assessment_type"`
	RiskLevel      string `json:"risk_level"`
	Details        string `json:"details"`
}

func CreateRiskAssessment(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAssessmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		a, err := engine.CreateAssessment(r.Context(), auth.Subject(r.Context()), requestMeta(r), req.AssessmentType, req.RiskLevel, req.Details)
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{
			"message":       "Risk assessment created successfully",
			"assessment_id": a.ID,
			"risk_level":    a.RiskLevel,
		})
	}
}

type updateAssessmentReq struct {
	RiskLevel *string `json:"risk_level"`
	Details   *string `json:"details"`
}

func UpdateRiskAssessment(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req updateAssessmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := engine.UpdateAssessment(r.Context(), auth.Subject(r.Context()), requestMeta(r), id, req.RiskLevel, req.Details); err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondMessage(w, http.StatusOK, "Risk assessment updated successfully")
	}
}
