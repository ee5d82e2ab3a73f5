package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"complianceai/internal/auth"
	"complianceai/internal/workflow"
)

func ListComplianceReports(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := engine.ListReports(r.Context(), auth.Subject(r.Context()))
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, reports)
	}
}

type createReportReq struct {
	ReportType string `json:"report_type"`
	Content    string `json:"content"`
}

func CreateComplianceReport(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReportReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		rep, err := engine.CreateReport(r.Context(), auth.Subject(r.Context()), requestMeta(r), req.ReportType, req.Content)
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{
			"message":   "Compliance report created successfully",
			"report_id": rep.ID,
		})
	}
}

type updateReportReq struct {
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

func UpdateComplianceReport(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req updateReportReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := engine.UpdateReport(r.Context(), auth.Subject(r.Context()), requestMeta(r), id, req.Content, req.Status); err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondMessage(w, http.StatusOK, "Compliance report updated successfully")
	}
}

type generateReportReq struct {
	ReportType string `json:"report_type"`
	Parameters string `json:"parameters"`
}

func GenerateReport(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateReportReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		rep, err := engine.GenerateReport(r.Context(), auth.Subject(r.Context()), requestMeta(r), req.ReportType, req.Parameters)
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{
			"message":   "Report generated successfully",
			"report_id": rep.ID,
		})
	}
}
