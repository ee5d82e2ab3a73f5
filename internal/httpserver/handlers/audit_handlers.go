package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"complianceai/internal/audit"
	"complianceai/internal/auth"
	"complianceai/internal/workflow"
)

// AuditLogs serves the global audit trail; routing gates it to admins.
func AuditLogs(db *gorm.DB, rec *audit.Recorder, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, perPage := pageParams(r)
		out, err := rec.List(r.Context(), db, page, perPage)
		if err != nil {
			lg.Errorw("audit trail fetch failed", "error", err)
			respondMessage(w, http.StatusInternalServerError, "an error occurred while fetching audit logs")
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

type complianceAuditReq struct {
	AuditType string `json:"audit_type"`
}

func ComplianceAudit(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req complianceAuditReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AuditType == "" {
			respondMessage(w, http.StatusBadRequest, "missing audit type")
			return
		}
		ca, err := engine.RunComplianceAudit(r.Context(), auth.Subject(r.Context()), requestMeta(r), req.AuditType)
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{
			"message":  "Compliance audit completed successfully",
			"audit_id": ca.ID,
			"result":   ca.Result,
		})
	}
}
