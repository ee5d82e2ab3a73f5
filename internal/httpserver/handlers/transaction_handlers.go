package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"complianceai/internal/auth"
	"complianceai/internal/workflow"
)

type createTransactionReq struct {
	Amount      *float64 `json:"amount"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
}

func CreateTransaction(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTransactionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Amount == nil || req.Type == "" || req.Description == "" {
			respondMessage(w, http.StatusBadRequest, "missing required fields")
			return
		}
		t, err := engine.CreateTransaction(r.Context(), auth.Subject(r.Context()), requestMeta(r), *req.Amount, req.Type, req.Description)
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"message":        "Transaction recorded successfully",
			"transaction_id": t.ID,
		})
	}
}

func ListTransactions(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, perPage := pageParams(r)
		out, err := engine.ListTransactions(r.Context(), auth.Subject(r.Context()), page, perPage)
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

type complianceCheckReq struct {
	TransactionID string `json:"transaction_id"`
}

func ComplianceCheck(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req complianceCheckReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TransactionID == "" {
			respondMessage(w, http.StatusBadRequest, "missing transaction ID")
			return
		}
		verdict, err := engine.CheckCompliance(r.Context(), auth.Subject(r.Context()), requestMeta(r), req.TransactionID)
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"transaction_id": req.TransactionID,
			"is_compliant":   verdict.Compliant,
			"reason":         verdict.Reason,
		})
	}
}

func TransactionsSummary(engine *workflow.Engine, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := engine.SummarizeTransactions(r.Context(), auth.Subject(r.Context()))
		if err != nil {
			respondWorkflowError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, s)
	}
}
