package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"complianceai/internal/assistant"
	"complianceai/internal/auth"
	"complianceai/internal/workflow"
)

type chatReq struct {
	Message string `json:"message"`
}

// Chat forwards the user message to the text-completion collaborator
// and records the exchange in the audit trail. A collaborator failure
// stages nothing.
func Chat(engine *workflow.Engine, responder assistant.Responder, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
			respondMessage(w, http.StatusBadRequest, "invalid request data")
			return
		}
		actor := auth.FromContext(r.Context())
		reply, err := responder.Respond(r.Context(), req.Message, actor.Role)
		if err != nil {
			lg.Errorw("assistant request failed", "error", err)
			respondMessage(w, http.StatusInternalServerError, "an error occurred while processing your request")
			return
		}
		if err := engine.RecordChat(r.Context(), actor.UserID, requestMeta(r), req.Message); err != nil {
			lg.Errorw("chat audit write failed", "error", err)
			respondMessage(w, http.StatusInternalServerError, "an error occurred while logging the chat")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"response": reply})
	}
}
