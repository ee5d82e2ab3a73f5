package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"complianceai/internal/models"
)

// RunComplianceAudit performs the administrative audit action and stores
// its result record.
func (e *Engine) RunComplianceAudit(ctx context.Context, actorID string, meta Meta, auditType string) (*models.ComplianceAudit, error) {
	auditType = strings.TrimSpace(auditType)
	if auditType == "" {
		return nil, fmt.Errorf("%w: audit_type required", ErrValidation)
	}
	ca := models.ComplianceAudit{
		UserID:    actorID,
		AuditType: auditType,
		Result:    fmt.Sprintf("Mock audit result for %s", auditType),
		Status:    "completed",
		CreatedAt: time.Now(),
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ca).Error; err != nil {
			return err
		}
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Performed compliance audit: %s", auditType), meta, map[string]any{
			"audit_id": ca.ID,
		}))
	})
	if err != nil {
		return nil, err
	}
	e.lg.Infow("compliance audit performed", "audit_id", ca.ID, "actor", actorID)
	return &ca, nil
}

// RecordChat writes the audit entry for a chat exchange. The exchange
// itself has no entity mutation; the audit row is the state change.
func (e *Engine) RecordChat(ctx context.Context, actorID string, meta Meta, message string) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Chat: %s", message), meta, nil))
	})
}
