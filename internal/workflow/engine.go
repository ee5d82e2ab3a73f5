package workflow

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"complianceai/internal/audit"
	"complianceai/internal/decision"
)

// Meta carries the request attributes every audit entry records.
type Meta struct {
	IPAddress string
	UserAgent string
}

// Engine mediates every state transition on the workflow entities.
// Each mutation and its audit entry are committed in one database
// transaction; if the audit write fails the mutation rolls back.
type Engine struct {
	db      *gorm.DB
	rec     *audit.Recorder
	decider decision.Decider
	lg      *zap.SugaredLogger
}

func NewEngine(db *gorm.DB, rec *audit.Recorder, decider decision.Decider, lg *zap.SugaredLogger) *Engine {
	return &Engine{db: db, rec: rec, decider: decider, lg: lg}
}

func (e *Engine) entry(actorID, action string, meta Meta, md map[string]any) audit.Entry {
	return audit.Entry{
		UserID:    actorID,
		Action:    action,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Metadata:  md,
	}
}
