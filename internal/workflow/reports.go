package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"complianceai/internal/models"
)

// ListReports returns the actor's own reports newest first.
func (e *Engine) ListReports(ctx context.Context, actorID string) ([]models.ComplianceReport, error) {
	var reports []models.ComplianceReport
	err := e.db.WithContext(ctx).
		Where("user_id = ?", actorID).
		Order("created_at desc").
		Find(&reports).Error
	return reports, err
}

// CreateReport creates a draft compliance report owned by the actor.
func (e *Engine) CreateReport(ctx context.Context, actorID string, meta Meta, reportType, content string) (*models.ComplianceReport, error) {
	reportType = strings.TrimSpace(reportType)
	if reportType == "" || content == "" {
		return nil, fmt.Errorf("%w: report_type and content required", ErrValidation)
	}
	r := models.ComplianceReport{
		UserID:     actorID,
		ReportType: reportType,
		Content:    content,
		Status:     models.ReportStatusDraft,
		CreatedAt:  time.Now(),
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&r).Error; err != nil {
			return err
		}
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Created compliance report: %s", reportType), meta, map[string]any{
			"report_id": r.ID,
		}))
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateReport overwrites content and/or status of a report the actor
// owns. Status is caller-supplied verbatim; there is no draft/completed
// transition check here, matching the permissive contract.
func (e *Engine) UpdateReport(ctx context.Context, actorID string, meta Meta, reportID string, content, status *string) error {
	var r models.ComplianceReport
	if err := e.db.WithContext(ctx).First(&r, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	// Non-owners get the same answer as a missing report.
	if r.UserID != actorID {
		return ErrNotFound
	}
	if content != nil {
		r.Content = *content
	}
	if status != nil {
		r.Status = *status
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&r).Error; err != nil {
			return err
		}
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Updated compliance report: %s", reportID), meta, map[string]any{
			"report_id": reportID,
		}))
	})
	return err
}

// GenerateReport creates a completed report through the mock generator.
func (e *Engine) GenerateReport(ctx context.Context, actorID string, meta Meta, reportType, parameters string) (*models.ComplianceReport, error) {
	reportType = strings.TrimSpace(reportType)
	if reportType == "" || parameters == "" {
		return nil, fmt.Errorf("%w: report_type and parameters required", ErrValidation)
	}
	r := models.ComplianceReport{
		UserID:     actorID,
		ReportType: reportType,
		Content:    fmt.Sprintf("Mock report of type %s with parameters %s", reportType, parameters),
		Status:     models.ReportStatusCompleted,
		CreatedAt:  time.Now(),
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&r).Error; err != nil {
			return err
		}
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Generated report: %s", reportType), meta, map[string]any{
			"report_id": r.ID,
		}))
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}
