package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"complianceai/internal/decision"
	"complianceai/internal/models"
)

func validRiskLevel(level string) bool {
	switch level {
	case decision.RiskLow, decision.RiskMedium, decision.RiskHigh:
		return true
	}
	return false
}

// ListAssessments returns the actor's own assessments newest first.
func (e *Engine) ListAssessments(ctx context.Context, actorID string) ([]models.RiskAssessment, error) {
	var out []models.RiskAssessment
	err := e.db.WithContext(ctx).
		Where("user_id = ?", actorID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CreateAssessment records a risk assessment owned by the actor. When
// the caller leaves risk_level empty the decision stub assigns a tier.
func (e *Engine) CreateAssessment(ctx context.Context, actorID string, meta Meta, assessmentType, riskLevel, details string) (*models.RiskAssessment, error) {
	assessmentType = strings.TrimSpace(assessmentType)
	if assessmentType == "" {
		return nil, fmt.Errorf("%w: assessment_type required", ErrValidation)
	}
	if riskLevel == "" {
		level, err := e.decider.AssessRisk(ctx, assessmentType)
		if err != nil {
			return nil, err
		}
		riskLevel = level
	} else if !validRiskLevel(riskLevel) {
		return nil, fmt.Errorf("%w: risk_level must be Low, Medium or High", ErrValidation)
	}
	a := models.RiskAssessment{
		UserID:         actorID,
		AssessmentType: assessmentType,
		RiskLevel:      riskLevel,
		Details:        details,
		CreatedAt:      time.Now(),
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Created risk assessment: %s", assessmentType), meta, map[string]any{
			"assessment_id": a.ID,
		}))
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAssessment mutates risk_level and/or details of an assessment
// the actor owns. There is no terminal state.
func (e *Engine) UpdateAssessment(ctx context.Context, actorID string, meta Meta, assessmentID string, riskLevel, details *string) error {
	var a models.RiskAssessment
	if err := e.db.WithContext(ctx).First(&a, "id = ?", assessmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if a.UserID != actorID {
		return ErrNotFound
	}
	if riskLevel != nil {
		if !validRiskLevel(*riskLevel) {
			return fmt.Errorf("%w: risk_level must be Low, Medium or High", ErrValidation)
		}
		a.RiskLevel = *riskLevel
	}
	if details != nil {
		a.Details = *details
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&a).Error; err != nil {
			return err
		}
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Updated risk assessment: %s", assessmentID), meta, map[string]any{
			"assessment_id": assessmentID,
		}))
	})
	return err
}
