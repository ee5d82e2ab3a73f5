package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"complianceai/internal/models"
)

// ListTrainingModules returns the global catalog newest first.
func (e *Engine) ListTrainingModules(ctx context.Context) ([]models.TrainingModule, error) {
	var out []models.TrainingModule
	err := e.db.WithContext(ctx).Order("created_at desc").Find(&out).Error
	return out, err
}

// ListRegulatoryUpdates returns the global list, newest effective date
// first.
func (e *Engine) ListRegulatoryUpdates(ctx context.Context) ([]models.RegulatoryUpdate, error) {
	var out []models.RegulatoryUpdate
	err := e.db.WithContext(ctx).Order("effective_date desc").Find(&out).Error
	return out, err
}

// AssignTraining creates a not_started training record for the target
// user. Both the user and the module must exist.
func (e *Engine) AssignTraining(ctx context.Context, actorID string, meta Meta, userID, moduleID string) (*models.UserTraining, error) {
	var count int64
	if err := e.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	if err := e.db.WithContext(ctx).Model(&models.TrainingModule{}).Where("id = ?", moduleID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	ut := models.UserTraining{
		UserID:    userID,
		ModuleID:  moduleID,
		Status:    models.TrainingNotStarted,
		CreatedAt: time.Now(),
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ut).Error; err != nil {
			return err
		}
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Assigned training module %s to user %s", moduleID, userID), meta, map[string]any{
			"user_training_id": ut.ID,
			"module_id":        moduleID,
			"target_user_id":   userID,
		}))
	})
	if err != nil {
		return nil, err
	}
	return &ut, nil
}

// UpdateTrainingStatus transitions a training record. Moving into
// completed stamps the completion date; moving out of completed clears
// it.
func (e *Engine) UpdateTrainingStatus(ctx context.Context, actorID string, meta Meta, trainingID, status string) error {
	switch status {
	case models.TrainingNotStarted, models.TrainingInProgress, models.TrainingCompleted:
	default:
		return fmt.Errorf("%w: unknown training status %q", ErrValidation, status)
	}
	var ut models.UserTraining
	if err := e.db.WithContext(ctx).First(&ut, "id = ?", trainingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	ut.Status = status
	if status == models.TrainingCompleted {
		now := time.Now()
		ut.CompletionDate = &now
	} else {
		ut.CompletionDate = nil
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&ut).Error; err != nil {
			return err
		}
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Updated user training status: %s", trainingID), meta, map[string]any{
			"user_training_id": trainingID,
			"status":           status,
		}))
	})
	return err
}
