package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"complianceai/internal/models"
)

// Entry describes one state-changing action. RequestMeta carries the
// originating address and client identifier taken from the request.
type Entry struct {
	UserID    string
	Action    string
	IPAddress string
	UserAgent string
	Metadata  map[string]any
}

// Recorder appends immutable audit rows. Append runs against the
// caller's transaction handle so the audit row and the mutation it
// documents commit or roll back together.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (rec *Recorder) Append(tx *gorm.DB, e Entry) error {
	md := models.JSONB("{}")
	if len(e.Metadata) > 0 {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("audit append: %w", err)
		}
		md = models.JSONB(b)
	}
	row := models.AuditLog{
		Action:    e.Action,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		Metadata:  md,
	}
	if e.UserID != "" {
		uid := e.UserID
		row.UserID = &uid
	}
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("audit append: %w", err)
	}
	return nil
}

// Page is the envelope for the admin audit trail.
type Page struct {
	Logs        []models.AuditLog `json:"logs"`
	Total       int64             `json:"total"`
	Pages       int               `json:"pages"`
	CurrentPage int               `json:"current_page"`
}

// List returns the global trail newest first.
func (rec *Recorder) List(ctx context.Context, db *gorm.DB, page, perPage int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	var total int64
	if err := db.WithContext(ctx).Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return Page{}, err
	}
	var logs []models.AuditLog
	err := db.WithContext(ctx).
		Order("created_at desc").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&logs).Error
	if err != nil {
		return Page{}, err
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return Page{Logs: logs, Total: total, Pages: pages, CurrentPage: page}, nil
}
