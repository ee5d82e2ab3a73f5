package models

import "time"

// Role values accepted at registration.
const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Transaction review states. A reviewed transaction is terminal.
const (
	TxStatusPending      = "pending"
	TxStatusCompliant    = "reviewed-compliant"
	TxStatusNonCompliant = "reviewed-noncompliant"
)

// ComplianceReport states. Report update is a permissive overwrite, so
// callers may store other strings; these are the values the service
// itself writes.
const (
	ReportStatusDraft     = "draft"
	ReportStatusCompleted = "completed"
)

// UserTraining states.
const (
	TrainingNotStarted = "not_started"
	TrainingInProgress = "in_progress"
	TrainingCompleted  = "completed"
)

type User struct {
	ID           string     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         string     `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

type Transaction struct {
	ID          string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Type        string    `gorm:"column:transaction_type;size:20;not null" json:"type"`
	Status      string    `gorm:"size:30;not null;default:pending" json:"status"`
	Description string    `gorm:"size:200" json:"description"`
	CreatedAt   time.Time `json:"timestamp"`
}

type ComplianceReport struct {
	ID         string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;index;not null" json:"user_id"`
	ReportType string    `gorm:"size:50;not null" json:"report_type"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Status     string    `gorm:"size:20;not null;default:draft" json:"status"`
	CreatedAt  time.Time `json:"timestamp"`
}

type RiskAssessment struct {
	ID             string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         string    `gorm:"type:uuid;index;not null" json:"user_id"`
	AssessmentType string    `gorm:"size:50;not null" json:"assessment_type"`
	RiskLevel      string    `gorm:"size:20;not null" json:"risk_level"`
	Details        string    `gorm:"type:text" json:"details"`
	CreatedAt      time.Time `json:"timestamp"`
}

type RegulatoryUpdate struct {
	ID            string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Area          string    `gorm:"size:50;not null" json:"area"`
	UpdateText    string    `gorm:"type:text;not null" json:"update_text"`
	EffectiveDate time.Time `json:"effective_date"`
	CreatedAt     time.Time `json:"created_at"`
}

type TrainingModule struct {
	ID          string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Duration    string    `gorm:"size:20" json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserTraining struct {
	ID             string     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         string     `gorm:"type:uuid;index;not null" json:"user_id"`
	ModuleID       string     `gorm:"type:uuid;not null" json:"module_id"`
	Status         string     `gorm:"size:20;not null;default:not_started" json:"status"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ComplianceAudit struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	AuditType string    `gorm:"size:50;not null" json:"audit_type"`
	Result    string    `gorm:"type:text;not null" json:"result"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLog rows are append-only; nothing in the service updates or
// deletes them.
type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string    `gorm:"not null" json:"action"`
	IPAddress string    `gorm:"size:50" json:"ip_address"`
	UserAgent string    `gorm:"size:200" json:"user_agent"`
	Metadata  JSONB     `gorm:"type:jsonb;default:'{}'::jsonb" json:"metadata"`
	CreatedAt time.Time `json:"timestamp"`
}
