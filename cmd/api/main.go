package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"complianceai/internal/assistant"
	"complianceai/internal/audit"
	"complianceai/internal/auth"
	"complianceai/internal/config"
	"complianceai/internal/decision"
	"complianceai/internal/httpserver"
	"complianceai/internal/logger"
	"complianceai/internal/models"
	"complianceai/internal/store"
	"complianceai/internal/workflow"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logger.New("").Fatalw("config load failed", "error", err)
	}
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.ComplianceReport{},
		&models.RiskAssessment{},
		&models.RegulatoryUpdate{},
		&models.TrainingModule{},
		&models.UserTraining{},
		&models.ComplianceAudit{},
		&models.AuditLog{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedCatalogs(db, lg)

	users := store.NewUsers(db)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	recorder := audit.NewRecorder()
	engine := workflow.NewEngine(db, recorder, decision.RandomDecider{}, lg)
	responder := assistant.NewClient(assistant.Config{
		APIKey:  cfg.AssistantAPIKey,
		BaseURL: cfg.AssistantBaseURL,
		Timeout: cfg.AssistantTimeout,
	})

	router := httpserver.NewRouter(httpserver.Deps{
		DB:        db,
		Users:     users,
		Tokens:    tokens,
		Engine:    engine,
		Recorder:  recorder,
		Assistant: responder,
		Log:       lg,
	})

	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		lg.Fatalw("server stopped", "error", err)
	}
}

// seedCatalogs populates the read-only catalogs when they are empty.
func seedCatalogs(db *gorm.DB, lg *zap.SugaredLogger) {
	var count int64
	db.Model(&models.RegulatoryUpdate{}).Count(&count)
	if count == 0 {
		now := time.Now()
		updates := []models.RegulatoryUpdate{
			{Area: "AML", UpdateText: "New guidelines for monitoring crypto transactions effective next month.", EffectiveDate: now.AddDate(0, 1, 0), CreatedAt: now},
			{Area: "KYC", UpdateText: "Updated requirements for customer identification in online banking.", EffectiveDate: now.AddDate(0, 0, 14), CreatedAt: now},
			{Area: "Data Privacy", UpdateText: "Stricter rules for handling customer data across borders introduced.", EffectiveDate: now.AddDate(0, 0, 7), CreatedAt: now},
		}
		if err := db.Create(&updates).Error; err == nil {
			lg.Infow("seeded regulatory updates", "count", len(updates))
		}
	}

	db.Model(&models.TrainingModule{}).Count(&count)
	if count == 0 {
		now := time.Now()
		modules := []models.TrainingModule{
			{Title: "AML Basics", Description: "Foundations of anti-money-laundering controls.", Duration: "2 hours", CreatedAt: now},
			{Title: "KYC Procedures", Description: "Customer identification and verification procedures.", Duration: "1.5 hours", CreatedAt: now},
			{Title: "Data Privacy Regulations", Description: "Handling customer data under current privacy rules.", Duration: "3 hours", CreatedAt: now},
			{Title: "Fraud Detection Techniques", Description: "Recognizing and escalating suspicious activity.", Duration: "2.5 hours", CreatedAt: now},
		}
		if err := db.Create(&modules).Error; err == nil {
			lg.Infow("seeded training modules", "count", len(modules))
		}
	}
}
