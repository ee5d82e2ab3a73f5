package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"complianceai/internal/assistant"
	"complianceai/internal/audit"
	"complianceai/internal/auth"
	"complianceai/internal/httpserver/handlers"
	"complianceai/internal/models"
	"complianceai/internal/store"
	"complianceai/internal/workflow"
)

// Deps collects everything the routes need.
type Deps struct {
	DB        *gorm.DB
	Users     *store.Users
	Tokens    *auth.TokenService
	Engine    *workflow.Engine
	Recorder  *audit.Recorder
	Assistant assistant.Responder
	Log       *zap.SugaredLogger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Post("/register", handlers.Register(d.Users, d.Log))
	r.Post("/login", handlers.Login(d.Users, d.Tokens, d.Log))

	r.Route("/api", func(api chi.Router) {
		api.Use(auth.RequireAuth(d.Tokens, d.Users))

		api.Post("/chat", handlers.Chat(d.Engine, d.Assistant, d.Log))
		api.Post("/transaction", handlers.CreateTransaction(d.Engine, d.Log))
		api.Get("/transactions", handlers.ListTransactions(d.Engine, d.Log))
		api.Get("/transactions_summary", handlers.TransactionsSummary(d.Engine, d.Log))
		api.Get("/compliance_reports", handlers.ListComplianceReports(d.Engine, d.Log))
		api.Post("/compliance_reports", handlers.CreateComplianceReport(d.Engine, d.Log))
		api.Put("/compliance_reports/{id}", handlers.UpdateComplianceReport(d.Engine, d.Log))
		api.Get("/risk_assessments", handlers.ListRiskAssessments(d.Engine, d.Log))
		api.Post("/risk_assessments", handlers.CreateRiskAssessment(d.Engine, d.Log))
		api.Put("/risk_assessments/{id}", handlers.UpdateRiskAssessment(d.Engine, d.Log))
		api.Get("/regulatory_updates", handlers.ListRegulatoryUpdates(d.Engine, d.Log))
		api.Get("/training_modules", handlers.ListTrainingModules(d.Engine, d.Log))
		api.Post("/reports", handlers.GenerateReport(d.Engine, d.Log))

		api.Group(func(staff chi.Router) {
			staff.Use(auth.RequireRole(models.RoleEmployee, models.RoleAdmin))
			staff.Post("/compliance_check", handlers.ComplianceCheck(d.Engine, d.Log))
			staff.Post("/user_training", handlers.AssignTraining(d.Engine, d.Log))
			staff.Put("/user_training/{id}", handlers.UpdateTrainingStatus(d.Engine, d.Log))
		})

		api.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(models.RoleAdmin))
			admin.Get("/audit_logs", handlers.AuditLogs(d.DB, d.Recorder, d.Log))
			admin.Post("/compliance_audit", handlers.ComplianceAudit(d.Engine, d.Log))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
