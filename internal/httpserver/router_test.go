package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"complianceai/internal/audit"
	"complianceai/internal/auth"
	"complianceai/internal/decision"
	"complianceai/internal/models"
	"complianceai/internal/store"
	"complianceai/internal/workflow"
)

type fakeResponder struct{}

func (fakeResponder) Respond(_ context.Context, _, _ string) (string, error) {
	return "canned reply", nil
}

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock, *auth.TokenService) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, PreferSimpleProtocol: true}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	lg := zap.NewNop().Sugar()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	rec := audit.NewRecorder()
	router := NewRouter(Deps{
		DB:        db,
		Users:     store.NewUsers(db),
		Tokens:    tokens,
		Engine:    workflow.NewEngine(db, rec, decision.RandomDecider{}, lg),
		Recorder:  rec,
		Assistant: fakeResponder{},
		Log:       lg,
	})
	return router, mock, tokens
}

func userRow(t *testing.T, id, username, password, role string) *sqlmock.Rows {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at"}).
		AddRow(id, username, username+"@example.com", hash, role, time.Now())
}

func TestProtectedEndpointsRejectMissingToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/chat"},
		{http.MethodPost, "/api/transaction"},
		{http.MethodGet, "/api/transactions"},
		{http.MethodGet, "/api/transactions_summary"},
		{http.MethodPost, "/api/compliance_check"},
		{http.MethodGet, "/api/compliance_reports"},
		{http.MethodPost, "/api/compliance_reports"},
		{http.MethodPut, "/api/compliance_reports/some-id"},
		{http.MethodGet, "/api/risk_assessments"},
		{http.MethodPost, "/api/risk_assessments"},
		{http.MethodPut, "/api/risk_assessments/some-id"},
		{http.MethodGet, "/api/regulatory_updates"},
		{http.MethodGet, "/api/training_modules"},
		{http.MethodPost, "/api/user_training"},
		{http.MethodPut, "/api/user_training/some-id"},
		{http.MethodPost, "/api/reports"},
		{http.MethodGet, "/api/audit_logs"},
		{http.MethodPost, "/api/compliance_audit"},
	}
	for _, ep := range endpoints {
		req := httptest.NewRequest(ep.method, ep.path, bytes.NewBufferString("{}"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", ep.method, ep.path)
	}
}

func TestRoleGatesReturnForbidden(t *testing.T) {
	cases := []struct {
		name   string
		role   string
		method string
		path   string
	}{
		{"customer on compliance check", models.RoleCustomer, http.MethodPost, "/api/compliance_check"},
		{"customer on training assignment", models.RoleCustomer, http.MethodPost, "/api/user_training"},
		{"customer on audit trail", models.RoleCustomer, http.MethodGet, "/api/audit_logs"},
		{"employee on audit trail", models.RoleEmployee, http.MethodGet, "/api/audit_logs"},
		{"employee on compliance audit", models.RoleEmployee, http.MethodPost, "/api/compliance_audit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, mock, tokens := newTestRouter(t)
			tok, err := tokens.Issue("user-1")
			require.NoError(t, err)

			mock.ExpectQuery(`SELECT \* FROM "users"`).
				WillReturnRows(userRow(t, "user-1", "someone", "Str0ngPwd", tc.role))

			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString("{}"))
			req.Header.Set("Authorization", "Bearer "+tok)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusForbidden, rr.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// Covers the customer happy path: register, login, record a deposit,
// read it back.
func TestCustomerTransactionScenario(t *testing.T) {
	router, mock, _ := newTestRouter(t)

	// Register alice.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("alice-id"))
	mock.ExpectCommit()

	body, _ := json.Marshal(map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "Str0ngPwd", "role": "customer",
	})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// Login with basic credentials.
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRow(t, "alice-id", "alice", "Str0ngPwd", models.RoleCustomer))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	req.SetBasicAuth("alice", "Str0ngPwd")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var login struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, models.RoleCustomer, login.Role)

	// Record a deposit.
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRow(t, "alice-id", "alice", "Str0ngPwd", models.RoleCustomer))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tx-1"))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	body, _ = json.Marshal(map[string]any{"amount": 150.0, "type": "deposit", "description": "payroll"})
	req = httptest.NewRequest(http.MethodPost, "/api/transaction", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var created struct {
		TransactionID string `json:"transaction_id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "tx-1", created.TransactionID)

	// Read it back.
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRow(t, "alice-id", "alice", "Str0ngPwd", models.RoleCustomer))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "transaction_type", "status", "description", "created_at"}).
			AddRow("tx-1", "alice-id", 150.0, "deposit", models.TxStatusPending, "payroll", time.Now()))

	req = httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var page workflow.TransactionPage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	require.Len(t, page.Transactions, 1)
	assert.InDelta(t, 150.0, page.Transactions[0].Amount, 0.001)
	assert.Equal(t, models.TxStatusPending, page.Transactions[0].Status)
	assert.Equal(t, int64(1), page.Total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Covers the employee review path: a compliance check on a pending
// transaction returns a verdict and leaves the transaction terminal.
func TestEmployeeComplianceCheckScenario(t *testing.T) {
	router, mock, tokens := newTestRouter(t)
	tok, err := tokens.Issue("bob-id")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRow(t, "bob-id", "bob", "Str0ngPwd", models.RoleEmployee))
	mock.ExpectQuery(`SELECT \* FROM "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "transaction_type", "status", "description", "created_at"}).
			AddRow("tx-1", "alice-id", 150.0, "deposit", models.TxStatusPending, "payroll", time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	body, _ := json.Marshal(map[string]string{"transaction_id": "tx-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/compliance_check", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var verdict struct {
		TransactionID string `json:"transaction_id"`
		IsCompliant   *bool  `json:"is_compliant"`
		Reason        string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verdict))
	assert.Equal(t, "tx-1", verdict.TransactionID)
	require.NotNil(t, verdict.IsCompliant)
	assert.NotEmpty(t, verdict.Reason)

	assert.NoError(t, mock.ExpectationsWereMet())
}
