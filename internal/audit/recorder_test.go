package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, PreferSimpleProtocol: true}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestAppendWritesActorAndMetadata(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WithArgs("user-1", "Transaction: deposit 150", "10.0.0.1", "curl/8.0", sqlmock.AnyArg(), []byte(`{"amount":150}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	rec := NewRecorder()
	err := db.Transaction(func(tx *gorm.DB) error {
		return rec.Append(tx, Entry{
			UserID:    "user-1",
			Action:    "Transaction: deposit 150",
			IPAddress: "10.0.0.1",
			UserAgent: "curl/8.0",
			Metadata:  map[string]any{"amount": 150},
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendWithoutActorStoresNull(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WithArgs(nil, "System event", "", "", sqlmock.AnyArg(), []byte(`{}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	rec := NewRecorder()
	err := db.Transaction(func(tx *gorm.DB) error {
		return rec.Append(tx, Entry{Action: "System event"})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPaginatesNewestFirst(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" ORDER BY created_at desc`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "ip_address", "user_agent", "metadata", "created_at"}).
			AddRow(int64(25), "user-1", "Chat: hello", "10.0.0.1", "curl/8.0", []byte(`{}`), time.Now()).
			AddRow(int64(24), "user-2", "Transaction: deposit 50", "10.0.0.2", "curl/8.0", []byte(`{}`), time.Now()))

	rec := NewRecorder()
	page, err := rec.List(context.Background(), db, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Logs, 2)
	assert.Equal(t, "Chat: hello", page.Logs[0].Action)
}
