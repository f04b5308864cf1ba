package repositories_test

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ecrin-rms/rmsbe/internal/repositories"
	appctx "github.com/ecrin-rms/rmsbe/pkg/context"
	"github.com/ecrin-rms/rmsbe/pkg/database"
)

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func getTestDB(t *testing.T) database.DB {
	// Use environment variables or defaults for test DB
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbUser := os.Getenv("DB_USER_NAME")
	if dbUser == "" {
		dbUser = "user"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "password"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "rms"
	}

	dsn := "host=" + dbHost + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	return database.NewDatabaseInstance(db, getTestLogger())
}

func getTestContext() context.Context {
	return appctx.SetUserName(context.Background(), "test-user")
}

// assertNotFound asserts that err is an HTTP 404 error
func assertNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, httperror.IsHTTPError(err), "expected HTTP error, got: %v", err)
	assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err), "expected 404, got: %d", httperror.GetStatusCode(err))
}

// assertBadRequest asserts that err is an HTTP 400 error
func assertBadRequest(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, httperror.IsHTTPError(err), "expected HTTP error, got: %v", err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err), "expected 400, got: %d", httperror.GetStatusCode(err))
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func newDtpRepo(t *testing.T) *repositories.DtpRepository {
	return repositories.NewDtpRepository(getTestDB(t), getTestLogger())
}

func newDupRepo(t *testing.T) *repositories.DupRepository {
	return repositories.NewDupRepository(getTestDB(t), getTestLogger())
}

func newObjectRepo(t *testing.T) *repositories.ObjectRepository {
	return repositories.NewObjectRepository(getTestDB(t), getTestLogger())
}
