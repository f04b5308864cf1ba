// Package repositories owns all SQL against the rms, mdr and lup schemas.
// Each aggregate (transfer process, use process, data object) has its own
// repository built on the shared base, with existence checks performed
// before every dependent mutation so callers get a structured not-found
// instead of a raw constraint violation.
package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	appctx "github.com/ecrin-rms/rmsbe/pkg/context"
	"github.com/ecrin-rms/rmsbe/pkg/database"
)

// NotFound returns a 404 HTTP error with a descriptive message
func NotFound(format string, args ...any) error {
	return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf(format, args...))
}

// BadRequest returns a 400 HTTP error
func BadRequest(format string, args ...any) error {
	return httperror.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// ServerError returns a 500 HTTP error with a generic message
func ServerError(message string) error {
	return httperror.NewHTTPError(http.StatusInternalServerError, message)
}

// Repository provides the shared database handle and logger
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new base repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// DB returns the database instance
func (r *Repository) DB() database.DB {
	return r.db
}

// EditorName returns the audit attribution for the current request,
// written to last_edited_by on every mutation. An anonymous request is
// attributed to "unknown" rather than rejected.
func EditorName(ctx context.Context) string {
	name := appctx.GetUserName(ctx)
	if name == "" {
		return "unknown"
	}
	return name
}

// pageOffset converts one-based page parameters to a query offset.
func pageOffset(pageNum, pageSize int) int {
	if pageNum <= 1 {
		return 0
	}
	return (pageNum - 1) * pageSize
}
