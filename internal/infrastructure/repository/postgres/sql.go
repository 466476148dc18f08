package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isBindParameterMismatch matches the error pgbouncer in transaction mode
// produces when an unnamed statement is reused across clients.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unnamed prepared statement does not exist") ||
		(strings.Contains(msg, "prepared statement") && strings.Contains(msg, "26000"))
}

func isRetryablePreparedStatementError(err error) bool {
	return isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err)
}

// selectContext runs SelectContext, retrying once on pooled prepared
// statement errors.
func selectContext(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	err := db.SelectContext(ctx, dest, query, args...)
	if isRetryablePreparedStatementError(err) {
		err = db.SelectContext(ctx, dest, query, args...)
	}
	return err
}

func getContext(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	err := db.GetContext(ctx, dest, query, args...)
	if isRetryablePreparedStatementError(err) {
		err = db.GetContext(ctx, dest, query, args...)
	}
	return err
}

func nullStringValue(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return strings.TrimSpace(v.String)
}

func nullInt64Value(v sql.NullInt64) int64 {
	if !v.Valid {
		return 0
	}
	return v.Int64
}
