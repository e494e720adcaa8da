package aggregates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
)

// ValidationError builds a caller-input validation failure for an operation.
func ValidationError(op, format string, args ...any) *domagg.Error {
	return &domagg.Error{
		Code:    domagg.CodeValidation,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFoundError reports a missing aggregate or child row.
func NotFoundError(op, format string, args ...any) *domagg.Error {
	return &domagg.Error{
		Code:    domagg.CodeNotFound,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// UnauthorizedError reports a caller that is not allowed to perform the
// operation on this aggregate.
func UnauthorizedError(op, format string, args ...any) *domagg.Error {
	return &domagg.Error{
		Code:    domagg.CodeUnauthorized,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvariantError reports a state-machine precondition failure, e.g. an
// attempt to review an offer that is not pending.
func InvariantError(op, format string, args ...any) *domagg.Error {
	return &domagg.Error{
		Code:    domagg.CodeInvariantViolation,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// ConflictError reports a lost compare-and-set race.
func ConflictError(op, format string, args ...any) *domagg.Error {
	return &domagg.Error{
		Code:    domagg.CodeConflict,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// RetryableError wraps a transient infrastructure failure the caller may
// retry with the same input.
func RetryableError(op string, err error, format string, args ...any) *domagg.Error {
	return &domagg.Error{
		Code:    domagg.CodeRetryable,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// MapError translates a raw storage error into the aggregate error taxonomy.
// Already-typed errors pass through unchanged.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *domagg.Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domagg.Error{Code: domagg.CodeNotFound, Op: op, Message: "record not found", Cause: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &domagg.Error{Code: domagg.CodeRetryable, Op: op, Message: "operation interrupted", Cause: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &domagg.Error{Code: domagg.CodeConflict, Op: op, Message: "unique constraint violated", Cause: err}
		case "23503":
			return &domagg.Error{Code: domagg.CodePreconditionFailed, Op: op, Message: "referenced row missing", Cause: err}
		case "40001", "40P01", "55P03":
			return &domagg.Error{Code: domagg.CodeRetryable, Op: op, Message: "transient database contention", Cause: err}
		}
	}
	// sqlite reports write contention as a plain error string
	if msg := err.Error(); strings.Contains(msg, "database is locked") || strings.Contains(msg, "UNIQUE constraint failed") {
		if strings.Contains(msg, "UNIQUE constraint failed") {
			return &domagg.Error{Code: domagg.CodeConflict, Op: op, Message: "unique constraint violated", Cause: err}
		}
		return &domagg.Error{Code: domagg.CodeRetryable, Op: op, Message: "transient database contention", Cause: err}
	}
	return &domagg.Error{Code: domagg.CodeInternal, Op: op, Message: "storage failure", Cause: err}
}
