package aggregates_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/renthaus/enlistd/internal/data/aggregates"
	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
)

func TestMapError(t *testing.T) {
	if aggregates.MapError("op", nil) != nil {
		t.Fatalf("nil must map to nil")
	}

	typed := aggregates.InvariantError("op", "bad transition")
	if mapped := aggregates.MapError("op", typed); mapped != typed {
		t.Fatalf("typed errors must pass through, got %v", mapped)
	}

	cases := []struct {
		name string
		err  error
		want domagg.ErrorCode
	}{
		{"record not found", gorm.ErrRecordNotFound, domagg.CodeNotFound},
		{"context cancelled", context.Canceled, domagg.CodeRetryable},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domagg.CodeConflict},
		{"fk violation", &pgconn.PgError{Code: "23503"}, domagg.CodePreconditionFailed},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, domagg.CodeRetryable},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domagg.CodeRetryable},
		{"sqlite busy", errors.New("database is locked"), domagg.CodeRetryable},
		{"sqlite unique", errors.New("UNIQUE constraint failed: offer.tenant_email"), domagg.CodeConflict},
		{"unknown", errors.New("boom"), domagg.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := aggregates.MapError("op", tc.err)
			if got := domagg.CodeOf(mapped); got != tc.want {
				t.Fatalf("expected %s, got %s (%v)", tc.want, got, mapped)
			}
		})
	}
}
