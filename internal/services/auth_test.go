package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/renthaus/enlistd/internal/platform/logger"
	"github.com/renthaus/enlistd/internal/requestdata"
	"github.com/renthaus/enlistd/internal/services"
)

func newAuth(t *testing.T) services.AuthService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return services.NewAuthService(log, "testsecret")
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	auth := newAuth(t)

	token, err := auth.IssueToken("  John@Wick.COM ", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	ctx, err := auth.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("set context from token: %v", err)
	}
	if got := requestdata.CallerID(ctx); got != "john@wick.com" {
		t.Fatalf("caller = %q, want normalized email", got)
	}
}

func TestAuthService_RejectsExpiredToken(t *testing.T) {
	auth := newAuth(t)

	token, err := auth.IssueToken("john@wick.com", -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := auth.SetContextFromToken(context.Background(), token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestAuthService_RejectsWrongSecret(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	issuer := services.NewAuthService(log, "othersecret")
	verifier := newAuth(t)

	token, err := issuer.IssueToken("john@wick.com", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.SetContextFromToken(context.Background(), token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestAuthService_RejectsGarbage(t *testing.T) {
	auth := newAuth(t)
	for _, tok := range []string{"", "   ", "not-a-token"} {
		if _, err := auth.SetContextFromToken(context.Background(), tok); err == nil {
			t.Fatalf("expected error for token %q", tok)
		}
	}
}

func TestAuthService_RejectsMissingEmailClaim(t *testing.T) {
	auth := newAuth(t)
	if _, err := auth.IssueToken("   ", time.Hour); err == nil {
		t.Fatal("expected error for empty email")
	}
}
