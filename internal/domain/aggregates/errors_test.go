package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{"op and message", &Error{Code: CodeConflict, Op: "ReviewOffer", Message: "offer already reviewed"}, "ReviewOffer: offer already reviewed (conflict)"},
		{"op only", &Error{Code: CodeInternal, Op: "SubmitDraft"}, "SubmitDraft (internal)"},
		{"message only", &Error{Code: CodeValidation, Message: "amount must be positive"}, "amount must be positive (validation)"},
		{"bare code", &Error{Code: CodeNotFound}, "not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsCodeAndCodeOf(t *testing.T) {
	base := NewError(CodeUnauthorized, "GetEnlistment", "caller does not own enlistment", nil)
	wrapped := fmt.Errorf("handler: %w", base)

	if !IsCode(wrapped, CodeUnauthorized) {
		t.Fatal("IsCode should see through fmt.Errorf wrapping")
	}
	if IsCode(wrapped, CodeConflict) {
		t.Fatal("IsCode matched the wrong code")
	}
	if got := CodeOf(wrapped); got != CodeUnauthorized {
		t.Fatalf("CodeOf = %q, want %q", got, CodeUnauthorized)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Fatalf("CodeOf(plain) = %q, want empty", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(CodeRetryable, "ReceiveMonthlyRent", nil) != nil {
		t.Fatal("Wrap(nil) should be nil")
	}
	cause := errors.New("database is locked")
	err := Wrap(CodeRetryable, "ReceiveMonthlyRent", cause)
	if !errors.Is(err, cause) {
		t.Fatal("wrapped error should unwrap to its cause")
	}
	if CodeOf(err) != CodeRetryable {
		t.Fatalf("CodeOf = %q, want %q", CodeOf(err), CodeRetryable)
	}
}
