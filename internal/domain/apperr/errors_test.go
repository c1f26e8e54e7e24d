package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindMatching(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", Validation("name is required"), ErrValidation},
		{"not found", NotFound("asset %s not found", "A1"), ErrNotFound},
		{"conflict", Conflict("duplicate"), ErrConflict},
		{"state", State("loan is %s", "returned"), ErrState},
		{"forbidden", Forbidden("admin only"), ErrForbidden},
		{"wrapped with fmt", fmt.Errorf("approve: %w", Conflict("lock lost")), ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Fatalf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
			if got := KindOf(tt.err); got != tt.kind {
				t.Fatalf("KindOf = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestMessageIsHumanReadable(t *testing.T) {
	err := NotFound("asset %s not found", "A1")
	if err.Error() != "asset A1 not found" {
		t.Fatalf("message = %q", err.Error())
	}
	if (&Error{Kind: ErrState}).Error() != "invalid_state" {
		t.Fatalf("empty message should fall back to kind")
	}
}

func TestTransport(t *testing.T) {
	if Transport(nil) != nil {
		t.Fatalf("nil must stay nil")
	}

	raw := errors.New("dial tcp: connection refused")
	got := Transport(raw)
	if !errors.Is(got, ErrTransport) {
		t.Fatalf("raw error should become transport, got %v", got)
	}
	if !errors.Is(got, raw) {
		t.Fatalf("transport error should unwrap to the cause")
	}

	kinded := Conflict("lock lost")
	if Transport(kinded) != kinded {
		t.Fatalf("kinded errors must pass through unchanged")
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	if KindOf(errors.New("boom")) != nil {
		t.Fatalf("plain errors have no kind")
	}
}
