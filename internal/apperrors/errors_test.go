package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsIntegrity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"corrupt salt", fmt.Errorf("decode: %w", ErrCorruptCredentialState), true},
		{"serialization", ErrSerialization, true},
		{"deserialization wrapped in custom", NewCustomError(ErrDeserialization, "tags"), true},
		{"too large", ErrValueTooLarge, true},
		{"invalid credentials", ErrInvalidCredentials, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIntegrity(tt.err); got != tt.want {
				t.Errorf("IsIntegrity(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCustomError(t *testing.T) {
	err := NewCustomError(ErrValueTooLarge, "column tags is too large").
		WithCode("value_too_large").
		WithDetails(map[string]interface{}{"width": 512})

	if !errors.Is(err, ErrValueTooLarge) {
		t.Error("expected CustomError to unwrap to ErrValueTooLarge")
	}
	if err.Error() != "column tags is too large" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Details["width"] != 512 {
		t.Errorf("Details[width] = %v", err.Details["width"])
	}

	bare := &CustomError{Err: ErrConflict}
	if bare.Error() != ErrConflict.Error() {
		t.Errorf("Error() without message = %q", bare.Error())
	}
	if (&CustomError{}).Error() != "unknown error" {
		t.Error("empty CustomError should report unknown error")
	}
}
