// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "message only",
			err:      NewValidationError("missing signature or API key"),
			expected: "missing signature or API key",
		},
		{
			name:     "message with wrapped error",
			err:      NewInternalError("failed to update meeting", errors.New("kv timeout")),
			expected: "failed to update meeting: kv timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("expected error message %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestGetErrorType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"validation", NewValidationError("bad payload"), ErrorTypeValidation},
		{"unauthorized", NewUnauthorizedError("invalid signature"), ErrorTypeUnauthorized},
		{"not found", NewNotFoundError("meeting not found"), ErrorTypeNotFound},
		{"conflict", NewConflictError("meeting has been modified"), ErrorTypeConflict},
		{"internal", NewInternalError("boom"), ErrorTypeInternal},
		{"unavailable", NewUnavailableError("repository not available"), ErrorTypeUnavailable},
		{"wrapped domain error", fmt.Errorf("context: %w", NewNotFoundError("agent not found")), ErrorTypeNotFound},
		{"plain error falls back to internal", errors.New("plain"), ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorType(tt.err); got != tt.expected {
				t.Errorf("expected error type %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	underlying := errors.New("kv not found")
	err := NewNotFoundError("meeting not found", underlying)

	if !errors.Is(err, underlying) {
		t.Error("expected wrapped error to be reachable via errors.Is")
	}
}
