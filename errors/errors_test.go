/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewEntityNotFoundError(99)

	expected := `Entity with key "99" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Key != "99" {
		t.Errorf("Expected NotFoundError with key 99, got %v", err)
	}
}

func TestOverflowError(t *testing.T) {
	err := NewOverflowError("NextId", math.MaxUint32)

	expected := "NextId cannot advance past 4294967295"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsOverflow(err) {
		t.Error("IsOverflow should return true for OverflowError")
	}
	if IsNotFound(err) {
		t.Error("OverflowError should not match ErrNotFound")
	}
}

func TestUnauthorizedError(t *testing.T) {
	err := NewUnauthorizedError("mallory", "alice", 4)

	expected := `caller "mallory" may not transfer entity 4 owned by "alice"`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsUnauthorized(err) {
		t.Error("IsUnauthorized should return true for UnauthorizedError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "backend",
			message:  "unknown backend",
			expected: `validation failed for field "backend": unknown backend`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "missing required fields",
			expected: "validation failed: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestConditionFailedError(t *testing.T) {
	err := NewConditionFailedError("commit", "NextId = :prev")

	expected := "condition check failed for commit operation: NextId = :prev"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsConditionFailed(err) {
		t.Error("IsConditionFailed should return true for ConditionFailedError")
	}
}

func TestInconsistencyError(t *testing.T) {
	err := NewInconsistencyError(5, "missing from owner bucket")

	if err.Error() != "entity 5: missing from owner bucket" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !IsInconsistent(err) {
		t.Error("IsInconsistent should return true for InconsistencyError")
	}
}

func TestErrorWrapping(t *testing.T) {
	original := NewEntityNotFoundError(1)
	wrapped := fmt.Errorf("transfer failed: %w", original)

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should work with wrapped errors")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrOverflow,
		ErrUnauthorized,
		ErrInvalidInput,
		ErrConditionFailed,
		ErrInconsistentState,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
