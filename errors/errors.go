/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrOverflow is returned when an identifier cannot be issued without wrapping
	ErrOverflow = errors.New("identifier overflow")

	// ErrUnauthorized is returned when the transfer policy rejects a caller
	ErrUnauthorized = errors.New("caller not authorized")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConditionFailed is returned when a conditional write fails
	ErrConditionFailed = errors.New("condition check failed")

	// ErrInconsistentState is returned when the canonical store and the owner index disagree
	ErrInconsistentState = errors.New("inconsistent registry state")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// OverflowError reports a counter that reached its maximum value
type OverflowError struct {
	Counter string
	Value   uint64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s cannot advance past %d", e.Counter, e.Value)
}

func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}

// UnauthorizedError reports a transfer attempted by someone other than the owner
type UnauthorizedError struct {
	Caller string
	Owner  string
	ID     uint32
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("caller %q may not transfer entity %d owned by %q", e.Caller, e.ID, e.Owner)
}

func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConditionFailedError represents a failed conditional operation
type ConditionFailedError struct {
	Operation string
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// InconsistencyError describes one violation of the two-view invariant
type InconsistencyError struct {
	ID     uint32
	Detail string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("entity %d: %s", e.ID, e.Detail)
}

func (e *InconsistencyError) Is(target error) bool {
	return target == ErrInconsistentState
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewEntityNotFoundError creates the NotFoundError returned for an unknown entity id
func NewEntityNotFoundError(id uint32) error {
	return &NotFoundError{Type: "Entity", Key: fmt.Sprint(id)}
}

// NewOverflowError creates a new OverflowError
func NewOverflowError(counter string, value uint64) error {
	return &OverflowError{Counter: counter, Value: value}
}

// NewUnauthorizedError creates a new UnauthorizedError
func NewUnauthorizedError(caller, owner string, id uint32) error {
	return &UnauthorizedError{Caller: caller, Owner: owner, ID: id}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// NewInconsistencyError creates a new InconsistencyError
func NewInconsistencyError(id uint32, detail string) error {
	return &InconsistencyError{ID: id, Detail: detail}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsOverflow checks if an error is an overflow error
func IsOverflow(err error) bool {
	return errors.Is(err, ErrOverflow)
}

// IsUnauthorized checks if an error is an authorization error
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsInconsistent checks if an error reports an inconsistent state
func IsInconsistent(err error) bool {
	return errors.Is(err, ErrInconsistentState)
}
