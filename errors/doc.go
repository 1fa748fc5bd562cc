/*
Package errors provides semantic error types for the entity registry.

The package defines the registry's failure modes with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound          = errors.New("entity not found")
	    ErrOverflow          = errors.New("identifier overflow")
	    ErrUnauthorized      = errors.New("caller not authorized")
	    ErrInvalidInput      = errors.New("invalid input")
	    ErrConditionFailed   = errors.New("condition check failed")
	    ErrInconsistentState = errors.New("inconsistent registry state")
	)

Usage:

	// Check error type
	err := reg.TransferEntity(ctx, "alice", 99, "bob")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Unknown entity; nothing was changed
	        return fmt.Errorf("entity %d does not exist", 99)
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewEntityNotFoundError(99)
	err := errors.NewOverflowError("NextId", math.MaxUint32)
	err := errors.NewValidationError("backend", "unknown backend")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
