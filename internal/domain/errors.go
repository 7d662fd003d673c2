package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient role")

	// ErrNotFound covers both a missing resource and a resource owned by
	// someone else. The two are merged on purpose so vendors cannot probe
	// competitors' IDs; handlers must never split them back apart.
	ErrNotFound = errors.New("not found")

	ErrNotVerified     = errors.New("vendor account not verified")
	ErrWrongVendorType = errors.New("operation not available for this business type")
	ErrInvalidCategory = errors.New("unknown upload category")
	ErrInvalidParent   = errors.New("invalid parent identifier")
	ErrMissingField    = errors.New("required field missing")
)

// StorageWriteError names the exact file whose backend write failed so the
// caller can resubmit only the failed subset of a batch.
type StorageWriteError struct {
	FileName string
	Err      error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("storage write failed for %q: %v", e.FileName, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }
