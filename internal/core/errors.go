package core

import "fmt"

// ValidationError reports bad input: an unknown domain, an out-of-range
// cost, a malformed date. Never retried; the caller must fix the call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalidf builds a ValidationError for the given field.
func Invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// StorageError wraps an I/O failure against the backing store. The engine
// never retries these; they propagate so the caller can back off.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storagef wraps err as a StorageError for operation op. Returns nil if err
// is nil so call sites can wrap unconditionally.
func Storagef(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
