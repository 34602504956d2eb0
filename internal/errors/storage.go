package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrTransientStorage marks retryable storage failures (connection loss, lock timeouts, deadlocks).
	ErrTransientStorage = errors.New("transient storage error")
	// ErrSchemaMismatch marks statements referencing columns or tables that do not exist yet,
	// i.e. a migration is pending. Never retryable.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrConstraintViolation marks unique/foreign key violations.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrNotFound marks a referenced row that does not exist.
	ErrNotFound = errors.New("not found")
)

// StorageKind classifies a storage failure.
type StorageKind int

const (
	StorageUnknown StorageKind = iota
	StorageTransient
	StorageSchemaMismatch
	StorageConstraint
	StorageNotFound
)

func (k StorageKind) String() string {
	switch k {
	case StorageTransient:
		return "transient"
	case StorageSchemaMismatch:
		return "schema_mismatch"
	case StorageConstraint:
		return "constraint"
	case StorageNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// StorageError wraps a driver error with its classification.
// errors.Is(err, ErrSchemaMismatch) and friends match on Kind.
type StorageError struct {
	Kind StorageKind
	Op   string
	Err  error
}

// NewStorageError builds a classified storage error.
func NewStorageError(kind StorageKind, op string, err error) *StorageError {
	return &StorageError{Kind: kind, Op: op, Err: err}
}

func (e *StorageError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *StorageError) Is(target error) bool {
	switch target {
	case ErrTransientStorage:
		return e.Kind == StorageTransient
	case ErrSchemaMismatch:
		return e.Kind == StorageSchemaMismatch
	case ErrConstraintViolation:
		return e.Kind == StorageConstraint
	case ErrNotFound:
		return e.Kind == StorageNotFound
	}
	return false
}
