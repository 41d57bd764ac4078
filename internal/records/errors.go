package records

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed field on create, update, or
// file load. Recoverable: the caller re-prompts with corrected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation against an id the store does not hold,
// usually meaning the caller acted on a stale view.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %q not found", e.ID)
}

// PersistenceError reports a failed write of a store file. The in-memory
// state remains authoritative until the next successful save; nothing is
// retried internally.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// RecoveryError reports that neither the primary file nor its backup could be
// loaded. Fatal for the affected store: callers must surface it rather than
// continue with a fabricated empty data set.
type RecoveryError struct {
	Path       string
	BackupPath string
	PrimaryErr error
	BackupErr  error
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("load %s: %v (backup %s: %v)", e.Path, e.PrimaryErr, e.BackupPath, e.BackupErr)
}

func (e *RecoveryError) Unwrap() []error {
	return []error{e.PrimaryErr, e.BackupErr}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
