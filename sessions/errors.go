package sessions

import (
	"errors"
	"fmt"
)

// Scan and session failures are structured outcomes surfaced to the caller,
// never process-fatal. Only StorageError warrants a generic internal error
// toward the end user.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrStudentNotFound = errors.New("student not found")
	ErrDuplicateScan   = errors.New("attendance already marked for this session")
)

// StorageError wraps a failure of the underlying persistence. The core never
// retries; retry policy belongs to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
