package rename

import (
	"errors"
	"fmt"
)

// Validation errors are user correctable: the operation refuses to run
// until the input changes, nothing on disk is touched.
var (
	ErrNoFileSelected  = errors.New("no file selected")
	ErrEmptyPrediction = errors.New("no taxonomy segments set")
	ErrNameUnchanged   = errors.New("new name is the same as the current name")
	ErrNoFilesChecked  = errors.New("no files checked for batch rename")
)

// IsValidation reports whether err is one of the user-correctable
// precondition failures rather than a storage fault.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoFileSelected) ||
		errors.Is(err, ErrEmptyPrediction) ||
		errors.Is(err, ErrNameUnchanged) ||
		errors.Is(err, ErrNoFilesChecked)
}

// StorageError wraps a failed filesystem step of a rename pipeline.
// Step is one of "resolve parent", "read", "write", "remove".
type StorageError struct {
	Step string
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Name, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
