package figure

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes figure errors.
type ErrorCode string

const (
	// ErrCodePathNotFound indicates the output directory does not exist.
	// Directories are never created implicitly.
	ErrCodePathNotFound ErrorCode = "PATH_NOT_FOUND"

	// ErrCodeUnsupportedFormat indicates an output extension with no backend.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"

	// ErrCodeWriteFailed indicates the canvas could not be written out.
	ErrCodeWriteFailed ErrorCode = "WRITE_FAILED"
)

// Error represents a failure while saving a rendered figure.
type Error struct {
	Code ErrorCode
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsPathNotFound returns true if the error is a missing-output-directory
// error. Uses errors.As to handle wrapped errors.
func IsPathNotFound(err error) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code == ErrCodePathNotFound
	}
	return false
}
