package optics

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes optics errors.
type ErrorCode string

const (
	// ErrCodeUnsupportedRule indicates an unknown mixing rule was requested.
	ErrCodeUnsupportedRule ErrorCode = "UNSUPPORTED_RULE"

	// ErrCodeDataUnavailable indicates a material dataset is missing or unreadable.
	ErrCodeDataUnavailable ErrorCode = "DATA_UNAVAILABLE"

	// ErrCodeBadRecord indicates an optical record violates its invariants.
	ErrCodeBadRecord ErrorCode = "BAD_RECORD"

	// ErrCodeOutOfRange indicates a wavelength outside a record's coverage.
	ErrCodeOutOfRange ErrorCode = "WAVELENGTH_OUT_OF_RANGE"

	// ErrCodeNoConvergence indicates the effective-medium solve did not converge.
	ErrCodeNoConvergence ErrorCode = "MIX_NO_CONVERGENCE"
)

// Error represents a failure in optical-constant handling or mixing.
//
// The structured fields identify what was being processed so CLI layers can
// report the failure without string matching.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Material names the affected material dataset, when applicable.
	Material string

	// Rule names the requested mixing rule, when applicable.
	Rule string

	// Err is the underlying cause, when one exists.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Rule != "":
		return fmt.Sprintf("%s: %s (rule=%q)", e.Code, e.Message, e.Rule)
	case e.Material != "":
		return fmt.Sprintf("%s: %s (material=%q)", e.Code, e.Message, e.Material)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnsupportedRule returns true if the error is an unsupported-rule error.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedRule(err error) bool {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeUnsupportedRule
	}
	return false
}

// IsDataUnavailable returns true if the error is a missing-dataset error.
func IsDataUnavailable(err error) bool {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeDataUnavailable
	}
	return false
}

// IsBadRecord returns true if the error is a record-invariant violation.
func IsBadRecord(err error) bool {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeBadRecord
	}
	return false
}

// NewUnsupportedRuleError creates an Error for an unknown mixing rule.
func NewUnsupportedRuleError(rule string) *Error {
	return &Error{
		Code:    ErrCodeUnsupportedRule,
		Message: "unknown mixing rule",
		Rule:    rule,
	}
}

// NewDataUnavailableError creates an Error for a missing material dataset.
func NewDataUnavailableError(material string, err error) *Error {
	return &Error{
		Code:     ErrCodeDataUnavailable,
		Message:  "optical-constant data unavailable",
		Material: material,
		Err:      err,
	}
}

// NewBadRecordError creates an Error for a record-invariant violation.
func NewBadRecordError(message string) *Error {
	return &Error{
		Code:    ErrCodeBadRecord,
		Message: message,
	}
}
