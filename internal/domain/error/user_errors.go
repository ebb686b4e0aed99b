// Package error defines domain-specific errors for the Taxfolio application.
package error

import "errors"

// User settings domain errors.
var (
	// ErrInvalidSetAsidePercentage is returned when the set-aside percentage is outside 0-100.
	ErrInvalidSetAsidePercentage = errors.New("set-aside percentage must be between 0 and 100")

	// ErrTradingStartInFuture is returned when the trading start date is in the future.
	ErrTradingStartInFuture = errors.New("trading start date cannot be in the future")
)

// UserErrorCode defines error codes for user settings errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type UserErrorCode string

const (
	// Settings validation errors (01XXXX)
	ErrCodeInvalidSetAsidePercentage UserErrorCode = "USR-010001"
	ErrCodeTradingStartInFuture      UserErrorCode = "USR-010002"
)

// UserError represents a user settings error with code and message.
type UserError struct {
	Code    UserErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return &UserError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
