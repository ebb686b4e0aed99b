// Package error defines domain-specific errors for the Taxfolio application.
package error

import "errors"

// Income and expense record domain errors.
var (
	// ErrIncomeNotFound is returned when an income record is not found.
	ErrIncomeNotFound = errors.New("income record not found")

	// ErrExpenseNotFound is returned when an expense record is not found.
	ErrExpenseNotFound = errors.New("expense record not found")

	// ErrRecordNotOwned is returned when a record does not belong to the requesting user.
	ErrRecordNotOwned = errors.New("record does not belong to user")

	// ErrInvalidAmount is returned when a record amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrDescriptionRequired is returned when a record has no description.
	ErrDescriptionRequired = errors.New("description is required")

	// ErrDescriptionTooLong is returned when a description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrCategoryRequired is returned when an expense has no category.
	ErrCategoryRequired = errors.New("category is required")
)

// RecordErrorCode defines error codes for income/expense record errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecordErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount       RecordErrorCode = "REC-010001"
	ErrCodeDescriptionRequired RecordErrorCode = "REC-010002"
	ErrCodeDescriptionTooLong  RecordErrorCode = "REC-010003"
	ErrCodeCategoryRequired    RecordErrorCode = "REC-010004"

	// Lookup errors (02XXXX)
	ErrCodeIncomeNotFound  RecordErrorCode = "REC-020001"
	ErrCodeExpenseNotFound RecordErrorCode = "REC-020002"
	ErrCodeRecordNotOwned  RecordErrorCode = "REC-020003"
)

// RecordError represents an income/expense record error with code and message.
type RecordError struct {
	Code    RecordErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError with the given code and message.
func NewRecordError(code RecordErrorCode, message string, err error) *RecordError {
	return &RecordError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
