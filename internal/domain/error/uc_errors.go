// Package error defines domain-specific errors for the Taxfolio application.
package error

import "errors"

// Universal Credit reporting domain errors.
var (
	// ErrUCNotEnabled is returned when a user without UC reporting enabled calls a UC endpoint.
	ErrUCNotEnabled = errors.New("universal credit reporting is not enabled")

	// ErrAssessmentDayNotConfigured is returned when the user has no assessment day set.
	ErrAssessmentDayNotConfigured = errors.New("assessment day not configured")

	// ErrInvalidAssessmentDay is returned when the assessment day is outside 1-31.
	ErrInvalidAssessmentDay = errors.New("invalid assessment day")

	// ErrUCReportNotFound is returned when a UC report is not found.
	ErrUCReportNotFound = errors.New("uc report not found")

	// ErrUCReportAlreadyExists is returned when a report already exists for a period.
	ErrUCReportAlreadyExists = errors.New("uc report already exists for this period")

	// ErrUCReportAlreadyReported is returned when marking an already-reported period.
	ErrUCReportAlreadyReported = errors.New("uc report has already been marked as reported")
)

// UCErrorCode defines error codes for Universal Credit errors.
// Format: UC-XXYYYY where XX is category and YYYY is specific error.
type UCErrorCode string

const (
	// Configuration errors (01XXXX)
	ErrCodeUCNotEnabled               UCErrorCode = "UC-010001"
	ErrCodeAssessmentDayNotConfigured UCErrorCode = "UC-010002"
	ErrCodeInvalidAssessmentDay       UCErrorCode = "UC-010003"

	// Report lifecycle errors (02XXXX)
	ErrCodeUCReportNotFound        UCErrorCode = "UC-020001"
	ErrCodeUCReportAlreadyExists   UCErrorCode = "UC-020002"
	ErrCodeUCReportAlreadyReported UCErrorCode = "UC-020003"
)

// UCError represents a Universal Credit error with code and message.
type UCError struct {
	Code    UCErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UCError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UCError) Unwrap() error {
	return e.Err
}

// NewUCError creates a new UCError with the given code and message.
func NewUCError(code UCErrorCode, message string, err error) *UCError {
	return &UCError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
