// Package error defines domain-specific errors for the Taxfolio application.
package error

import "errors"

// Tax domain errors. UnknownTaxYear and InvalidTaxYearLabel indicate a
// misconfigured ruleset registry or a malformed caller-supplied label; they
// are configuration errors, never substituted with a default ruleset.
var (
	// ErrUnknownTaxYear is returned when no ruleset is registered for a tax year.
	ErrUnknownTaxYear = errors.New("no tax ruleset registered for tax year")

	// ErrInvalidTaxYearLabel is returned when a tax year label is not a valid "YYYY-YY" token.
	ErrInvalidTaxYearLabel = errors.New("invalid tax year label")

	// ErrInvalidRuleset is returned when a ruleset fails structural validation.
	ErrInvalidRuleset = errors.New("invalid tax ruleset")

	// ErrRulesetNotProvisional is returned when finalizing a ruleset that is already final.
	ErrRulesetNotProvisional = errors.New("ruleset is not provisional")

	// ErrRulesetVersionUnchanged is returned when a finalized ruleset keeps the placeholder version.
	ErrRulesetVersionUnchanged = errors.New("finalized ruleset must carry a new version")

	// ErrSnapshotAlreadyExists is returned when a snapshot already exists for a tax year.
	ErrSnapshotAlreadyExists = errors.New("snapshot already exists for this tax year")

	// ErrSnapshotNotFound is returned when a tax snapshot is not found.
	ErrSnapshotNotFound = errors.New("tax snapshot not found")
)

// TaxErrorCode defines error codes for tax errors.
// Format: TAX-XXYYYY where XX is category and YYYY is specific error.
type TaxErrorCode string

const (
	// Configuration errors (01XXXX)
	ErrCodeUnknownTaxYear          TaxErrorCode = "TAX-010001"
	ErrCodeInvalidTaxYearLabel     TaxErrorCode = "TAX-010002"
	ErrCodeInvalidRuleset          TaxErrorCode = "TAX-010003"
	ErrCodeRulesetNotProvisional   TaxErrorCode = "TAX-010004"
	ErrCodeRulesetVersionUnchanged TaxErrorCode = "TAX-010005"

	// Snapshot errors (02XXXX)
	ErrCodeSnapshotAlreadyExists TaxErrorCode = "TAX-020001"
	ErrCodeSnapshotNotFound      TaxErrorCode = "TAX-020002"
)

// TaxError represents a tax error with code and message.
type TaxError struct {
	Code    TaxErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TaxError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TaxError) Unwrap() error {
	return e.Err
}

// NewTaxError creates a new TaxError with the given code and message.
func NewTaxError(code TaxErrorCode, message string, err error) *TaxError {
	return &TaxError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
