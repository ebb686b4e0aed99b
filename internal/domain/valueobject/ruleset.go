// Package valueobject contains domain value objects for the Taxfolio system.
package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

// RateBand is one step of a marginal rate schedule. The band taxes the
// portion of profit above Threshold, up to the next band's threshold (or
// without limit for the final band).
type RateBand struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// Ruleset is the immutable set of tax and National Insurance parameters in
// force for a single UK tax year. All monetary values are GBP.
type Ruleset struct {
	// TaxYear is the canonical "YYYY-YY" label the ruleset applies to.
	TaxYear string
	// Version identifies this revision of the ruleset, distinct from the
	// tax year label so mid-year corrections remain traceable.
	Version string
	// Provisional marks a forward-looking placeholder whose rates have not
	// been confirmed by HMRC.
	Provisional bool

	PersonalAllowance decimal.Decimal
	IncomeTaxBands    []RateBand

	// NI Class 2: flat weekly rate, payable only when profits exceed the
	// small profits threshold.
	NIClass2WeeklyRate decimal.Decimal
	NIClass2Threshold  decimal.Decimal

	// NI Class 4: marginal bands on profits.
	NIClass4Bands []RateBand

	// VATThreshold is the registration turnover threshold used for the
	// proximity warning.
	VATThreshold decimal.Decimal
}

// Validate checks the structural invariants of the ruleset: a non-empty
// version, and strictly increasing thresholds within each band sequence.
func (r Ruleset) Validate() error {
	if r.TaxYear == "" || r.Version == "" {
		return domainerror.NewTaxError(
			domainerror.ErrCodeInvalidRuleset,
			"ruleset must carry a tax year label and a version",
			domainerror.ErrInvalidRuleset,
		)
	}
	if _, err := ParseTaxYear(r.TaxYear); err != nil {
		return err
	}
	if err := validateBands("income tax", r.IncomeTaxBands); err != nil {
		return err
	}
	if err := validateBands("NI class 4", r.NIClass4Bands); err != nil {
		return err
	}
	return nil
}

func validateBands(name string, bands []RateBand) error {
	if len(bands) == 0 {
		return domainerror.NewTaxError(
			domainerror.ErrCodeInvalidRuleset,
			fmt.Sprintf("ruleset has no %s bands", name),
			domainerror.ErrInvalidRuleset,
		)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Threshold.LessThanOrEqual(bands[i-1].Threshold) {
			return domainerror.NewTaxError(
				domainerror.ErrCodeInvalidRuleset,
				fmt.Sprintf("%s band thresholds must strictly increase", name),
				domainerror.ErrInvalidRuleset,
			)
		}
	}
	return nil
}
