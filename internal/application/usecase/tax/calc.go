// Package tax contains the tax calculation engine and tax-related use cases.
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// weeksPerYear is the number of weekly NI Class 2 contributions in a full
// tax year.
const weeksPerYear = 52

// Breakdown holds the computed tax components for a net profit figure.
// Each component is rounded half-up to two decimal places exactly once, at
// the final component, so intermediate arithmetic never compounds rounding
// drift.
type Breakdown struct {
	IncomeTax decimal.Decimal
	NIClass2  decimal.Decimal
	NIClass4  decimal.Decimal
	Total     decimal.Decimal
}

// IncomeTax computes income tax on self-employment profit by applying the
// personal allowance and then folding over the ruleset's marginal bands.
// Each band taxes only the portion of profit within it. Zero or negative
// profit yields zero; the result is never negative.
func IncomeTax(profit decimal.Decimal, rs valueobject.Ruleset) decimal.Decimal {
	return marginalTax(profit, rs.IncomeTaxBands)
}

// NIClass2 computes the flat annual Class 2 National Insurance amount:
// the weekly rate over a full year once profit exceeds the small profits
// threshold, else zero. Binary threshold, not marginal.
func NIClass2(profit decimal.Decimal, rs valueobject.Ruleset) decimal.Decimal {
	if profit.LessThan(rs.NIClass2Threshold) || profit.Sign() <= 0 {
		return decimal.Zero.Round(2)
	}
	return rs.NIClass2WeeklyRate.Mul(decimal.NewFromInt(weeksPerYear)).Round(2)
}

// NIClass4 computes Class 4 National Insurance on profits via the
// ruleset's marginal band sequence (main rate between the lower and upper
// profit thresholds, reduced rate above).
func NIClass4(profit decimal.Decimal, rs valueobject.Ruleset) decimal.Decimal {
	return marginalTax(profit, rs.NIClass4Bands)
}

// TotalTax computes all tax components for a net profit under the given
// ruleset.
func TotalTax(profit decimal.Decimal, rs valueobject.Ruleset) Breakdown {
	incomeTax := IncomeTax(profit, rs)
	niClass2 := NIClass2(profit, rs)
	niClass4 := NIClass4(profit, rs)
	return Breakdown{
		IncomeTax: incomeTax,
		NIClass2:  niClass2,
		NIClass4:  niClass4,
		Total:     incomeTax.Add(niClass2).Add(niClass4),
	}
}

// SetAside returns the recommended amount to reserve for tax: a flat
// percentage of gross income. Deliberately based on gross income rather
// than net profit, a conservative bias that favors over-saving.
func SetAside(grossIncome, percentage decimal.Decimal) decimal.Decimal {
	if grossIncome.Sign() <= 0 || percentage.Sign() <= 0 {
		return decimal.Zero.Round(2)
	}
	return grossIncome.Mul(percentage).Div(decimal.NewFromInt(100)).Round(2)
}

// VATThresholdProximity returns how close gross income is to the VAT
// registration threshold as a percentage, capped at 100.
func VATThresholdProximity(grossIncome, threshold decimal.Decimal) decimal.Decimal {
	if threshold.Sign() <= 0 || grossIncome.Sign() <= 0 {
		return decimal.Zero.Round(2)
	}
	proximity := grossIncome.Div(threshold).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if proximity.GreaterThan(hundred) {
		return hundred.Round(2)
	}
	return proximity.Round(2)
}

// marginalTax folds once over an ordered band sequence: for each band it
// taxes the portion of profit between the band's threshold and the next
// band's threshold (unbounded for the last band).
func marginalTax(profit decimal.Decimal, bands []valueobject.RateBand) decimal.Decimal {
	if profit.Sign() <= 0 {
		return decimal.Zero.Round(2)
	}

	tax := decimal.Zero
	for i, band := range bands {
		if profit.LessThanOrEqual(band.Threshold) {
			break
		}
		upper := profit
		if i+1 < len(bands) && upper.GreaterThan(bands[i+1].Threshold) {
			upper = bands[i+1].Threshold
		}
		tax = tax.Add(upper.Sub(band.Threshold).Mul(band.Rate))
	}
	return tax.Round(2)
}
