// Package valueobject contains domain value objects for the Taxfolio system.
package valueobject

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

// taxYearLabelPattern matches the canonical "YYYY-YY" tax year token.
var taxYearLabelPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// TaxYear represents a UK tax year, which runs from 6 April of the start
// year to 5 April of the following calendar year (both inclusive).
type TaxYear struct {
	startYear int
}

// TaxYearFromDate returns the tax year containing the given date.
// Dates on or before 5 April belong to the tax year that started the
// previous 6 April; 6 April and later belong to the tax year starting
// that same calendar year. Total over all valid dates, including 29 February.
func TaxYearFromDate(date time.Time) TaxYear {
	startYear := date.Year()
	if date.Month() < time.April || (date.Month() == time.April && date.Day() < 6) {
		startYear--
	}
	return TaxYear{startYear: startYear}
}

// ParseTaxYear parses a canonical "YYYY-YY" label (e.g. "2024-25").
// The second component must be the first plus one modulo 100.
func ParseTaxYear(label string) (TaxYear, error) {
	matches := taxYearLabelPattern.FindStringSubmatch(label)
	if matches == nil {
		return TaxYear{}, domainerror.NewTaxError(
			domainerror.ErrCodeInvalidTaxYearLabel,
			fmt.Sprintf("invalid tax year label %q, expected format YYYY-YY", label),
			domainerror.ErrInvalidTaxYearLabel,
		)
	}

	startYear, _ := strconv.Atoi(matches[1])
	endSuffix, _ := strconv.Atoi(matches[2])
	if (startYear+1)%100 != endSuffix {
		return TaxYear{}, domainerror.NewTaxError(
			domainerror.ErrCodeInvalidTaxYearLabel,
			fmt.Sprintf("invalid tax year label %q, end year must follow start year", label),
			domainerror.ErrInvalidTaxYearLabel,
		)
	}

	return TaxYear{startYear: startYear}, nil
}

// Label returns the canonical "YYYY-YY" token for the tax year.
func (ty TaxYear) Label() string {
	return fmt.Sprintf("%04d-%02d", ty.startYear, (ty.startYear+1)%100)
}

// StartYear returns the calendar year in which the tax year begins.
func (ty TaxYear) StartYear() int {
	return ty.startYear
}

// Start returns the inclusive first day of the tax year (6 April).
func (ty TaxYear) Start() time.Time {
	return time.Date(ty.startYear, time.April, 6, 0, 0, 0, 0, time.UTC)
}

// End returns the inclusive last day of the tax year (5 April of the
// following calendar year).
func (ty TaxYear) End() time.Time {
	return time.Date(ty.startYear+1, time.April, 5, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether the given date falls within the tax year.
func (ty TaxYear) Contains(date time.Time) bool {
	return TaxYearFromDate(date) == ty
}

// Next returns the following tax year.
func (ty TaxYear) Next() TaxYear {
	return TaxYear{startYear: ty.startYear + 1}
}

// Previous returns the preceding tax year.
func (ty TaxYear) Previous() TaxYear {
	return TaxYear{startYear: ty.startYear - 1}
}

// RegistrationDeadline returns the HMRC Self Assessment registration
// deadline for a business that began trading on the given date: 5 October
// following the end of the tax year in which trading started.
func RegistrationDeadline(tradingStart time.Time) time.Time {
	taxYear := TaxYearFromDate(tradingStart)
	// The tax year ends on 5 April, so the following 5 October is in the
	// same calendar year as the tax year end.
	return time.Date(taxYear.End().Year(), time.October, 5, 0, 0, 0, 0, time.UTC)
}
