// Package valueobject contains domain value objects for the Taxfolio system.
package valueobject

import (
	"fmt"
	"time"

	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

// AssessmentPeriod is a rolling monthly Universal Credit assessment window.
// The window starts on the configured anchor day of the month and ends the
// day before the next occurrence of the anchor day (both dates inclusive).
type AssessmentPeriod struct {
	Start time.Time
	End   time.Time
}

// ValidateAssessmentDay checks that the anchor day-of-month is within 1-31.
func ValidateAssessmentDay(anchorDay int) error {
	if anchorDay < 1 || anchorDay > 31 {
		return domainerror.NewUCError(
			domainerror.ErrCodeInvalidAssessmentDay,
			fmt.Sprintf("assessment day must be between 1 and 31, got %d", anchorDay),
			domainerror.ErrInvalidAssessmentDay,
		)
	}
	return nil
}

// PeriodContaining returns the assessment period containing the reference
// date for the given anchor day. The start is the most recent occurrence of
// the anchor day on or before the reference date; when the anchor day
// exceeds the length of a month the boundary clamps to that month's last
// day (anchor 31 in February starts on 28/29 February).
func PeriodContaining(reference time.Time, anchorDay int) (AssessmentPeriod, error) {
	if err := ValidateAssessmentDay(anchorDay); err != nil {
		return AssessmentPeriod{}, err
	}

	reference = truncateToDay(reference)

	start := anchorDateInMonth(reference.Year(), reference.Month(), anchorDay)
	if start.After(reference) {
		prev := reference.AddDate(0, 0, -reference.Day())
		start = anchorDateInMonth(prev.Year(), prev.Month(), anchorDay)
	}

	next := nextAnchorDate(start, anchorDay)
	return AssessmentPeriod{Start: start, End: next.AddDate(0, 0, -1)}, nil
}

// Next returns the assessment period immediately following p.
func (p AssessmentPeriod) Next(anchorDay int) (AssessmentPeriod, error) {
	if err := ValidateAssessmentDay(anchorDay); err != nil {
		return AssessmentPeriod{}, err
	}
	return PeriodContaining(p.End.AddDate(0, 0, 1), anchorDay)
}

// Contains reports whether the given date falls within the period, inclusive
// of both boundaries.
func (p AssessmentPeriod) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

// anchorDateInMonth returns the anchor day within the given month, clamped
// to the month's last day when the anchor exceeds it.
func anchorDateInMonth(year int, month time.Month, anchorDay int) time.Time {
	day := anchorDay
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// nextAnchorDate returns the first occurrence of the anchor day strictly
// after the given period start.
func nextAnchorDate(start time.Time, anchorDay int) time.Time {
	firstOfNext := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return anchorDateInMonth(firstOfNext.Year(), firstOfNext.Month(), anchorDay)
}

// lastDayOfMonth returns the number of days in the given month, with
// explicit leap-year handling via normalized date arithmetic.
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
