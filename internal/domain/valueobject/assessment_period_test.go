package valueobject

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

func TestPeriodContaining(t *testing.T) {
	tests := []struct {
		name          string
		reference     time.Time
		anchorDay     int
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "reference after anchor day",
			reference:     date(2024, time.June, 20),
			anchorDay:     15,
			expectedStart: date(2024, time.June, 15),
			expectedEnd:   date(2024, time.July, 14),
		},
		{
			name:          "reference before anchor day",
			reference:     date(2024, time.June, 10),
			anchorDay:     15,
			expectedStart: date(2024, time.May, 15),
			expectedEnd:   date(2024, time.June, 14),
		},
		{
			name:          "reference on anchor day",
			reference:     date(2024, time.June, 15),
			anchorDay:     15,
			expectedStart: date(2024, time.June, 15),
			expectedEnd:   date(2024, time.July, 14),
		},
		{
			name:          "january reference rolls into previous year",
			reference:     date(2024, time.January, 5),
			anchorDay:     15,
			expectedStart: date(2023, time.December, 15),
			expectedEnd:   date(2024, time.January, 14),
		},
		{
			name:          "december period crosses year boundary",
			reference:     date(2023, time.December, 20),
			anchorDay:     15,
			expectedStart: date(2023, time.December, 15),
			expectedEnd:   date(2024, time.January, 14),
		},
		{
			name:          "anchor 31 clamps in february leap year",
			reference:     date(2024, time.March, 1),
			anchorDay:     31,
			expectedStart: date(2024, time.February, 29),
			expectedEnd:   date(2024, time.March, 30),
		},
		{
			name:          "anchor 31 clamps in february non-leap year",
			reference:     date(2023, time.March, 1),
			anchorDay:     31,
			expectedStart: date(2023, time.February, 28),
			expectedEnd:   date(2023, time.March, 30),
		},
		{
			name:          "anchor 31 in a 31-day month",
			reference:     date(2024, time.January, 31),
			anchorDay:     31,
			expectedStart: date(2024, time.January, 31),
			expectedEnd:   date(2024, time.February, 28),
		},
		{
			name:          "anchor 30 clamps in february",
			reference:     date(2023, time.March, 29),
			anchorDay:     30,
			expectedStart: date(2023, time.February, 28),
			expectedEnd:   date(2023, time.March, 29),
		},
		{
			name:          "period spans tax year boundary",
			reference:     date(2024, time.April, 6),
			anchorDay:     1,
			expectedStart: date(2024, time.April, 1),
			expectedEnd:   date(2024, time.April, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := PeriodContaining(tt.reference, tt.anchorDay)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !period.Start.Equal(tt.expectedStart) {
				t.Errorf("start = %s, want %s", period.Start.Format("2006-01-02"), tt.expectedStart.Format("2006-01-02"))
			}
			if !period.End.Equal(tt.expectedEnd) {
				t.Errorf("end = %s, want %s", period.End.Format("2006-01-02"), tt.expectedEnd.Format("2006-01-02"))
			}
			if !period.Contains(tt.reference) {
				t.Errorf("period [%s, %s] does not contain reference %s",
					period.Start.Format("2006-01-02"), period.End.Format("2006-01-02"),
					tt.reference.Format("2006-01-02"))
			}
		})
	}
}

func TestPeriodContainingIsDeterministic(t *testing.T) {
	// Re-running the resolver on an unchanged date must always reproduce
	// the same window.
	ref := date(2024, time.June, 20)
	first, err := PeriodContaining(ref, 15)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := PeriodContaining(ref, 15)
		if err != nil {
			t.Fatal(err)
		}
		if !again.Start.Equal(first.Start) || !again.End.Equal(first.End) {
			t.Fatalf("non-deterministic period: got [%s, %s], want [%s, %s]",
				again.Start, again.End, first.Start, first.End)
		}
	}
}

func TestPeriodNext(t *testing.T) {
	t.Run("consecutive periods tile the calendar", func(t *testing.T) {
		period, err := PeriodContaining(date(2023, time.November, 20), 15)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 6; i++ {
			next, err := period.Next(15)
			if err != nil {
				t.Fatal(err)
			}
			if !next.Start.Equal(period.End.AddDate(0, 0, 1)) {
				t.Fatalf("gap between period ending %s and next starting %s",
					period.End.Format("2006-01-02"), next.Start.Format("2006-01-02"))
			}
			period = next
		}
	})

	t.Run("anchor 31 recovers after february clamp", func(t *testing.T) {
		period, err := PeriodContaining(date(2024, time.January, 31), 31)
		if err != nil {
			t.Fatal(err)
		}
		next, err := period.Next(31)
		if err != nil {
			t.Fatal(err)
		}
		if !next.Start.Equal(date(2024, time.February, 29)) {
			t.Errorf("next start = %s, want 2024-02-29", next.Start.Format("2006-01-02"))
		}
		if !next.End.Equal(date(2024, time.March, 30)) {
			t.Errorf("next end = %s, want 2024-03-30", next.End.Format("2006-01-02"))
		}
	})
}

func TestValidateAssessmentDay(t *testing.T) {
	for _, day := range []int{1, 15, 28, 31} {
		if err := ValidateAssessmentDay(day); err != nil {
			t.Errorf("ValidateAssessmentDay(%d): unexpected error %v", day, err)
		}
	}
	for _, day := range []int{0, -1, 32, 100} {
		err := ValidateAssessmentDay(day)
		if !errors.Is(err, domainerror.ErrInvalidAssessmentDay) {
			t.Errorf("ValidateAssessmentDay(%d): expected ErrInvalidAssessmentDay, got %v", day, err)
		}
	}
}
