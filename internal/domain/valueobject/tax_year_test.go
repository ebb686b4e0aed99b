package valueobject

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestTaxYearFromDate(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{"mid tax year", date(2024, time.March, 15), "2023-24"},
		{"first day of tax year", date(2024, time.April, 6), "2024-25"},
		{"last day of tax year", date(2024, time.April, 5), "2023-24"},
		{"start of calendar year", date(2024, time.January, 1), "2023-24"},
		{"end of calendar year", date(2024, time.December, 31), "2024-25"},
		{"leap day", date(2024, time.February, 29), "2023-24"},
		{"late april", date(2023, time.April, 30), "2023-24"},
		{"century wrap", date(2099, time.June, 1), "2099-00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaxYearFromDate(tt.date).Label()
			if got != tt.expected {
				t.Errorf("TaxYearFromDate(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.expected)
			}
		})
	}
}

func TestTaxYearBoundsContainDate(t *testing.T) {
	// Every date must fall inside the bounds of its own tax year.
	dates := []time.Time{
		date(2023, time.April, 5),
		date(2023, time.April, 6),
		date(2024, time.February, 29),
		date(2024, time.April, 5),
		date(2024, time.April, 6),
		date(2024, time.December, 31),
		date(2025, time.January, 1),
	}

	for _, d := range dates {
		ty := TaxYearFromDate(d)
		if d.Before(ty.Start()) || d.After(ty.End()) {
			t.Errorf("date %s outside bounds of its tax year %s [%s, %s]",
				d.Format("2006-01-02"), ty.Label(),
				ty.Start().Format("2006-01-02"), ty.End().Format("2006-01-02"))
		}
		if !ty.Contains(d) {
			t.Errorf("Contains(%s) = false for tax year %s", d.Format("2006-01-02"), ty.Label())
		}
	}
}

func TestParseTaxYear(t *testing.T) {
	t.Run("valid label round-trips", func(t *testing.T) {
		ty, err := ParseTaxYear("2024-25")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ty.Label() != "2024-25" {
			t.Errorf("expected label 2024-25, got %s", ty.Label())
		}
		if !ty.Start().Equal(date(2024, time.April, 6)) {
			t.Errorf("expected start 2024-04-06, got %s", ty.Start().Format("2006-01-02"))
		}
		if !ty.End().Equal(date(2025, time.April, 5)) {
			t.Errorf("expected end 2025-04-05, got %s", ty.End().Format("2006-01-02"))
		}
	})

	t.Run("invalid labels rejected", func(t *testing.T) {
		invalid := []string{
			"", "2024", "2024-2025", "2024-26", "2024-24", "24-25", "abcd-ef", "2024_25",
		}
		for _, label := range invalid {
			if _, err := ParseTaxYear(label); !errors.Is(err, domainerror.ErrInvalidTaxYearLabel) {
				t.Errorf("ParseTaxYear(%q): expected ErrInvalidTaxYearLabel, got %v", label, err)
			}
		}
	})

	t.Run("century wrap suffix", func(t *testing.T) {
		ty, err := ParseTaxYear("2099-00")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ty.StartYear() != 2099 {
			t.Errorf("expected start year 2099, got %d", ty.StartYear())
		}
	})
}

func TestRegistrationDeadline(t *testing.T) {
	tests := []struct {
		name         string
		tradingStart time.Time
		expected     time.Time
	}{
		// Trading started June 2024: tax year 2024-25 ends 5 April 2025,
		// deadline is the following 5 October.
		{"mid tax year start", date(2024, time.June, 1), date(2025, time.October, 5)},
		{"start before april 6", date(2024, time.March, 1), date(2024, time.October, 5)},
		{"start on april 6", date(2024, time.April, 6), date(2025, time.October, 5)},
		{"start on april 5", date(2024, time.April, 5), date(2024, time.October, 5)},
		{"start late in tax year", date(2025, time.January, 10), date(2025, time.October, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RegistrationDeadline(tt.tradingStart)
			if !got.Equal(tt.expected) {
				t.Errorf("RegistrationDeadline(%s) = %s, want %s",
					tt.tradingStart.Format("2006-01-02"),
					got.Format("2006-01-02"),
					tt.expected.Format("2006-01-02"))
			}
		})
	}
}

func TestTaxYearNextPrevious(t *testing.T) {
	ty, err := ParseTaxYear("2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if ty.Next().Label() != "2025-26" {
		t.Errorf("Next() = %s, want 2025-26", ty.Next().Label())
	}
	if ty.Previous().Label() != "2023-24" {
		t.Errorf("Previous() = %s, want 2023-24", ty.Previous().Label())
	}
}
