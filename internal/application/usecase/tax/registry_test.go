package tax

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	t.Run("known year resolves", func(t *testing.T) {
		rs, err := registry.RulesetFor("2024-25")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rs.Version != "2024-25-v1" {
			t.Errorf("version = %s, want 2024-25-v1", rs.Version)
		}
		if rs.Provisional {
			t.Error("2024-25 should not be provisional")
		}
	})

	t.Run("unknown year is a loud configuration error", func(t *testing.T) {
		_, err := registry.RulesetFor("2019-20")
		if !errors.Is(err, domainerror.ErrUnknownTaxYear) {
			t.Errorf("expected ErrUnknownTaxYear, got %v", err)
		}
	})

	t.Run("forward placeholder is provisional", func(t *testing.T) {
		if !registry.IsProvisional("2025-26") {
			t.Error("expected 2025-26 to be provisional")
		}
		if registry.IsProvisional("2024-25") {
			t.Error("expected 2024-25 to be final")
		}
	})

	t.Run("coverage is contiguous", func(t *testing.T) {
		years := registry.AvailableYears()
		expected := []string{"2023-24", "2024-25", "2025-26"}
		if len(years) != len(expected) {
			t.Fatalf("years = %v, want %v", years, expected)
		}
		for i := range expected {
			if years[i] != expected[i] {
				t.Errorf("years[%d] = %s, want %s", i, years[i], expected[i])
			}
		}
	})
}

func TestNewRegistryValidation(t *testing.T) {
	base := rulesetFor2023_24()

	t.Run("empty registry rejected", func(t *testing.T) {
		if _, err := NewRegistry(); !errors.Is(err, domainerror.ErrInvalidRuleset) {
			t.Errorf("expected ErrInvalidRuleset, got %v", err)
		}
	})

	t.Run("duplicate year rejected", func(t *testing.T) {
		dup := rulesetFor2023_24()
		dup.Version = "2023-24-v2"
		if _, err := NewRegistry(base, dup); !errors.Is(err, domainerror.ErrInvalidRuleset) {
			t.Errorf("expected ErrInvalidRuleset, got %v", err)
		}
	})

	t.Run("gap in coverage rejected", func(t *testing.T) {
		if _, err := NewRegistry(rulesetFor2023_24(), rulesetFor2025_26()); !errors.Is(err, domainerror.ErrInvalidRuleset) {
			t.Errorf("expected ErrInvalidRuleset, got %v", err)
		}
	})

	t.Run("invalid ruleset rejected", func(t *testing.T) {
		bad := rulesetFor2023_24()
		bad.IncomeTaxBands = nil
		if _, err := NewRegistry(bad); !errors.Is(err, domainerror.ErrInvalidRuleset) {
			t.Errorf("expected ErrInvalidRuleset, got %v", err)
		}
	})
}

func TestRegistryFinalize(t *testing.T) {
	registry := DefaultRegistry()

	confirmed := rulesetFor2025_26()
	confirmed.Version = "2025-26-v2"
	confirmed.Provisional = false
	confirmed.NIClass2WeeklyRate = decimal.NewFromFloat(3.50)

	t.Run("placeholder to final is an explicit versioned transition", func(t *testing.T) {
		updated, err := registry.Finalize("2025-26", confirmed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.IsProvisional("2025-26") {
			t.Error("finalized year still provisional")
		}
		rs, err := updated.RulesetFor("2025-26")
		if err != nil {
			t.Fatal(err)
		}
		if rs.Version != "2025-26-v2" {
			t.Errorf("version = %s, want 2025-26-v2", rs.Version)
		}

		// The original registry is untouched: snapshots that captured the
		// placeholder version keep referring to it.
		original, err := registry.RulesetFor("2025-26")
		if err != nil {
			t.Fatal(err)
		}
		if original.Version != "2025-26-v1" || !original.Provisional {
			t.Errorf("original registry mutated: version=%s provisional=%v", original.Version, original.Provisional)
		}
	})

	t.Run("finalizing a final year rejected", func(t *testing.T) {
		replacement := rulesetFor2024_25()
		replacement.Version = "2024-25-v2"
		if _, err := registry.Finalize("2024-25", replacement); !errors.Is(err, domainerror.ErrRulesetNotProvisional) {
			t.Errorf("expected ErrRulesetNotProvisional, got %v", err)
		}
	})

	t.Run("silent overwrite with same version rejected", func(t *testing.T) {
		same := rulesetFor2025_26()
		same.Provisional = false
		if _, err := registry.Finalize("2025-26", same); !errors.Is(err, domainerror.ErrRulesetVersionUnchanged) {
			t.Errorf("expected ErrRulesetVersionUnchanged, got %v", err)
		}
	})

	t.Run("mismatched label rejected", func(t *testing.T) {
		wrong := confirmed
		wrong.TaxYear = "2024-25"
		if _, err := registry.Finalize("2025-26", wrong); !errors.Is(err, domainerror.ErrInvalidRuleset) {
			t.Errorf("expected ErrInvalidRuleset, got %v", err)
		}
	})

	t.Run("unknown label rejected", func(t *testing.T) {
		if _, err := registry.Finalize("2030-31", confirmed); !errors.Is(err, domainerror.ErrUnknownTaxYear) {
			t.Errorf("expected ErrUnknownTaxYear, got %v", err)
		}
	})
}

func TestRulesetForDate(t *testing.T) {
	registry := DefaultRegistry()

	rs, err := registry.RulesetForDate(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.TaxYear != "2023-24" {
		t.Errorf("tax year = %s, want 2023-24", rs.TaxYear)
	}

	rs, err = registry.RulesetForDate(time.Date(2024, time.April, 6, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if rs.TaxYear != "2024-25" {
		t.Errorf("tax year = %s, want 2024-25", rs.TaxYear)
	}
}
