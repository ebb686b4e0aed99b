package tax

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/valueobject"
)

func ruleset2024(t *testing.T) valueobject.Ruleset {
	t.Helper()
	rs, err := DefaultRegistry().RulesetFor("2024-25")
	if err != nil {
		t.Fatalf("failed to load 2024-25 ruleset: %v", err)
	}
	return rs
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestIncomeTax(t *testing.T) {
	rs := ruleset2024(t)

	tests := []struct {
		name     string
		profit   string
		expected string
	}{
		{"zero profit", "0", "0.00"},
		{"negative profit", "-5000", "0.00"},
		{"below personal allowance", "10000", "0.00"},
		{"at personal allowance", "12570", "0.00"},
		{"basic rate only", "30000.00", "3486.00"},
		{"exactly at basic rate ceiling", "50270", "7540.00"},
		// 7540 basic + (100000-50270)*0.40 = 7540 + 19892
		{"into higher rate", "100000", "27432.00"},
		// 7540 + (125140-50270)*0.40 + (150000-125140)*0.45
		{"into additional rate", "150000", "48675.00"},
		{"penny above allowance", "12570.01", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IncomeTax(dec(tt.profit), rs)
			if got.String() != dec(tt.expected).String() {
				t.Errorf("IncomeTax(%s) = %s, want %s", tt.profit, got, tt.expected)
			}
		})
	}
}

func TestIncomeTaxIsNonDecreasing(t *testing.T) {
	rs := ruleset2024(t)

	profits := []string{"0", "5000", "12570", "12571", "30000", "50270", "50271", "100000", "125140", "200000"}
	previous := decimal.Zero
	for _, p := range profits {
		got := IncomeTax(dec(p), rs)
		if got.LessThan(previous) {
			t.Fatalf("income tax decreased: tax(%s) = %s < %s", p, got, previous)
		}
		previous = got
	}
}

func TestNIClass2(t *testing.T) {
	rs := ruleset2024(t)

	tests := []struct {
		name     string
		profit   string
		expected string
	}{
		{"zero profit", "0", "0.00"},
		{"below small profits threshold", "6000", "0.00"},
		// Binary threshold: at the threshold the flat annual amount applies.
		{"at threshold", "6725", "179.40"},
		{"above threshold", "30000", "179.40"},
		{"high profit still flat", "200000", "179.40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NIClass2(dec(tt.profit), rs)
			if got.String() != dec(tt.expected).String() {
				t.Errorf("NIClass2(%s) = %s, want %s", tt.profit, got, tt.expected)
			}
		})
	}
}

func TestNIClass4(t *testing.T) {
	rs := ruleset2024(t)

	tests := []struct {
		name     string
		profit   string
		expected string
	}{
		{"zero profit", "0", "0.00"},
		{"below lower threshold", "12570", "0.00"},
		// (30000 - 12570) * 0.09
		{"main rate band", "30000", "1568.70"},
		// (50270 - 12570) * 0.09
		{"at upper threshold", "50270", "3393.00"},
		// 3393 + (60000 - 50270) * 0.02
		{"above upper threshold", "60000", "3587.60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NIClass4(dec(tt.profit), rs)
			if got.String() != dec(tt.expected).String() {
				t.Errorf("NIClass4(%s) = %s, want %s", tt.profit, got, tt.expected)
			}
		})
	}
}

func TestTotalTax(t *testing.T) {
	rs := ruleset2024(t)

	t.Run("thirty thousand profit", func(t *testing.T) {
		got := TotalTax(dec("30000.00"), rs)

		if got.IncomeTax.StringFixed(2) != "3486.00" {
			t.Errorf("income tax = %s, want 3486.00", got.IncomeTax)
		}
		if got.NIClass2.StringFixed(2) != "179.40" {
			t.Errorf("NI class 2 = %s, want 179.40", got.NIClass2)
		}
		if got.NIClass4.StringFixed(2) != "1568.70" {
			t.Errorf("NI class 4 = %s, want 1568.70", got.NIClass4)
		}
		if got.Total.StringFixed(2) != "5234.10" {
			t.Errorf("total = %s, want 5234.10", got.Total)
		}
	})

	t.Run("components are two decimal places and never negative", func(t *testing.T) {
		for _, p := range []string{"-10000", "0", "6724.99", "12569.37", "41999.99", "987654.32"} {
			got := TotalTax(dec(p), rs)
			for name, component := range map[string]decimal.Decimal{
				"income_tax": got.IncomeTax,
				"ni_class2":  got.NIClass2,
				"ni_class4":  got.NIClass4,
				"total":      got.Total,
			} {
				if component.Sign() < 0 {
					t.Errorf("profit %s: %s is negative: %s", p, name, component)
				}
				if component.Exponent() < -2 {
					t.Errorf("profit %s: %s has more than 2 decimal places: %s", p, name, component)
				}
			}
		}
	})
}

func TestSetAside(t *testing.T) {
	tests := []struct {
		name       string
		income     string
		percentage string
		expected   string
	}{
		{"quarter of income", "1000", "25", "250.00"},
		{"rounding half up", "333.33", "25", "83.33"},
		{"zero income", "0", "25", "0.00"},
		{"negative income", "-100", "25", "0.00"},
		{"zero percentage", "1000", "0", "0.00"},
		{"gross basis not net", "50000", "20", "10000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SetAside(dec(tt.income), dec(tt.percentage))
			if got.String() != dec(tt.expected).String() {
				t.Errorf("SetAside(%s, %s) = %s, want %s", tt.income, tt.percentage, got, tt.expected)
			}
		})
	}
}

func TestVATThresholdProximity(t *testing.T) {
	threshold := decimal.NewFromInt(85000)

	tests := []struct {
		name     string
		income   string
		expected string
	}{
		{"halfway", "42500", "50.00"},
		{"at threshold", "85000", "100.00"},
		{"capped above threshold", "170000", "100.00"},
		{"zero income", "0", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VATThresholdProximity(dec(tt.income), threshold)
			if got.String() != dec(tt.expected).String() {
				t.Errorf("VATThresholdProximity(%s) = %s, want %s", tt.income, got, tt.expected)
			}
		})
	}
}
