// Package tax contains the tax calculation engine and tax-related use cases.
package tax

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// Registry is an explicit, constructed table of tax rulesets keyed by tax
// year label. It is append-only: a year's ruleset is never mutated in
// place, only replaced wholesale through Finalize when a provisional
// placeholder is confirmed. Reads are lock-free; transitions happen
// out-of-band at construction/deploy time.
type Registry struct {
	rulesets map[string]valueobject.Ruleset
}

// NewRegistry builds a registry from the given rulesets. It validates each
// ruleset and requires the set to cover a contiguous, non-overlapping
// sequence of tax years with no gaps.
func NewRegistry(rulesets ...valueobject.Ruleset) (*Registry, error) {
	if len(rulesets) == 0 {
		return nil, domainerror.NewTaxError(
			domainerror.ErrCodeInvalidRuleset,
			"registry requires at least one ruleset",
			domainerror.ErrInvalidRuleset,
		)
	}

	byLabel := make(map[string]valueobject.Ruleset, len(rulesets))
	years := make([]valueobject.TaxYear, 0, len(rulesets))
	for _, rs := range rulesets {
		if err := rs.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byLabel[rs.TaxYear]; exists {
			return nil, domainerror.NewTaxError(
				domainerror.ErrCodeInvalidRuleset,
				fmt.Sprintf("duplicate ruleset for tax year %s", rs.TaxYear),
				domainerror.ErrInvalidRuleset,
			)
		}
		ty, err := valueobject.ParseTaxYear(rs.TaxYear)
		if err != nil {
			return nil, err
		}
		byLabel[rs.TaxYear] = rs
		years = append(years, ty)
	}

	sort.Slice(years, func(i, j int) bool { return years[i].StartYear() < years[j].StartYear() })
	for i := 1; i < len(years); i++ {
		if years[i].StartYear() != years[i-1].StartYear()+1 {
			return nil, domainerror.NewTaxError(
				domainerror.ErrCodeInvalidRuleset,
				fmt.Sprintf("ruleset coverage has a gap between %s and %s", years[i-1].Label(), years[i].Label()),
				domainerror.ErrInvalidRuleset,
			)
		}
	}

	return &Registry{rulesets: byLabel}, nil
}

// RulesetFor returns the ruleset for the given tax year label. A missing
// ruleset is a configuration error, never silently defaulted: applying a
// wrong year's rates would produce financially incorrect output.
func (r *Registry) RulesetFor(label string) (valueobject.Ruleset, error) {
	rs, ok := r.rulesets[label]
	if !ok {
		return valueobject.Ruleset{}, domainerror.NewTaxError(
			domainerror.ErrCodeUnknownTaxYear,
			fmt.Sprintf("no tax ruleset registered for tax year %s (available: %v)", label, r.AvailableYears()),
			domainerror.ErrUnknownTaxYear,
		)
	}
	return rs, nil
}

// RulesetForDate returns the ruleset in force on the given date.
func (r *Registry) RulesetForDate(date time.Time) (valueobject.Ruleset, error) {
	return r.RulesetFor(valueobject.TaxYearFromDate(date).Label())
}

// IsProvisional reports whether the ruleset for the label is a
// forward-looking placeholder whose rates are unconfirmed. Unknown labels
// report false; RulesetFor is the authority on existence.
func (r *Registry) IsProvisional(label string) bool {
	rs, ok := r.rulesets[label]
	return ok && rs.Provisional
}

// AvailableYears returns the sorted list of tax year labels with a
// registered ruleset.
func (r *Registry) AvailableYears() []string {
	labels := make([]string, 0, len(r.rulesets))
	for label := range r.rulesets {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Finalize replaces a provisional placeholder with its confirmed ruleset,
// returning a new registry. The transition is explicit and versioned: the
// target must currently be provisional and the final ruleset must carry a
// different version, so snapshots taken against the placeholder stay
// attributable to it.
func (r *Registry) Finalize(label string, final valueobject.Ruleset) (*Registry, error) {
	current, err := r.RulesetFor(label)
	if err != nil {
		return nil, err
	}
	if !current.Provisional {
		return nil, domainerror.NewTaxError(
			domainerror.ErrCodeRulesetNotProvisional,
			fmt.Sprintf("ruleset for %s is already final", label),
			domainerror.ErrRulesetNotProvisional,
		)
	}
	if final.Version == current.Version {
		return nil, domainerror.NewTaxError(
			domainerror.ErrCodeRulesetVersionUnchanged,
			fmt.Sprintf("finalizing %s requires a new version, still %s", label, final.Version),
			domainerror.ErrRulesetVersionUnchanged,
		)
	}
	if final.TaxYear != label {
		return nil, domainerror.NewTaxError(
			domainerror.ErrCodeInvalidRuleset,
			fmt.Sprintf("finalized ruleset labeled %s does not match %s", final.TaxYear, label),
			domainerror.ErrInvalidRuleset,
		)
	}
	final.Provisional = false
	if err := final.Validate(); err != nil {
		return nil, err
	}

	updated := make(map[string]valueobject.Ruleset, len(r.rulesets))
	for k, v := range r.rulesets {
		updated[k] = v
	}
	updated[label] = final
	return &Registry{rulesets: updated}, nil
}

// DefaultRegistry returns the built-in ruleset table. 2025-26 is a
// provisional placeholder pending HMRC confirmation; summaries computed
// against it carry a visible provisional flag.
func DefaultRegistry() *Registry {
	registry, err := NewRegistry(
		rulesetFor2023_24(),
		rulesetFor2024_25(),
		rulesetFor2025_26(),
	)
	if err != nil {
		// The built-in table is static; failing validation is a programming error.
		panic(err)
	}
	return registry
}

func standardBands() ([]valueobject.RateBand, []valueobject.RateBand) {
	incomeTax := []valueobject.RateBand{
		{Threshold: decimal.NewFromInt(12570), Rate: decimal.NewFromFloat(0.20)},
		{Threshold: decimal.NewFromInt(50270), Rate: decimal.NewFromFloat(0.40)},
		{Threshold: decimal.NewFromInt(125140), Rate: decimal.NewFromFloat(0.45)},
	}
	niClass4 := []valueobject.RateBand{
		{Threshold: decimal.NewFromInt(12570), Rate: decimal.NewFromFloat(0.09)},
		{Threshold: decimal.NewFromInt(50270), Rate: decimal.NewFromFloat(0.02)},
	}
	return incomeTax, niClass4
}

func rulesetFor2023_24() valueobject.Ruleset {
	incomeTax, niClass4 := standardBands()
	return valueobject.Ruleset{
		TaxYear:            "2023-24",
		Version:            "2023-24-v1",
		PersonalAllowance:  decimal.NewFromInt(12570),
		IncomeTaxBands:     incomeTax,
		NIClass2WeeklyRate: decimal.NewFromFloat(3.45),
		NIClass2Threshold:  decimal.NewFromInt(6725),
		NIClass4Bands:      niClass4,
		VATThreshold:       decimal.NewFromInt(85000),
	}
}

func rulesetFor2024_25() valueobject.Ruleset {
	incomeTax, niClass4 := standardBands()
	return valueobject.Ruleset{
		TaxYear:            "2024-25",
		Version:            "2024-25-v1",
		PersonalAllowance:  decimal.NewFromInt(12570),
		IncomeTaxBands:     incomeTax,
		NIClass2WeeklyRate: decimal.NewFromFloat(3.45),
		NIClass2Threshold:  decimal.NewFromInt(6725),
		NIClass4Bands:      niClass4,
		VATThreshold:       decimal.NewFromInt(85000),
	}
}

// rulesetFor2025_26 carries forward the prior year's values until HMRC
// publishes the confirmed rates.
func rulesetFor2025_26() valueobject.Ruleset {
	incomeTax, niClass4 := standardBands()
	return valueobject.Ruleset{
		TaxYear:            "2025-26",
		Version:            "2025-26-v1",
		Provisional:        true,
		PersonalAllowance:  decimal.NewFromInt(12570),
		IncomeTaxBands:     incomeTax,
		NIClass2WeeklyRate: decimal.NewFromFloat(3.45),
		NIClass2Threshold:  decimal.NewFromInt(6725),
		NIClass4Bands:      niClass4,
		VATThreshold:       decimal.NewFromInt(85000),
	}
}
