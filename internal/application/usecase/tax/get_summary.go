// Package tax contains the tax calculation engine and tax-related use cases.
package tax

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// GetSummaryInput represents the input for computing a tax year summary.
type GetSummaryInput struct {
	UserID uuid.UUID
	// TaxYear is an optional "YYYY-YY" label; empty means the tax year
	// containing today.
	TaxYear string
}

// GetSummaryOutput is the computed tax position for one tax year. It is
// also the cache payload, so every field carries a JSON tag.
type GetSummaryOutput struct {
	TaxYear      string    `json:"tax_year"`
	TaxYearStart time.Time `json:"tax_year_start"`
	TaxYearEnd   time.Time `json:"tax_year_end"`

	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	// NetProfit is income minus expenses and may be negative; tax is
	// computed on the profit floored at zero.
	NetProfit     decimal.Decimal `json:"net_profit"`
	TaxableProfit decimal.Decimal `json:"taxable_profit"`

	IncomeTax decimal.Decimal `json:"income_tax"`
	NIClass2  decimal.Decimal `json:"ni_class2"`
	NIClass4  decimal.Decimal `json:"ni_class4"`
	TotalTax  decimal.Decimal `json:"total_tax"`

	// SetAside is the recommended reserve: the user's configured percentage
	// of gross income, not of net profit.
	SetAside decimal.Decimal `json:"set_aside"`
	// ActualTaxSaved is the sum of tax savings recorded on the year's
	// income, for comparison against the recommendation.
	ActualTaxSaved decimal.Decimal `json:"actual_tax_saved"`

	VATThreshold        decimal.Decimal `json:"vat_threshold"`
	VATProximityPercent decimal.Decimal `json:"vat_proximity_percent"`

	RulesetVersion string `json:"ruleset_version"`
	// Provisional marks a summary computed against unconfirmed placeholder
	// rates; the figures are served anyway.
	Provisional bool `json:"provisional"`

	// RegistrationDeadline is the HMRC Self Assessment registration
	// deadline derived from the trading start date; nil when the user has
	// not set one.
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
}

// GetSummaryUseCase computes a user's tax position for a tax year.
type GetSummaryUseCase struct {
	incomeRepo  adapter.IncomeRepository
	expenseRepo adapter.ExpenseRepository
	userRepo    adapter.UserRepository
	registry    *Registry
	cache       adapter.SummaryCache
	now         func() time.Time
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	registry *Registry,
	cache adapter.SummaryCache,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		registry:    registry,
		cache:       cache,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Execute computes the summary, serving from cache when a fresh entry
// exists for the same (user, tax year, ruleset version).
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	label := input.TaxYear
	if label == "" {
		label = valueobject.TaxYearFromDate(uc.now()).Label()
	}

	taxYear, err := valueobject.ParseTaxYear(label)
	if err != nil {
		return nil, err
	}

	ruleset, err := uc.registry.RulesetFor(label)
	if err != nil {
		return nil, err
	}

	cacheKey := adapter.SummaryCacheKey{
		UserID:         input.UserID,
		TaxYear:        label,
		RulesetVersion: ruleset.Version,
	}
	if cached, ok := uc.lookupCache(ctx, cacheKey); ok {
		return cached, nil
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	totalIncome, err := uc.incomeRepo.SumByUserAndDateRange(ctx, input.UserID, taxYear.Start(), taxYear.End())
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}
	totalExpenses, err := uc.expenseRepo.SumByUserAndDateRange(ctx, input.UserID, taxYear.Start(), taxYear.End())
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	actualTaxSaved, err := uc.incomeRepo.SumTaxSavedByUserAndDateRange(ctx, input.UserID, taxYear.Start(), taxYear.End())
	if err != nil {
		return nil, fmt.Errorf("failed to sum tax savings: %w", err)
	}

	netProfit := totalIncome.Sub(totalExpenses)
	taxableProfit := netProfit
	if taxableProfit.Sign() < 0 {
		taxableProfit = decimal.Zero
	}
	breakdown := TotalTax(taxableProfit, ruleset)

	output := &GetSummaryOutput{
		TaxYear:             label,
		TaxYearStart:        taxYear.Start(),
		TaxYearEnd:          taxYear.End(),
		TotalIncome:         totalIncome.Round(2),
		TotalExpenses:       totalExpenses.Round(2),
		NetProfit:           netProfit.Round(2),
		TaxableProfit:       taxableProfit.Round(2),
		IncomeTax:           breakdown.IncomeTax,
		NIClass2:            breakdown.NIClass2,
		NIClass4:            breakdown.NIClass4,
		TotalTax:            breakdown.Total,
		SetAside:            SetAside(totalIncome, user.SetAsidePercentage),
		ActualTaxSaved:      actualTaxSaved.Round(2),
		VATThreshold:        ruleset.VATThreshold,
		VATProximityPercent: VATThresholdProximity(totalIncome, ruleset.VATThreshold),
		RulesetVersion:      ruleset.Version,
		Provisional:         ruleset.Provisional,
	}

	if user.TradingStartDate != nil {
		deadline := valueobject.RegistrationDeadline(*user.TradingStartDate)
		output.RegistrationDeadline = &deadline
	}

	if ruleset.Provisional {
		slog.Debug("Serving summary computed against provisional ruleset",
			"userID", input.UserID,
			"taxYear", label,
			"rulesetVersion", ruleset.Version,
		)
	}

	uc.storeCache(ctx, cacheKey, output)
	return output, nil
}

// lookupCache returns a cached summary if one exists. Cache failures never
// fail the request.
func (uc *GetSummaryUseCase) lookupCache(ctx context.Context, key adapter.SummaryCacheKey) (*GetSummaryOutput, bool) {
	if uc.cache == nil {
		return nil, false
	}

	payload, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		slog.Debug("Summary cache lookup failed",
			"userID", key.UserID,
			"taxYear", key.TaxYear,
			"error", err,
		)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var output GetSummaryOutput
	if err := json.Unmarshal(payload, &output); err != nil {
		slog.Debug("Summary cache payload corrupt, recomputing",
			"userID", key.UserID,
			"taxYear", key.TaxYear,
			"error", err,
		)
		return nil, false
	}
	return &output, true
}

func (uc *GetSummaryUseCase) storeCache(ctx context.Context, key adapter.SummaryCacheKey, output *GetSummaryOutput) {
	if uc.cache == nil {
		return
	}

	payload, err := json.Marshal(output)
	if err != nil {
		slog.Debug("Failed to serialize summary for cache", "error", err)
		return
	}
	if err := uc.cache.Set(ctx, key, payload); err != nil {
		slog.Debug("Failed to store summary in cache",
			"userID", key.UserID,
			"taxYear", key.TaxYear,
			"error", err,
		)
	}
}
