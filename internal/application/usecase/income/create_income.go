// Package income contains income record use cases.
package income

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/application/usecase/tax"
	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for record descriptions.
const MaxDescriptionLength = 255

// CreateIncomeInput represents the input for income record creation.
type CreateIncomeInput struct {
	UserID       uuid.UUID
	DateReceived time.Time
	Amount       decimal.Decimal
	Description  string
	// TaxSaved is the amount actually put aside for tax out of this
	// payment; nil or non-positive means none recorded.
	TaxSaved *decimal.Decimal
}

// CreateIncomeOutput represents the output of income record creation.
type CreateIncomeOutput struct {
	Income *entity.Income
}

// CreateIncomeUseCase handles income record creation. The record is stamped
// with the tax year its date resolves to, so backdated entries land in the
// right year.
type CreateIncomeUseCase struct {
	incomeRepo adapter.IncomeRepository
	registry   *tax.Registry
	cache      adapter.SummaryCache
}

// NewCreateIncomeUseCase creates a new CreateIncomeUseCase instance.
func NewCreateIncomeUseCase(
	incomeRepo adapter.IncomeRepository,
	registry *tax.Registry,
	cache adapter.SummaryCache,
) *CreateIncomeUseCase {
	return &CreateIncomeUseCase{
		incomeRepo: incomeRepo,
		registry:   registry,
		cache:      cache,
	}
}

// Execute performs the income record creation.
func (uc *CreateIncomeUseCase) Execute(ctx context.Context, input CreateIncomeInput) (*CreateIncomeOutput, error) {
	if err := validateRecord(input.Amount, input.Description); err != nil {
		return nil, err
	}

	// A date outside the registry's coverage is rejected loudly rather than
	// stored with rates from the wrong year.
	taxYear := valueobject.TaxYearFromDate(input.DateReceived)
	ruleset, err := uc.registry.RulesetFor(taxYear.Label())
	if err != nil {
		return nil, err
	}

	income := entity.NewIncome(
		input.UserID,
		input.DateReceived,
		input.Amount,
		input.Description,
		taxYear.Label(),
		ruleset.Version,
	)
	income.TaxSaved = normalizeTaxSaved(input.TaxSaved)

	if err := uc.incomeRepo.Create(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to create income record: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)
	return &CreateIncomeOutput{Income: income}, nil
}

// validateRecord checks the shared amount/description rules.
func validateRecord(amount decimal.Decimal, description string) error {
	if amount.Sign() <= 0 {
		return domainerror.NewRecordError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}
	if description == "" {
		return domainerror.NewRecordError(
			domainerror.ErrCodeDescriptionRequired,
			"description is required",
			domainerror.ErrDescriptionRequired,
		)
	}
	if len(description) > MaxDescriptionLength {
		return domainerror.NewRecordError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}

// normalizeTaxSaved treats a missing or non-positive amount as not recorded.
func normalizeTaxSaved(taxSaved *decimal.Decimal) *decimal.Decimal {
	if taxSaved == nil || taxSaved.Sign() <= 0 {
		return nil
	}
	return taxSaved
}

// invalidateSummaries drops the user's cached tax summaries after a record
// write. Cache failures never fail the write.
func invalidateSummaries(ctx context.Context, cache adapter.SummaryCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.Debug("Failed to invalidate summary cache", "userID", userID, "error", err)
	}
}
