// Package income contains income record use cases.
package income

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/application/usecase/tax"
	"github.com/taxfolio/backend/internal/domain/entity"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// UpdateIncomeInput represents the input for income record updates.
type UpdateIncomeInput struct {
	UserID       uuid.UUID
	IncomeID     uuid.UUID
	DateReceived time.Time
	Amount       decimal.Decimal
	Description  string
	TaxSaved     *decimal.Decimal
}

// UpdateIncomeOutput represents the output of income record updates.
type UpdateIncomeOutput struct {
	Income *entity.Income
}

// UpdateIncomeUseCase handles income record updates. Moving the date across
// a tax year boundary re-stamps the record's tax year and ruleset version.
type UpdateIncomeUseCase struct {
	incomeRepo adapter.IncomeRepository
	registry   *tax.Registry
	cache      adapter.SummaryCache
}

// NewUpdateIncomeUseCase creates a new UpdateIncomeUseCase instance.
func NewUpdateIncomeUseCase(
	incomeRepo adapter.IncomeRepository,
	registry *tax.Registry,
	cache adapter.SummaryCache,
) *UpdateIncomeUseCase {
	return &UpdateIncomeUseCase{
		incomeRepo: incomeRepo,
		registry:   registry,
		cache:      cache,
	}
}

// Execute performs the income record update.
func (uc *UpdateIncomeUseCase) Execute(ctx context.Context, input UpdateIncomeInput) (*UpdateIncomeOutput, error) {
	if err := validateRecord(input.Amount, input.Description); err != nil {
		return nil, err
	}

	income, err := uc.incomeRepo.FindByID(ctx, input.UserID, input.IncomeID)
	if err != nil {
		return nil, err
	}

	taxYear := valueobject.TaxYearFromDate(input.DateReceived)
	ruleset, err := uc.registry.RulesetFor(taxYear.Label())
	if err != nil {
		return nil, err
	}

	income.DateReceived = input.DateReceived
	income.Amount = input.Amount
	income.Description = input.Description
	income.TaxSaved = normalizeTaxSaved(input.TaxSaved)
	income.TaxYear = taxYear.Label()
	income.RulesetVersion = ruleset.Version
	income.UpdatedAt = time.Now().UTC()

	if err := uc.incomeRepo.Update(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to update income record: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)
	return &UpdateIncomeOutput{Income: income}, nil
}
