// Package income contains income record use cases.
package income

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// ListIncomesInput represents the input for listing income records.
type ListIncomesInput struct {
	UserID uuid.UUID
	// TaxYear optionally narrows the listing to one "YYYY-YY" tax year.
	TaxYear string
}

// ListIncomesOutput represents the output of listing income records.
type ListIncomesOutput struct {
	Incomes []*entity.Income
}

// ListIncomesUseCase handles listing a user's income records.
type ListIncomesUseCase struct {
	incomeRepo adapter.IncomeRepository
}

// NewListIncomesUseCase creates a new ListIncomesUseCase instance.
func NewListIncomesUseCase(incomeRepo adapter.IncomeRepository) *ListIncomesUseCase {
	return &ListIncomesUseCase{incomeRepo: incomeRepo}
}

// Execute retrieves the user's income records, newest first.
func (uc *ListIncomesUseCase) Execute(ctx context.Context, input ListIncomesInput) (*ListIncomesOutput, error) {
	if input.TaxYear != "" {
		if _, err := valueobject.ParseTaxYear(input.TaxYear); err != nil {
			return nil, err
		}
		incomes, err := uc.incomeRepo.FindByUserAndTaxYear(ctx, input.UserID, input.TaxYear)
		if err != nil {
			return nil, fmt.Errorf("failed to list income records: %w", err)
		}
		return &ListIncomesOutput{Incomes: incomes}, nil
	}

	incomes, err := uc.incomeRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income records: %w", err)
	}
	return &ListIncomesOutput{Incomes: incomes}, nil
}
