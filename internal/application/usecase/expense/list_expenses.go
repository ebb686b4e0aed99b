// Package expense contains expense record use cases.
package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// ListExpensesInput represents the input for listing expense records.
type ListExpensesInput struct {
	UserID uuid.UUID
	// TaxYear optionally narrows the listing to one "YYYY-YY" tax year.
	TaxYear string
}

// ListExpensesOutput represents the output of listing expense records.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
}

// ListExpensesUseCase handles listing a user's expense records.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{expenseRepo: expenseRepo}
}

// Execute retrieves the user's expense records, newest first.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if input.TaxYear != "" {
		if _, err := valueobject.ParseTaxYear(input.TaxYear); err != nil {
			return nil, err
		}
		expenses, err := uc.expenseRepo.FindByUserAndTaxYear(ctx, input.UserID, input.TaxYear)
		if err != nil {
			return nil, fmt.Errorf("failed to list expense records: %w", err)
		}
		return &ListExpensesOutput{Expenses: expenses}, nil
	}

	expenses, err := uc.expenseRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense records: %w", err)
	}
	return &ListExpensesOutput{Expenses: expenses}, nil
}
