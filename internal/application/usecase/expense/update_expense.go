// Package expense contains expense record use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// UpdateExpenseInput represents the input for expense record updates.
type UpdateExpenseInput struct {
	UserID      uuid.UUID
	ExpenseID   uuid.UUID
	DatePaid    time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
}

// UpdateExpenseOutput represents the output of expense record updates.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase handles expense record updates. Moving the date
// across a tax year boundary re-stamps the record's tax year.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	cache       adapter.SummaryCache
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(expenseRepo adapter.ExpenseRepository, cache adapter.SummaryCache) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{expenseRepo: expenseRepo, cache: cache}
}

// Execute performs the expense record update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	if err := validateRecord(input.Amount, input.Category, input.Description); err != nil {
		return nil, err
	}

	expense, err := uc.expenseRepo.FindByID(ctx, input.UserID, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	expense.DatePaid = input.DatePaid
	expense.Amount = input.Amount
	expense.Category = input.Category
	expense.Description = input.Description
	expense.TaxYear = valueobject.TaxYearFromDate(input.DatePaid).Label()
	expense.UpdatedAt = time.Now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense record: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)
	return &UpdateExpenseOutput{Expense: expense}, nil
}
