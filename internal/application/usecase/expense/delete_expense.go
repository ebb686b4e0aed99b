// Package expense contains expense record use cases.
package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/application/adapter"
)

// DeleteExpenseInput represents the input for expense record deletion.
type DeleteExpenseInput struct {
	UserID    uuid.UUID
	ExpenseID uuid.UUID
}

// DeleteExpenseUseCase handles expense record deletion.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	cache       adapter.SummaryCache
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(expenseRepo adapter.ExpenseRepository, cache adapter.SummaryCache) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{expenseRepo: expenseRepo, cache: cache}
}

// Execute performs the expense record deletion.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	if err := uc.expenseRepo.Delete(ctx, input.UserID, input.ExpenseID); err != nil {
		return err
	}
	invalidateSummaries(ctx, uc.cache, input.UserID)
	return nil
}
