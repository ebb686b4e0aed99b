// Package expense contains expense record use cases.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for record descriptions.
const MaxDescriptionLength = 255

// CreateExpenseInput represents the input for expense record creation.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	DatePaid    time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
}

// CreateExpenseOutput represents the output of expense record creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles expense record creation. The record is
// stamped with the tax year its date resolves to.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	cache       adapter.SummaryCache
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(expenseRepo adapter.ExpenseRepository, cache adapter.SummaryCache) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{expenseRepo: expenseRepo, cache: cache}
}

// Execute performs the expense record creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if err := validateRecord(input.Amount, input.Category, input.Description); err != nil {
		return nil, err
	}

	taxYear := valueobject.TaxYearFromDate(input.DatePaid)
	expense := entity.NewExpense(
		input.UserID,
		input.DatePaid,
		input.Amount,
		input.Category,
		input.Description,
		taxYear.Label(),
	)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense record: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)
	return &CreateExpenseOutput{Expense: expense}, nil
}

// validateRecord checks the shared amount/category/description rules.
func validateRecord(amount decimal.Decimal, category, description string) error {
	if amount.Sign() <= 0 {
		return domainerror.NewRecordError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}
	if category == "" {
		return domainerror.NewRecordError(
			domainerror.ErrCodeCategoryRequired,
			"category is required",
			domainerror.ErrCategoryRequired,
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
