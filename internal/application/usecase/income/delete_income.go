// Package income contains income record use cases.
package income

import (
	"context"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/application/adapter"
)

// DeleteIncomeInput represents the input for income record deletion.
type DeleteIncomeInput struct {
	UserID   uuid.UUID
	IncomeID uuid.UUID
}

// DeleteIncomeUseCase handles income record deletion.
type DeleteIncomeUseCase struct {
	incomeRepo adapter.IncomeRepository
	cache      adapter.SummaryCache
}

// NewDeleteIncomeUseCase creates a new DeleteIncomeUseCase instance.
func NewDeleteIncomeUseCase(incomeRepo adapter.IncomeRepository, cache adapter.SummaryCache) *DeleteIncomeUseCase {
	return &DeleteIncomeUseCase{incomeRepo: incomeRepo, cache: cache}
}

// Execute performs the income record deletion.
func (uc *DeleteIncomeUseCase) Execute(ctx context.Context, input DeleteIncomeInput) error {
	if err := uc.incomeRepo.Delete(ctx, input.UserID, input.IncomeID); err != nil {
		return err
	}
	invalidateSummaries(ctx, uc.cache, input.UserID)
	return nil
}
