// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/entity"
)

// IncomeRepository defines the interface for income record persistence operations.
type IncomeRepository interface {
	// Create creates a new income record in the database.
	Create(ctx context.Context, income *entity.Income) error

	// FindByID retrieves an income record by its ID, scoped to the user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Income, error)

	// FindByUser retrieves all income records for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Income, error)

	// FindByUserAndTaxYear retrieves a user's income records for a tax year.
	FindByUserAndTaxYear(ctx context.Context, userID uuid.UUID, taxYear string) ([]*entity.Income, error)

	// SumByUserAndDateRange returns the total income received in [from, to] inclusive.
	SumByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// SumTaxSavedByUserAndDateRange returns the total recorded tax savings
	// on income received in [from, to] inclusive.
	SumTaxSavedByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// Update updates an existing income record.
	Update(ctx context.Context, income *entity.Income) error

	// Delete removes an income record, scoped to the user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
