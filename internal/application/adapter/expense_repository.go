// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense record persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense record in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense record by its ID, scoped to the user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Expense, error)

	// FindByUser retrieves all expense records for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error)

	// FindByUserAndTaxYear retrieves a user's expense records for a tax year.
	FindByUserAndTaxYear(ctx context.Context, userID uuid.UUID, taxYear string) ([]*entity.Expense, error)

	// SumByUserAndDateRange returns the total expenses paid in [from, to] inclusive.
	SumByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// Update updates an existing expense record.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense record, scoped to the user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
