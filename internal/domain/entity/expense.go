// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a cash-basis expense record: a payment actually made
// on DatePaid. Category is free text (e.g. "Equipment", "Software",
// "Travel").
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	DatePaid    time.Time
	Amount      decimal.Decimal
	Category    string
	Description string

	// TaxYear is the "YYYY-YY" label DatePaid resolves to.
	TaxYear string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewExpense creates a new Expense record stamped with the given tax year label.
func NewExpense(
	userID uuid.UUID,
	datePaid time.Time,
	amount decimal.Decimal,
	category string,
	description string,
	taxYear string,
) *Expense {
	now := time.Now().UTC()
	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		DatePaid:    datePaid,
		Amount:      amount,
		Category:    category,
		Description: description,
		TaxYear:     taxYear,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
