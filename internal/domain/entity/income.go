// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income represents a cash-basis income record: a payment actually received
// on DateReceived. The tax year label and ruleset version are resolved from
// DateReceived when the record is written, so backdated entries always land
// in the tax year their date dictates.
type Income struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	DateReceived time.Time
	Amount       decimal.Decimal
	Description  string

	// TaxSaved is the amount the user actually put aside for tax out of
	// this payment. Nil when they have not recorded one.
	TaxSaved *decimal.Decimal

	// TaxYear is the "YYYY-YY" label DateReceived resolves to.
	TaxYear string
	// RulesetVersion records which ruleset revision was in force when the
	// record was stamped.
	RulesetVersion string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewIncome creates a new Income record stamped with the given tax year
// label and ruleset version.
func NewIncome(
	userID uuid.UUID,
	dateReceived time.Time,
	amount decimal.Decimal,
	description string,
	taxYear string,
	rulesetVersion string,
) *Income {
	now := time.Now().UTC()
	return &Income{
		ID:             uuid.New(),
		UserID:         userID,
		DateReceived:   dateReceived,
		Amount:         amount,
		Description:    description,
		TaxYear:        taxYear,
		RulesetVersion: rulesetVersion,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
