// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxSnapshot is a write-once, point-in-time record of a tax year summary,
// kept for audit purposes. It captures the ruleset version (and the full
// serialized ruleset) used at computation time and is never recomputed,
// even if the registry is later extended or a placeholder year finalized.
type TaxSnapshot struct {
	ID     uuid.UUID
	UserID uuid.UUID

	TaxYear      string
	TaxYearStart time.Time
	TaxYearEnd   time.Time

	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal

	IncomeTax decimal.Decimal
	NIClass2  decimal.Decimal
	NIClass4  decimal.Decimal
	TotalTax  decimal.Decimal

	// RulesetVersion identifies the ruleset revision used; RulesetData is
	// the JSON-serialized ruleset for historical accuracy.
	RulesetVersion string
	RulesetData    string

	CreatedAt time.Time
}

// NewTaxSnapshot creates a new TaxSnapshot.
func NewTaxSnapshot(
	userID uuid.UUID,
	taxYear string,
	taxYearStart, taxYearEnd time.Time,
	totalIncome, totalExpenses, netProfit decimal.Decimal,
	incomeTax, niClass2, niClass4, totalTax decimal.Decimal,
	rulesetVersion, rulesetData string,
) *TaxSnapshot {
	return &TaxSnapshot{
		ID:             uuid.New(),
		UserID:         userID,
		TaxYear:        taxYear,
		TaxYearStart:   taxYearStart,
		TaxYearEnd:     taxYearEnd,
		TotalIncome:    totalIncome,
		TotalExpenses:  totalExpenses,
		NetProfit:      netProfit,
		IncomeTax:      incomeTax,
		NIClass2:       niClass2,
		NIClass4:       niClass4,
		TotalTax:       totalTax,
		RulesetVersion: rulesetVersion,
		RulesetData:    rulesetData,
		CreatedAt:      time.Now().UTC(),
	}
}
