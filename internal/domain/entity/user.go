// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultSetAsidePercentage is the recommended tax set-aside percentage
// applied to new accounts until the user configures their own.
var DefaultSetAsidePercentage = decimal.NewFromInt(20)

// User represents a self-employed user of the Taxfolio system.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string

	// TradingStartDate is the date the user began trading; drives the HMRC
	// Self Assessment registration deadline. Nil until the user sets it.
	TradingStartDate *time.Time

	// SetAsidePercentage of gross income recommended to reserve for tax.
	SetAsidePercentage decimal.Decimal

	// Universal Credit reporting configuration. AssessmentDay is the
	// day-of-month the rolling assessment period starts (1-31), only
	// meaningful while UCEnabled is true.
	UCEnabled     bool
	AssessmentDay int

	TermsAcceptedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		SetAsidePercentage: DefaultSetAsidePercentage,
		UCEnabled:          false,
		TermsAcceptedAt:    termsAcceptedAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
