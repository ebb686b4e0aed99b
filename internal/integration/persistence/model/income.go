// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/entity"
)

// IncomeModel represents the incomes table in the database.
type IncomeModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	DateReceived   time.Time        `gorm:"type:date;not null;index"`
	Amount         decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Description    string           `gorm:"type:varchar(255);not null"`
	TaxSaved       *decimal.Decimal `gorm:"type:decimal(15,2)"`
	TaxYear        string           `gorm:"type:varchar(7);not null;index"`
	RulesetVersion string           `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time        `gorm:"not null"`
	UpdatedAt      time.Time        `gorm:"not null"`
}

// TableName returns the table name for the IncomeModel.
func (IncomeModel) TableName() string {
	return "incomes"
}

// ToEntity converts an IncomeModel to a domain Income entity.
func (m *IncomeModel) ToEntity() *entity.Income {
	return &entity.Income{
		ID:             m.ID,
		UserID:         m.UserID,
		DateReceived:   m.DateReceived,
		Amount:         m.Amount,
		Description:    m.Description,
		TaxSaved:       m.TaxSaved,
		TaxYear:        m.TaxYear,
		RulesetVersion: m.RulesetVersion,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// IncomeFromEntity creates an IncomeModel from a domain Income entity.
func IncomeFromEntity(income *entity.Income) *IncomeModel {
	return &IncomeModel{
		ID:             income.ID,
		UserID:         income.UserID,
		DateReceived:   income.DateReceived,
		Amount:         income.Amount,
		Description:    income.Description,
		TaxSaved:       income.TaxSaved,
		TaxYear:        income.TaxYear,
		RulesetVersion: income.RulesetVersion,
		CreatedAt:      income.CreatedAt,
		UpdatedAt:      income.UpdatedAt,
	}
}
