// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/entity"
)

// TaxSnapshotModel represents the tax_snapshots table in the database.
// Rows are write-once; there is no update path.
type TaxSnapshotModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_snapshots_user_tax_year,unique"`

	TaxYear      string    `gorm:"type:varchar(7);not null;index:idx_snapshots_user_tax_year,unique"`
	TaxYearStart time.Time `gorm:"type:date;not null"`
	TaxYearEnd   time.Time `gorm:"type:date;not null"`

	TotalIncome   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalExpenses decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NetProfit     decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	IncomeTax decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NIClass2  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NIClass4  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalTax  decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	RulesetVersion string `gorm:"type:varchar(20);not null"`
	RulesetData    string `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the TaxSnapshotModel.
func (TaxSnapshotModel) TableName() string {
	return "tax_snapshots"
}

// ToEntity converts a TaxSnapshotModel to a domain TaxSnapshot entity.
func (m *TaxSnapshotModel) ToEntity() *entity.TaxSnapshot {
	return &entity.TaxSnapshot{
		ID:             m.ID,
		UserID:         m.UserID,
		TaxYear:        m.TaxYear,
		TaxYearStart:   m.TaxYearStart,
		TaxYearEnd:     m.TaxYearEnd,
		TotalIncome:    m.TotalIncome,
		TotalExpenses:  m.TotalExpenses,
		NetProfit:      m.NetProfit,
		IncomeTax:      m.IncomeTax,
		NIClass2:       m.NIClass2,
		NIClass4:       m.NIClass4,
		TotalTax:       m.TotalTax,
		RulesetVersion: m.RulesetVersion,
		RulesetData:    m.RulesetData,
		CreatedAt:      m.CreatedAt,
	}
}

// TaxSnapshotFromEntity creates a TaxSnapshotModel from a domain TaxSnapshot entity.
func TaxSnapshotFromEntity(snapshot *entity.TaxSnapshot) *TaxSnapshotModel {
	return &TaxSnapshotModel{
		ID:             snapshot.ID,
		UserID:         snapshot.UserID,
		TaxYear:        snapshot.TaxYear,
		TaxYearStart:   snapshot.TaxYearStart,
		TaxYearEnd:     snapshot.TaxYearEnd,
		TotalIncome:    snapshot.TotalIncome,
		TotalExpenses:  snapshot.TotalExpenses,
		NetProfit:      snapshot.NetProfit,
		IncomeTax:      snapshot.IncomeTax,
		NIClass2:       snapshot.NIClass2,
		NIClass4:       snapshot.NIClass4,
		TotalTax:       snapshot.TotalTax,
		RulesetVersion: snapshot.RulesetVersion,
		RulesetData:    snapshot.RulesetData,
		CreatedAt:      snapshot.CreatedAt,
	}
}
