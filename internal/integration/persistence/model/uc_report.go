// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/entity"
)

// UCReportModel represents the uc_reports table in the database.
type UCReportModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_uc_reports_user_period,unique"`

	PeriodStart time.Time `gorm:"type:date;not null;index:idx_uc_reports_user_period,unique"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`

	TotalIncome   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalExpenses decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NetProfit     decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	ReportedAt *time.Time `gorm:"type:timestamptz"`
	Notes      string     `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the UCReportModel.
func (UCReportModel) TableName() string {
	return "uc_reports"
}

// ToEntity converts a UCReportModel to a domain UCReport entity.
func (m *UCReportModel) ToEntity() *entity.UCReport {
	return &entity.UCReport{
		ID:            m.ID,
		UserID:        m.UserID,
		PeriodStart:   m.PeriodStart,
		PeriodEnd:     m.PeriodEnd,
		TotalIncome:   m.TotalIncome,
		TotalExpenses: m.TotalExpenses,
		NetProfit:     m.NetProfit,
		ReportedAt:    m.ReportedAt,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// UCReportFromEntity creates a UCReportModel from a domain UCReport entity.
func UCReportFromEntity(report *entity.UCReport) *UCReportModel {
	return &UCReportModel{
		ID:            report.ID,
		UserID:        report.UserID,
		PeriodStart:   report.PeriodStart,
		PeriodEnd:     report.PeriodEnd,
		TotalIncome:   report.TotalIncome,
		TotalExpenses: report.TotalExpenses,
		NetProfit:     report.NetProfit,
		ReportedAt:    report.ReportedAt,
		Notes:         report.Notes,
		CreatedAt:     report.CreatedAt,
		UpdatedAt:     report.UpdatedAt,
	}
}
