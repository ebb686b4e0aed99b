// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UCReport is a snapshot of one Universal Credit monthly assessment
// period's cash-basis figures. A report starts open and becomes terminal
// once the user marks it as reported to DWP; the engine only supplies the
// figures, the reported flag lives here.
type UCReport struct {
	ID     uuid.UUID
	UserID uuid.UUID

	PeriodStart time.Time
	PeriodEnd   time.Time

	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal

	// ReportedAt is set when the user records the figures as submitted
	// externally; nil while the period is still open.
	ReportedAt *time.Time
	Notes      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUCReport creates a new open UCReport for the given period.
func NewUCReport(
	userID uuid.UUID,
	periodStart, periodEnd time.Time,
	totalIncome, totalExpenses, netProfit decimal.Decimal,
) *UCReport {
	now := time.Now().UTC()
	return &UCReport{
		ID:            uuid.New(),
		UserID:        userID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetProfit:     netProfit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsReported reports whether the period has been marked as reported.
func (r *UCReport) IsReported() bool {
	return r.ReportedAt != nil
}

// MarkReported records the report as submitted externally. Terminal: a
// reported period cannot be marked again.
func (r *UCReport) MarkReported(reportedAt time.Time, notes string) bool {
	if r.IsReported() {
		return false
	}
	r.ReportedAt = &reportedAt
	r.Notes = notes
	r.UpdatedAt = time.Now().UTC()
	return true
}
