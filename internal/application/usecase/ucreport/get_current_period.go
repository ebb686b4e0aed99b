// Package ucreport contains Universal Credit reporting use cases.
package ucreport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// GetCurrentPeriodInput represents the input for the current-period summary.
type GetCurrentPeriodInput struct {
	UserID uuid.UUID
}

// GetCurrentPeriodOutput is the live cash-basis view of the assessment
// period containing today. A zero-activity period is a valid result: UC
// expects a nil report too.
type GetCurrentPeriodOutput struct {
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`

	// ReportID and Reported echo the stored report for this period, if the
	// user has generated one.
	ReportID *uuid.UUID `json:"report_id,omitempty"`
	Reported bool       `json:"reported"`
}

// GetCurrentPeriodUseCase computes the figures for the assessment period
// containing today.
type GetCurrentPeriodUseCase struct {
	incomeRepo  adapter.IncomeRepository
	expenseRepo adapter.ExpenseRepository
	userRepo    adapter.UserRepository
	reportRepo  adapter.UCReportRepository
	now         func() time.Time
}

// NewGetCurrentPeriodUseCase creates a new GetCurrentPeriodUseCase instance.
func NewGetCurrentPeriodUseCase(
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	reportRepo adapter.UCReportRepository,
) *GetCurrentPeriodUseCase {
	return &GetCurrentPeriodUseCase{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		reportRepo:  reportRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Execute resolves the current assessment period and sums its cash-basis
// activity.
func (uc *GetCurrentPeriodUseCase) Execute(ctx context.Context, input GetCurrentPeriodInput) (*GetCurrentPeriodOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	anchorDay, err := assessmentDay(user)
	if err != nil {
		return nil, err
	}

	period, err := valueobject.PeriodContaining(uc.now(), anchorDay)
	if err != nil {
		return nil, err
	}

	totalIncome, err := uc.incomeRepo.SumByUserAndDateRange(ctx, input.UserID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}
	totalExpenses, err := uc.expenseRepo.SumByUserAndDateRange(ctx, input.UserID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	output := &GetCurrentPeriodOutput{
		PeriodStart:   period.Start,
		PeriodEnd:     period.End,
		TotalIncome:   totalIncome.Round(2),
		TotalExpenses: totalExpenses.Round(2),
		NetProfit:     totalIncome.Sub(totalExpenses).Round(2),
	}

	report, err := uc.reportRepo.FindByUserAndPeriodStart(ctx, input.UserID, period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to look up report: %w", err)
	}
	if report != nil {
		output.ReportID = &report.ID
		output.Reported = report.IsReported()
	}

	return output, nil
}
