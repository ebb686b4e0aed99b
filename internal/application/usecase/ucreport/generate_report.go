// Package ucreport contains Universal Credit reporting use cases.
package ucreport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// GenerateReportInput represents the input for generating a UC report.
type GenerateReportInput struct {
	UserID uuid.UUID
	// Reference is an optional date inside the period to report on; zero
	// means today. Allows generating the report for a just-closed period.
	Reference time.Time
}

// GenerateReportOutput represents the output of generating a UC report.
type GenerateReportOutput struct {
	Report *entity.UCReport
}

// GenerateReportUseCase stores a report of one assessment period's figures.
// Regenerating an open report refreshes its figures; a reported period is
// immutable.
type GenerateReportUseCase struct {
	incomeRepo  adapter.IncomeRepository
	expenseRepo adapter.ExpenseRepository
	userRepo    adapter.UserRepository
	reportRepo  adapter.UCReportRepository
	now         func() time.Time
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance.
func NewGenerateReportUseCase(
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	reportRepo adapter.UCReportRepository,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		reportRepo:  reportRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Execute computes the period's figures and creates or refreshes its report.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, input GenerateReportInput) (*GenerateReportOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	anchorDay, err := assessmentDay(user)
	if err != nil {
		return nil, err
	}

	reference := input.Reference
	if reference.IsZero() {
		reference = uc.now()
	}
	period, err := valueobject.PeriodContaining(reference, anchorDay)
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
	netProfit := totalIncome.Sub(totalExpenses)

	existing, err := uc.reportRepo.FindByUserAndPeriodStart(ctx, input.UserID, period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to look up report: %w", err)
	}
	if existing != nil {
		if existing.IsReported() {
			return nil, domainerror.NewUCError(
				domainerror.ErrCodeUCReportAlreadyExists,
				fmt.Sprintf("period starting %s has already been reported", period.Start.Format("2006-01-02")),
				domainerror.ErrUCReportAlreadyExists,
			)
		}

		existing.TotalIncome = totalIncome.Round(2)
		existing.TotalExpenses = totalExpenses.Round(2)
		existing.NetProfit = netProfit.Round(2)
		existing.UpdatedAt = uc.now()
		if err := uc.reportRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to refresh report: %w", err)
		}
		return &GenerateReportOutput{Report: existing}, nil
	}

	report := entity.NewUCReport(
		input.UserID,
		period.Start, period.End,
		totalIncome.Round(2), totalExpenses.Round(2), netProfit.Round(2),
	)
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return &GenerateReportOutput{Report: report}, nil
}
