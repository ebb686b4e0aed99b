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
)

// MarkReportedInput represents the input for marking a report as submitted.
type MarkReportedInput struct {
	UserID   uuid.UUID
	ReportID uuid.UUID
	Notes    string
}

// MarkReportedOutput represents the output of marking a report.
type MarkReportedOutput struct {
	Report *entity.UCReport
}

// MarkReportedUseCase records that the user submitted a period's figures to
// DWP. The transition is terminal.
type MarkReportedUseCase struct {
	reportRepo adapter.UCReportRepository
	now        func() time.Time
}

// NewMarkReportedUseCase creates a new MarkReportedUseCase instance.
func NewMarkReportedUseCase(reportRepo adapter.UCReportRepository) *MarkReportedUseCase {
	return &MarkReportedUseCase{
		reportRepo: reportRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute marks the report as reported.
func (uc *MarkReportedUseCase) Execute(ctx context.Context, input MarkReportedInput) (*MarkReportedOutput, error) {
	report, err := uc.reportRepo.FindByID(ctx, input.UserID, input.ReportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domainerror.NewUCError(
			domainerror.ErrCodeUCReportNotFound,
			"uc report not found",
			domainerror.ErrUCReportNotFound,
		)
	}

	if !report.MarkReported(uc.now(), input.Notes) {
		return nil, domainerror.NewUCError(
			domainerror.ErrCodeUCReportAlreadyReported,
			fmt.Sprintf("report for period starting %s is already marked as reported", report.PeriodStart.Format("2006-01-02")),
			domainerror.ErrUCReportAlreadyReported,
		)
	}

	if err := uc.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	return &MarkReportedOutput{Report: report}, nil
}
