// Package ucreport contains Universal Credit reporting use cases.
package ucreport

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
)

// ListReportsInput represents the input for listing UC reports.
type ListReportsInput struct {
	UserID uuid.UUID
}

// ListReportsOutput represents the output of listing UC reports.
type ListReportsOutput struct {
	Reports []*entity.UCReport
}

// ListReportsUseCase handles listing a user's UC reports.
type ListReportsUseCase struct {
	reportRepo adapter.UCReportRepository
}

// NewListReportsUseCase creates a new ListReportsUseCase instance.
func NewListReportsUseCase(reportRepo adapter.UCReportRepository) *ListReportsUseCase {
	return &ListReportsUseCase{reportRepo: reportRepo}
}

// Execute retrieves the user's reports, newest period first.
func (uc *ListReportsUseCase) Execute(ctx context.Context, input ListReportsInput) (*ListReportsOutput, error) {
	reports, err := uc.reportRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return &ListReportsOutput{Reports: reports}, nil
}
