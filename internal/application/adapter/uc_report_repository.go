// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/domain/entity"
)

// UCReportRepository defines the interface for Universal Credit report
// persistence operations.
type UCReportRepository interface {
	// Create stores a new UC report.
	Create(ctx context.Context, report *entity.UCReport) error

	// FindByID retrieves a report by its ID, scoped to the user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.UCReport, error)

	// FindByUserAndPeriodStart retrieves the user's report whose assessment
	// period starts on the given date, or nil if none exists.
	FindByUserAndPeriodStart(ctx context.Context, userID uuid.UUID, periodStart time.Time) (*entity.UCReport, error)

	// FindByUser retrieves all reports for a user, newest period first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UCReport, error)

	// Update saves changes to a report (figures refresh, reported flag).
	Update(ctx context.Context, report *entity.UCReport) error
}
