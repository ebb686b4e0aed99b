// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	"github.com/taxfolio/backend/internal/integration/persistence/model"
)

// ucReportRepository implements the adapter.UCReportRepository interface.
type ucReportRepository struct {
	db *gorm.DB
}

// NewUCReportRepository creates a new UC report repository instance.
func NewUCReportRepository(db *gorm.DB) adapter.UCReportRepository {
	return &ucReportRepository{
		db: db,
	}
}

// Create stores a new UC report.
func (r *ucReportRepository) Create(ctx context.Context, report *entity.UCReport) error {
	reportModel := model.UCReportFromEntity(report)
	result := r.db.WithContext(ctx).Create(reportModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a report by its ID, scoped to the user. A missing
// report is returned as nil; the use case decides how loud to be.
func (r *ucReportRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.UCReport, error) {
	var reportModel model.UCReportModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&reportModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return reportModel.ToEntity(), nil
}

// FindByUserAndPeriodStart retrieves the user's report whose assessment
// period starts on the given date, or nil if none exists.
func (r *ucReportRepository) FindByUserAndPeriodStart(ctx context.Context, userID uuid.UUID, periodStart time.Time) (*entity.UCReport, error) {
	var reportModel model.UCReportModel
	result := r.db.WithContext(ctx).Where("user_id = ? AND period_start = ?", userID, periodStart).First(&reportModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return reportModel.ToEntity(), nil
}

// FindByUser retrieves all reports for a user, newest period first.
func (r *ucReportRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UCReport, error) {
	var reportModels []model.UCReportModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("period_start DESC").
		Find(&reportModels)
	if result.Error != nil {
		return nil, result.Error
	}

	reports := make([]*entity.UCReport, len(reportModels))
	for i, m := range reportModels {
		reports[i] = m.ToEntity()
	}
	return reports, nil
}

// Update saves changes to a report.
func (r *ucReportRepository) Update(ctx context.Context, report *entity.UCReport) error {
	reportModel := model.UCReportFromEntity(report)
	result := r.db.WithContext(ctx).Save(reportModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
