// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/integration/persistence/model"
)

// snapshotRepository implements the adapter.SnapshotRepository interface.
type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new tax snapshot repository instance.
func NewSnapshotRepository(db *gorm.DB) adapter.SnapshotRepository {
	return &snapshotRepository{
		db: db,
	}
}

// Create stores a new tax snapshot.
func (r *snapshotRepository) Create(ctx context.Context, snapshot *entity.TaxSnapshot) error {
	snapshotModel := model.TaxSnapshotFromEntity(snapshot)
	result := r.db.WithContext(ctx).Create(snapshotModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a snapshot by its ID, scoped to the user.
func (r *snapshotRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.TaxSnapshot, error) {
	var snapshotModel model.TaxSnapshotModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&snapshotModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewTaxError(
				domainerror.ErrCodeSnapshotNotFound,
				"tax snapshot not found",
				domainerror.ErrSnapshotNotFound,
			)
		}
		return nil, result.Error
	}
	return snapshotModel.ToEntity(), nil
}

// FindByUser retrieves all snapshots for a user, newest first.
func (r *snapshotRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TaxSnapshot, error) {
	var snapshotModels []model.TaxSnapshotModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("tax_year DESC, created_at DESC").
		Find(&snapshotModels)
	if result.Error != nil {
		return nil, result.Error
	}

	snapshots := make([]*entity.TaxSnapshot, len(snapshotModels))
	for i, m := range snapshotModels {
		snapshots[i] = m.ToEntity()
	}
	return snapshots, nil
}

// ExistsByUserAndTaxYear checks whether the user already holds a snapshot
// for the tax year.
func (r *snapshotRepository) ExistsByUserAndTaxYear(ctx context.Context, userID uuid.UUID, taxYear string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TaxSnapshotModel{}).
		Where("user_id = ? AND tax_year = ?", userID, taxYear).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
