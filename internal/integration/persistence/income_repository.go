// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/integration/persistence/model"
)

// incomeRepository implements the adapter.IncomeRepository interface.
type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income repository instance.
func NewIncomeRepository(db *gorm.DB) adapter.IncomeRepository {
	return &incomeRepository{
		db: db,
	}
}

// Create creates a new income record in the database.
func (r *incomeRepository) Create(ctx context.Context, income *entity.Income) error {
	incomeModel := model.IncomeFromEntity(income)
	result := r.db.WithContext(ctx).Create(incomeModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an income record by its ID, scoped to the user.
func (r *incomeRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Income, error) {
	var incomeModel model.IncomeModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&incomeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeIncomeNotFound,
				"income record not found",
				domainerror.ErrIncomeNotFound,
			)
		}
		return nil, result.Error
	}
	return incomeModel.ToEntity(), nil
}

// FindByUser retrieves all income records for a user, newest first.
func (r *incomeRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Income, error) {
	var incomeModels []model.IncomeModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_received DESC, created_at DESC").
		Find(&incomeModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return incomeModelsToEntities(incomeModels), nil
}

// FindByUserAndTaxYear retrieves a user's income records for a tax year.
func (r *incomeRepository) FindByUserAndTaxYear(ctx context.Context, userID uuid.UUID, taxYear string) ([]*entity.Income, error) {
	var incomeModels []model.IncomeModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND tax_year = ?", userID, taxYear).
		Order("date_received DESC, created_at DESC").
		Find(&incomeModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return incomeModelsToEntities(incomeModels), nil
}

// SumByUserAndDateRange returns the total income received in [from, to] inclusive.
func (r *incomeRepository) SumByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	result := r.db.WithContext(ctx).
		Model(&model.IncomeModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date_received >= ? AND date_received <= ?", userID, from, to).
		Scan(&total)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SumTaxSavedByUserAndDateRange returns the total recorded tax savings on
// income received in [from, to] inclusive.
func (r *incomeRepository) SumTaxSavedByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	result := r.db.WithContext(ctx).
		Model(&model.IncomeModel{}).
		Select("COALESCE(SUM(tax_saved), 0)").
		Where("user_id = ? AND date_received >= ? AND date_received <= ?", userID, from, to).
		Scan(&total)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Update updates an existing income record.
func (r *incomeRepository) Update(ctx context.Context, income *entity.Income) error {
	incomeModel := model.IncomeFromEntity(income)
	result := r.db.WithContext(ctx).Save(incomeModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes an income record, scoped to the user.
func (r *incomeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.IncomeModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewRecordError(
			domainerror.ErrCodeIncomeNotFound,
			"income record not found",
			domainerror.ErrIncomeNotFound,
		)
	}
	return nil
}

func incomeModelsToEntities(models []model.IncomeModel) []*entity.Income {
	incomes := make([]*entity.Income, len(models))
	for i, m := range models {
		incomes[i] = m.ToEntity()
	}
	return incomes
}
