// Package user contains user profile and settings use cases.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// UpdateSettingsInput represents the input for settings updates. Nil fields
// are left unchanged.
type UpdateSettingsInput struct {
	UserID             uuid.UUID
	Name               *string
	TradingStartDate   *time.Time
	SetAsidePercentage *decimal.Decimal
	UCEnabled          *bool
	AssessmentDay      *int
}

// UpdateSettingsOutput represents the output of settings updates.
type UpdateSettingsOutput struct {
	User *entity.User
}

// UpdateSettingsUseCase handles partial updates of user settings.
type UpdateSettingsUseCase struct {
	userRepo adapter.UserRepository
	now      func() time.Time
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(userRepo adapter.UserRepository) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute validates and applies the settings changes.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.TradingStartDate != nil {
		user.TradingStartDate = input.TradingStartDate
	}
	if input.SetAsidePercentage != nil {
		user.SetAsidePercentage = *input.SetAsidePercentage
	}
	if input.UCEnabled != nil {
		user.UCEnabled = *input.UCEnabled
	}
	if input.AssessmentDay != nil {
		user.AssessmentDay = *input.AssessmentDay
	}
	user.UpdatedAt = uc.now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateSettingsOutput{User: user}, nil
}

func (uc *UpdateSettingsUseCase) validate(input UpdateSettingsInput) error {
	if input.SetAsidePercentage != nil {
		pct := *input.SetAsidePercentage
		if pct.Sign() < 0 || pct.GreaterThan(decimal.NewFromInt(100)) {
			return domainerror.NewUserError(
				domainerror.ErrCodeInvalidSetAsidePercentage,
				fmt.Sprintf("set-aside percentage must be between 0 and 100, got %s", pct),
				domainerror.ErrInvalidSetAsidePercentage,
			)
		}
	}
	if input.TradingStartDate != nil && input.TradingStartDate.After(uc.now()) {
		return domainerror.NewUserError(
			domainerror.ErrCodeTradingStartInFuture,
			"trading start date cannot be in the future",
			domainerror.ErrTradingStartInFuture,
		)
	}
	if input.AssessmentDay != nil {
		if err := valueobject.ValidateAssessmentDay(*input.AssessmentDay); err != nil {
			return err
		}
	}
	return nil
}
