// Package user contains user profile and settings use cases.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// GetProfileInput represents the input for fetching the user profile.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileOutput represents the output of fetching the user profile.
type GetProfileOutput struct {
	User *entity.User
	// RegistrationDeadline is derived from the trading start date; nil when
	// the user has not set one.
	RegistrationDeadline *time.Time
}

// GetProfileUseCase handles fetching the authenticated user's profile.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute retrieves the profile.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	output := &GetProfileOutput{User: user}
	if user.TradingStartDate != nil {
		deadline := valueobject.RegistrationDeadline(*user.TradingStartDate)
		output.RegistrationDeadline = &deadline
	}
	return output, nil
}
