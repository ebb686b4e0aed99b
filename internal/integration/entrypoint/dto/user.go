// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/taxfolio/backend/internal/application/usecase/user"
)

// UpdateSettingsRequest represents the request body for settings updates.
// Omitted fields are left unchanged.
type UpdateSettingsRequest struct {
	Name               *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TradingStartDate   *string  `json:"trading_start_date,omitempty"`
	SetAsidePercentage *float64 `json:"set_aside_percentage,omitempty"`
	UCEnabled          *bool    `json:"uc_enabled,omitempty"`
	AssessmentDay      *int     `json:"assessment_day,omitempty"`
}

// ProfileResponse represents the authenticated user's profile.
type ProfileResponse struct {
	User                 UserResponse `json:"user"`
	RegistrationDeadline *string      `json:"registration_deadline,omitempty"`
}

// DeleteAccountRequest represents the request body for account deletion.
type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

// ToProfileResponse converts a GetProfileOutput to a ProfileResponse DTO.
func ToProfileResponse(output *user.GetProfileOutput) ProfileResponse {
	response := ProfileResponse{User: ToUserResponse(output.User)}
	if output.RegistrationDeadline != nil {
		deadline := output.RegistrationDeadline.Format("2006-01-02")
		response.RegistrationDeadline = &deadline
	}
	return response
}
