// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueuePasswordResetEmail queues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	subject := "Reset your password - Taxfolio"

	templateData := map[string]interface{}{
		"user_name":  input.UserName,
		"reset_url":  input.ResetURL,
		"expires_in": input.ExpiresIn,
	}

	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue password reset email",
			err,
		)
	}

	return nil
}

// QueueDeadlineReminderEmail queues an HMRC Self Assessment registration
// deadline reminder email.
func (s *Service) QueueDeadlineReminderEmail(ctx context.Context, input adapter.QueueDeadlineReminderInput) error {
	subject := fmt.Sprintf("Your Self Assessment registration deadline is in %d days - Taxfolio", input.DaysLeft)
	if input.DaysLeft == 1 {
		subject = "Your Self Assessment registration deadline is tomorrow - Taxfolio"
	}

	templateData := map[string]interface{}{
		"user_name":   input.UserName,
		"tax_year":    input.TaxYear,
		"deadline":    input.Deadline,
		"days_left":   input.DaysLeft,
		"account_url": s.appBaseURL + "/settings",
	}

	job := entity.NewEmailJob(
		entity.TemplateDeadlineReminder,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue deadline reminder email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
