// Package reminder implements scheduled notification use cases.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// reminderDays are the days-until-deadline marks at which a registration
// reminder is sent. The scheduler runs once per day, so each mark fires at
// most once per user.
var reminderDays = []int{30, 7, 1}

// SendDeadlineRemindersOutput represents the result of a reminder sweep.
type SendDeadlineRemindersOutput struct {
	UsersChecked    int
	RemindersQueued int
}

// SendDeadlineRemindersUseCase queues HMRC Self Assessment registration
// deadline reminders for users whose deadline is approaching.
type SendDeadlineRemindersUseCase struct {
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
	now          func() time.Time
}

// NewSendDeadlineRemindersUseCase creates a new SendDeadlineRemindersUseCase instance.
func NewSendDeadlineRemindersUseCase(
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
) *SendDeadlineRemindersUseCase {
	return &SendDeadlineRemindersUseCase{
		userRepo:     userRepo,
		emailService: emailService,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Execute sweeps all users with a trading start date and queues a reminder
// for each one whose registration deadline is exactly 30, 7 or 1 day away.
// Queue failures are logged and do not stop the sweep.
func (uc *SendDeadlineRemindersUseCase) Execute(ctx context.Context) (*SendDeadlineRemindersOutput, error) {
	users, err := uc.userRepo.FindWithTradingStartDate(ctx)
	if err != nil {
		return nil, err
	}

	today := uc.now().Truncate(24 * time.Hour)
	output := &SendDeadlineRemindersOutput{UsersChecked: len(users)}

	for _, user := range users {
		deadline := valueobject.RegistrationDeadline(*user.TradingStartDate)
		daysLeft := int(deadline.Sub(today).Hours() / 24)
		if !isReminderDay(daysLeft) {
			continue
		}

		input := adapter.QueueDeadlineReminderInput{
			UserID:    user.ID.String(),
			UserEmail: user.Email,
			UserName:  user.Name,
			TaxYear:   valueobject.TaxYearFromDate(*user.TradingStartDate).Label(),
			Deadline:  deadline.Format("2 January 2006"),
			DaysLeft:  daysLeft,
		}
		if err := uc.emailService.QueueDeadlineReminderEmail(ctx, input); err != nil {
			slog.Warn("Failed to queue deadline reminder",
				"user_id", user.ID,
				"error", err,
			)
			continue
		}
		output.RemindersQueued++
	}

	return output, nil
}

func isReminderDay(daysLeft int) bool {
	for _, d := range reminderDays {
		if daysLeft == d {
			return true
		}
	}
	return false
}
