// Package ucreport contains Universal Credit reporting use cases. The
// calendar math is stateless; the reported/open lifecycle lives in
// persistence.
package ucreport

import (
	"fmt"

	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// assessmentDay returns the user's configured anchor day, rejecting users
// who have not enabled UC reporting or configured a day.
func assessmentDay(user *entity.User) (int, error) {
	if !user.UCEnabled {
		return 0, domainerror.NewUCError(
			domainerror.ErrCodeUCNotEnabled,
			"universal credit reporting is not enabled for this account",
			domainerror.ErrUCNotEnabled,
		)
	}
	if user.AssessmentDay == 0 {
		return 0, domainerror.NewUCError(
			domainerror.ErrCodeAssessmentDayNotConfigured,
			"universal credit assessment day is not configured",
			domainerror.ErrAssessmentDayNotConfigured,
		)
	}
	if err := valueobject.ValidateAssessmentDay(user.AssessmentDay); err != nil {
		return 0, fmt.Errorf("stored assessment day is invalid: %w", err)
	}
	return user.AssessmentDay, nil
}
