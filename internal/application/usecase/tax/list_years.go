// Package tax contains the tax calculation engine and tax-related use cases.
package tax

import (
	"context"
	"time"

	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// TaxYearInfo describes one tax year the registry can compute for.
type TaxYearInfo struct {
	Label          string    `json:"label"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	RulesetVersion string    `json:"ruleset_version"`
	Provisional    bool      `json:"provisional"`
	Current        bool      `json:"current"`
}

// ListYearsOutput represents the output of listing available tax years.
type ListYearsOutput struct {
	Years []TaxYearInfo
}

// ListYearsUseCase lists the tax years with a registered ruleset.
type ListYearsUseCase struct {
	registry *Registry
	now      func() time.Time
}

// NewListYearsUseCase creates a new ListYearsUseCase instance.
func NewListYearsUseCase(registry *Registry) *ListYearsUseCase {
	return &ListYearsUseCase{
		registry: registry,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute returns every tax year the registry covers, oldest first.
func (uc *ListYearsUseCase) Execute(ctx context.Context) (*ListYearsOutput, error) {
	currentLabel := valueobject.TaxYearFromDate(uc.now()).Label()

	labels := uc.registry.AvailableYears()
	years := make([]TaxYearInfo, 0, len(labels))
	for _, label := range labels {
		ruleset, err := uc.registry.RulesetFor(label)
		if err != nil {
			return nil, err
		}
		taxYear, err := valueobject.ParseTaxYear(label)
		if err != nil {
			return nil, err
		}
		years = append(years, TaxYearInfo{
			Label:          label,
			Start:          taxYear.Start(),
			End:            taxYear.End(),
			RulesetVersion: ruleset.Version,
			Provisional:    ruleset.Provisional,
			Current:        label == currentLabel,
		})
	}

	return &ListYearsOutput{Years: years}, nil
}
