// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/taxfolio/backend/internal/application/usecase/tax"
	"github.com/taxfolio/backend/internal/domain/entity"
)

// TaxSummaryResponse represents a tax year summary in API responses.
type TaxSummaryResponse struct {
	TaxYear      string `json:"tax_year"`
	TaxYearStart string `json:"tax_year_start"`
	TaxYearEnd   string `json:"tax_year_end"`

	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	NetProfit     string `json:"net_profit"`
	TaxableProfit string `json:"taxable_profit"`

	IncomeTax string `json:"income_tax"`
	NIClass2  string `json:"ni_class2"`
	NIClass4  string `json:"ni_class4"`
	TotalTax  string `json:"total_tax"`

	SetAside       string `json:"set_aside"`
	ActualTaxSaved string `json:"actual_tax_saved"`

	VATThreshold        string `json:"vat_threshold"`
	VATProximityPercent string `json:"vat_proximity_percent"`

	RulesetVersion       string  `json:"ruleset_version"`
	Provisional          bool    `json:"provisional"`
	RegistrationDeadline *string `json:"registration_deadline,omitempty"`
}

// TaxYearResponse represents one available tax year in API responses.
type TaxYearResponse struct {
	Label          string `json:"label"`
	Start          string `json:"start"`
	End            string `json:"end"`
	RulesetVersion string `json:"ruleset_version"`
	Provisional    bool   `json:"provisional"`
	Current        bool   `json:"current"`
}

// TaxYearListResponse represents the response for listing available tax years.
type TaxYearListResponse struct {
	Years []TaxYearResponse `json:"years"`
}

// CreateSnapshotRequest represents the request body for taking a snapshot.
type CreateSnapshotRequest struct {
	TaxYear string `json:"tax_year,omitempty"`
}

// SnapshotResponse represents a tax snapshot in API responses.
type SnapshotResponse struct {
	ID           string `json:"id"`
	TaxYear      string `json:"tax_year"`
	TaxYearStart string `json:"tax_year_start"`
	TaxYearEnd   string `json:"tax_year_end"`

	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	NetProfit     string `json:"net_profit"`

	IncomeTax string `json:"income_tax"`
	NIClass2  string `json:"ni_class2"`
	NIClass4  string `json:"ni_class4"`
	TotalTax  string `json:"total_tax"`

	RulesetVersion string    `json:"ruleset_version"`
	CreatedAt      time.Time `json:"created_at"`
}

// SnapshotListResponse represents the response for listing tax snapshots.
type SnapshotListResponse struct {
	Snapshots []SnapshotResponse `json:"snapshots"`
}

// ToTaxSummaryResponse converts a GetSummaryOutput to a TaxSummaryResponse DTO.
func ToTaxSummaryResponse(output *tax.GetSummaryOutput) TaxSummaryResponse {
	response := TaxSummaryResponse{
		TaxYear:             output.TaxYear,
		TaxYearStart:        output.TaxYearStart.Format("2006-01-02"),
		TaxYearEnd:          output.TaxYearEnd.Format("2006-01-02"),
		TotalIncome:         output.TotalIncome.StringFixed(2),
		TotalExpenses:       output.TotalExpenses.StringFixed(2),
		NetProfit:           output.NetProfit.StringFixed(2),
		TaxableProfit:       output.TaxableProfit.StringFixed(2),
		IncomeTax:           output.IncomeTax.StringFixed(2),
		NIClass2:            output.NIClass2.StringFixed(2),
		NIClass4:            output.NIClass4.StringFixed(2),
		TotalTax:            output.TotalTax.StringFixed(2),
		SetAside:            output.SetAside.StringFixed(2),
		ActualTaxSaved:      output.ActualTaxSaved.StringFixed(2),
		VATThreshold:        output.VATThreshold.StringFixed(2),
		VATProximityPercent: output.VATProximityPercent.StringFixed(2),
		RulesetVersion:      output.RulesetVersion,
		Provisional:         output.Provisional,
	}
	if output.RegistrationDeadline != nil {
		deadline := output.RegistrationDeadline.Format("2006-01-02")
		response.RegistrationDeadline = &deadline
	}
	return response
}

// ToTaxYearListResponse converts a ListYearsOutput to a TaxYearListResponse.
func ToTaxYearListResponse(output *tax.ListYearsOutput) TaxYearListResponse {
	years := make([]TaxYearResponse, len(output.Years))
	for i, year := range output.Years {
		years[i] = TaxYearResponse{
			Label:          year.Label,
			Start:          year.Start.Format("2006-01-02"),
			End:            year.End.Format("2006-01-02"),
			RulesetVersion: year.RulesetVersion,
			Provisional:    year.Provisional,
			Current:        year.Current,
		}
	}
	return TaxYearListResponse{Years: years}
}

// ToSnapshotResponse converts a TaxSnapshot entity to a SnapshotResponse DTO.
func ToSnapshotResponse(snapshot *entity.TaxSnapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:             snapshot.ID.String(),
		TaxYear:        snapshot.TaxYear,
		TaxYearStart:   snapshot.TaxYearStart.Format("2006-01-02"),
		TaxYearEnd:     snapshot.TaxYearEnd.Format("2006-01-02"),
		TotalIncome:    snapshot.TotalIncome.StringFixed(2),
		TotalExpenses:  snapshot.TotalExpenses.StringFixed(2),
		NetProfit:      snapshot.NetProfit.StringFixed(2),
		IncomeTax:      snapshot.IncomeTax.StringFixed(2),
		NIClass2:       snapshot.NIClass2.StringFixed(2),
		NIClass4:       snapshot.NIClass4.StringFixed(2),
		TotalTax:       snapshot.TotalTax.StringFixed(2),
		RulesetVersion: snapshot.RulesetVersion,
		CreatedAt:      snapshot.CreatedAt,
	}
}

// ToSnapshotListResponse converts TaxSnapshot entities to a SnapshotListResponse.
func ToSnapshotListResponse(snapshots []*entity.TaxSnapshot) SnapshotListResponse {
	responses := make([]SnapshotResponse, len(snapshots))
	for i, snapshot := range snapshots {
		responses[i] = ToSnapshotResponse(snapshot)
	}
	return SnapshotListResponse{Snapshots: responses}
}
