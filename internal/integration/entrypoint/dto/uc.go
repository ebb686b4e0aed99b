// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/taxfolio/backend/internal/application/usecase/ucreport"
	"github.com/taxfolio/backend/internal/domain/entity"
)

// UCPeriodResponse represents the current assessment period in API responses.
type UCPeriodResponse struct {
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	NetProfit     string `json:"net_profit"`

	ReportID *string `json:"report_id,omitempty"`
	Reported bool    `json:"reported"`
}

// GenerateUCReportRequest represents the request body for generating a UC report.
type GenerateUCReportRequest struct {
	// Reference is an optional "YYYY-MM-DD" date inside the period to report
	// on; empty means today.
	Reference string `json:"reference,omitempty"`
}

// MarkUCReportedRequest represents the request body for marking a report as reported.
type MarkUCReportedRequest struct {
	Notes string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UCReportResponse represents a UC report in API responses.
type UCReportResponse struct {
	ID            string `json:"id"`
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	NetProfit     string `json:"net_profit"`

	Reported   bool       `json:"reported"`
	ReportedAt *time.Time `json:"reported_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UCReportListResponse represents the response for listing UC reports.
type UCReportListResponse struct {
	Reports []UCReportResponse `json:"reports"`
}

// ToUCPeriodResponse converts a GetCurrentPeriodOutput to a UCPeriodResponse DTO.
func ToUCPeriodResponse(output *ucreport.GetCurrentPeriodOutput) UCPeriodResponse {
	response := UCPeriodResponse{
		PeriodStart:   output.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     output.PeriodEnd.Format("2006-01-02"),
		TotalIncome:   output.TotalIncome.StringFixed(2),
		TotalExpenses: output.TotalExpenses.StringFixed(2),
		NetProfit:     output.NetProfit.StringFixed(2),
		Reported:      output.Reported,
	}
	if output.ReportID != nil {
		reportID := output.ReportID.String()
		response.ReportID = &reportID
	}
	return response
}

// ToUCReportResponse converts a UCReport entity to a UCReportResponse DTO.
func ToUCReportResponse(report *entity.UCReport) UCReportResponse {
	return UCReportResponse{
		ID:            report.ID.String(),
		PeriodStart:   report.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     report.PeriodEnd.Format("2006-01-02"),
		TotalIncome:   report.TotalIncome.StringFixed(2),
		TotalExpenses: report.TotalExpenses.StringFixed(2),
		NetProfit:     report.NetProfit.StringFixed(2),
		Reported:      report.IsReported(),
		ReportedAt:    report.ReportedAt,
		Notes:         report.Notes,
		CreatedAt:     report.CreatedAt,
		UpdatedAt:     report.UpdatedAt,
	}
}

// ToUCReportListResponse converts UCReport entities to a UCReportListResponse.
func ToUCReportListResponse(reports []*entity.UCReport) UCReportListResponse {
	responses := make([]UCReportResponse, len(reports))
	for i, report := range reports {
		responses[i] = ToUCReportResponse(report)
	}
	return UCReportListResponse{Reports: responses}
}
