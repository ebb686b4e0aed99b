// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/taxfolio/backend/internal/domain/entity"
)

// CreateIncomeRequest represents the request body for income record creation.
type CreateIncomeRequest struct {
	Date        string   `json:"date" binding:"required"`
	Amount      float64  `json:"amount" binding:"required,gt=0"`
	Description string   `json:"description" binding:"required,min=1,max=255"`
	TaxSaved    *float64 `json:"tax_saved,omitempty"`
}

// UpdateIncomeRequest represents the request body for income record updates.
// Updates are full replacements; every field but tax_saved is required.
type UpdateIncomeRequest struct {
	Date        string   `json:"date" binding:"required"`
	Amount      float64  `json:"amount" binding:"required,gt=0"`
	Description string   `json:"description" binding:"required,min=1,max=255"`
	TaxSaved    *float64 `json:"tax_saved,omitempty"`
}

// IncomeResponse represents a single income record in API responses.
type IncomeResponse struct {
	ID             string    `json:"id"`
	Date           string    `json:"date"`
	Amount         string    `json:"amount"`
	Description    string    `json:"description"`
	TaxSaved       *string   `json:"tax_saved,omitempty"`
	TaxYear        string    `json:"tax_year"`
	RulesetVersion string    `json:"ruleset_version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IncomeListResponse represents the response for listing income records.
type IncomeListResponse struct {
	Incomes []IncomeResponse `json:"incomes"`
}

// ToIncomeResponse converts an Income entity to an IncomeResponse DTO.
func ToIncomeResponse(income *entity.Income) IncomeResponse {
	response := IncomeResponse{
		ID:             income.ID.String(),
		Date:           income.DateReceived.Format("2006-01-02"),
		Amount:         income.Amount.StringFixed(2),
		Description:    income.Description,
		TaxYear:        income.TaxYear,
		RulesetVersion: income.RulesetVersion,
		CreatedAt:      income.CreatedAt,
		UpdatedAt:      income.UpdatedAt,
	}
	if income.TaxSaved != nil {
		taxSaved := income.TaxSaved.StringFixed(2)
		response.TaxSaved = &taxSaved
	}
	return response
}

// ToIncomeListResponse converts Income entities to an IncomeListResponse.
func ToIncomeListResponse(incomes []*entity.Income) IncomeListResponse {
	responses := make([]IncomeResponse, len(incomes))
	for i, income := range incomes {
		responses[i] = ToIncomeResponse(income)
	}
	return IncomeListResponse{Incomes: responses}
}
