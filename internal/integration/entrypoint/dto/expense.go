// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/taxfolio/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense record creation.
type CreateExpenseRequest struct {
	Date        string  `json:"date" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
}

// UpdateExpenseRequest represents the request body for expense record updates.
// Updates are full replacements; every field is required.
type UpdateExpenseRequest struct {
	Date        string  `json:"date" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
}

// ExpenseResponse represents a single expense record in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	TaxYear     string    `json:"tax_year"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseListResponse represents the response for listing expense records.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts an Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(expense *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID.String(),
		Date:        expense.DatePaid.Format("2006-01-02"),
		Amount:      expense.Amount.StringFixed(2),
		Category:    expense.Category,
		Description: expense.Description,
		TaxYear:     expense.TaxYear,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

// ToExpenseListResponse converts Expense entities to an ExpenseListResponse.
func ToExpenseListResponse(expenses []*entity.Expense) ExpenseListResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = ToExpenseResponse(expense)
	}
	return ExpenseListResponse{Expenses: responses}
}
