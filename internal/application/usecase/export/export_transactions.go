// Package export contains record export use cases.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// ExportTransactionsInput represents the input for exporting records.
type ExportTransactionsInput struct {
	UserID uuid.UUID
	// TaxYear optionally narrows the export to one "YYYY-YY" tax year.
	TaxYear string
}

// ExportTransactionsOutput represents the output of exporting records.
type ExportTransactionsOutput struct {
	Filename string
	Content  []byte
}

// ExportTransactionsUseCase renders a user's income and expense records as
// a single CSV, ordered by date, for hand-off to an accountant.
type ExportTransactionsUseCase struct {
	incomeRepo  adapter.IncomeRepository
	expenseRepo adapter.ExpenseRepository
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
	}
}

type exportRow struct {
	date        time.Time
	kind        string
	amount      string
	category    string
	description string
	taxYear     string
}

// Execute builds the CSV export.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	if input.TaxYear != "" {
		if _, err := valueobject.ParseTaxYear(input.TaxYear); err != nil {
			return nil, err
		}
	}

	rows, err := uc.collectRows(ctx, input)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "type", "amount", "category", "description", "tax_year"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.date.Format("2006-01-02"),
			row.kind,
			row.amount,
			row.category,
			row.description,
			row.taxYear,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := "taxfolio-transactions.csv"
	if input.TaxYear != "" {
		filename = fmt.Sprintf("taxfolio-transactions-%s.csv", input.TaxYear)
	}

	return &ExportTransactionsOutput{Filename: filename, Content: buf.Bytes()}, nil
}

func (uc *ExportTransactionsUseCase) collectRows(ctx context.Context, input ExportTransactionsInput) ([]exportRow, error) {
	var rows []exportRow

	if input.TaxYear != "" {
		incomes, err := uc.incomeRepo.FindByUserAndTaxYear(ctx, input.UserID, input.TaxYear)
		if err != nil {
			return nil, fmt.Errorf("failed to load income records: %w", err)
		}
		expenses, err := uc.expenseRepo.FindByUserAndTaxYear(ctx, input.UserID, input.TaxYear)
		if err != nil {
			return nil, fmt.Errorf("failed to load expense records: %w", err)
		}
		for _, in := range incomes {
			rows = append(rows, exportRow{in.DateReceived, "income", in.Amount.StringFixed(2), "", in.Description, in.TaxYear})
		}
		for _, ex := range expenses {
			rows = append(rows, exportRow{ex.DatePaid, "expense", ex.Amount.StringFixed(2), ex.Category, ex.Description, ex.TaxYear})
		}
		return rows, nil
	}

	incomes, err := uc.incomeRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load income records: %w", err)
	}
	expenses, err := uc.expenseRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense records: %w", err)
	}
	for _, in := range incomes {
		rows = append(rows, exportRow{in.DateReceived, "income", in.Amount.StringFixed(2), "", in.Description, in.TaxYear})
	}
	for _, ex := range expenses {
		rows = append(rows, exportRow{ex.DatePaid, "expense", ex.Amount.StringFixed(2), ex.Category, ex.Description, ex.TaxYear})
	}
	return rows, nil
}
