package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

type fakeIncomeRepo struct {
	incomes []*entity.Income
}

func (f *fakeIncomeRepo) Create(_ context.Context, income *entity.Income) error {
	f.incomes = append(f.incomes, income)
	return nil
}

func (f *fakeIncomeRepo) FindByID(_ context.Context, _, _ uuid.UUID) (*entity.Income, error) {
	return nil, domainerror.ErrIncomeNotFound
}

func (f *fakeIncomeRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Income, error) {
	var out []*entity.Income
	for _, in := range f.incomes {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeIncomeRepo) FindByUserAndTaxYear(_ context.Context, userID uuid.UUID, taxYear string) ([]*entity.Income, error) {
	var out []*entity.Income
	for _, in := range f.incomes {
		if in.UserID == userID && in.TaxYear == taxYear {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeIncomeRepo) SumByUserAndDateRange(_ context.Context, _ uuid.UUID, _, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeIncomeRepo) SumTaxSavedByUserAndDateRange(_ context.Context, _ uuid.UUID, _, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeIncomeRepo) Update(_ context.Context, _ *entity.Income) error { return nil }

func (f *fakeIncomeRepo) Delete(_ context.Context, _, _ uuid.UUID) error { return nil }

type fakeExpenseRepo struct {
	expenses []*entity.Expense
}

func (f *fakeExpenseRepo) Create(_ context.Context, expense *entity.Expense) error {
	f.expenses = append(f.expenses, expense)
	return nil
}

func (f *fakeExpenseRepo) FindByID(_ context.Context, _, _ uuid.UUID) (*entity.Expense, error) {
	return nil, domainerror.ErrExpenseNotFound
}

func (f *fakeExpenseRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, ex := range f.expenses {
		if ex.UserID == userID {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) FindByUserAndTaxYear(_ context.Context, userID uuid.UUID, taxYear string) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, ex := range f.expenses {
		if ex.UserID == userID && ex.TaxYear == taxYear {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) SumByUserAndDateRange(_ context.Context, _ uuid.UUID, _, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeExpenseRepo) Update(_ context.Context, _ *entity.Expense) error { return nil }

func (f *fakeExpenseRepo) Delete(_ context.Context, _, _ uuid.UUID) error { return nil }

func TestExportTransactions(t *testing.T) {
	userID := uuid.New()
	incomeRepo := &fakeIncomeRepo{incomes: []*entity.Income{
		entity.NewIncome(userID, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(1500), "consulting invoice", "2024-25", "2024-25-v1"),
		entity.NewIncome(userID, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
			decimal.NewFromFloat(99.50), "workshop fee", "2024-25", "2024-25-v1"),
	}}
	expenseRepo := &fakeExpenseRepo{expenses: []*entity.Expense{
		entity.NewExpense(userID, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC),
			decimal.NewFromFloat(49.99), "Software", "editor license", "2024-25"),
	}}

	uc := NewExportTransactionsUseCase(incomeRepo, expenseRepo)
	out, err := uc.Execute(context.Background(), ExportTransactionsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Filename != "taxfolio-transactions.csv" {
		t.Errorf("filename = %s", out.Filename)
	}

	records, err := csv.NewReader(bytes.NewReader(out.Content)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(records))
	}

	header := records[0]
	want := []string{"date", "type", "amount", "category", "description", "tax_year"}
	for i := range want {
		if header[i] != want[i] {
			t.Errorf("header[%d] = %s, want %s", i, header[i], want[i])
		}
	}

	// Rows are date-ordered regardless of record type.
	if records[1][0] != "2024-05-02" || records[1][1] != "income" {
		t.Errorf("first row = %v", records[1])
	}
	if records[2][0] != "2024-05-20" || records[2][1] != "expense" || records[2][3] != "Software" {
		t.Errorf("second row = %v", records[2])
	}
	if records[3][2] != "1500.00" {
		t.Errorf("amount = %s, want 1500.00", records[3][2])
	}
}

func TestExportTransactionsFilteredByTaxYear(t *testing.T) {
	userID := uuid.New()
	incomeRepo := &fakeIncomeRepo{incomes: []*entity.Income{
		entity.NewIncome(userID, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(1500), "this year", "2024-25", "2024-25-v1"),
		entity.NewIncome(userID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(800), "last year", "2023-24", "2023-24-v1"),
	}}

	uc := NewExportTransactionsUseCase(incomeRepo, &fakeExpenseRepo{})
	out, err := uc.Execute(context.Background(), ExportTransactionsInput{UserID: userID, TaxYear: "2024-25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Filename != "taxfolio-transactions-2024-25.csv" {
		t.Errorf("filename = %s", out.Filename)
	}

	records, err := csv.NewReader(bytes.NewReader(out.Content)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(records))
	}
	if records[1][5] != "2024-25" {
		t.Errorf("tax year column = %s", records[1][5])
	}

	if _, err := uc.Execute(context.Background(), ExportTransactionsInput{UserID: userID, TaxYear: "24-25"}); !errors.Is(err, domainerror.ErrInvalidTaxYearLabel) {
		t.Errorf("expected ErrInvalidTaxYearLabel, got %v", err)
	}
}
