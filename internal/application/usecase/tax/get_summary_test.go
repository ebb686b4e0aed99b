package tax

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

func summaryFixture(t *testing.T) (*GetSummaryUseCase, *entity.User, *fakeIncomeRepo, *fakeExpenseRepo, *fakeSummaryCache) {
	t.Helper()

	user := entity.NewUser("jo@example.com", "Jo", "hash", time.Now().UTC())
	incomeRepo := &fakeIncomeRepo{}
	expenseRepo := &fakeExpenseRepo{}
	cache := newFakeSummaryCache()

	uc := NewGetSummaryUseCase(incomeRepo, expenseRepo, newFakeUserRepo(user), DefaultRegistry(), cache)
	uc.now = func() time.Time {
		return time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC)
	}
	return uc, user, incomeRepo, expenseRepo, cache
}

func addIncome(repo *fakeIncomeRepo, user *entity.User, date time.Time, amount string) {
	repo.incomes = append(repo.incomes, entity.NewIncome(
		user.ID, date, decimal.RequireFromString(amount), "invoice", "", ""))
}

func addExpense(repo *fakeExpenseRepo, user *entity.User, date time.Time, amount string) {
	repo.expenses = append(repo.expenses, entity.NewExpense(
		user.ID, date, decimal.RequireFromString(amount), "Equipment", "kit", ""))
}

func TestGetSummary(t *testing.T) {
	uc, user, incomeRepo, expenseRepo, _ := summaryFixture(t)

	addIncome(incomeRepo, user, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), "40000")
	addExpense(expenseRepo, user, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), "10000")
	// Previous tax year, must not count: 5 April 2024 belongs to 2023-24.
	addIncome(incomeRepo, user, time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC), "9999")

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2024-25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.TaxYear != "2024-25" {
		t.Errorf("tax year = %s, want 2024-25", out.TaxYear)
	}
	if out.TotalIncome.StringFixed(2) != "40000.00" {
		t.Errorf("total income = %s, want 40000.00", out.TotalIncome)
	}
	if out.TotalExpenses.StringFixed(2) != "10000.00" {
		t.Errorf("total expenses = %s, want 10000.00", out.TotalExpenses)
	}
	if out.NetProfit.StringFixed(2) != "30000.00" {
		t.Errorf("net profit = %s, want 30000.00", out.NetProfit)
	}
	if out.IncomeTax.StringFixed(2) != "3486.00" {
		t.Errorf("income tax = %s, want 3486.00", out.IncomeTax)
	}
	if out.NIClass2.StringFixed(2) != "179.40" {
		t.Errorf("NI class 2 = %s, want 179.40", out.NIClass2)
	}
	if out.NIClass4.StringFixed(2) != "1568.70" {
		t.Errorf("NI class 4 = %s, want 1568.70", out.NIClass4)
	}
	if out.TotalTax.StringFixed(2) != "5234.10" {
		t.Errorf("total tax = %s, want 5234.10", out.TotalTax)
	}

	// Default 20% set-aside of gross income, not of net profit.
	if out.SetAside.StringFixed(2) != "8000.00" {
		t.Errorf("set aside = %s, want 8000.00", out.SetAside)
	}
	if out.ActualTaxSaved.StringFixed(2) != "0.00" {
		t.Errorf("actual tax saved = %s, want 0.00", out.ActualTaxSaved)
	}
	if out.VATProximityPercent.StringFixed(2) != "47.06" {
		t.Errorf("VAT proximity = %s, want 47.06", out.VATProximityPercent)
	}
	if out.RulesetVersion != "2024-25-v1" {
		t.Errorf("ruleset version = %s, want 2024-25-v1", out.RulesetVersion)
	}
	if out.Provisional {
		t.Error("2024-25 summary should not be provisional")
	}
	if out.RegistrationDeadline != nil {
		t.Error("no trading start date, deadline should be nil")
	}
}

func TestGetSummaryActualTaxSaved(t *testing.T) {
	uc, user, incomeRepo, _, _ := summaryFixture(t)

	addIncome(incomeRepo, user, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), "10000")
	saved := decimal.RequireFromString("2500")
	incomeRepo.incomes[0].TaxSaved = &saved

	// Savings recorded outside the year must not count.
	addIncome(incomeRepo, user, time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC), "5000")
	otherYear := decimal.RequireFromString("999")
	incomeRepo.incomes[1].TaxSaved = &otherYear

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2024-25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.ActualTaxSaved.StringFixed(2) != "2500.00" {
		t.Errorf("actual tax saved = %s, want 2500.00", out.ActualTaxSaved)
	}
	// Recommendation is independent of what was actually saved.
	if out.SetAside.StringFixed(2) != "2000.00" {
		t.Errorf("set aside = %s, want 2000.00", out.SetAside)
	}
}

func TestGetSummaryDefaultsToCurrentTaxYear(t *testing.T) {
	uc, user, _, _, _ := summaryFixture(t)

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// now is pinned to 1 September 2024.
	if out.TaxYear != "2024-25" {
		t.Errorf("tax year = %s, want 2024-25", out.TaxYear)
	}
}

func TestGetSummaryLossMakingYear(t *testing.T) {
	uc, user, incomeRepo, expenseRepo, _ := summaryFixture(t)

	addIncome(incomeRepo, user, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), "5000")
	addExpense(expenseRepo, user, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), "8000")

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2024-25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The loss is shown as-is, but tax is computed on profit floored at zero.
	if out.NetProfit.StringFixed(2) != "-3000.00" {
		t.Errorf("net profit = %s, want -3000.00", out.NetProfit)
	}
	if out.TaxableProfit.Sign() != 0 {
		t.Errorf("taxable profit = %s, want 0", out.TaxableProfit)
	}
	if out.TotalTax.Sign() != 0 {
		t.Errorf("total tax = %s, want 0", out.TotalTax)
	}
}

func TestGetSummaryProvisionalYear(t *testing.T) {
	uc, user, _, _, _ := summaryFixture(t)

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2025-26"})
	if err != nil {
		t.Fatalf("expected provisional year to be served, got error: %v", err)
	}
	if !out.Provisional {
		t.Error("expected provisional flag on 2025-26 summary")
	}
	if out.RulesetVersion != "2025-26-v1" {
		t.Errorf("ruleset version = %s, want 2025-26-v1", out.RulesetVersion)
	}
}

func TestGetSummaryUnknownYear(t *testing.T) {
	uc, user, _, _, _ := summaryFixture(t)

	_, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2019-20"})
	if !errors.Is(err, domainerror.ErrUnknownTaxYear) {
		t.Errorf("expected ErrUnknownTaxYear, got %v", err)
	}

	_, err = uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2024/25"})
	if !errors.Is(err, domainerror.ErrInvalidTaxYearLabel) {
		t.Errorf("expected ErrInvalidTaxYearLabel, got %v", err)
	}
}

func TestGetSummaryRegistrationDeadline(t *testing.T) {
	uc, user, _, _, _ := summaryFixture(t)

	tradingStart := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	user.TradingStartDate = &tradingStart

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2024-25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC)
	if out.RegistrationDeadline == nil || !out.RegistrationDeadline.Equal(want) {
		t.Errorf("registration deadline = %v, want %v", out.RegistrationDeadline, want)
	}
}

func TestGetSummaryCaching(t *testing.T) {
	uc, user, incomeRepo, _, cache := summaryFixture(t)

	addIncome(incomeRepo, user, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), "40000")

	first, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2024-25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if incomeRepo.sumCalls != 1 || cache.setCalls != 1 {
		t.Fatalf("first call: sumCalls=%d setCalls=%d, want 1 and 1", incomeRepo.sumCalls, cache.setCalls)
	}

	second, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2024-25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if incomeRepo.sumCalls != 1 {
		t.Errorf("second call recomputed, sumCalls = %d, want 1", incomeRepo.sumCalls)
	}
	if second.TotalTax.StringFixed(2) != first.TotalTax.StringFixed(2) {
		t.Errorf("cached total tax = %s, want %s", second.TotalTax, first.TotalTax)
	}

	// Invalidation (as on a record write) forces a recompute.
	if err := cache.InvalidateUser(context.Background(), user.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2024-25"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if incomeRepo.sumCalls != 2 {
		t.Errorf("post-invalidation call did not recompute, sumCalls = %d, want 2", incomeRepo.sumCalls)
	}
}

func TestGetSummaryWithoutCache(t *testing.T) {
	user := entity.NewUser("jo@example.com", "Jo", "hash", time.Now().UTC())
	uc := NewGetSummaryUseCase(&fakeIncomeRepo{}, &fakeExpenseRepo{}, newFakeUserRepo(user), DefaultRegistry(), nil)

	if _, err := uc.Execute(context.Background(), GetSummaryInput{UserID: user.ID, TaxYear: "2024-25"}); err != nil {
		t.Fatalf("nil cache must not fail the request: %v", err)
	}
}
