package ucreport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

type fixture struct {
	user        *entity.User
	incomeRepo  *fakeIncomeRepo
	expenseRepo *fakeExpenseRepo
	userRepo    *fakeUserRepo
	reportRepo  *fakeUCReportRepo
	now         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	user := entity.NewUser("jo@example.com", "Jo", "hash", time.Now().UTC())
	user.UCEnabled = true
	user.AssessmentDay = 15

	return &fixture{
		user:        user,
		incomeRepo:  &fakeIncomeRepo{},
		expenseRepo: &fakeExpenseRepo{},
		userRepo:    newFakeUserRepo(user),
		reportRepo:  &fakeUCReportRepo{},
		now:         time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) currentPeriod() *GetCurrentPeriodUseCase {
	uc := NewGetCurrentPeriodUseCase(f.incomeRepo, f.expenseRepo, f.userRepo, f.reportRepo)
	uc.now = func() time.Time { return f.now }
	return uc
}

func (f *fixture) generate() *GenerateReportUseCase {
	uc := NewGenerateReportUseCase(f.incomeRepo, f.expenseRepo, f.userRepo, f.reportRepo)
	uc.now = func() time.Time { return f.now }
	return uc
}

func (f *fixture) markReported() *MarkReportedUseCase {
	uc := NewMarkReportedUseCase(f.reportRepo)
	uc.now = func() time.Time { return f.now }
	return uc
}

func (f *fixture) addIncome(date time.Time, amount string) {
	f.incomeRepo.incomes = append(f.incomeRepo.incomes, entity.NewIncome(
		f.user.ID, date, decimal.RequireFromString(amount), "invoice", "", ""))
}

func (f *fixture) addExpense(date time.Time, amount string) {
	f.expenseRepo.expenses = append(f.expenseRepo.expenses, entity.NewExpense(
		f.user.ID, date, decimal.RequireFromString(amount), "Software", "tools", ""))
}

func TestGetCurrentPeriod(t *testing.T) {
	f := newFixture(t)

	// Anchor day 15, today 20 June: period is 15 June to 14 July inclusive.
	f.addIncome(time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), "500")
	f.addIncome(time.Date(2024, time.July, 14, 0, 0, 0, 0, time.UTC), "250")
	f.addExpense(time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), "100")
	// The day before the period starts.
	f.addIncome(time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC), "9999")

	out, err := f.currentPeriod().Execute(context.Background(), GetCurrentPeriodInput{UserID: f.user.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.July, 14, 0, 0, 0, 0, time.UTC)
	if !out.PeriodStart.Equal(wantStart) || !out.PeriodEnd.Equal(wantEnd) {
		t.Errorf("period = [%v, %v], want [%v, %v]", out.PeriodStart, out.PeriodEnd, wantStart, wantEnd)
	}
	if out.TotalIncome.StringFixed(2) != "750.00" {
		t.Errorf("total income = %s, want 750.00", out.TotalIncome)
	}
	if out.TotalExpenses.StringFixed(2) != "100.00" {
		t.Errorf("total expenses = %s, want 100.00", out.TotalExpenses)
	}
	if out.NetProfit.StringFixed(2) != "650.00" {
		t.Errorf("net profit = %s, want 650.00", out.NetProfit)
	}
	if out.ReportID != nil || out.Reported {
		t.Error("no report generated yet, expected empty report echo")
	}
}

func TestGetCurrentPeriodZeroActivity(t *testing.T) {
	f := newFixture(t)

	out, err := f.currentPeriod().Execute(context.Background(), GetCurrentPeriodInput{UserID: f.user.ID})
	if err != nil {
		t.Fatalf("a period with no records is valid, got error: %v", err)
	}
	if out.TotalIncome.Sign() != 0 || out.TotalExpenses.Sign() != 0 || out.NetProfit.Sign() != 0 {
		t.Errorf("expected all-zero figures, got income=%s expenses=%s net=%s",
			out.TotalIncome, out.TotalExpenses, out.NetProfit)
	}
}

func TestGetCurrentPeriodGates(t *testing.T) {
	t.Run("uc not enabled", func(t *testing.T) {
		f := newFixture(t)
		f.user.UCEnabled = false

		_, err := f.currentPeriod().Execute(context.Background(), GetCurrentPeriodInput{UserID: f.user.ID})
		if !errors.Is(err, domainerror.ErrUCNotEnabled) {
			t.Errorf("expected ErrUCNotEnabled, got %v", err)
		}
	})

	t.Run("assessment day not configured", func(t *testing.T) {
		f := newFixture(t)
		f.user.AssessmentDay = 0

		_, err := f.currentPeriod().Execute(context.Background(), GetCurrentPeriodInput{UserID: f.user.ID})
		if !errors.Is(err, domainerror.ErrAssessmentDayNotConfigured) {
			t.Errorf("expected ErrAssessmentDayNotConfigured, got %v", err)
		}
	})
}

func TestGenerateReport(t *testing.T) {
	f := newFixture(t)
	f.addIncome(time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), "500")

	out, err := f.generate().Execute(context.Background(), GenerateReportInput{UserID: f.user.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := out.Report
	if !report.PeriodStart.Equal(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("period start = %v, want 15 June", report.PeriodStart)
	}
	if report.TotalIncome.StringFixed(2) != "500.00" {
		t.Errorf("total income = %s, want 500.00", report.TotalIncome)
	}
	if report.IsReported() {
		t.Error("new report must start open")
	}

	// The current-period view now echoes the stored report.
	current, err := f.currentPeriod().Execute(context.Background(), GetCurrentPeriodInput{UserID: f.user.ID})
	if err != nil {
		t.Fatal(err)
	}
	if current.ReportID == nil || *current.ReportID != report.ID {
		t.Error("current period does not echo the generated report")
	}
}

func TestGenerateReportRefreshesOpenReport(t *testing.T) {
	f := newFixture(t)
	f.addIncome(time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), "500")

	first, err := f.generate().Execute(context.Background(), GenerateReportInput{UserID: f.user.ID})
	if err != nil {
		t.Fatal(err)
	}

	// A record lands inside the period after generation; regenerating
	// refreshes the same report rather than duplicating it.
	f.addIncome(time.Date(2024, time.June, 18, 0, 0, 0, 0, time.UTC), "200")

	second, err := f.generate().Execute(context.Background(), GenerateReportInput{UserID: f.user.ID})
	if err != nil {
		t.Fatal(err)
	}
	if second.Report.ID != first.Report.ID {
		t.Errorf("regeneration created a new report: %s vs %s", second.Report.ID, first.Report.ID)
	}
	if second.Report.TotalIncome.StringFixed(2) != "700.00" {
		t.Errorf("refreshed total income = %s, want 700.00", second.Report.TotalIncome)
	}
	if len(f.reportRepo.reports) != 1 {
		t.Errorf("stored reports = %d, want 1", len(f.reportRepo.reports))
	}
}

func TestGenerateReportForPastPeriod(t *testing.T) {
	f := newFixture(t)
	f.addIncome(time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), "300")

	out, err := f.generate().Execute(context.Background(), GenerateReportInput{
		UserID:    f.user.ID,
		Reference: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Report.PeriodStart.Equal(time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("period start = %v, want 15 May", out.Report.PeriodStart)
	}
	if out.Report.TotalIncome.StringFixed(2) != "300.00" {
		t.Errorf("total income = %s, want 300.00", out.Report.TotalIncome)
	}
}

func TestMarkReportedIsTerminal(t *testing.T) {
	f := newFixture(t)

	generated, err := f.generate().Execute(context.Background(), GenerateReportInput{UserID: f.user.ID})
	if err != nil {
		t.Fatal(err)
	}

	out, err := f.markReported().Execute(context.Background(), MarkReportedInput{
		UserID:   f.user.ID,
		ReportID: generated.Report.ID,
		Notes:    "submitted via journal",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Report.IsReported() {
		t.Fatal("report not marked as reported")
	}
	if out.Report.Notes != "submitted via journal" {
		t.Errorf("notes = %q", out.Report.Notes)
	}

	// Marking again is rejected.
	_, err = f.markReported().Execute(context.Background(), MarkReportedInput{
		UserID:   f.user.ID,
		ReportID: generated.Report.ID,
	})
	if !errors.Is(err, domainerror.ErrUCReportAlreadyReported) {
		t.Errorf("expected ErrUCReportAlreadyReported, got %v", err)
	}

	// So is regenerating the period's figures.
	_, err = f.generate().Execute(context.Background(), GenerateReportInput{UserID: f.user.ID})
	if !errors.Is(err, domainerror.ErrUCReportAlreadyExists) {
		t.Errorf("expected ErrUCReportAlreadyExists, got %v", err)
	}
}

func TestMarkReportedUnknownReport(t *testing.T) {
	f := newFixture(t)

	_, err := f.markReported().Execute(context.Background(), MarkReportedInput{
		UserID:   f.user.ID,
		ReportID: f.user.ID, // arbitrary unknown id
	})
	if !errors.Is(err, domainerror.ErrUCReportNotFound) {
		t.Errorf("expected ErrUCReportNotFound, got %v", err)
	}
}

func TestListReports(t *testing.T) {
	f := newFixture(t)

	if _, err := f.generate().Execute(context.Background(), GenerateReportInput{UserID: f.user.ID}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.generate().Execute(context.Background(), GenerateReportInput{
		UserID:    f.user.ID,
		Reference: time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatal(err)
	}

	out, err := NewListReportsUseCase(f.reportRepo).Execute(context.Background(), ListReportsInput{UserID: f.user.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Reports) != 2 {
		t.Errorf("reports = %d, want 2", len(out.Reports))
	}
}
