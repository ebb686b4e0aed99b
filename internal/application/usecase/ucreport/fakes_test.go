package ucreport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
)

// In-memory repository fakes for use case tests.

type fakeIncomeRepo struct {
	incomes []*entity.Income
}

func (f *fakeIncomeRepo) Create(_ context.Context, income *entity.Income) error {
	f.incomes = append(f.incomes, income)
	return nil
}

func (f *fakeIncomeRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Income, error) {
	for _, in := range f.incomes {
		if in.ID == id && in.UserID == userID {
			return in, nil
		}
	}
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

func (f *fakeIncomeRepo) SumByUserAndDateRange(_ context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, in := range f.incomes {
		if in.UserID == userID && !in.DateReceived.Before(from) && !in.DateReceived.After(to) {
			total = total.Add(in.Amount)
		}
	}
	return total, nil
}

func (f *fakeIncomeRepo) SumTaxSavedByUserAndDateRange(_ context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, in := range f.incomes {
		if in.UserID == userID && in.TaxSaved != nil && !in.DateReceived.Before(from) && !in.DateReceived.After(to) {
			total = total.Add(*in.TaxSaved)
		}
	}
	return total, nil
}

func (f *fakeIncomeRepo) Update(_ context.Context, income *entity.Income) error {
	for i, in := range f.incomes {
		if in.ID == income.ID {
			f.incomes[i] = income
			return nil
		}
	}
	return domainerror.ErrIncomeNotFound
}

func (f *fakeIncomeRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, in := range f.incomes {
		if in.ID == id && in.UserID == userID {
			f.incomes = append(f.incomes[:i], f.incomes[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrIncomeNotFound
}

type fakeExpenseRepo struct {
	expenses []*entity.Expense
}

func (f *fakeExpenseRepo) Create(_ context.Context, expense *entity.Expense) error {
	f.expenses = append(f.expenses, expense)
	return nil
}

func (f *fakeExpenseRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Expense, error) {
	for _, ex := range f.expenses {
		if ex.ID == id && ex.UserID == userID {
			return ex, nil
		}
	}
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

func (f *fakeExpenseRepo) SumByUserAndDateRange(_ context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, ex := range f.expenses {
		if ex.UserID == userID && !ex.DatePaid.Before(from) && !ex.DatePaid.After(to) {
			total = total.Add(ex.Amount)
		}
	}
	return total, nil
}

func (f *fakeExpenseRepo) Update(_ context.Context, expense *entity.Expense) error {
	for i, ex := range f.expenses {
		if ex.ID == expense.ID {
			f.expenses[i] = expense
			return nil
		}
	}
	return domainerror.ErrExpenseNotFound
}

func (f *fakeExpenseRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, ex := range f.expenses {
		if ex.ID == id && ex.UserID == userID {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrExpenseNotFound
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(context.Background(), email)
	return err == nil, nil
}

func (f *fakeUserRepo) FindWithTradingStartDate(_ context.Context) ([]*entity.User, error) {
	var users []*entity.User
	for _, u := range f.users {
		if u.TradingStartDate != nil {
			users = append(users, u)
		}
	}
	return users, nil
}

type fakeUCReportRepo struct {
	reports []*entity.UCReport
}

func (f *fakeUCReportRepo) Create(_ context.Context, report *entity.UCReport) error {
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeUCReportRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.UCReport, error) {
	for _, r := range f.reports {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeUCReportRepo) FindByUserAndPeriodStart(_ context.Context, userID uuid.UUID, periodStart time.Time) (*entity.UCReport, error) {
	for _, r := range f.reports {
		if r.UserID == userID && r.PeriodStart.Equal(periodStart) {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeUCReportRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.UCReport, error) {
	var out []*entity.UCReport
	for _, r := range f.reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeUCReportRepo) Update(_ context.Context, report *entity.UCReport) error {
	for i, r := range f.reports {
		if r.ID == report.ID {
			f.reports[i] = report
			return nil
		}
	}
	return domainerror.ErrUCReportNotFound
}
