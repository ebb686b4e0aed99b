package income

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/application/usecase/tax"
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

func (f *fakeIncomeRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Income, error) {
	for _, in := range f.incomes {
		if in.ID == id && in.UserID == userID {
			return in, nil
		}
	}
	return nil, domainerror.NewRecordError(
		domainerror.ErrCodeIncomeNotFound, "income record not found", domainerror.ErrIncomeNotFound)
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

type fakeCache struct {
	invalidations int
}

func (f *fakeCache) Get(_ context.Context, _ adapter.SummaryCacheKey) ([]byte, bool, error) {
	return nil, false, nil
}

func (f *fakeCache) Set(_ context.Context, _ adapter.SummaryCacheKey, _ []byte) error {
	return nil
}

func (f *fakeCache) InvalidateUser(_ context.Context, _ uuid.UUID) error {
	f.invalidations++
	return nil
}

func TestCreateIncome(t *testing.T) {
	repo := &fakeIncomeRepo{}
	cache := &fakeCache{}
	uc := NewCreateIncomeUseCase(repo, tax.DefaultRegistry(), cache)
	userID := uuid.New()

	out, err := uc.Execute(context.Background(), CreateIncomeInput{
		UserID:       userID,
		DateReceived: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(1500),
		Description:  "consulting invoice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Income.TaxYear != "2024-25" {
		t.Errorf("tax year = %s, want 2024-25", out.Income.TaxYear)
	}
	if out.Income.RulesetVersion != "2024-25-v1" {
		t.Errorf("ruleset version = %s, want 2024-25-v1", out.Income.RulesetVersion)
	}
	if cache.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidations)
	}
}

func TestCreateIncomeRecordsTaxSaved(t *testing.T) {
	repo := &fakeIncomeRepo{}
	uc := NewCreateIncomeUseCase(repo, tax.DefaultRegistry(), &fakeCache{})
	userID := uuid.New()
	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	taxSaved := decimal.NewFromInt(400)
	out, err := uc.Execute(context.Background(), CreateIncomeInput{
		UserID:       userID,
		DateReceived: date,
		Amount:       decimal.NewFromInt(1500),
		Description:  "consulting invoice",
		TaxSaved:     &taxSaved,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Income.TaxSaved == nil || out.Income.TaxSaved.StringFixed(2) != "400.00" {
		t.Errorf("tax saved = %v, want 400.00", out.Income.TaxSaved)
	}

	// A non-positive amount means nothing was put aside.
	zero := decimal.Zero
	out, err = uc.Execute(context.Background(), CreateIncomeInput{
		UserID:       userID,
		DateReceived: date,
		Amount:       decimal.NewFromInt(200),
		Description:  "small invoice",
		TaxSaved:     &zero,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Income.TaxSaved != nil {
		t.Errorf("tax saved = %v, want nil for zero input", out.Income.TaxSaved)
	}
}

func TestUpdateIncomeReplacesTaxSaved(t *testing.T) {
	repo := &fakeIncomeRepo{}
	userID := uuid.New()
	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	taxSaved := decimal.NewFromInt(400)
	create := NewCreateIncomeUseCase(repo, tax.DefaultRegistry(), &fakeCache{})
	created, err := create.Execute(context.Background(), CreateIncomeInput{
		UserID:       userID,
		DateReceived: date,
		Amount:       decimal.NewFromInt(1500),
		Description:  "consulting invoice",
		TaxSaved:     &taxSaved,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Updates are full replacements: omitting tax_saved clears it.
	update := NewUpdateIncomeUseCase(repo, tax.DefaultRegistry(), &fakeCache{})
	updated, err := update.Execute(context.Background(), UpdateIncomeInput{
		UserID:       userID,
		IncomeID:     created.Income.ID,
		DateReceived: date,
		Amount:       decimal.NewFromInt(1500),
		Description:  "consulting invoice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Income.TaxSaved != nil {
		t.Errorf("tax saved after omitting = %v, want nil", updated.Income.TaxSaved)
	}
}

func TestCreateIncomeBackdatedEntryLandsInItsTaxYear(t *testing.T) {
	repo := &fakeIncomeRepo{}
	uc := NewCreateIncomeUseCase(repo, tax.DefaultRegistry(), &fakeCache{})

	// 5 April 2024 is the last day of 2023-24 regardless of when it is entered.
	out, err := uc.Execute(context.Background(), CreateIncomeInput{
		UserID:       uuid.New(),
		DateReceived: time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(100),
		Description:  "late invoice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Income.TaxYear != "2023-24" {
		t.Errorf("tax year = %s, want 2023-24", out.Income.TaxYear)
	}
	if out.Income.RulesetVersion != "2023-24-v1" {
		t.Errorf("ruleset version = %s, want 2023-24-v1", out.Income.RulesetVersion)
	}
}

func TestCreateIncomeOutsideRegistryCoverage(t *testing.T) {
	uc := NewCreateIncomeUseCase(&fakeIncomeRepo{}, tax.DefaultRegistry(), &fakeCache{})

	_, err := uc.Execute(context.Background(), CreateIncomeInput{
		UserID:       uuid.New(),
		DateReceived: time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(100),
		Description:  "ancient invoice",
	})
	if !errors.Is(err, domainerror.ErrUnknownTaxYear) {
		t.Errorf("expected ErrUnknownTaxYear, got %v", err)
	}
}

func TestCreateIncomeValidation(t *testing.T) {
	uc := NewCreateIncomeUseCase(&fakeIncomeRepo{}, tax.DefaultRegistry(), &fakeCache{})
	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		amount      decimal.Decimal
		description string
		want        error
	}{
		{"zero amount", decimal.Zero, "x", domainerror.ErrInvalidAmount},
		{"negative amount", decimal.NewFromInt(-5), "x", domainerror.ErrInvalidAmount},
		{"empty description", decimal.NewFromInt(10), "", domainerror.ErrDescriptionRequired},
		{"description too long", decimal.NewFromInt(10), strings.Repeat("a", 256), domainerror.ErrDescriptionTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), CreateIncomeInput{
				UserID:       uuid.New(),
				DateReceived: date,
				Amount:       tt.amount,
				Description:  tt.description,
			})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUpdateIncomeRestampsTaxYear(t *testing.T) {
	repo := &fakeIncomeRepo{}
	cache := &fakeCache{}
	userID := uuid.New()

	create := NewCreateIncomeUseCase(repo, tax.DefaultRegistry(), cache)
	created, err := create.Execute(context.Background(), CreateIncomeInput{
		UserID:       userID,
		DateReceived: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(1500),
		Description:  "consulting invoice",
	})
	if err != nil {
		t.Fatal(err)
	}

	update := NewUpdateIncomeUseCase(repo, tax.DefaultRegistry(), cache)
	updated, err := update.Execute(context.Background(), UpdateIncomeInput{
		UserID:       userID,
		IncomeID:     created.Income.ID,
		DateReceived: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(1600),
		Description:  "corrected invoice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Income.TaxYear != "2023-24" {
		t.Errorf("tax year after move = %s, want 2023-24", updated.Income.TaxYear)
	}
	if updated.Income.RulesetVersion != "2023-24-v1" {
		t.Errorf("ruleset version after move = %s, want 2023-24-v1", updated.Income.RulesetVersion)
	}
	if cache.invalidations != 2 {
		t.Errorf("cache invalidations = %d, want 2", cache.invalidations)
	}
}

func TestUpdateIncomeScopedToOwner(t *testing.T) {
	repo := &fakeIncomeRepo{}
	owner := uuid.New()

	create := NewCreateIncomeUseCase(repo, tax.DefaultRegistry(), &fakeCache{})
	created, err := create.Execute(context.Background(), CreateIncomeInput{
		UserID:       owner,
		DateReceived: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(1500),
		Description:  "consulting invoice",
	})
	if err != nil {
		t.Fatal(err)
	}

	update := NewUpdateIncomeUseCase(repo, tax.DefaultRegistry(), &fakeCache{})
	_, err = update.Execute(context.Background(), UpdateIncomeInput{
		UserID:       uuid.New(), // someone else
		IncomeID:     created.Income.ID,
		DateReceived: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(1),
		Description:  "tampered",
	})
	if !errors.Is(err, domainerror.ErrIncomeNotFound) {
		t.Errorf("expected ErrIncomeNotFound for foreign record, got %v", err)
	}
}

func TestDeleteIncome(t *testing.T) {
	repo := &fakeIncomeRepo{}
	cache := &fakeCache{}
	userID := uuid.New()

	create := NewCreateIncomeUseCase(repo, tax.DefaultRegistry(), cache)
	created, err := create.Execute(context.Background(), CreateIncomeInput{
		UserID:       userID,
		DateReceived: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(1500),
		Description:  "consulting invoice",
	})
	if err != nil {
		t.Fatal(err)
	}

	del := NewDeleteIncomeUseCase(repo, cache)
	if err := del.Execute(context.Background(), DeleteIncomeInput{UserID: userID, IncomeID: created.Income.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.incomes) != 0 {
		t.Errorf("records after delete = %d, want 0", len(repo.incomes))
	}
	if cache.invalidations != 2 {
		t.Errorf("cache invalidations = %d, want 2", cache.invalidations)
	}

	if err := del.Execute(context.Background(), DeleteIncomeInput{UserID: userID, IncomeID: created.Income.ID}); !errors.Is(err, domainerror.ErrIncomeNotFound) {
		t.Errorf("expected ErrIncomeNotFound on double delete, got %v", err)
	}
}

func TestListIncomesFilteredByTaxYear(t *testing.T) {
	repo := &fakeIncomeRepo{}
	userID := uuid.New()
	create := NewCreateIncomeUseCase(repo, tax.DefaultRegistry(), &fakeCache{})

	for _, date := range []time.Time{
		time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC),
	} {
		if _, err := create.Execute(context.Background(), CreateIncomeInput{
			UserID:       userID,
			DateReceived: date,
			Amount:       decimal.NewFromInt(100),
			Description:  "invoice",
		}); err != nil {
			t.Fatal(err)
		}
	}

	list := NewListIncomesUseCase(repo)

	out, err := list.Execute(context.Background(), ListIncomesInput{UserID: userID, TaxYear: "2024-25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Incomes) != 2 {
		t.Errorf("2024-25 records = %d, want 2", len(out.Incomes))
	}

	all, err := list.Execute(context.Background(), ListIncomesInput{UserID: userID})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Incomes) != 3 {
		t.Errorf("all records = %d, want 3", len(all.Incomes))
	}

	if _, err := list.Execute(context.Background(), ListIncomesInput{UserID: userID, TaxYear: "nonsense"}); !errors.Is(err, domainerror.ErrInvalidTaxYearLabel) {
		t.Errorf("expected ErrInvalidTaxYearLabel, got %v", err)
	}
}
