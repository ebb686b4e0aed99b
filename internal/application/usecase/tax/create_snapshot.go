// Package tax contains the tax calculation engine and tax-related use cases.
package tax

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/domain/valueobject"
)

// CreateSnapshotInput represents the input for taking a tax year snapshot.
type CreateSnapshotInput struct {
	UserID uuid.UUID
	// TaxYear is an optional "YYYY-YY" label; empty means the tax year
	// containing today.
	TaxYear string
}

// CreateSnapshotOutput represents the output of taking a snapshot.
type CreateSnapshotOutput struct {
	Snapshot *entity.TaxSnapshot
}

// CreateSnapshotUseCase takes a write-once, point-in-time record of a tax
// year's figures and the exact ruleset used to compute them. Snapshots are
// never recomputed, even after the registry changes.
type CreateSnapshotUseCase struct {
	incomeRepo   adapter.IncomeRepository
	expenseRepo  adapter.ExpenseRepository
	snapshotRepo adapter.SnapshotRepository
	registry     *Registry
	now          func() time.Time
}

// NewCreateSnapshotUseCase creates a new CreateSnapshotUseCase instance.
func NewCreateSnapshotUseCase(
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	snapshotRepo adapter.SnapshotRepository,
	registry *Registry,
) *CreateSnapshotUseCase {
	return &CreateSnapshotUseCase{
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		snapshotRepo: snapshotRepo,
		registry:     registry,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Execute computes the tax year figures and stores them as a snapshot. One
// snapshot per (user, tax year); a second attempt is rejected.
func (uc *CreateSnapshotUseCase) Execute(ctx context.Context, input CreateSnapshotInput) (*CreateSnapshotOutput, error) {
	label := input.TaxYear
	if label == "" {
		label = valueobject.TaxYearFromDate(uc.now()).Label()
	}

	taxYear, err := valueobject.ParseTaxYear(label)
	if err != nil {
		return nil, err
	}

	ruleset, err := uc.registry.RulesetFor(label)
	if err != nil {
		return nil, err
	}

	exists, err := uc.snapshotRepo.ExistsByUserAndTaxYear(ctx, input.UserID, label)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing snapshot: %w", err)
	}
	if exists {
		return nil, domainerror.NewTaxError(
			domainerror.ErrCodeSnapshotAlreadyExists,
			fmt.Sprintf("snapshot already exists for tax year %s", label),
			domainerror.ErrSnapshotAlreadyExists,
		)
	}

	totalIncome, err := uc.incomeRepo.SumByUserAndDateRange(ctx, input.UserID, taxYear.Start(), taxYear.End())
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}
	totalExpenses, err := uc.expenseRepo.SumByUserAndDateRange(ctx, input.UserID, taxYear.Start(), taxYear.End())
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	netProfit := totalIncome.Sub(totalExpenses)
	taxableProfit := netProfit
	if taxableProfit.Sign() < 0 {
		taxableProfit = decimal.Zero
	}
	breakdown := TotalTax(taxableProfit, ruleset)

	// The full ruleset travels with the snapshot so the figures stay
	// explainable after the registry moves on.
	rulesetData, err := json.Marshal(ruleset)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize ruleset: %w", err)
	}

	snapshot := entity.NewTaxSnapshot(
		input.UserID,
		label,
		taxYear.Start(), taxYear.End(),
		totalIncome.Round(2), totalExpenses.Round(2), netProfit.Round(2),
		breakdown.IncomeTax, breakdown.NIClass2, breakdown.NIClass4, breakdown.Total,
		ruleset.Version, string(rulesetData),
	)

	if err := uc.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}

	return &CreateSnapshotOutput{Snapshot: snapshot}, nil
}
