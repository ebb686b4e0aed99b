// Package tax contains the tax calculation engine and tax-related use cases.
package tax

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/domain/entity"
)

// ListSnapshotsInput represents the input for listing tax snapshots.
type ListSnapshotsInput struct {
	UserID uuid.UUID
}

// ListSnapshotsOutput represents the output of listing tax snapshots.
type ListSnapshotsOutput struct {
	Snapshots []*entity.TaxSnapshot
}

// ListSnapshotsUseCase handles listing a user's tax snapshots.
type ListSnapshotsUseCase struct {
	snapshotRepo adapter.SnapshotRepository
}

// NewListSnapshotsUseCase creates a new ListSnapshotsUseCase instance.
func NewListSnapshotsUseCase(snapshotRepo adapter.SnapshotRepository) *ListSnapshotsUseCase {
	return &ListSnapshotsUseCase{snapshotRepo: snapshotRepo}
}

// Execute retrieves the user's snapshots, newest first.
func (uc *ListSnapshotsUseCase) Execute(ctx context.Context, input ListSnapshotsInput) (*ListSnapshotsOutput, error) {
	snapshots, err := uc.snapshotRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return &ListSnapshotsOutput{Snapshots: snapshots}, nil
}
