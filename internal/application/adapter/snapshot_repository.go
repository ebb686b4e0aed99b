// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/domain/entity"
)

// SnapshotRepository defines the interface for tax snapshot persistence
// operations. Snapshots are write-once: there is no update or delete.
type SnapshotRepository interface {
	// Create stores a new tax snapshot.
	Create(ctx context.Context, snapshot *entity.TaxSnapshot) error

	// FindByID retrieves a snapshot by its ID, scoped to the user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.TaxSnapshot, error)

	// FindByUser retrieves all snapshots for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TaxSnapshot, error)

	// ExistsByUserAndTaxYear checks whether the user already holds a
	// snapshot for the tax year.
	ExistsByUserAndTaxYear(ctx context.Context, userID uuid.UUID, taxYear string) (bool, error)
}
