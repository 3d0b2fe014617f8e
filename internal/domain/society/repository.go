package society

import (
	"context"

	"github.com/google/uuid"
)

// SocietyRepository defines persistence operations for societies
type SocietyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Society, error)
	FindAll(ctx context.Context) ([]Society, error)
	Save(ctx context.Context, society *Society) error
	// Delete removes the society and cascades to its flats, users, expenses
	// and payments.
	Delete(ctx context.Context, id uuid.UUID) error
}

// FlatRepository defines persistence operations for flats
type FlatRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Flat, error)
	FindBySociety(ctx context.Context, societyID uuid.UUID) ([]Flat, error)
	// ExistsByNumber checks the (societyID, flatNumber, block) uniqueness
	// tuple. A nil block only matches flats without a block.
	ExistsByNumber(ctx context.Context, societyID uuid.UUID, flatNumber string, block *string) (bool, error)
	CountBySociety(ctx context.Context, societyID uuid.UUID) (int64, error)
	Save(ctx context.Context, flat *Flat) error
	Delete(ctx context.Context, id uuid.UUID) error
}
