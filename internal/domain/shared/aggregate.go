package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// SocietyAggregateRoot extends BaseAggregateRoot with society scoping.
// Every ledger record belongs to exactly one society; the SocietyID is the
// tenant boundary for all access checks.
type SocietyAggregateRoot struct {
	BaseAggregateRoot
	SocietyID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// NewSocietyAggregateRoot creates a new society-scoped aggregate root
func NewSocietyAggregateRoot(societyID uuid.UUID) SocietyAggregateRoot {
	return SocietyAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		SocietyID:         societyID,
	}
}

// NewSocietyAggregateRootWithCreator creates a new society-scoped aggregate root with creator info
func NewSocietyAggregateRootWithCreator(societyID, createdBy uuid.UUID) SocietyAggregateRoot {
	return SocietyAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		SocietyID:         societyID,
		CreatedBy:         &createdBy,
	}
}

// SetCreatedBy sets the creator user ID
func (s *SocietyAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	s.CreatedBy = &userID
}

// GetCreatedBy returns the creator user ID
func (s *SocietyAggregateRoot) GetCreatedBy() *uuid.UUID {
	return s.CreatedBy
}
