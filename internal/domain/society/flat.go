package society

import (
	"strings"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
)

// Flat is a unit within a society. The (SocietyID, FlatNumber, Block) tuple
// is unique; a missing block is its own group. SocietyID is immutable after
// creation.
type Flat struct {
	shared.BaseAggregateRoot
	SocietyID  uuid.UUID
	FlatNumber string
	Block      *string
	Floor      *int
	SqFeet     *int
	// MaintenanceAmount overrides the society default when set.
	MaintenanceAmount *valueobject.Money
	OwnerName         string
	OwnerPhone        string
	OwnerEmail        string
	IsRented          bool
	TenantName        string
	TenantPhone       string
}

// NewFlat creates a new flat in the given society
func NewFlat(societyID uuid.UUID, flatNumber string, block *string) (*Flat, error) {
	flatNumber = strings.TrimSpace(flatNumber)
	if flatNumber == "" {
		return nil, shared.NewValidationError("Flat number cannot be empty")
	}
	if len(flatNumber) > 50 {
		return nil, shared.NewValidationError("Flat number cannot exceed 50 characters")
	}
	if block != nil {
		trimmed := strings.TrimSpace(*block)
		if trimmed == "" || len(trimmed) > 50 {
			return nil, shared.NewValidationError("Block must be between 1 and 50 characters")
		}
		block = &trimmed
	}
	if societyID == uuid.Nil {
		return nil, shared.NewValidationError("Society ID cannot be empty")
	}

	return &Flat{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SocietyID:         societyID,
		FlatNumber:        flatNumber,
		Block:             block,
	}, nil
}

// SetMaintenanceOverride sets the per-flat maintenance amount override
func (f *Flat) SetMaintenanceOverride(amount valueobject.Money) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	f.MaintenanceAmount = &amount
	f.Touch()
	return nil
}

// ClearMaintenanceOverride removes the override, falling back to the society default
func (f *Flat) ClearMaintenanceOverride() {
	f.MaintenanceAmount = nil
	f.Touch()
}

// EffectiveMaintenance returns the flat override when present, otherwise the
// society default.
func (f *Flat) EffectiveMaintenance(societyDefault valueobject.Money) valueobject.Money {
	if f.MaintenanceAmount != nil {
		return *f.MaintenanceAmount
	}
	return societyDefault
}

// SetOwner sets the owner contact details
func (f *Flat) SetOwner(name, phone, email string) error {
	if name != "" && (len(name) < 2 || len(name) > 100) {
		return shared.NewValidationError("Owner name must be between 2 and 100 characters")
	}
	if phone != "" && len(phone) != 10 {
		return shared.NewValidationError("Owner phone must be exactly 10 digits")
	}
	f.OwnerName = strings.TrimSpace(name)
	f.OwnerPhone = phone
	f.OwnerEmail = strings.ToLower(strings.TrimSpace(email))
	f.Touch()
	return nil
}

// SetTenant marks the flat as rented with tenant contact details
func (f *Flat) SetTenant(name, phone string) error {
	if name != "" && (len(name) < 2 || len(name) > 100) {
		return shared.NewValidationError("Tenant name must be between 2 and 100 characters")
	}
	if phone != "" && len(phone) != 10 {
		return shared.NewValidationError("Tenant phone must be exactly 10 digits")
	}
	f.IsRented = name != ""
	f.TenantName = strings.TrimSpace(name)
	f.TenantPhone = phone
	f.Touch()
	return nil
}

// SetNumber changes the flat number and block. Uniqueness within the society
// is enforced at the storage layer.
func (f *Flat) SetNumber(flatNumber string, block *string) error {
	flatNumber = strings.TrimSpace(flatNumber)
	if flatNumber == "" || len(flatNumber) > 50 {
		return shared.NewValidationError("Flat number must be between 1 and 50 characters")
	}
	if block != nil {
		trimmed := strings.TrimSpace(*block)
		if trimmed == "" || len(trimmed) > 50 {
			return shared.NewValidationError("Block must be between 1 and 50 characters")
		}
		block = &trimmed
	}
	f.FlatNumber = flatNumber
	f.Block = block
	f.Touch()
	return nil
}
