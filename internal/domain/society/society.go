package society

import (
	"strings"

	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
)

// BillingCycle represents how often maintenance is billed
type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "MONTHLY"
	BillingCycleQuarterly BillingCycle = "QUARTERLY"
	BillingCycleYearly    BillingCycle = "YEARLY"
)

// IsValid checks if the cycle is a valid BillingCycle
func (b BillingCycle) IsValid() bool {
	switch b {
	case BillingCycleMonthly, BillingCycleQuarterly, BillingCycleYearly:
		return true
	}
	return false
}

// Society is the aggregate root for a residential society. It owns flats,
// users, expenses and maintenance payments; its default maintenance amount
// is the fallback for flats without an override and the basis for monthly
// expected-income figures.
type Society struct {
	shared.BaseAggregateRoot
	Name              string
	Address           string
	City              string
	State             string
	Pincode           string
	TotalFlats        int
	MaintenanceAmount valueobject.Money
	BillingCycle      BillingCycle
}

// NewSociety creates a new society
func NewSociety(name, address, city, state, pincode string, totalFlats int, maintenanceAmount valueobject.Money) (*Society, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 200 {
		return nil, shared.NewValidationError("Society name must be between 2 and 200 characters")
	}
	if len(strings.TrimSpace(address)) < 5 {
		return nil, shared.NewValidationError("Address must be at least 5 characters")
	}
	if len(pincode) != 6 {
		return nil, shared.NewValidationError("Pincode must be exactly 6 digits")
	}
	if totalFlats < 1 {
		return nil, shared.NewValidationError("Total flats must be at least 1")
	}
	if err := validateAmount(maintenanceAmount); err != nil {
		return nil, err
	}

	return &Society{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           strings.TrimSpace(address),
		City:              strings.TrimSpace(city),
		State:             strings.TrimSpace(state),
		Pincode:           pincode,
		TotalFlats:        totalFlats,
		MaintenanceAmount: maintenanceAmount,
		BillingCycle:      BillingCycleMonthly,
	}, nil
}

// Update changes the mutable society fields
func (s *Society) Update(name, address, city, state, pincode string, totalFlats int, maintenanceAmount valueobject.Money) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 200 {
		return shared.NewValidationError("Society name must be between 2 and 200 characters")
	}
	if len(strings.TrimSpace(address)) < 5 {
		return shared.NewValidationError("Address must be at least 5 characters")
	}
	if len(pincode) != 6 {
		return shared.NewValidationError("Pincode must be exactly 6 digits")
	}
	if totalFlats < 1 {
		return shared.NewValidationError("Total flats must be at least 1")
	}
	if err := validateAmount(maintenanceAmount); err != nil {
		return err
	}

	s.Name = name
	s.Address = strings.TrimSpace(address)
	s.City = strings.TrimSpace(city)
	s.State = strings.TrimSpace(state)
	s.Pincode = pincode
	s.TotalFlats = totalFlats
	s.MaintenanceAmount = maintenanceAmount
	s.Touch()
	return nil
}

// SetBillingCycle changes the billing cycle
func (s *Society) SetBillingCycle(cycle BillingCycle) error {
	if !cycle.IsValid() {
		return shared.NewValidationError("Billing cycle is not valid")
	}
	s.BillingCycle = cycle
	s.Touch()
	return nil
}

func validateAmount(m valueobject.Money) error {
	if m.IsNegative() {
		return shared.NewValidationError("Amount cannot be negative")
	}
	if !m.HasMaxTwoDecimals() {
		return shared.NewValidationError("Amount cannot have more than 2 decimal places")
	}
	return nil
}
