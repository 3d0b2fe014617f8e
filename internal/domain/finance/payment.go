package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
)

// PaymentStatus tracks the collection state of a maintenance payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
)

// IsValid reports whether the status is one of the supported values.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusPartial:
		return true
	}
	return false
}

const (
	minBillingYear = 2020
	maxBillingYear = 2100
)

// BillingPeriod is a calendar month a maintenance payment covers.
type BillingPeriod struct {
	Month int
	Year  int
}

// NewBillingPeriod validates and builds a billing period.
func NewBillingPeriod(month, year int) (BillingPeriod, error) {
	if month < 1 || month > 12 {
		return BillingPeriod{}, shared.NewValidationError("Month must be between 1 and 12")
	}
	if year < minBillingYear || year > maxBillingYear {
		return BillingPeriod{}, shared.NewValidationError(
			fmt.Sprintf("Year must be between %d and %d", minBillingYear, maxBillingYear))
	}
	return BillingPeriod{Month: month, Year: year}, nil
}

// Previous returns the billing period one month earlier.
func (p BillingPeriod) Previous() BillingPeriod {
	if p.Month == 1 {
		return BillingPeriod{Month: 12, Year: p.Year - 1}
	}
	return BillingPeriod{Month: p.Month - 1, Year: p.Year}
}

// String renders the period as YYYY-MM.
func (p BillingPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// MaintenancePayment is one flat's maintenance charge for one billing period.
// At most one payment exists per (flat, month, year), enforced at the storage
// layer.
type MaintenancePayment struct {
	shared.SocietyAggregateRoot
	FlatID        uuid.UUID
	Amount        valueobject.Money
	Period        BillingPeriod
	Status        PaymentStatus
	PaymentDate   *time.Time
	PaymentMode   *PaymentMode
	TransactionID *string
	Notes         *string
	RecordedBy    *uuid.UUID
}

// NewMaintenancePayment creates a payment in PENDING status unless another
// status is given.
func NewMaintenancePayment(societyID, flatID uuid.UUID, amount valueobject.Money, period BillingPeriod, status PaymentStatus) (*MaintenancePayment, error) {
	if societyID == uuid.Nil {
		return nil, shared.NewValidationError("Society is required")
	}
	if flatID == uuid.Nil {
		return nil, shared.NewValidationError("Flat is required")
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if _, err := NewBillingPeriod(period.Month, period.Year); err != nil {
		return nil, err
	}
	if status == "" {
		status = PaymentStatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewValidationError("Invalid payment status")
	}

	return &MaintenancePayment{
		SocietyAggregateRoot: shared.NewSocietyAggregateRoot(societyID),
		FlatID:               flatID,
		Amount:               amount,
		Period:               period,
		Status:               status,
	}, nil
}

// MarkPaid records the payment as collected.
func (p *MaintenancePayment) MarkPaid(paymentDate time.Time, mode *PaymentMode, transactionID *string) error {
	if paymentDate.IsZero() {
		return shared.NewValidationError("Payment date is required")
	}
	if mode != nil && !mode.IsValid() {
		return shared.NewValidationError("Invalid payment mode")
	}
	p.Status = PaymentStatusPaid
	p.PaymentDate = &paymentDate
	p.PaymentMode = mode
	p.TransactionID = trimOptional(transactionID)
	p.Touch()
	return nil
}

// SetStatus changes the collection status directly.
func (p *MaintenancePayment) SetStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Invalid payment status")
	}
	p.Status = status
	p.Touch()
	return nil
}

// SetAmount changes the charged amount.
func (p *MaintenancePayment) SetAmount(amount valueobject.Money) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	p.Amount = amount
	p.Touch()
	return nil
}

// SetNotes attaches free-form notes.
func (p *MaintenancePayment) SetNotes(notes *string) {
	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		if trimmed == "" {
			notes = nil
		} else {
			notes = &trimmed
		}
	}
	p.Notes = notes
	p.Touch()
}

// SetRecordedBy tracks which user recorded the payment.
func (p *MaintenancePayment) SetRecordedBy(userID uuid.UUID) {
	if userID == uuid.Nil {
		return
	}
	p.RecordedBy = &userID
	p.Touch()
}

// IsSettled reports whether the payment counts as collected.
func (p *MaintenancePayment) IsSettled() bool {
	return p.Status == PaymentStatusPaid
}
