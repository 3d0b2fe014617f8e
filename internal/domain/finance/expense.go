package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
)

// PaymentMode identifies how money changed hands.
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "CASH"
	PaymentModeCheque       PaymentMode = "CHEQUE"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentModeCard         PaymentMode = "CARD"
	PaymentModeOnline       PaymentMode = "ONLINE"
)

// IsValid reports whether the mode is one of the supported values.
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCheque, PaymentModeUPI,
		PaymentModeBankTransfer, PaymentModeCard, PaymentModeOnline:
		return true
	}
	return false
}

// Expense is a single outgoing payment recorded against a category.
type Expense struct {
	shared.SocietyAggregateRoot
	CategoryID    uuid.UUID
	Amount        valueobject.Money
	Description   string
	ExpenseDate   time.Time
	Vendor        *string
	PaymentMode   *PaymentMode
	TransactionID *string
	ReceiptURL    *string
	ApprovedBy    *uuid.UUID
}

// NewExpense records an expense. The category must belong to the same
// society; that referential check happens in the application layer.
func NewExpense(societyID, categoryID uuid.UUID, amount valueobject.Money, description string, expenseDate time.Time) (*Expense, error) {
	if societyID == uuid.Nil {
		return nil, shared.NewValidationError("Society is required")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewValidationError("Category is required")
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, shared.NewValidationError("Expense amount must be greater than zero")
	}
	description = strings.TrimSpace(description)
	if len(description) < 2 || len(description) > 500 {
		return nil, shared.NewValidationError("Description must be between 2 and 500 characters")
	}
	if expenseDate.IsZero() {
		return nil, shared.NewValidationError("Expense date is required")
	}

	return &Expense{
		SocietyAggregateRoot: shared.NewSocietyAggregateRoot(societyID),
		CategoryID:           categoryID,
		Amount:               amount,
		Description:          description,
		ExpenseDate:          expenseDate,
	}, nil
}

// Update changes the mutable fields of the expense.
func (e *Expense) Update(categoryID uuid.UUID, amount valueobject.Money, description string, expenseDate time.Time) error {
	if categoryID == uuid.Nil {
		return shared.NewValidationError("Category is required")
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return shared.NewValidationError("Expense amount must be greater than zero")
	}
	description = strings.TrimSpace(description)
	if len(description) < 2 || len(description) > 500 {
		return shared.NewValidationError("Description must be between 2 and 500 characters")
	}
	if expenseDate.IsZero() {
		return shared.NewValidationError("Expense date is required")
	}
	e.CategoryID = categoryID
	e.Amount = amount
	e.Description = description
	e.ExpenseDate = expenseDate
	e.Touch()
	return nil
}

// SetPaymentDetails attaches the optional payment metadata.
func (e *Expense) SetPaymentDetails(vendor *string, mode *PaymentMode, transactionID, receiptURL *string) error {
	if mode != nil && !mode.IsValid() {
		return shared.NewValidationError("Invalid payment mode")
	}
	e.Vendor = trimOptional(vendor)
	e.PaymentMode = mode
	e.TransactionID = trimOptional(transactionID)
	e.ReceiptURL = trimOptional(receiptURL)
	e.Touch()
	return nil
}

// Approve marks the expense as approved by the given user.
func (e *Expense) Approve(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewValidationError("Approver is required")
	}
	e.ApprovedBy = &userID
	e.Touch()
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
