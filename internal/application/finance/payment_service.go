package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/societyhub/backend/internal/domain/finance"
	"github.com/societyhub/backend/internal/domain/identity"
	"github.com/societyhub/backend/internal/domain/report"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
	"github.com/societyhub/backend/internal/domain/society"
)

// PaymentService provides application-level maintenance payment operations
type PaymentService struct {
	paymentRepo finance.MaintenancePaymentRepository
	flatRepo    society.FlatRepository
	reportRepo  report.FinanceReportRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo finance.MaintenancePaymentRepository,
	flatRepo society.FlatRepository,
	reportRepo report.FinanceReportRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		flatRepo:    flatRepo,
		reportRepo:  reportRepo,
	}
}

// PaymentResponse represents a maintenance payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	SocietyID     uuid.UUID       `json:"society_id"`
	FlatID        uuid.UUID       `json:"flat_id"`
	Amount        decimal.Decimal `json:"amount"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Status        string          `json:"status"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	PaymentMode   *string         `json:"payment_mode,omitempty"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	RecordedBy    *uuid.UUID      `json:"recorded_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreatePaymentRequest represents a request to record a single payment
type CreatePaymentRequest struct {
	FlatID        uuid.UUID       `json:"flat_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Month         int             `json:"month" binding:"required"`
	Year          int             `json:"year" binding:"required"`
	Status        string          `json:"status"`
	PaymentDate   *time.Time      `json:"payment_date"`
	PaymentMode   *string         `json:"payment_mode"`
	TransactionID *string         `json:"transaction_id"`
	Notes         *string         `json:"notes"`
}

// UpdatePaymentRequest represents a request to update a payment
type UpdatePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Status        string          `json:"status" binding:"required"`
	PaymentDate   *time.Time      `json:"payment_date"`
	PaymentMode   *string         `json:"payment_mode"`
	TransactionID *string         `json:"transaction_id"`
	Notes         *string         `json:"notes"`
}

// BulkCreatePaymentsRequest represents a request to upsert payments for a
// whole billing period in one transaction
type BulkCreatePaymentsRequest struct {
	Month    int               `json:"month" binding:"required"`
	Year     int               `json:"year" binding:"required"`
	Payments []BulkPaymentItem `json:"payments" binding:"required,min=1,dive"`
}

// BulkPaymentItem is one (flat, amount) pair of a bulk request
type BulkPaymentItem struct {
	FlatID uuid.UUID       `json:"flat_id" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// BulkCreatePaymentsResponse reports how the bulk write landed
type BulkCreatePaymentsResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// PaymentListFilter defines filtering options for payment list queries
type PaymentListFilter struct {
	FlatID   *uuid.UUID `form:"flat_id"`
	Month    *int       `form:"month"`
	Year     *int       `form:"year"`
	Status   *string    `form:"status"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// Create records a single payment. The society is derived from the flat, and
// a payment for the same (flat, month, year) must not already exist. Unlike
// BulkCreate, re-issuing the same single create fails with a conflict.
func (s *PaymentService) Create(ctx context.Context, actor identity.Actor, req CreatePaymentRequest) (*PaymentResponse, error) {
	flat, err := s.findFlat(ctx, req.FlatID)
	if err != nil {
		return nil, err
	}
	if err := identity.Authorize(actor, identity.OpPaymentCreate, flat.SocietyID); err != nil {
		return nil, err
	}

	period, err := finance.NewBillingPeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	exists, err := s.paymentRepo.ExistsForPeriod(ctx, flat.ID, period)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_PAYMENT",
			"A payment for this flat and billing period already exists")
	}

	payment, err := finance.NewMaintenancePayment(flat.SocietyID, flat.ID,
		valueobject.NewMoneyINR(req.Amount), period, finance.PaymentStatus(req.Status))
	if err != nil {
		return nil, err
	}
	if req.PaymentDate != nil {
		if err := payment.MarkPaid(*req.PaymentDate, toPaymentMode(req.PaymentMode), req.TransactionID); err != nil {
			return nil, err
		}
		// MarkPaid forces PAID; an explicit status on the request wins.
		if req.Status != "" {
			if err := payment.SetStatus(finance.PaymentStatus(req.Status)); err != nil {
				return nil, err
			}
		}
	}
	payment.SetNotes(req.Notes)
	payment.SetRecordedBy(actor.ID)

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// Get returns a payment by ID
func (s *PaymentService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.findPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.Authorize(actor, identity.OpPaymentRead, payment.SocietyID); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// List returns a society's payments with optional flat, period and status
// filters
func (s *PaymentService) List(ctx context.Context, actor identity.Actor, societyID uuid.UUID, filter PaymentListFilter) (shared.Paginated[PaymentResponse], error) {
	var empty shared.Paginated[PaymentResponse]
	if err := identity.Authorize(actor, identity.OpPaymentRead, societyID); err != nil {
		return empty, err
	}

	domainFilter := finance.PaymentFilter{Filter: shared.DefaultFilter(), FlatID: filter.FlatID}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Month != nil && filter.Year != nil {
		period, err := finance.NewBillingPeriod(*filter.Month, *filter.Year)
		if err != nil {
			return empty, err
		}
		domainFilter.Period = &period
	}
	if filter.Status != nil {
		status := finance.PaymentStatus(*filter.Status)
		if !status.IsValid() {
			return empty, shared.NewValidationError("Invalid payment status")
		}
		domainFilter.Status = &status
	}

	page, err := s.paymentRepo.FindBySociety(ctx, societyID, domainFilter)
	if err != nil {
		return empty, err
	}
	responses := make([]PaymentResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = *toPaymentResponse(&page.Items[i])
	}
	return shared.Paginated[PaymentResponse]{
		Items:      responses,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// Update updates a payment's amount, status and payment details
func (s *PaymentService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.findPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.Authorize(actor, identity.OpPaymentUpdate, payment.SocietyID); err != nil {
		return nil, err
	}

	if err := payment.SetAmount(valueobject.NewMoneyINR(req.Amount)); err != nil {
		return nil, err
	}
	if err := payment.SetStatus(finance.PaymentStatus(req.Status)); err != nil {
		return nil, err
	}
	mode := toPaymentMode(req.PaymentMode)
	if mode != nil && !mode.IsValid() {
		return nil, shared.NewValidationError("Invalid payment mode")
	}
	payment.PaymentDate = req.PaymentDate
	payment.PaymentMode = mode
	payment.TransactionID = req.TransactionID
	payment.SetNotes(req.Notes)

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// Delete removes a payment. Treasurer or admin only.
func (s *PaymentService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	payment, err := s.findPayment(ctx, id)
	if err != nil {
		return err
	}
	if err := identity.Authorize(actor, identity.OpPaymentDelete, payment.SocietyID); err != nil {
		return err
	}
	return s.paymentRepo.Delete(ctx, id)
}

// BulkCreate upserts payments for one billing period inside a single
// transaction. Pairs whose (flat, month, year) already exist get their amount
// updated; new pairs are inserted as PENDING recorded by the actor. Either
// every pair lands or none do, so re-issuing the same request converges to
// the same ledger state.
func (s *PaymentService) BulkCreate(ctx context.Context, actor identity.Actor, societyID uuid.UUID, req BulkCreatePaymentsRequest) (*BulkCreatePaymentsResponse, error) {
	if err := identity.Authorize(actor, identity.OpPaymentBulkCreate, societyID); err != nil {
		return nil, err
	}

	period, err := finance.NewBillingPeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	if len(req.Payments) == 0 {
		return nil, shared.NewValidationError("At least one payment is required")
	}

	payments := make([]*finance.MaintenancePayment, 0, len(req.Payments))
	seen := make(map[uuid.UUID]bool, len(req.Payments))
	for _, item := range req.Payments {
		if seen[item.FlatID] {
			return nil, shared.NewValidationError("Duplicate flat in bulk payment request")
		}
		seen[item.FlatID] = true

		flat, err := s.findFlat(ctx, item.FlatID)
		if err != nil {
			return nil, err
		}
		if flat.SocietyID != societyID {
			return nil, shared.ErrInvalidReference
		}

		payment, err := finance.NewMaintenancePayment(societyID, flat.ID,
			valueobject.NewMoneyINR(item.Amount), period, finance.PaymentStatusPending)
		if err != nil {
			return nil, err
		}
		payment.SetRecordedBy(actor.ID)
		payments = append(payments, payment)
	}

	result, err := s.paymentRepo.BulkUpsert(ctx, payments)
	if err != nil {
		return nil, err
	}
	return &BulkCreatePaymentsResponse{Created: result.Created, Updated: result.Updated}, nil
}

// GetDefaulters lists the PENDING and OVERDUE payments of a billing period,
// ordered by flat number
func (s *PaymentService) GetDefaulters(ctx context.Context, actor identity.Actor, societyID uuid.UUID, month, year int) ([]report.DefaulterRecord, error) {
	if err := identity.Authorize(actor, identity.OpPaymentRead, societyID); err != nil {
		return nil, err
	}
	period, err := finance.NewBillingPeriod(month, year)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.FindDefaulters(ctx, societyID, period)
}

func (s *PaymentService) findFlat(ctx context.Context, id uuid.UUID) (*society.Flat, error) {
	flat, err := s.flatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flat == nil {
		return nil, shared.NewNotFoundError("Flat not found")
	}
	return flat, nil
}

func (s *PaymentService) findPayment(ctx context.Context, id uuid.UUID) (*finance.MaintenancePayment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.NewNotFoundError("Payment not found")
	}
	return payment, nil
}

func toPaymentResponse(p *finance.MaintenancePayment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:            p.ID,
		SocietyID:     p.SocietyID,
		FlatID:        p.FlatID,
		Amount:        p.Amount.Amount(),
		Month:         p.Period.Month,
		Year:          p.Period.Year,
		Status:        string(p.Status),
		PaymentDate:   p.PaymentDate,
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
		RecordedBy:    p.RecordedBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.PaymentMode != nil {
		mode := string(*p.PaymentMode)
		resp.PaymentMode = &mode
	}
	return resp
}
