package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/societyhub/backend/internal/domain/finance"
	"github.com/societyhub/backend/internal/domain/identity"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
)

// ExpenseService provides application-level expense and category operations
type ExpenseService struct {
	categoryRepo finance.ExpenseCategoryRepository
	expenseRepo  finance.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	categoryRepo finance.ExpenseCategoryRepository,
	expenseRepo finance.ExpenseRepository,
) *ExpenseService {
	return &ExpenseService{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

// ===================== Category Operations =====================

// CategoryResponse represents an expense category in API responses
type CategoryResponse struct {
	ID            uuid.UUID        `json:"id"`
	SocietyID     uuid.UUID        `json:"society_id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Color         string           `json:"color,omitempty"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget,omitempty"`
	IsDefault     bool             `json:"is_default"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Color         string           `json:"color"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget"`
}

// ListCategories returns a society's categories, seeding the default set the
// first time a society with no categories is read. Seeding is idempotent: the
// result is always re-read after the insert so a concurrent seeder cannot
// cause duplicates in the response.
func (s *ExpenseService) ListCategories(ctx context.Context, actor identity.Actor, societyID uuid.UUID) ([]CategoryResponse, error) {
	if err := identity.Authorize(actor, identity.OpExpenseRead, societyID); err != nil {
		return nil, err
	}

	count, err := s.categoryRepo.CountBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		defaults, err := finance.DefaultCategories(societyID)
		if err != nil {
			return nil, err
		}
		// A concurrent seeder may win the (society, name) unique constraint
		// race; the conflict is swallowed and the fresh read below returns
		// whichever batch landed.
		if err := s.categoryRepo.SaveAll(ctx, defaults); err != nil && !shared.IsKind(err, "CONFLICT") {
			return nil, err
		}
	}

	categories, err := s.categoryRepo.FindBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *toCategoryResponse(&categories[i])
	}
	return responses, nil
}

// CreateCategory adds a custom category to a society
func (s *ExpenseService) CreateCategory(ctx context.Context, actor identity.Actor, societyID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	if err := identity.Authorize(actor, identity.OpExpenseCreate, societyID); err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, societyID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("A category with this name already exists")
	}

	category, err := finance.NewExpenseCategory(societyID, req.Name, req.Color)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := category.Update(req.Name, req.Description, req.Color); err != nil {
			return nil, err
		}
	}
	if req.MonthlyBudget != nil {
		if err := category.SetMonthlyBudget(valueobject.NewMoneyINR(*req.MonthlyBudget)); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ===================== Expense Operations =====================

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	SocietyID     uuid.UUID       `json:"society_id"`
	CategoryID    uuid.UUID       `json:"category_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	ExpenseDate   time.Time       `json:"expense_date"`
	Vendor        *string         `json:"vendor,omitempty"`
	PaymentMode   *string         `json:"payment_mode,omitempty"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	ReceiptURL    *string         `json:"receipt_url,omitempty"`
	ApprovedBy    *uuid.UUID      `json:"approved_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	CategoryID    uuid.UUID       `json:"category_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	ExpenseDate   time.Time       `json:"expense_date" binding:"required"`
	Vendor        *string         `json:"vendor"`
	PaymentMode   *string         `json:"payment_mode"`
	TransactionID *string         `json:"transaction_id"`
	ReceiptURL    *string         `json:"receipt_url"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	CategoryID    uuid.UUID       `json:"category_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	ExpenseDate   time.Time       `json:"expense_date" binding:"required"`
	Vendor        *string         `json:"vendor"`
	PaymentMode   *string         `json:"payment_mode"`
	TransactionID *string         `json:"transaction_id"`
	ReceiptURL    *string         `json:"receipt_url"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	CategoryID *uuid.UUID `form:"category_id"`
	StartDate  *time.Time `form:"start_date"`
	EndDate    *time.Time `form:"end_date"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// CreateExpense records an expense. The category must belong to the target
// society; the recording user becomes the approver.
func (s *ExpenseService) CreateExpense(ctx context.Context, actor identity.Actor, societyID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if err := identity.Authorize(actor, identity.OpExpenseCreate, societyID); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, societyID, req.CategoryID); err != nil {
		return nil, err
	}

	expense, err := finance.NewExpense(societyID, req.CategoryID,
		valueobject.NewMoneyINR(req.Amount), req.Description, req.ExpenseDate)
	if err != nil {
		return nil, err
	}
	if err := expense.SetPaymentDetails(req.Vendor, toPaymentMode(req.PaymentMode), req.TransactionID, req.ReceiptURL); err != nil {
		return nil, err
	}
	if err := expense.Approve(actor.ID); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetExpense returns an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, actor identity.Actor, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.Authorize(actor, identity.OpExpenseRead, expense.SocietyID); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses returns a society's expenses, optionally filtered by category
// and an inclusive date range. Absent bounds are unbounded on that side.
func (s *ExpenseService) ListExpenses(ctx context.Context, actor identity.Actor, societyID uuid.UUID, filter ExpenseListFilter) (shared.Paginated[ExpenseResponse], error) {
	var empty shared.Paginated[ExpenseResponse]
	if err := identity.Authorize(actor, identity.OpExpenseRead, societyID); err != nil {
		return empty, err
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return empty, shared.NewValidationError("End date cannot be before start date")
	}

	domainFilter := finance.ExpenseFilter{Filter: shared.DefaultFilter(), CategoryID: filter.CategoryID}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	page, err := s.expenseRepo.FindBySociety(ctx, societyID, domainFilter)
	if err != nil {
		return empty, err
	}

	responses := make([]ExpenseResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = *toExpenseResponse(&page.Items[i])
	}
	return shared.Paginated[ExpenseResponse]{
		Items:      responses,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// UpdateExpense updates an expense, re-validating the category reference
func (s *ExpenseService) UpdateExpense(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.Authorize(actor, identity.OpExpenseUpdate, expense.SocietyID); err != nil {
		return nil, err
	}

	if req.CategoryID != expense.CategoryID {
		if err := s.checkCategory(ctx, expense.SocietyID, req.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := expense.Update(req.CategoryID, valueobject.NewMoneyINR(req.Amount), req.Description, req.ExpenseDate); err != nil {
		return nil, err
	}
	if err := expense.SetPaymentDetails(req.Vendor, toPaymentMode(req.PaymentMode), req.TransactionID, req.ReceiptURL); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return err
	}
	if err := identity.Authorize(actor, identity.OpExpenseDelete, expense.SocietyID); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}

// checkCategory verifies the category exists and belongs to the society.
func (s *ExpenseService) checkCategory(ctx context.Context, societyID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return shared.NewNotFoundError("Category not found")
	}
	if category.SocietyID != societyID {
		return shared.ErrInvalidReference
	}
	return nil
}

func (s *ExpenseService) findExpense(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewNotFoundError("Expense not found")
	}
	return expense, nil
}

func toPaymentMode(s *string) *finance.PaymentMode {
	if s == nil || *s == "" {
		return nil
	}
	mode := finance.PaymentMode(*s)
	return &mode
}

func toCategoryResponse(c *finance.ExpenseCategory) *CategoryResponse {
	resp := &CategoryResponse{
		ID:          c.ID,
		SocietyID:   c.SocietyID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		IsDefault:   c.IsDefault,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.MonthlyBudget != nil {
		budget := c.MonthlyBudget.Amount()
		resp.MonthlyBudget = &budget
	}
	return resp
}

func toExpenseResponse(e *finance.Expense) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:            e.ID,
		SocietyID:     e.SocietyID,
		CategoryID:    e.CategoryID,
		Amount:        e.Amount.Amount(),
		Description:   e.Description,
		ExpenseDate:   e.ExpenseDate,
		Vendor:        e.Vendor,
		TransactionID: e.TransactionID,
		ReceiptURL:    e.ReceiptURL,
		ApprovedBy:    e.ApprovedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.PaymentMode != nil {
		mode := string(*e.PaymentMode)
		resp.PaymentMode = &mode
	}
	return resp
}
