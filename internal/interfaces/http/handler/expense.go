package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/societyhub/backend/internal/application/finance"
)

// ExpenseHandler handles expense and category HTTP requests
type ExpenseHandler struct {
	BaseHandler
	expenseService *finance.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *finance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ListCategories returns a society's expense categories, seeding the default
// set on first read
func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	resp, err := h.expenseService.ListCategories(c.Request.Context(), actor, societyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CreateCategory adds a custom expense category
func (h *ExpenseHandler) CreateCategory(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	var req finance.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.expenseService.CreateCategory(c.Request.Context(), actor, societyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Create records an expense against a society category
func (h *ExpenseHandler) Create(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	var req finance.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.expenseService.CreateExpense(c.Request.Context(), actor, societyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.expenseService.GetExpense(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a filtered, paginated page of a society's expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	var filter finance.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.expenseService.ListExpenses(c.Request.Context(), actor, societyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Update replaces an expense's details
func (h *ExpenseHandler) Update(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req finance.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.expenseService.UpdateExpense(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
