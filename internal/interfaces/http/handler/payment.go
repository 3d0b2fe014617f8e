package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/societyhub/backend/internal/application/finance"
)

// PaymentHandler handles maintenance payment HTTP requests
type PaymentHandler struct {
	BaseHandler
	paymentService *finance.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *finance.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create records a single maintenance payment
func (h *PaymentHandler) Create(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	var req finance.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.paymentService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one payment
func (h *PaymentHandler) Get(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.paymentService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a filtered, paginated page of a society's payments
func (h *PaymentHandler) List(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	var filter finance.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.paymentService.List(c.Request.Context(), actor, societyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Update modifies a payment's amount, status, or payment details
func (h *PaymentHandler) Update(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req finance.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.paymentService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a payment
func (h *PaymentHandler) Delete(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// BulkCreate upserts payments for a whole billing period in one transaction.
// Re-issuing the same request updates amounts instead of failing, so a
// generation run can be retried safely.
func (h *PaymentHandler) BulkCreate(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	var req finance.BulkCreatePaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.paymentService.BulkCreate(c.Request.Context(), actor, societyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Defaulters lists the flats with unpaid dues for a billing period
func (h *PaymentHandler) Defaulters(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "Invalid month parameter")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year parameter")
		return
	}

	resp, err := h.paymentService.GetDefaulters(c.Request.Context(), actor, societyID, month, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
