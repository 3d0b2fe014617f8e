package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/societyhub/backend/internal/application/society"
)

// SocietyHandler handles society management HTTP requests
type SocietyHandler struct {
	BaseHandler
	societyService *society.SocietyService
}

// NewSocietyHandler creates a new society handler
func NewSocietyHandler(societyService *society.SocietyService) *SocietyHandler {
	return &SocietyHandler{societyService: societyService}
}

// Create registers a new society
func (h *SocietyHandler) Create(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	var req society.CreateSocietyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.societyService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one society
func (h *SocietyHandler) Get(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	resp, err := h.societyService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns the societies visible to the actor
func (h *SocietyHandler) List(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	resp, err := h.societyService.List(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update modifies a society's profile
func (h *SocietyHandler) Update(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	var req society.UpdateSocietyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.societyService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a society and its dependent records
func (h *SocietyHandler) Delete(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	if err := h.societyService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
