package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/societyhub/backend/internal/application/society"
)

// FlatHandler handles flat management HTTP requests
type FlatHandler struct {
	BaseHandler
	flatService *society.FlatService
}

// NewFlatHandler creates a new flat handler
func NewFlatHandler(flatService *society.FlatService) *FlatHandler {
	return &FlatHandler{flatService: flatService}
}

// Create adds a flat to a society
func (h *FlatHandler) Create(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	var req society.CreateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.flatService.Create(c.Request.Context(), actor, societyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one flat
func (h *FlatHandler) Get(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.flatService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a society's flats ordered by block and number
func (h *FlatHandler) List(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	resp, err := h.flatService.List(c.Request.Context(), actor, societyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update modifies a flat
func (h *FlatHandler) Update(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req society.UpdateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.flatService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a flat
func (h *FlatHandler) Delete(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.flatService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
