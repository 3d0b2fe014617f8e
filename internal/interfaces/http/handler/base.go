package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/societyhub/backend/internal/domain/identity"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/logger"
	"github.com/societyhub/backend/internal/interfaces/http/dto"
	"github.com/societyhub/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common response utilities for HTTP handlers
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}

// requireActor returns the authenticated actor or writes a 401 and reports
// failure. Routes behind the auth middleware always have an actor; the
// check guards misconfigured route wiring.
func (h *BaseHandler) requireActor(c *gin.Context) (identity.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid, "Authentication required")
		return identity.Actor{}, false
	}
	return actor, true
}

// parseUUIDParam parses a UUID path parameter, writing a 400 on failure
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize, totalPages int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize, totalPages))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with an explicit status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// BindingError sends a 400 response for a failed bind, with per-field
// details when the failure came from struct validation.
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	if resp, ok := middleware.FormatValidationErrors(err, getRequestID(c)); ok {
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	h.BadRequest(c, "Invalid request body")
}

// HandleError converts domain errors to HTTP responses, defaulting unknown
// error types to 500. The error is attached to the gin context so the
// request log carries it.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.logDenial(c, domainErr)
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// logDenial records authorization denials at warn. Role denials and
// cross-society denials get distinct messages so audits can tell them apart.
func (h *BaseHandler) logDenial(c *gin.Context, domainErr *shared.DomainError) {
	var msg string
	switch domainErr.Code {
	case dto.ErrCodeUnauthorized:
		msg = "Operation denied: role not permitted"
	case dto.ErrCodeForbidden:
		msg = "Operation denied: outside actor's society"
	default:
		return
	}

	fields := []zap.Field{zap.String("code", domainErr.Code)}
	if actor, ok := middleware.GetActor(c); ok {
		fields = append(fields,
			zap.String("actor_id", actor.ID.String()),
			zap.String("role", string(actor.Role)),
		)
	}
	logger.GetGinLogger(c).Warn(msg, fields...)
}
