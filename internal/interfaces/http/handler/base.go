package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	appidentity "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/identity"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/logger"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/persistence"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// csvContentType is the media type of every CSV download
const csvContentType = "text/csv; charset=utf-8"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessPage sends one page of a list with pagination meta
func SuccessPage[T any](c *gin.Context, page *shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(page.Items, page.Total, page.Page, page.PageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the status derived from code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 invalid input response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeInvalidInput, message)
}

// HandleError converts an error into the matching error response.
// Domain errors keep their code; unique violations become ALREADY_EXISTS;
// anything else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &domainErr):
		status := dto.GetHTTPStatus(domainErr.Code)
		if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
			h.internalError(c, err)
			return
		}
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
	case persistence.IsUniqueViolation(err):
		h.Error(c, dto.ErrCodeAlreadyExists, "Resource already exists")
	case errors.As(err, &maxBytesErr):
		h.Error(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
	default:
		h.internalError(c, err)
	}
}

func (h *BaseHandler) internalError(c *gin.Context, err error) {
	logger.L(c.Request.Context()).Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, dto.InternalErrorMessage))
}

// handleBindError answers a failed ShouldBind call
func (h *BaseHandler) handleBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &validationErrs):
		middleware.HandleValidationError(c, err)
	case errors.As(err, &maxBytesErr):
		h.Error(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
	case errors.As(err, &typeErr):
		h.BadRequest(c, fmt.Sprintf("Field '%s' has the wrong type", typeErr.Field))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		h.BadRequest(c, "Malformed JSON body")
	default:
		h.BadRequest(c, "Invalid request: "+err.Error())
	}
}

// bindJSON decodes and validates the body, answering 400 itself on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.handleBindError(c, err)
		return false
	}
	return true
}

// bindQuery decodes and validates the query string, answering 400 itself on failure
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.handleBindError(c, err)
		return false
	}
	return true
}

// pathID parses a positive integer path parameter, answering 400 itself on failure
func (h *BaseHandler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// queryDays parses the optional ?days= parameter
func (h *BaseHandler) queryDays(c *gin.Context) (*int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return nil, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 || days > 3650 {
		h.BadRequest(c, "days must be a whole number between 0 and 3650")
		return nil, false
	}
	return &days, true
}

// actor returns the authenticated caller, nil for anonymous requests
func actor(c *gin.Context) *appidentity.Actor {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		return nil
	}
	return &appidentity.Actor{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}
}

// sendCSV streams a CSV attachment produced by write
func (h *BaseHandler) sendCSV(c *gin.Context, name string, write func(w io.Writer) error) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().UTC().Format("2006-01-02"))
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, csvContentType, buf.Bytes())
}

// uploadedFile opens the multipart "file" field, answering 400 itself when missing
func (h *BaseHandler) uploadedFile(c *gin.Context) (io.ReadCloser, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.Error(c, dto.ErrCodeRequestTooLarge, "Upload exceeds maximum allowed size")
			return nil, false
		}
		h.BadRequest(c, "A CSV file is required in the 'file' field")
		return nil, false
	}
	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Uploaded file could not be read")
		return nil, false
	}
	return f, true
}
