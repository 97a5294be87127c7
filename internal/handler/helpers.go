package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/wellness-companion/internal/service"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// Error codes carried in ErrorResponse.Code
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeInternal      = "INTERNAL_ERROR"
	CodeEmailDelivery = "EMAIL_DELIVERY_FAILED"
)

// ErrorResponse is the body of every error answer
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// dateToString converts types.Date to the stored ISO day
func dateToString(d types.Date) string {
	return d.Format(model.DateLayout)
}

// datePtrToString converts an optional types.Date, nil becomes ""
func datePtrToString(d *types.Date) string {
	if d == nil {
		return ""
	}
	return dateToString(*d)
}

// optionalDate converts an optional types.Date to an optional ISO day
func optionalDate(d *types.Date) *string {
	if d == nil {
		return nil
	}
	return stringPtr(dateToString(*d))
}

// bindJSON decodes the request body into req and answers 400 on failure
func bindJSON(c *gin.Context, req any, logger *zap.Logger) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("invalid request body",
			zap.Error(err),
			zap.String("path", c.FullPath()),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidation,
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return false
	}
	return true
}

// errorStatus maps service errors onto an HTTP status and error code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidMetric),
		errors.Is(err, service.ErrEmailRequired):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, service.ErrReportNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, service.ErrAnalysisInProgress):
		return http.StatusConflict, CodeConflict
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondError writes the ErrorResponse for err. Server errors are also
// attached to the gin context for the error logging middleware.
func respondError(c *gin.Context, err error, message string) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: message,
		Details: stringPtr(err.Error()),
	})
}
