package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naadamki/quotehub/internal/domain"
)

// GetTraceID extracts the trace ID for error responses. The gin context
// takes precedence over the request header.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}

		return ""
	}

	return c.GetHeader("X-Request-ID")
}

// HandleError maps a domain error to an HTTP error response and writes
// it. Unknown errors get a generic message to avoid leaking internals.
func HandleError(c *gin.Context, err error) {
	var (
		status int
		resp   *ErrorResponse
	)

	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
		resp = NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		status = http.StatusConflict
		resp = NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		status = http.StatusBadRequest
		resp = NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

	case domain.IsUnavailable(err):
		status = http.StatusServiceUnavailable
		resp = NewErrorResponse(ErrorCodeUnavailable, "service temporarily unavailable")

	default:
		status = http.StatusInternalServerError
		resp = NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}

	c.JSON(status, resp.WithTraceID(GetTraceID(c)))
}
