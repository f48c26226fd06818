package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naadamki/quotehub/internal/adapters/http/dto"
)

// pathID parses a numeric path parameter. On failure it writes a 400
// response and returns false.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			name+" must be a positive integer",
		).WithTraceID(dto.GetTraceID(c)))

		return 0, false
	}

	return uint(id), true
}

// bindBody binds and validates a JSON request body. On failure it
// writes a 400 response and returns false.
func bindBody(c *gin.Context, v any) bool {
	if err := dto.BindAndValidate(c, v); err != nil {
		if dto.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
				dto.ErrorCodeValidation,
				"request validation failed",
				dto.ValidationErrors(err),
			).WithTraceID(dto.GetTraceID(c)))

			return false
		}

		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"request body is not valid JSON",
		).WithTraceID(dto.GetTraceID(c)))

		return false
	}

	return true
}
