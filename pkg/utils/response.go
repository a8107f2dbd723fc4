// Package utils holds the small HTTP response-shaping helpers every
// handler in internal/interfaces/http uses, trimmed from the teacher's
// pkg/utils response helpers down to the success/error pair this core
// needs.
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/paylinkhq/router-core/pkg/errors"
)

// Response is the standard envelope every handler writes.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo mirrors the ApiErrorResponse kind/message/details fields
// named in spec §7 so a client can branch on Kind without parsing
// Message strings.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse writes a success envelope.
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the ApiErrorResponse carried by err (spec §7),
// falling back to a generic 500 for any error of another kind that
// reaches the handler boundary unconverted.
func ErrorResponse(c *gin.Context, err error) {
	apiErr := apierrors.GetAPIError(err)
	c.JSON(apiErr.StatusCode(), Response{
		Success: false,
		Error: &ErrorInfo{
			Kind:    apiErr.Kind,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	})
}

// BadRequest writes a 400 with a plain message, for request-shape
// failures caught before an operation ever runs (e.g. JSON bind errors).
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   &ErrorInfo{Kind: "invalid_request_data", Message: message},
	})
}
