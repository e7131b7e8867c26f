package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the success envelope every handler writes.
type APIResponse[T any] struct {
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope. Errors is never null.
type ErrorResponse struct {
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Success    bool         `json:"success"`
	Errors     []FieldError `json:"errors"`
	RequestID  string       `json:"requestId,omitempty"`
}

func Success[T any](c *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error writes the failure envelope and aborts the chain.
func Error(c *gin.Context, status int, message string, errs []FieldError) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	if errs == nil {
		errs = []FieldError{}
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     errs,
		RequestID:  c.GetString("request_id"),
	})
}

// Empty is the data payload of responses that carry nothing.
func Empty() gin.H { return gin.H{} }
