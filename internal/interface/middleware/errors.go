package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/response"
)

const internalMessage = "Internal server error"

// ErrorTranslator turns the last error a handler pushed with c.Error into
// the error envelope. Internal failures are logged; in production their
// message is replaced with a generic one.
func ErrorTranslator(logger *logrus.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.StatusCode(err)

		var appErr *apperror.AppError
		isApp := errors.As(err, &appErr)

		message := err.Error()
		var details []response.FieldError
		if isApp {
			message = appErr.Message
			details = fieldErrors(appErr)
		}

		if status == http.StatusInternalServerError {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).Error("request failed")
			if production || !isApp {
				message = internalMessage
			}
			if !production && !isApp {
				details = []response.FieldError{{Field: "cause", Message: err.Error()}}
			}
		}
		response.Error(c, status, message, details)
	}
}

func fieldErrors(e *apperror.AppError) []response.FieldError {
	if len(e.Details) > 0 {
		fields := make([]string, 0, len(e.Details))
		for f := range e.Details {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		out := make([]response.FieldError, 0, len(fields))
		for _, f := range fields {
			out = append(out, response.FieldError{Field: f, Message: e.Details[f]})
		}
		return out
	}
	if e.Field != "" {
		return []response.FieldError{{Field: e.Field, Message: e.Message}}
	}
	return nil
}

// Recovery converts panics into the internal error envelope.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
			"panic":      fmt.Sprint(rec),
		}).Error("panic recovered")
		response.Error(c, http.StatusInternalServerError, internalMessage, nil)
	})
}

// Fail records err for ErrorTranslator and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
