package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/creamio/backoffice-api/pkg/apierror"
)

const problemContentType = "application/problem+json"

// ErrorTranslator is the single boundary converting raised errors into the
// JSON error envelope. Typed APIErrors keep their status and reason; anything
// else becomes a 500 whose reason is the error message.
func ErrorTranslator(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		var apiErr *apierror.APIError
		if !errors.As(last.Err, &apiErr) {
			apiErr = apierror.New(http.StatusInternalServerError, last.Err.Error())
		}
		if apiErr.StatusCode >= http.StatusInternalServerError && logger != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).Error(apiErr.Reason)
		}
		WriteProblem(c, apiErr)
	}
}

// Recovery converts panics into the standard 500 envelope instead of an empty
// response body.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"panic":      fmt.Sprint(recovered),
			}).Error("request panicked")
		}
		WriteProblem(c, apierror.New(http.StatusInternalServerError, fmt.Sprint(recovered)))
	})
}

// NotFound renders the 404 envelope for unknown routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		WriteProblem(c, apierror.New(http.StatusNotFound, apierror.ResourceNotFound))
	}
}

// WriteProblem writes the error envelope with the problem+json content type.
func WriteProblem(c *gin.Context, apiErr *apierror.APIError) {
	body, err := json.Marshal(apiErr.Envelope())
	if err != nil {
		c.Data(http.StatusInternalServerError, problemContentType, []byte(`{"status":"error","code":500}`))
		return
	}
	c.Data(apiErr.StatusCode, problemContentType, body)
}
