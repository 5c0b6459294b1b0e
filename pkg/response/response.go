package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success envelopes share a fixed top-level shape: status, code and the
// request method, plus either results or the acted-on resource id.

// WithResults renders a success envelope carrying results, e.g. a single
// record under {"user": ...} or a collection under {"users": [...]}.
func WithResults(c *gin.Context, statusCode int, resultsFor string, results any) {
	c.JSON(statusCode, gin.H{
		"status":         "success",
		"code":           statusCode,
		"request-method": c.Request.Method,
		"results-for":    resultsFor,
		"results":        results,
	})
}

// WithoutResults renders a success envelope for operations that only need to
// acknowledge the resource they acted on.
func WithoutResults(c *gin.Context, statusCode int, resourceID string) {
	c.JSON(statusCode, gin.H{
		"status":               "success",
		"code":                 statusCode,
		"request-method":       c.Request.Method,
		"request-ressource-id": resourceID,
	})
}

// Created renders the creation envelope, forcing 201 and pointing Location at
// the resource's read endpoint.
func Created(c *gin.Context, resourceID string, location string) {
	c.Header("Location", location)
	WithoutResults(c, http.StatusCreated, resourceID)
}
