// Package middleware holds the cross-cutting gin handlers applied to every
// API route: correlation ids, request logging, panic recovery and metrics.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CorrelationIDHeader carries the correlation id on requests and responses.
	CorrelationIDHeader = "X-Correlation-ID"

	// CorrelationIDKey is the gin context key the id is stored under.
	CorrelationIDKey = "correlation_id"
)

// CorrelationID tags each request with an id that follows it through logs,
// transfer records and archive entries. An id supplied by the caller is
// reused, otherwise a fresh one is generated, and either way it is echoed
// back on the response.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(CorrelationIDHeader, id)
		c.Set(CorrelationIDKey, id)

		c.Next()
	}
}

// GetCorrelationID returns the request's correlation id, or an empty string
// when the CorrelationID middleware has not run.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(CorrelationIDKey)
}
