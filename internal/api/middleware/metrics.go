package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/points-ledger/internal/metrics"
)

// Metrics middleware records request counts and latency per route template.
// Unmatched routes share a single bucket to bound label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
