package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/telemetry"
)

// HTTPMetrics records request count, latency and in-flight requests per route pattern.
// A nil Metrics yields a pass-through middleware.
func HTTPMetrics(m *telemetry.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	inFlight := m.InFlight()
	return func(c *gin.Context) {
		start := time.Now()
		inFlight.Inc()
		defer inFlight.Dec()

		c.Next()

		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
