package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"volunteer-events-api/internal/metrics"
)

// Metrics times every request and feeds it to the HTTP metrics. The route
// pattern, not the raw path, is used as the endpoint label so /events/:id
// stays a single series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.ShouldSkipEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		m.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
