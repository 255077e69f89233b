package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skincare-client/internal/shared/telemetry"
)

// Logging emits one structured line per request. Handlers may set
// "analysisId" and "pollState" on the context to enrich it.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		analysisID := c.GetString("analysisId")
		if analysisID == "" {
			analysisID = c.Param("id")
		}
		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"analysis_id": analysisID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if state := c.GetString("pollState"); state != "" {
			fields["poll_state"] = state
		}
		telemetry.Info("request.complete", fields)
	}
}
