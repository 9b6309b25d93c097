package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rshade/ecoshare/internal/logging"
)

// TraceHeader carries the request trace ID in both directions.
const TraceHeader = "X-Trace-Id"

// RequestLogger attaches a trace ID and a request-scoped logger to each
// request context and logs the outcome once the handler returns.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	log := logging.ComponentLogger(base, "api")

	return func(c *gin.Context) {
		start := time.Now()

		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = logging.GenerateTraceID()
		}
		c.Header(TraceHeader, traceID)

		ctx := logging.ContextWithTraceID(c.Request.Context(), traceID)
		ctx = log.WithContext(ctx)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		level := zerolog.InfoLevel
		switch {
		case status >= http.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case status >= http.StatusBadRequest:
			level = zerolog.WarnLevel
		}

		event := log.WithLevel(level)
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str(logging.TraceIDField, traceID).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request handled")
	}
}
