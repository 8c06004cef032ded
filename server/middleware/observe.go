package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/observability"
)

// Observe starts a server span per request, continuing any propagated trace,
// and records the outcome on the http.server instruments. Routes are
// reported by their pattern, so /users/:id is one series.
func Observe() gin.HandlerFunc {
	metrics := observability.ServerMetrics()
	return func(c *gin.Context) {
		start := time.Now()
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		route := c.FullPath()
		ctx, span := observability.StartSpan(ctx, c.Request.Method+" "+route,
			attribute.String(observability.AttrMethod, c.Request.Method),
			attribute.String(observability.AttrRoute, route),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		o := observability.Outcome{
			Method:     c.Request.Method,
			Route:      route,
			StatusCode: status,
			Duration:   time.Since(start),
		}
		if !apperrors.IsSuccessStatus(status) {
			o.Err = errors.New(http.StatusText(status))
			o.ErrorCode = apperrors.CodeForStatus(status)
			o.ErrorKind = apperrors.KindUnknown.String()
		}
		if len(c.Errors) > 0 {
			o.Err = c.Errors.Last()
		}
		observability.EndSpan(span, o)
		metrics.Record(ctx, o)
	}
}
