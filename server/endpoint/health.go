package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restkit/component"
	"github.com/kbukum/restkit/result"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// HealthReport is the value of a /health envelope.
type HealthReport struct {
	Service    string
	Status     component.HealthStatus
	Timestamp  string
	Components []component.Health
}

// Health reports service health including component statuses. An unhealthy
// component turns the envelope into a 503 that still carries the report.
func Health(serviceName string, checker HealthChecker) func(*gin.Context) result.Responder {
	return func(c *gin.Context) result.Responder {
		report := HealthReport{
			Service:   serviceName,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		report.Components, report.Status = check(c.Request.Context(), checker)

		r := result.HTTPFromValue(report)
		if report.Status == component.StatusUnhealthy {
			r.WithStatusCode(http.StatusServiceUnavailable)
		}
		return r
	}
}

// Live always succeeds while the process can serve requests.
func Live() func(*gin.Context) result.Responder {
	return func(*gin.Context) result.Responder {
		return result.NewHTTPVoid()
	}
}

// Ready is Health without the report: an empty 200 or 503 envelope.
func Ready(checker HealthChecker) func(*gin.Context) result.Responder {
	return func(c *gin.Context) result.Responder {
		r := result.NewHTTPVoid()
		if _, status := check(c.Request.Context(), checker); status == component.StatusUnhealthy {
			r.WithStatusCode(http.StatusServiceUnavailable)
		}
		return r
	}
}

func check(ctx context.Context, checker HealthChecker) ([]component.Health, component.HealthStatus) {
	status := component.StatusHealthy
	if checker == nil {
		return nil, status
	}
	components := checker(ctx)
	for _, ch := range components {
		switch ch.Status {
		case component.StatusUnhealthy:
			return components, component.StatusUnhealthy
		case component.StatusDegraded:
			status = component.StatusDegraded
		}
	}
	return components, status
}
