package endpoint

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restkit/result"
	"github.com/kbukum/restkit/version"
)

var startTime = time.Now()

// InfoReport is the value of an /info envelope.
type InfoReport struct {
	Service string
	version.Info
	Release bool
	Uptime  string
}

// Info reports the service name with its build information.
func Info(serviceName string) func(*gin.Context) result.Responder {
	return func(*gin.Context) result.Responder {
		v := version.Get()
		return result.HTTPFromValue(InfoReport{
			Service: serviceName,
			Info:    v,
			Release: v.IsRelease(),
			Uptime:  time.Since(startTime).Round(time.Second).String(),
		})
	}
}
