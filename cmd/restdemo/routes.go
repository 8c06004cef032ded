package main

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/httpclient/rest"
	"github.com/kbukum/restkit/result"
	"github.com/kbukum/restkit/server"
	"github.com/kbukum/restkit/server/middleware"
	"github.com/kbukum/restkit/validation"
)

var summaries = []string{"Freezing", "Bracing", "Chilly", "Cool", "Mild", "Warm", "Balmy", "Hot", "Sweltering", "Scorching"}

// WeatherForecast is the sample payload.
type WeatherForecast struct {
	Date         string
	TemperatureC int
	TemperatureF int
	Summary      string
}

// ForecastRequest asks for a number of forecast days.
type ForecastRequest struct {
	Days     int    `validate:"gte=1,lte=14"`
	Location string `validate:"required"`
}

func forecasts(days int) []WeatherForecast {
	out := make([]WeatherForecast, days)
	for i := range out {
		c := rand.IntN(75) - 20
		out[i] = WeatherForecast{
			Date:         time.Now().AddDate(0, 0, i+1).Format(time.DateOnly),
			TemperatureC: c,
			TemperatureF: 32 + int(float64(c)/0.5556),
			Summary:      summaries[rand.IntN(len(summaries))],
		}
	}
	return out
}

type api struct {
	upstream func() *httpclient.Client
	secure   middleware.AuthConfig
}

func newAPI(upstream func() *httpclient.Client, secure middleware.AuthConfig) *api {
	return &api{upstream: upstream, secure: secure}
}

func (a *api) client() *rest.Client {
	c := a.upstream()
	if c == nil {
		return nil
	}
	return rest.NewFromClient(c)
}

func registerRoutes(e *gin.Engine, a *api) {
	e.GET("/weatherforecast", a.weatherForecast)

	e.GET("/result", server.Handle(func(*gin.Context) result.Responder {
		return result.NewVoid()
	}))
	e.GET("/resulterror", server.Handle(func(*gin.Context) result.Responder {
		return result.NewVoid().WithErrorMessage("THIS IS ERROR", "ERROR_CODE_123")
	}))
	e.GET("/resultweather", server.Handle(func(*gin.Context) result.Responder {
		return result.FromValue(forecasts(5))
	}))
	e.GET("/resultweathererror", server.Handle(func(*gin.Context) result.Responder {
		return result.FromValue(forecasts(5)).WithErrorMessage("THIS IS ERROR", "ERROR_CODE_123")
	}))

	e.GET("/httpresult", server.Handle(func(*gin.Context) result.Responder {
		return result.NewHTTPVoid()
	}))
	e.GET("/httpresulterror", server.Handle(func(*gin.Context) result.Responder {
		return result.NewHTTPVoid().WithErrorMessage("THIS IS ERROR", "ERROR_CODE_123")
	}))
	e.GET("/httpresulterror_InternalServerError", server.Handle(func(*gin.Context) result.Responder {
		return result.NewHTTPVoid().WithStatusCode(http.StatusInternalServerError)
	}))
	e.GET("/httpresulterror_Unauthorized", server.Handle(func(*gin.Context) result.Responder {
		return result.NewHTTPVoid().
			WithHeader("WWW-Authenticate", "Bearer1", "Bearer2").
			WithStatusCode(http.StatusUnauthorized)
	}))
	e.GET("/httpresulterror_cascade", server.Handle(func(*gin.Context) result.Responder {
		r := result.NewHTTPVoid()
		if !r.Success(checkAccess()) {
			return r
		}
		return r.WithStatusCode(http.StatusNoContent)
	}))
	e.GET("/httpresulterror_custom_detail_error", server.Handle(func(*gin.Context) result.Responder {
		return result.NewHTTPVoid().WithProblem(http.StatusNotFound, apperrors.Problem{
			Message:  "This is message",
			Code:     "THIS_IS_CODE",
			Title:    "This is title",
			Type:     "ThisIsType",
			Detail:   "This is detail",
			Instance: "/this/is/instance",
		})
	}))

	e.GET("/remote/weather", server.Handle(a.remoteWeather))
	e.GET("/remote/cascade", server.Handle(a.remoteCascade))
	e.POST("/forecast", server.Handle(a.forecast))

	if a.secure.Enabled {
		secure := e.Group("/secure", middleware.Auth(a.secure))
		secure.GET("/whoami", server.Handle(whoami))
	}
}

// weatherForecast answers with a bare JSON array, no envelope.
func (a *api) weatherForecast(c *gin.Context) {
	c.JSON(http.StatusOK, forecasts(5))
}

// checkAccess is the inner call of the cascade sample: it always fails with
// a structured 401.
func checkAccess() *result.HTTPResult[result.Void] {
	return result.NewHTTPVoid().WithProblemDetails(http.StatusUnauthorized, &apperrors.ProblemDetails{
		Title:    "Unauthorized",
		Detail:   "Error test detail Unauthorized",
		Status:   http.StatusUnauthorized,
		Instance: "/somepath/test",
	})
}

// remoteWeather fetches the bare forecast array through the REST client and
// answers with it as an envelope.
func (a *api) remoteWeather(c *gin.Context) result.Responder {
	resp := rest.Get[[]WeatherForecast](c.Request.Context(), a.client(), "/weatherforecast")
	return resp.HTTPResult
}

// remoteCascade calls the 401 sample over HTTP and folds the response in:
// status, error and WWW-Authenticate reach the caller unchanged.
func (a *api) remoteCascade(c *gin.Context) result.Responder {
	r := result.NewHTTPVoid()
	if !r.Success(rest.Get[result.Void](c.Request.Context(), a.client(), "/httpresulterror_Unauthorized")) {
		return r
	}
	return r.WithStatusCode(http.StatusNoContent)
}

// forecast validates the request body and answers with the asked days.
func (a *api) forecast(c *gin.Context) result.Responder {
	var req ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return result.HTTPFromError[[]WeatherForecast](apperrors.Validation("The request body is not valid JSON."))
	}
	if err := validation.Struct(req); err != nil {
		return result.HTTPFromError[[]WeatherForecast](err)
	}
	return result.HTTPFromValue(forecasts(req.Days)).WithStatusCode(http.StatusCreated)
}

func whoami(c *gin.Context) result.Responder {
	claims, _ := middleware.Claims(c)
	sub, _ := claims.GetSubject()
	return result.HTTPFromValue(map[string]string{"subject": sub})
}
