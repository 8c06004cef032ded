package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restkit/result"
)

// Middleware wraps an http.Handler with additional behavior. It applies to
// every route on the server mux, Gin or not.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// GinWrap adapts a standard Middleware for use in a Gin middleware chain.
//
// Middleware that wraps http.ResponseWriter (e.g. RequestLogger) may not see
// what Gin writes; apply those at the server level via Server.Use.
func GinWrap(mw Middleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})
		mw(next).ServeHTTP(c.Writer, c.Request)
	}
}

// abort writes r as the response envelope and stops the Gin chain.
func abort(c *gin.Context, r result.Responder) {
	resp := r.Response()
	body, err := resp.Body()
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	resp.CopyHeaders(c.Writer.Header())
	c.Data(resp.StatusCode, resp.ContentType, body)
	c.Abort()
}

// write is abort for plain net/http middleware.
func write(w http.ResponseWriter, r result.Responder) {
	r.Response().ServeHTTP(w, nil)
}
