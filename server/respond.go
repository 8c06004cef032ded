package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restkit/codec"
	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/result"
)

// codecKey is the Gin context key of the server's envelope codec.
const codecKey = "restkit.codec"

// HandlerFunc is a Gin handler that answers with a result envelope.
type HandlerFunc func(c *gin.Context) result.Responder

// Handle adapts h to gin.HandlerFunc. A nil Responder writes an empty
// success envelope.
func Handle(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		Respond(c, h(c))
	}
}

// Respond writes r: its status code, its headers and its JSON envelope.
func Respond(c *gin.Context, r result.Responder) {
	if r == nil {
		r = result.NewHTTPVoid()
	}
	resp := r.Response(result.WithResponseCodec(codecFrom(c)))
	body, err := resp.Body()
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Encoding response envelope failed", logger.ErrorFields("respond", err))
		resp = result.NewHTTPVoid().
			WithError(apperrors.Internal(err)).
			Response(result.WithResponseCodec(codecFrom(c)))
		if body, err = resp.Body(); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}
	resp.CopyHeaders(c.Writer.Header())
	c.Data(resp.StatusCode, resp.ContentType, body)
}

func codecFrom(c *gin.Context) codec.Codec {
	if v, ok := c.Get(codecKey); ok {
		if cd, ok := v.(codec.Codec); ok {
			return cd
		}
	}
	return codec.Default()
}
