package middleware

import (
	"fmt"
	"net/http"

	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/result"
)

func tooLarge(limit int64) *result.HTTPResult[result.Void] {
	return result.NewHTTPVoid().WithProblem(http.StatusRequestEntityTooLarge, apperrors.Problem{
		Message: "The request body is too large.",
		Code:    apperrors.CodeForStatus(http.StatusRequestEntityTooLarge),
		Title:   http.StatusText(http.StatusRequestEntityTooLarge),
		Detail:  fmt.Sprintf("The request body must not exceed %d bytes.", limit),
	})
}

func panicked(cause error, path, requestID, errorID string) *result.HTTPResult[result.Void] {
	ext := requestIDExtension(requestID)
	if ext == nil {
		ext = map[string]any{}
	}
	ext["errorId"] = errorID
	e := (&apperrors.Error{Cause: cause}).SetProblem(http.StatusInternalServerError, apperrors.Problem{
		Message:    "An internal error occurred.",
		Code:       apperrors.CodeInternal,
		Title:      http.StatusText(http.StatusInternalServerError),
		Instance:   path,
		Extensions: ext,
	})
	return result.NewHTTPVoid().WithErrors(e)
}

func unauthorized(realm, path, requestID string, cause error) *result.HTTPResult[result.Void] {
	challenge := fmt.Sprintf("Bearer realm=%q", realm)
	code := apperrors.CodeUnauthorized
	detail := "A bearer token is required."
	if cause != nil {
		challenge += `, error="invalid_token"`
		code = apperrors.CodeInvalidToken
		detail = cause.Error()
	}
	return result.NewHTTPVoid().
		WithHeader("WWW-Authenticate", challenge).
		WithProblem(http.StatusUnauthorized, apperrors.Problem{
			Message:    "Authentication failed.",
			Code:       code,
			Title:      http.StatusText(http.StatusUnauthorized),
			Detail:     detail,
			Instance:   path,
			Extensions: requestIDExtension(requestID),
		})
}

func requestIDExtension(id string) map[string]any {
	if id == "" {
		return nil
	}
	return map[string]any{"requestId": id}
}
