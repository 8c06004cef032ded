package validation

import (
	"net/http"
	"strings"

	apperrors "github.com/kbukum/restkit/errors"
)

// Title is the problem title of every validation failure.
const Title = "One or more validation errors occurred."

// FieldError is one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// newError builds the 400 error for fields. The problem detail carries an
// "errors" extension mapping each field to its messages.
func newError(fields []FieldError) *apperrors.Error {
	byField := make(map[string]any, len(fields))
	messages := make([]string, 0, len(fields))
	for _, f := range fields {
		list, _ := byField[f.Field].([]string)
		byField[f.Field] = append(list, f.Message)
		messages = append(messages, f.Field+" "+f.Message)
	}

	e := (&apperrors.Error{Kind: apperrors.KindValidation}).SetProblem(http.StatusBadRequest, apperrors.Problem{
		Message:    strings.Join(messages, "; "),
		Code:       apperrors.CodeInvalidInput,
		Title:      Title,
		Extensions: map[string]any{"errors": byField},
	})
	return e
}

// Fields returns the rejected fields recorded in a validation error.
func Fields(err error) map[string][]string {
	e, ok := apperrors.As(err)
	if !ok || e.Kind != apperrors.KindValidation {
		return nil
	}
	pd, ok := e.Problem()
	if !ok {
		return nil
	}
	raw, _ := pd.Extensions["errors"].(map[string]any)
	out := make(map[string][]string, len(raw))
	for k, v := range raw {
		switch msgs := v.(type) {
		case []string:
			out[k] = append(out[k], msgs...)
		case []any:
			for _, m := range msgs {
				if s, ok := m.(string); ok {
					out[k] = append(out[k], s)
				}
			}
		}
	}
	return out
}
