package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestError_New_Success(t *testing.T) {
	err := New("THIS IS ERROR", "ERROR_CODE_123")
	if err.Message != "THIS IS ERROR" {
		t.Errorf("expected message 'THIS IS ERROR', got %q", err.Message)
	}
	if err.Code != "ERROR_CODE_123" {
		t.Errorf("expected code ERROR_CODE_123, got %s", err.Code)
	}
	if err.IsHTTP() {
		t.Error("plain error should not be HTTP")
	}
	if err.StatusCode() != 0 {
		t.Errorf("expected status 0, got %d", err.StatusCode())
	}
}

func TestError_Builders_ReturnReceiver(t *testing.T) {
	err := &Error{}
	got := err.WithMessage("m").WithCode("C").WithDetail(map[string]any{"a": 1}).WithCause(stderrors.New("x"))
	if got != err {
		t.Fatal("expected builders to return the same instance")
	}
	if err.Message != "m" {
		t.Errorf("expected message to be kept, got %q", err.Message)
	}
}

func TestError_WithCause_FillsBlankMessage(t *testing.T) {
	err := (&Error{}).WithCause(stderrors.New("dial tcp: refused"))
	if err.Message != "dial tcp: refused" {
		t.Errorf("expected message from cause, got %q", err.Message)
	}
	if !stderrors.Is(err, err.Cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestError_FromCause_EmptyText(t *testing.T) {
	err := FromCause(stderrors.New(""))
	if err.Message != DefaultMessage {
		t.Errorf("expected default message, got %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("expected empty code, got %s", err.Code)
	}
}

func TestError_SetStatusCode_Defaults(t *testing.T) {
	err := NewHTTP(http.StatusNotFound, nil)
	if err.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.Message != "StatusCode: NotFound" {
		t.Errorf("expected synthesized message, got %q", err.Message)
	}
	if !err.IsHTTP() {
		t.Error("expected HTTP error")
	}
	pd, ok := err.Problem()
	if !ok {
		t.Fatal("expected problem details")
	}
	if pd.Status != http.StatusNotFound {
		t.Errorf("expected problem status 404, got %d", pd.Status)
	}
}

func TestError_SetStatusCode_KeepsMessage(t *testing.T) {
	err := (&Error{Message: "user missing"}).SetStatusCode(http.StatusNotFound, nil)
	if err.Message != "user missing" {
		t.Errorf("expected supplied message, got %q", err.Message)
	}
}

func TestError_SetProblem_Fields(t *testing.T) {
	err := (&Error{}).SetProblem(http.StatusNotFound, Problem{
		Message:  "This is message",
		Code:     "THIS_IS_CODE",
		Title:    "This is title",
		Detail:   "This is detail",
		Instance: "/this/is/instance",
	})
	if err.Code != "THIS_IS_CODE" {
		t.Errorf("expected THIS_IS_CODE, got %s", err.Code)
	}
	if err.Message != "This is message" {
		t.Errorf("expected message, got %q", err.Message)
	}
	pd, _ := err.Problem()
	b, _ := json.Marshal(pd)
	if strings.Contains(string(b), `"type"`) {
		t.Errorf("expected unset type to be omitted, got %s", b)
	}
	if !strings.Contains(string(b), `"instance":"/this/is/instance"`) {
		t.Errorf("expected instance in payload, got %s", b)
	}
}

func TestError_StatusCode_FromDetailMap(t *testing.T) {
	err := New("x", "y").WithDetail(map[string]any{"Status": float64(401), "title": "Unauthorized"})
	if !err.IsHTTP() {
		t.Error("expected detail with numeric status to make the error HTTP")
	}
	if err.StatusCode() != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", err.StatusCode())
	}
}

func TestError_StatusCode_NonNumericDetail(t *testing.T) {
	err := New("x", "y").WithDetail(map[string]any{"status": "401"})
	if err.IsHTTP() {
		t.Error("string status should not make the error HTTP")
	}
}

func TestError_Clone_DeepCopiesDetail(t *testing.T) {
	orig := NewHTTP(http.StatusUnauthorized, &ProblemDetails{
		Title:      "Unauthorized",
		Extensions: map[string]any{"scope": "read"},
	}).WithInner(New("inner", "I"))

	c := orig.Clone()
	pd, _ := c.Problem()
	pd.Title = "changed"
	pd.Extensions["scope"] = "write"
	c.Inner[0].Message = "changed"

	opd, _ := orig.Problem()
	if opd.Title != "Unauthorized" {
		t.Errorf("expected original title untouched, got %q", opd.Title)
	}
	if opd.Extensions["scope"] != "read" {
		t.Errorf("expected original extension untouched, got %v", opd.Extensions["scope"])
	}
	if orig.Inner[0].Message != "inner" {
		t.Errorf("expected original inner untouched, got %q", orig.Inner[0].Message)
	}
	if c.StatusCode() != http.StatusUnauthorized {
		t.Errorf("expected clone status 401, got %d", c.StatusCode())
	}
}

func TestError_Error_Format(t *testing.T) {
	err := New("not here", "NOT_FOUND")
	if err.Error() != "NOT_FOUND: not here" {
		t.Errorf("unexpected format %q", err.Error())
	}
}

func TestFrom_Normalizes(t *testing.T) {
	base := New("m", "C")
	wrapped := fmt.Errorf("wrap: %w", base)
	if From(wrapped) != base {
		t.Error("expected wrapped *Error to be returned as-is")
	}
	if From(context.Canceled).Kind != KindCanceled {
		t.Error("expected context.Canceled to become a canceled record")
	}
	if From(context.DeadlineExceeded).Code != CodeTimeout {
		t.Error("expected deadline to become a timeout record")
	}
	if From(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"canceled", Canceled(nil), KindCanceled},
		{"raw canceled", fmt.Errorf("x: %w", context.Canceled), KindCanceled},
		{"transport", Transport(stderrors.New("refused")), KindTransport},
		{"codec", Codec(stderrors.New("bad"), []byte("<html>")), KindCodec},
		{"plain", stderrors.New("plain"), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCodec_IncludesSnippet(t *testing.T) {
	body := []byte(strings.Repeat("x", 300))
	err := Codec(stderrors.New("bad"), body)
	if !strings.HasSuffix(err.Message, "...") {
		t.Errorf("expected truncated snippet, got %q", err.Message)
	}
	if !strings.Contains(Codec(nil, []byte("<html>")).Message, "<html>") {
		t.Error("expected body snippet in message")
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := map[int]string{
		http.StatusNotFound:            "NOT_FOUND",
		http.StatusUnauthorized:        "UNAUTHORIZED",
		http.StatusInternalServerError: "INTERNAL_SERVER_ERROR",
		http.StatusTeapot:              "IM_A_TEAPOT",
		799:                            "STATUS_799",
	}
	for status, want := range tests {
		if got := CodeForStatus(status); got != want {
			t.Errorf("status %d: expected %s, got %s", status, want, got)
		}
	}
}

func TestStatusName(t *testing.T) {
	tests := map[int]string{
		http.StatusNotFound:                "NotFound",
		http.StatusInternalServerError:     "InternalServerError",
		http.StatusNonAuthoritativeInfo:    "NonAuthoritativeInformation",
		http.StatusTeapot:                  "ImATeapot",
		http.StatusHTTPVersionNotSupported: "HTTPVersionNotSupported",
		799:                                "799",
	}
	for status, want := range tests {
		if got := StatusName(status); got != want {
			t.Errorf("status %d: expected %s, got %s", status, want, got)
		}
	}
	if got := NewHTTP(799, nil).Message; got != "StatusCode: 799" {
		t.Errorf("expected numeric fallback, got %q", got)
	}
}

func TestError_SetStatusCode_CopiesProblem(t *testing.T) {
	pd := &ProblemDetails{Title: "gone", Extensions: map[string]any{"id": "42"}}
	err := NewHTTP(http.StatusGone, pd)

	if pd.Status != 0 {
		t.Errorf("expected caller payload untouched, got status %d", pd.Status)
	}
	pd.Title = "changed"
	pd.Extensions["id"] = "7"

	got, ok := err.Problem()
	if !ok {
		t.Fatal("expected problem details")
	}
	if got.Status != http.StatusGone || got.Title != "gone" {
		t.Errorf("expected 410 gone, got %d %q", got.Status, got.Title)
	}
	if got.Extensions["id"] != "42" {
		t.Errorf("expected extension 42, got %v", got.Extensions["id"])
	}
}
