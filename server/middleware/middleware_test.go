package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/result"
)

func testLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", buf)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(mw...)
	return e
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) *result.HTTPResult[result.Void] {
	t.Helper()
	var r result.HTTPResult[result.Void]
	if err := r.UnmarshalJSON(rec.Body.Bytes()); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	if r.LastError() == nil {
		t.Fatalf("expected an error envelope, got %s", rec.Body.String())
	}
	return &r
}

func withBearer(path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", token)
	return req
}

// ---------------------------------------------------------------------------
// Chain / RequestID
// ---------------------------------------------------------------------------

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(mw("a"), mw("b"), mw("c"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if want := []string{"a", "b", "c", "handler"}; !slices.Equal(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" {
		t.Fatal("expected generated request id")
	}
	if got := rec.Header().Get(HeaderRequestID); got != seen {
		t.Errorf("expected response header %s, got %s", seen, got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "given")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "given" {
		t.Errorf("expected 'given' in context, got %s", seen)
	}
	if got := rec.Header().Get(HeaderRequestID); got != "given" {
		t.Errorf("expected 'given' header, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// Recovery
// ---------------------------------------------------------------------------

func TestRecovery_WritesInternalEnvelope(t *testing.T) {
	var buf bytes.Buffer
	e := newEngine(Recovery(testLogger(&buf)))
	e.GET("/boom", func(*gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req = req.WithContext(logger.ContextWithRequestID(req.Context(), "rid-1"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	r := decode(t, rec)
	if r.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected envelope status 500, got %d", r.StatusCode())
	}
	if r.LastError().Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", r.LastError().Code)
	}
	pd, ok := r.LastError().Problem()
	if !ok {
		t.Fatal("expected problem details")
	}
	if pd.Instance != "/boom" {
		t.Errorf("expected instance /boom, got %s", pd.Instance)
	}
	if pd.Extensions["requestId"] != "rid-1" {
		t.Errorf("expected requestId rid-1, got %v", pd.Extensions["requestId"])
	}
	errorID, _ := pd.Extensions["errorId"].(string)
	if errorID == "" {
		t.Fatal("expected errorId extension")
	}
	if !strings.Contains(buf.String(), errorID) {
		t.Error("expected errorId in log output")
	}
	if strings.Contains(rec.Body.String(), "kaboom") {
		t.Error("panic value leaked into response body")
	}
	if !strings.Contains(buf.String(), "kaboom") {
		t.Error("expected panic value in log output")
	}
}

// ---------------------------------------------------------------------------
// BodySizeLimit / ParseSize
// ---------------------------------------------------------------------------

func TestBodySizeLimit(t *testing.T) {
	h := BodySizeLimit("1KB")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 2048))))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status 413, got %d", rec.Code)
	}
	if got := decode(t, rec).LastError().Code; got != "REQUEST_ENTITY_TOO_LARGE" {
		t.Errorf("expected REQUEST_ENTITY_TOO_LARGE, got %s", got)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10MB", 10 << 20},
		{"512kb", 512 << 10},
		{"2GB", 2 << 30},
		{"100", 100},
		{"64 B", 64},
		{"", 7},
		{"junk", 7},
		{"-5KB", 7},
	}
	for _, tt := range tests {
		if got := ParseSize(tt.in, 7); got != tt.want {
			t.Errorf("ParseSize(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// CORS
// ---------------------------------------------------------------------------

func TestCORS(t *testing.T) {
	cfg := &CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"GET"},
		ExposedHeaders: DefaultExposedHeaders,
	}
	h := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected preflight status 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("expected allowed origin, got %q", got)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Expose-Headers"), "WWW-Authenticate") {
		t.Errorf("expected WWW-Authenticate exposed, got %q", rec.Header().Get("Access-Control-Expose-Headers"))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allowed origin, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// RequestLogger
// ---------------------------------------------------------------------------

func TestRequestLogger_LevelsAndProbes(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(testLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected warn level, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"error_code":"NOT_FOUND"`) {
		t.Errorf("expected NOT_FOUND error_code, got %s", buf.String())
	}

	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if buf.Len() != 0 {
		t.Errorf("expected probe path to be skipped, got %s", buf.String())
	}
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestAuth(t *testing.T) {
	cfg := AuthConfig{Enabled: true, Secret: "s3cret", Issuer: "restkit", Realm: "demo", SkipPaths: []string{"/public"}}
	e := newEngine(Auth(cfg))
	e.GET("/private", func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		sub, _ := claims.GetSubject()
		c.String(http.StatusOK, sub+":"+logger.UserIDFromContext(c.Request.Context()))
	})
	e.GET("/public/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
		if got := rec.Header().Get("WWW-Authenticate"); got != `Bearer realm="demo"` {
			t.Errorf("expected bare challenge, got %q", got)
		}
		if got := decode(t, rec).LastError().Code; got != "UNAUTHORIZED" {
			t.Errorf("expected UNAUTHORIZED, got %s", got)
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		tok, err := IssueToken(AuthConfig{Secret: "other", Issuer: "restkit"}, "u1", time.Minute)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, withBearer("/private", "Bearer "+tok))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`) {
			t.Errorf("expected invalid_token challenge, got %q", rec.Header().Get("WWW-Authenticate"))
		}
		if got := decode(t, rec).LastError().Code; got != "INVALID_TOKEN" {
			t.Errorf("expected INVALID_TOKEN, got %s", got)
		}
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := IssueToken(cfg, "u1", -time.Minute)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, withBearer("/private", "Bearer "+tok))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("valid", func(t *testing.T) {
		tok, err := IssueToken(cfg, "u1", time.Minute)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, withBearer("/private", "bearer "+tok))
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if got := rec.Body.String(); got != "u1:u1" {
			t.Errorf("expected 'u1:u1', got %s", got)
		}
	})

	t.Run("skip path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public/x", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})
}

// ---------------------------------------------------------------------------
// Observe
// ---------------------------------------------------------------------------

func TestObserve_PassesThrough(t *testing.T) {
	e := newEngine(Observe())
	e.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/1", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", rec.Code)
	}
}
