package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	cfg := &Config{Level: level, Format: "json"}
	return NewWithWriter(cfg, "restdemo", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.Service() != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.Service())
	}
}

func TestJSONFieldsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info").WithComponent("rest")

	l.Info("call finished", Fields(FieldStatus, 401, FieldOutcome, "error"))

	m := decodeLine(t, &buf)
	if m["message"] != "call finished" {
		t.Errorf("expected message, got %v", m["message"])
	}
	if m[FieldComponent] != "rest" {
		t.Errorf("expected component rest, got %v", m[FieldComponent])
	}
	if m[FieldStatus] != float64(401) {
		t.Errorf("expected status 401, got %v", m[FieldStatus])
	}
	if m["service"] != "restdemo" {
		t.Errorf("expected service field, got %v", m["service"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "loud")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info level, got %q", buf.String())
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithError(errors.New("boom")).Error("failed")
	m := decodeLine(t, &buf)
	if m[FieldError] != "boom" {
		t.Errorf("expected error field, got %v", m[FieldError])
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUserID(ctx, "user-7")
	tid, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	sid, _ := trace.SpanIDFromHex("0102030405060708")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: tid, SpanID: sid, TraceFlags: trace.FlagsSampled,
	}))

	jsonLogger(&buf, "info").WithContext(ctx).Info("x")

	m := decodeLine(t, &buf)
	want := map[string]string{
		FieldRequestID: "req-1",
		FieldUserID:    "user-7",
		FieldTraceID:   tid.String(),
		FieldSpanID:    sid.String(),
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("expected %s=%s, got %v", k, v, m[k])
		}
	}
	if RequestIDFromContext(ctx) != "req-1" {
		t.Errorf("expected request id round trip")
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "restdemo", &buf)
	l.Warn("careful", Fields("k", "v"))
	out := buf.String()
	if !strings.Contains(out, "[RES][WRN]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "k:") {
		t.Errorf("expected field name, got %q", out)
	}
}

func TestFileOutputRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &Config{Level: "info", Format: "json", Output: path}
	cfg.ApplyDefaults()

	New(cfg, "svc").Info("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("expected message in file, got %q", data)
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(jsonLogger(&buf, "debug"))
	Debug("global debug")
	WithComponent("c").Info("component info")
	if !strings.Contains(buf.String(), "global debug") || !strings.Contains(buf.String(), `"component":"c"`) {
		t.Errorf("expected global output, got %q", buf.String())
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != OutputStdout {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.MaxSize != 100 || cfg.MaxBackups != 3 || cfg.MaxAge != 28 {
		t.Errorf("unexpected rotation defaults %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"pretty", Config{Level: "info", Format: "pretty"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
		{"negative rotation", Config{Level: "info", Format: "json", MaxAge: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFieldHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("expected odd trailing key to be dropped, got %v", f)
	}
	ef := ErrorFields("save", errors.New("x"))
	if ef[FieldOperation] != "save" || ef[FieldError] != "x" {
		t.Errorf("unexpected error fields %v", ef)
	}
	df := DurationFields("save", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("unexpected duration fields %v", df)
	}
}
