package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestComponent_Lifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	comp := NewComponent(Config{Name: "test-http", BaseURL: srv.URL})

	if comp.Client() != nil {
		t.Error("Client() should be nil before Start()")
	}
	if h := comp.Health(context.Background()); h.Status != "unhealthy" {
		t.Errorf("expected unhealthy before Start, got %s", h.Status)
	}

	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if comp.Client() == nil {
		t.Fatal("Client() should not be nil after Start()")
	}

	health := comp.Health(context.Background())
	if health.Status != "healthy" {
		t.Errorf("expected healthy, got %s", health.Status)
	}
	if health.Name != "test-http" {
		t.Errorf("expected name test-http, got %s", health.Name)
	}

	tx, err := comp.Client().Do(context.Background(), Request{Path: "/"})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if tx.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", tx.StatusCode)
	}

	if err := comp.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestComponent_Start_InvalidConfig(t *testing.T) {
	comp := NewComponent(Config{BaseURL: "::not a url"})
	if err := comp.Start(context.Background()); err == nil {
		t.Error("expected Start to fail on an invalid base URL")
	}
}

func TestComponent_Name_Default(t *testing.T) {
	comp := NewComponent(Config{BaseURL: "http://localhost"})
	if got := comp.Name(); got != "http" {
		t.Errorf("expected default name 'http', got %q", got)
	}
}

func TestComponent_Describe(t *testing.T) {
	comp := NewComponent(Config{Name: "my-api", BaseURL: "http://example.com"})
	desc := comp.Describe()
	if desc.Type != "http-client" {
		t.Errorf("expected type http-client, got %q", desc.Type)
	}
	if desc.Details != "http://example.com" {
		t.Errorf("expected details to be the base URL, got %q", desc.Details)
	}
}
