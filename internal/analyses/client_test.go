package analyses

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetByIDSendsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"a 1","status":"processing"}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL+"/api/v1/", ClientOptions{Token: "secret", Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	a, err := c.GetByID(context.Background(), "a 1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if gotPath != "/api/v1/analyses/a 1" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if a.Status != StatusProcessing {
		t.Fatalf("expected processing, got %q", a.Status)
	}
}

func TestNotFoundHandling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, ClientOptions{})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	if _, err := c.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	latest, err := c.Latest(context.Background())
	if err != nil || latest != nil {
		t.Fatalf("expected nil latest without error, got %v %v", latest, err)
	}
}

func TestLatestWithoutAnalysisIsNil(t *testing.T) {
	for _, body := range []string{`null`, `{}`, `{"id":"  ","status":"completed"}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}))

		c, err := NewHTTPClient(srv.URL, ClientOptions{})
		if err != nil {
			srv.Close()
			t.Fatalf("NewHTTPClient: %v", err)
		}
		latest, err := c.Latest(context.Background())
		srv.Close()
		if err != nil || latest != nil {
			t.Fatalf("body %s: expected nil latest without error, got %+v %v", body, latest, err)
		}
	}
}

func TestLatestReturnsAnalysis(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"a-3","status":"completed"}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, ClientOptions{})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	latest, err := c.Latest(context.Background())
	if err != nil || latest == nil {
		t.Fatalf("expected analysis, got %v %v", latest, err)
	}
	if latest.ID != "a-3" || latest.Status != StatusCompleted {
		t.Fatalf("unexpected analysis %+v", latest)
	}
}

func TestServerErrorsBecomeStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	c, _ := NewHTTPClient(srv.URL, ClientOptions{})
	_, err := c.GetByID(context.Background(), "a-1")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusBadGateway || se.Body != "upstream down" {
		t.Fatalf("unexpected status error: %+v", se)
	}
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient("  ", ClientOptions{}); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}

func TestCancelledContextStopsBeforeRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c, _ := NewHTTPClient(srv.URL, ClientOptions{RPS: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.GetByID(ctx, "a-1"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	if called {
		t.Fatalf("expected no request with a cancelled context")
	}
}
