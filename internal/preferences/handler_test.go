package preferences

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"skincare-client/internal/shared/storage/kv/memkv"
	"skincare-client/internal/shared/telemetry"
)

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("disk full")
}

func (failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("disk full")
}

func newPrefsRouter(lang *Language) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(lang).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestLanguageHandlerRoundTrip(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	r := newPrefsRouter(NewLanguage(memkv.New(), language.English))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/preferences/language", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"language":"en"`) {
		t.Fatalf("unexpected GET response %d %s", resp.Code, resp.Body.String())
	}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences/language", strings.NewReader(`{"language":"es-MX"}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"language":"es"`) {
		t.Fatalf("unexpected PUT response %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/preferences/language", nil))
	if !strings.Contains(resp.Body.String(), `"language":"es"`) {
		t.Fatalf("expected es after PUT, got %s", resp.Body.String())
	}
}

func TestLanguageHandlerRejectsUnsupported(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	r := newPrefsRouter(NewLanguage(memkv.New(), language.English))

	for _, body := range []string{`{"language":"ja"}`, `not json`} {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences/language", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, resp.Code)
		}
	}
}

func TestLanguageHandlerStoreFailure(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	r := newPrefsRouter(NewLanguage(failingStore{}, language.English))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences/language", strings.NewReader(`{"language":"es"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
