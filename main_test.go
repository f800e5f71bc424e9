package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TripleGChat/TG-Backend/internal/auth"
	"github.com/TripleGChat/TG-Backend/internal/chat"
	"github.com/TripleGChat/TG-Backend/internal/config"
	"github.com/TripleGChat/TG-Backend/internal/gateway"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app shell</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		StaticDir:     dir,
		AuthRateLimit: 5,
		AuthRateBurst: 10,
	}
	authService := auth.NewService(&auth.GormStore{}, []byte("test-secret"))
	return newRouter(cfg, authService, &gateway.Service{}, chat.NewService("", ""))
}

// TestRouter_RootServesSPA verifies the site root hands out the client bundle,
// not the liveness text: a browser visiting / must get the app shell.
func TestRouter_RootServesSPA(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/", "/chat/42"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "app shell") {
			t.Errorf("%s: expected index.html fallback, got: %s", path, rec.Body.String())
		}
	}
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Server is up!") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

// TestRouter_UnknownAuthActionStillRoutes pins the /api mounts: API paths are
// handled by their services, never swallowed by the SPA fallback.
func TestRouter_UnknownAuthActionStillRoutes(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"action":"nope"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unknown action") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
