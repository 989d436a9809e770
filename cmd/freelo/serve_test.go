package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metalagman/freelo/internal/config"
)

func testServerConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "freelo.db")
	cfg.Model.APIKey = "test-key"
	cfg.Server.JWTSecret = "secret"
	return cfg
}

func TestServerApp_ServesHealth(t *testing.T) {
	var srv *http.Server
	app := newServerApp(testServerConfig(t), &srv)
	if err := app.Err(); err != nil {
		t.Fatalf("build app: %v", err)
	}
	if err := app.Start(context.Background()); err != nil {
		t.Fatalf("start app: %v", err)
	}
	t.Cleanup(func() { _ = app.Stop(context.Background()) })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/projects", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("projects status = %d, want 401", rec.Code)
	}
}

func TestServerApp_RequiresJWTSecret(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.Server.JWTSecret = ""
	cfg.Server.JWTSecretEnv = "FREELO_TEST_UNSET_SECRET"

	var srv *http.Server
	app := newServerApp(cfg, &srv)
	err := app.Err()
	if err == nil || !strings.Contains(err.Error(), "jwt secret not configured") {
		t.Fatalf("expected jwt secret error, got %v", err)
	}
}
