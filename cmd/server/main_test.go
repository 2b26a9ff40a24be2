package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitpay/internal/config"
)

func testConfig(t *testing.T, port int) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: port, ShutdownTimeout: time.Second},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "splitpay.db")},
		Logging:  config.LoggingConfig{Level: "info"},
	}
}

func TestRun_ReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testConfig(t, ln.Addr().(*net.TCPAddr).Port)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = run(ctx, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve")
	assert.NoError(t, ctx.Err(), "run must fail on its own, not by timing out")
}

func TestRun_ReturnsStorageError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	cfg := testConfig(t, 0)
	cfg.Database.Path = filepath.Join(blocker, "splitpay.db")

	err := run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialize storage")
}

func TestRun_ShutsDownWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, run(ctx, testConfig(t, 0)))
}

func TestStaticHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("home"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("js"), 0o600))
	handler := staticHandler(dir)

	tests := []struct {
		path string
		code int
		body string
	}{
		{path: "/", code: http.StatusOK, body: "home"},
		{path: "/app.js", code: http.StatusOK, body: "js"},
		{path: "/unknown/route", code: http.StatusOK, body: "home"},
		{path: "/splitpay.v1.BalanceService/Missing", code: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}
