package main

import (
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	oldCommandLine := flag.CommandLine
	t.Cleanup(func() {
		os.Args = oldArgs
		flag.CommandLine = oldCommandLine
	})
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = append([]string{"taskdesk-api"}, args...)
}

func resetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if val, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, val) })
			os.Unsetenv(key)
		}
	}
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags(t)
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags(t, "-c", "testdata/other.env")
	assert.Equal(t, "testdata/other.env", parseFlags())
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv(t,
		"APP_HOST", "APP_PORT", "APP_LOG_LEVEL",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD",
		"POSTGRES_DB", "POSTGRES_MAX_OPEN_CONNS", "POSTGRES_MAX_IDLE_CONNS",
		"KAFKA_ADDR", "KAFKA_TOPIC",
	)

	cfg, err := parseConfig("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.AppHost)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost", cfg.PGHost)
	assert.Equal(t, 5432, cfg.PGPort)
	assert.Equal(t, 16, cfg.PGMaxOpenConns)
	assert.Equal(t, 8, cfg.PGMaxIdleConns)
	assert.Empty(t, cfg.KafkaAddr)
	assert.Equal(t, "taskdesk-events", cfg.KafkaTopic)
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	resetEnv(t, "APP_PORT", "POSTGRES_PORT")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_PORT", "15432")

	cfg, err := parseConfig("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 15432, cfg.PGPort)
}

func TestParseConfig_InvalidPort(t *testing.T) {
	resetEnv(t, "POSTGRES_PORT")
	t.Setenv("POSTGRES_PORT", "not-a-number")

	_, err := parseConfig("does-not-exist.env")
	assert.Error(t, err)
}

func newTestRouter() http.Handler {
	ok := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(name))
		}
	}
	return newRouter(
		ok("register"),
		ok("login"),
		ok("listUsers"),
		ok("createTask"),
		ok("listTasks"),
		"http://localhost:8080/swagger/doc.json",
	)
}

func TestNewRouter_Unmatched(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"unknown path", http.MethodGet, "/api/nope"},
		{"wrong method on register", http.MethodDelete, "/api/users"},
		{"wrong method on login", http.MethodGet, "/api/login"},
		{"wrong method on tasks", http.MethodPut, "/api/tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			body, err := io.ReadAll(rec.Body)
			require.NoError(t, err)
			assert.Equal(t, "Not Found", string(body))
		})
	}
}

func TestNewRouter_Health(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestNewRouter_TrailingSlashStripped(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "listTasks", rec.Body.String())
}

func TestNewRouter_Routes(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/api/users", "register"},
		{http.MethodPost, "/api/login", "login"},
		{http.MethodGet, "/api/users", "listUsers"},
		{http.MethodPost, "/api/tasks", "createTask"},
		{http.MethodGet, "/api/tasks", "listTasks"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}
