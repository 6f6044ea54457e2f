//go:build e2e

package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/grievance-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/grievance-backend/internal/app"
	"github.com/heartmarshall/grievance-backend/internal/auth"
	"github.com/heartmarshall/grievance-backend/internal/config"
	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *auth.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret-at-least-32-chars-long!!",
			JWTIssuer: "test-issuer",
			Leeway:    30 * time.Second,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         600,
		},
		Escalation: config.EscalationConfig{ScanTimeout: time.Minute},
		Assignment: config.AssignmentConfig{},
	}

	svc := app.NewServices(logger, cfg, pool)
	scheduler, err := app.NewEscalationScheduler(logger, svc.Escalation, cfg.Escalation)
	require.NoError(t, err)

	srv := httptest.NewServer(app.NewHandler(logger, cfg, pool, svc, scheduler))
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.Leeway),
	}
}

// token issues a bearer token for a fresh actor with the given role.
func (ts *testServer) token(t *testing.T, role string) string {
	t.Helper()
	return ts.tokenFor(t, uuid.New(), role)
}

func (ts *testServer) tokenFor(t *testing.T, actor uuid.UUID, role string) string {
	t.Helper()
	tok, err := ts.jwt.IssueAccessToken(actor, role, time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends a JSON request and decodes the JSON response into a generic value.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	require.True(t, ok, "expected JSON object, got %T", v)
	return m
}

func asList(t *testing.T, v any) []any {
	t.Helper()
	l, ok := v.([]any)
	require.True(t, ok, "expected JSON array, got %T", v)
	return l
}

// seedOpenCases gives the caseworker n open cases with active assignments.
func seedOpenCases(t *testing.T, pool *pgxpool.Pool, caseworker, submitter uuid.UUID, n int) {
	t.Helper()
	for range n {
		c := testhelper.SeedCase(t, pool, submitter, domain.CaseStatusInProgress, time.Now())
		testhelper.SeedAssignment(t, pool, c.ID, caseworker)
	}
}

// unique returns a name no other test shares, so tests on the shared
// database do not see each other's departments or rule filters.
func unique(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
