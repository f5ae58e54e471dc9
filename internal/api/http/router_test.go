package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/userstore/internal/api/http/handlers"
	"github.com/spec-kit/userstore/internal/auth"
	"github.com/spec-kit/userstore/internal/events"
	"github.com/spec-kit/userstore/internal/observability"
	"github.com/spec-kit/userstore/internal/repository"
	"github.com/spec-kit/userstore/internal/service"
	"github.com/spec-kit/userstore/internal/storage"
)

type fakeDep struct {
	configured bool
	err        error
}

func (d fakeDep) Configured() bool             { return d.configured }
func (d fakeDep) Ping(_ context.Context) error { return d.err }

type testServer struct {
	app   *fiber.App
	token string
}

func newTestServer(t *testing.T, deps map[string]handlers.Pinger) *testServer {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	repo := repository.NewUserRepository(storage.WithMetrics(storage.NewMemoryStorage(), metrics))
	users := service.NewUserService(repo, events.NewInMemoryDispatcher(), logger)
	tokens := auth.NewTokenManager("test-secret", 5)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("userstore", "test", deps),
		Users:          handlers.NewUsersHandler(users),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
		Metrics:        metrics,
	})

	token, _, err := tokens.GenerateToken("tester", auth.ScopeWrite)
	require.NoError(t, err)
	return &testServer{app: app, token: token}
}

func (s *testServer) do(t *testing.T, method, path, body string, authed bool) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestUsersAPI_Lifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := s.do(t, http.MethodPost, "/users", `{"name":"John Doe","email":"john@example.com","age":30}`, true)
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "John Doe <john@example.com>", data["display_name"])
	assert.Equal(t, true, data["adult"])

	status, body = s.do(t, http.MethodGet, "/users/john@example.com", "", false)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "John Doe", body["data"].(map[string]any)["name"])

	status, body = s.do(t, http.MethodGet, "/users", "", false)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, _ = s.do(t, http.MethodDelete, "/users/john@example.com", "", true)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = s.do(t, http.MethodDelete, "/users/john@example.com", "", true)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	status, body = s.do(t, http.MethodGet, "/users/john@example.com", "", false)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestUsersAPI_Validation(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := s.do(t, http.MethodPost, "/users", `{"name":"","email":"a@x","age":3}`, true)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Equal(t, "name", details["field"])

	status, body = s.do(t, http.MethodPost, "/users", `{"name":"A","email":"a@x","age":-1}`, true)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "age must be non-negative", body["error"].(map[string]any)["message"])

	status, body = s.do(t, http.MethodPost, "/users", `{not json`, true)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestUsersAPI_RequiresToken(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := s.do(t, http.MethodPost, "/users", `{"name":"A","email":"a@x","age":3}`, false)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	status, _ = s.do(t, http.MethodDelete, "/users/a@x", "", false)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealth(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		s := newTestServer(t, nil)
		status, body := s.do(t, http.MethodGet, "/health/live", "", false)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "alive", body["status"])
	})

	t.Run("ready skips unconfigured deps", func(t *testing.T) {
		s := newTestServer(t, map[string]handlers.Pinger{
			"postgres": fakeDep{configured: false, err: errors.New("down")},
			"redis":    fakeDep{configured: true},
		})
		status, body := s.do(t, http.MethodGet, "/health/ready", "", false)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"redis": "ok"}, body["dependencies"])
	})

	t.Run("not ready", func(t *testing.T) {
		s := newTestServer(t, map[string]handlers.Pinger{
			"redis": fakeDep{configured: true, err: errors.New("connection refused")},
		})
		status, body := s.do(t, http.MethodGet, "/health/ready", "", false)
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "DEPENDENCY_UNAVAILABLE", errorCode(body))
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodGet, "/users", "", false)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "userstore_http_requests_total")
	assert.Contains(t, string(raw), "userstore_storage_operations_total")
}
