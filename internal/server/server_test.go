package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GGmuzem/polish-calc/internal/config"
	"github.com/GGmuzem/polish-calc/internal/database"
	"github.com/GGmuzem/polish-calc/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.HTTP.DebugMode = true
	cfg.Auth.JWTSignKey = "test_sign_key"
	cfg.Calculator.MaxDepth = 16

	srv := New(cfg, database.NewMemoryDB())
	return srv, srv.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func registerAndLogin(t *testing.T, router http.Handler, login string) string {
	t.Helper()
	creds := `{"login": "` + login + `", "password": "secret"}`

	rr := doJSON(t, router, http.MethodPost, "/api/v1/register", creds, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doJSON(t, router, http.MethodPost, "/api/v1/login", creds, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	_, router := newTestServer(t)

	rr := doJSON(t, router, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rr.Body.String())
}

func TestAnonymousEvaluate(t *testing.T) {
	_, router := newTestServer(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/evaluate", `{"expression": "(+ 1 (* 2 3))"}`, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"result": "7"}`, rr.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	_, router := newTestServer(t)
	registerAndLogin(t, router, "alice")

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"duplicate", "/api/v1/register", `{"login": "alice", "password": "other"}`, http.StatusConflict},
		{"empty credentials", "/api/v1/register", `{"login": "", "password": ""}`, http.StatusBadRequest},
		{"broken json", "/api/v1/register", `{"login":`, http.StatusUnprocessableEntity},
		{"wrong password", "/api/v1/login", `{"login": "alice", "password": "wrong"}`, http.StatusUnauthorized},
		{"unknown user", "/api/v1/login", `{"login": "bob", "password": "secret"}`, http.StatusUnauthorized},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rr := doJSON(t, router, http.MethodPost, test.path, test.body, "")
			assert.Equal(t, test.status, rr.Code, rr.Body.String())
		})
	}
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	_, router := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/calculate"},
		{http.MethodGet, "/api/v1/expressions"},
		{http.MethodGet, "/api/v1/expressions/1-1"},
	} {
		rr := doJSON(t, router, route.method, route.path, `{"expression": "(+ 1 2)"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, route.path)

		rr = doJSON(t, router, route.method, route.path, `{"expression": "(+ 1 2)"}`, "garbage")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, route.path)
	}
}

func TestCalculateStoresHistory(t *testing.T) {
	_, router := newTestServer(t)
	token := registerAndLogin(t, router, "alice")

	rr := doJSON(t, router, http.MethodPost, "/api/v1/calculate", `{"expression": "(* 2.5 (+ 3 4))"}`, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var ok models.CalculateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ok))
	assert.Equal(t, models.StatusCompleted, ok.Status)
	assert.Equal(t, "17.5", ok.Result)
	assert.NotEmpty(t, ok.ID)

	rr = doJSON(t, router, http.MethodPost, "/api/v1/calculate", `{"expression": "(/ 1 0)"}`, token)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())

	var failed models.CalculateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &failed))
	assert.Equal(t, models.StatusError, failed.Status)
	assert.Equal(t, "Division by zero", failed.Error)
	assert.NotEmpty(t, failed.ID)

	rr = doJSON(t, router, http.MethodPost, "/api/v1/calculate", `{"expression": "(- 0 (/ 1 0.0))"}`, token)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())

	rr = doJSON(t, router, http.MethodGet, "/api/v1/expressions", "", token)
	require.Equal(t, http.StatusOK, rr.Code)

	var list struct {
		Expressions []models.Expression `json:"expressions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Expressions, 3)
	assert.Equal(t, failed.ID, list.Expressions[1].ID)
	assert.Equal(t, ok.ID, list.Expressions[2].ID)

	rr = doJSON(t, router, http.MethodGet, "/api/v1/expressions/"+ok.ID, "", token)
	require.Equal(t, http.StatusOK, rr.Code)

	var single struct {
		Expression models.Expression `json:"expression"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &single))
	assert.Equal(t, "(* 2.5 (+ 3 4))", single.Expression.Expression)
	assert.Equal(t, "17.5", single.Expression.Result)
	assert.Equal(t, models.StatusCompleted, single.Expression.Status)
}

func TestCalculateNonFiniteResult(t *testing.T) {
	_, router := newTestServer(t)
	token := registerAndLogin(t, router, "alice")

	// 1e308 * 10 overflows to +Inf without any division by zero
	huge := "1" + strings.Repeat("0", 308)
	rr := doJSON(t, router, http.MethodPost, "/api/v1/calculate", `{"expression": "(* `+huge+` 10)"}`, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"result":"inf"`)

	rr = doJSON(t, router, http.MethodGet, "/api/v1/expressions", "", token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"result":"inf"`)
}

func TestExpressionsAreScopedToUser(t *testing.T) {
	_, router := newTestServer(t)
	alice := registerAndLogin(t, router, "alice")
	bob := registerAndLogin(t, router, "bob")

	rr := doJSON(t, router, http.MethodPost, "/api/v1/calculate", `{"expression": "(+ 1 2)"}`, alice)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created models.CalculateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, router, http.MethodGet, "/api/v1/expressions/"+created.ID, "", bob)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/v1/expressions", "", bob)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"expressions": []}`, rr.Body.String())
}

func TestIDGenerator(t *testing.T) {
	gen := NewIDGenerator()
	gen.now = func() time.Time { return time.UnixMilli(1700000000000) }

	assert.Equal(t, "1700000000000-1", gen.Next())
	assert.Equal(t, "1700000000000-2", gen.Next())

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.Next()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
	for id := range seen {
		assert.True(t, strings.HasPrefix(id, "1700000000000-"))
	}
}
