package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
	"yamdb/proj/internal/config"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/lib/jwt"
	"yamdb/proj/internal/lib/logger"
	"yamdb/proj/internal/services"
	"yamdb/proj/internal/storage/memory"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type capturingMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *capturingMailer) Send(recipient string, tmplName string, tmplData any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := tmplData.(map[string]any)
	m.codes[recipient] = data["confirmationCode"].(string)
	return nil
}

func (m *capturingMailer) code(recipient string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[recipient]
}

func testConfig() *config.Config {
	return &config.Config{
		AppSecret:  testSecret,
		Cors:       config.Cors{AllowedOrigins: []string{"*"}},
		DB:         config.DB{Driver: "memory"},
		Auth:       config.Auth{CodeLength: 6, AccessTokenTTL: time.Hour},
		Pagination: config.Pagination{DefaultPageSize: 10, MaxPageSize: 100},
		Mail:       config.Mail{Backend: "log"},
	}
}

type testEnv struct {
	app     *Application
	store   *memory.Store
	mailer  *capturingMailer
	handler http.Handler
}

func NewTestApplication(cfg *config.Config, t *testing.T) *Application {
	return newTestEnv(cfg, t).app
}

func newTestEnv(cfg *config.Config, t *testing.T) *testEnv {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	log := logger.Discard()
	store := memory.New()
	mailer := &capturingMailer{codes: make(map[string]string)}
	app := NewApplication(cfg, log, services.New(log, cfg, services.FromMemory(store), mailer))
	return &testEnv{app: app, store: store, mailer: mailer, handler: app.routes()}
}

// userToken inserts a user with the given role and returns an access token for it.
func (e *testEnv) userToken(t *testing.T, username string, role models.Role) string {
	t.Helper()
	user, err := e.store.User.Insert(context.Background(), &models.User{
		Username: username,
		Email:    username + "@x.com",
		Role:     role,
		IsActive: true,
	})
	require.NoError(t, err)
	token, err := jwt.NewToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

type testResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, testResponse) {
	t.Helper()
	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	var resp testResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec.Code, resp
}

// object returns data[key] as a JSON object.
func (r testResponse) object(t *testing.T, key string) map[string]any {
	t.Helper()
	obj, ok := r.Data[key].(map[string]any)
	require.True(t, ok, "data.%s is not an object: %v", key, r.Data)
	return obj
}

func (r testResponse) results(t *testing.T) []any {
	t.Helper()
	results, ok := r.Data["results"].([]any)
	require.True(t, ok, "data.results is not a list: %v", r.Data)
	return results
}
