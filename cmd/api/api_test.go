package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"patitas/internal/auth"
	"patitas/internal/domain/daycares"
	"patitas/internal/domain/storage"
	"patitas/internal/domain/users"
	"patitas/internal/ids"
	"patitas/internal/realtime"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	app      *application
	users    *fakeUsers
	advice   *fakeAdvice
	daycares *fakeDaycares
	comments *fakeComments
	mailer   *fakeMailer
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []any
}

func (m *fakeMailer) Send(_, _, _ string, data any) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, data)
	return 200, nil
}

func (m *fakeMailer) last() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	return m.sent[len(m.sent)-1]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	codec, err := ids.New("test-salt", 6)
	require.NoError(t, err)

	env := &testEnv{
		users:    newFakeUsers(),
		advice:   newFakeAdvice(),
		daycares: &fakeDaycares{docs: map[int64]*daycares.Daycare{}},
		comments: newFakeComments(),
		mailer:   &fakeMailer{},
	}

	cfg := config{
		addr: ":0",
		env:  "test",
		auth: authConfig{
			basic: basicConfig{user: "admin", pass: "secret"},
			token: tokenConfig{
				secret:          "access-secret",
				refreshSecret:   "refresh-secret",
				accessTokenExp:  time.Hour,
				refreshTokenExp: 24 * time.Hour,
				iss:             "patitas",
			},
		},
		mail:        mailConfig{resetExp: 3 * time.Hour},
		frontendURL: "http://localhost:8081",
	}

	env.app = &application{
		config: cfg,
		store: &storage.Container{
			Users:    env.users,
			Advice:   env.advice,
			Daycares: env.daycares,
			Comments: env.comments,
		},
		logger: zap.NewNop().Sugar(),
		mailer: env.mailer,
		authenticator: auth.NewJWTAuthenticator(
			cfg.auth.token.secret,
			cfg.auth.token.refreshSecret,
			cfg.auth.token.iss,
			cfg.auth.token.iss,
			cfg.auth.token.accessTokenExp,
			cfg.auth.token.refreshTokenExp,
		),
		ids: codec,
		hub: realtime.NewHub(),
	}
	return env
}

// signIn creates a user and returns a bearer header value for it.
func (e *testEnv) signIn(t *testing.T, alias, email string) (*users.User, string) {
	t.Helper()
	u := e.users.add(alias, email, "secret123")
	access, _, err := e.app.authenticator.GenerateTokens(u.ID)
	require.NoError(t, err)
	return u, "Bearer " + access
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	rr := httptest.NewRecorder()
	e.app.mount().ServeHTTP(rr, req)
	return rr
}

// decodeData decodes the {"data": ...} envelope of rr into dst.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestHealthRequiresBasicAuth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/v1/health", "", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.SetBasicAuth("admin", "secret")
	rr = httptest.NewRecorder()
	env.app.mount().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}
