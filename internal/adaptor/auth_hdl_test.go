package adaptor_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"answerq/internal/data/repository/repotest"
	"answerq/internal/usecase"
	"answerq/internal/wire"
	"answerq/pkg/mailer"
	"answerq/pkg/token"
	"answerq/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type outbox struct {
	mu   sync.Mutex
	msgs []mailer.Message
}

func (o *outbox) Dispatch(msg mailer.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, msg)
}

func (o *outbox) to(addr string) []mailer.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []mailer.Message
	for _, m := range o.msgs {
		if m.To == addr {
			out = append(out, m)
		}
	}
	return out
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type server struct {
	t      *testing.T
	router http.Handler
	mail   *outbox
	code   string
}

func newServer(t *testing.T) *server {
	t.Helper()

	composer, err := mailer.NewComposer("answerq")
	require.NoError(t, err)

	config := &utils.Config{
		App:          utils.AppConfig{Name: "answerq", RequestTimeout: 5 * time.Second},
		JWT:          utils.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
		Verification: utils.VerificationConfig{Expiry: 15 * time.Minute},
	}
	repo, _ := repotest.NewRepository()
	issuer := token.NewIssuer(config.JWT.Secret, config.JWT.Expiry, config.App.Name)

	s := &server{t: t, mail: &outbox{}, code: "482913"}
	app := wire.Wiring(repo, s.mail, composer, issuer, config, zap.NewNop(),
		usecase.WithCodeGenerator(func() string { return s.code }),
	)
	s.router = app.Router
	return s
}

func (s *server) do(method, path string, body any, bearer string) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type account struct {
	ID                  int64  `json:"id"`
	Email               string `json:"email"`
	Enabled             bool   `json:"enabled"`
	PendingVerification bool   `json:"pendingVerification"`
}

func (s *server) login(email, password string) string {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, "")
	require.Equal(s.t, http.StatusOK, status, env.Message)
	return decode[struct {
		Token string `json:"token"`
	}](s.t, env.Data).Token
}

func TestAliceLifecycle(t *testing.T) {
	s := newServer(t)

	status, env := s.do(http.MethodPost, "/auth/signup", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "Secret123",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	alice := decode[account](t, env.Data)
	assert.False(t, alice.Enabled)
	assert.True(t, alice.PendingVerification)

	sent := s.mail.to("alice@x.com")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "482913")

	status, env = s.do(http.MethodPost, "/auth/login", map[string]string{"email": "alice@x.com", "password": "Secret123"}, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Account not verified", env.Message)

	status, env = s.do(http.MethodPost, "/auth/verify", map[string]string{"email": "alice@x.com", "verificationCode": "000000"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid verification code", env.Message)

	status, _ = s.do(http.MethodPost, "/auth/verify", map[string]string{"email": "alice@x.com", "verificationCode": "482913"}, "")
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(http.MethodPost, "/auth/login", map[string]string{"email": "alice@x.com", "password": "Secret123"}, "")
	require.Equal(t, http.StatusOK, status)
	login := decode[struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expiresIn"`
		Verified  bool   `json:"verified"`
	}](t, env.Data)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, int64(3600), login.ExpiresIn)
	assert.True(t, login.Verified)

	status, env = s.do(http.MethodGet, fmt.Sprintf("/v1/users/user-details/%d", alice.ID), nil, login.Token)
	require.Equal(t, http.StatusOK, status)
	details := decode[account](t, env.Data)
	assert.True(t, details.Enabled)
	assert.False(t, details.PendingVerification)
}

func TestSignupValidationAndConflict(t *testing.T) {
	s := newServer(t)

	status, env := s.do(http.MethodPost, "/auth/signup", map[string]string{
		"username": "al", "email": "not-an-email", "password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	fields := decode[map[string]string](t, env.Errors)
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Username")
	assert.Contains(t, fields, "Password")

	body := map[string]string{"username": "alice", "email": "alice@x.com", "password": "Secret123"}
	status, _ = s.do(http.MethodPost, "/auth/signup", body, "")
	require.Equal(t, http.StatusCreated, status)

	status, _ = s.do(http.MethodPost, "/auth/signup", body, "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(http.MethodPost, "/auth/signup", strings.Repeat("x", 3), "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestResend(t *testing.T) {
	s := newServer(t)

	status, _ := s.do(http.MethodPost, "/auth/signup", map[string]string{
		"username": "bob", "email": "bob@x.com", "password": "Secret123",
	}, "")
	require.Equal(t, http.StatusCreated, status)

	s.code = "135790"
	status, _ = s.do(http.MethodPost, "/auth/resend?email=bob@x.com", nil, "")
	require.Equal(t, http.StatusOK, status)

	sent := s.mail.to("bob@x.com")
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1].Body, "135790")

	status, _ = s.do(http.MethodPost, "/auth/verify", map[string]string{"email": "bob@x.com", "verificationCode": "482913"}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodPost, "/auth/verify", map[string]string{"email": "bob@x.com", "verificationCode": "135790"}, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodPost, "/auth/resend", map[string]string{"email": "bob@x.com"}, "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(http.MethodPost, "/auth/resend?email=nobody@x.com", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProfileRoutes(t *testing.T) {
	s := newServer(t)

	for _, email := range []string{"alice@x.com", "bob@x.com"} {
		status, _ := s.do(http.MethodPost, "/auth/signup", map[string]string{
			"username": "user", "email": email, "password": "Secret123",
		}, "")
		require.Equal(t, http.StatusCreated, status)
		status, _ = s.do(http.MethodPost, "/auth/verify", map[string]string{"email": email, "verificationCode": s.code}, "")
		require.Equal(t, http.StatusOK, status)
	}
	tok := s.login("alice@x.com", "Secret123")

	change := map[string]string{"oldPassword": "Secret123", "newPassword": "NewSecret1", "confirmNewPassword": "NewSecret1"}

	status, _ := s.do(http.MethodPut, "/users/change-password/1", change, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodPut, "/users/change-password/1", change, "garbage")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodPut, "/users/change-password/2", change, tok)
	assert.Equal(t, http.StatusForbidden, status)

	mismatch := map[string]string{"oldPassword": "Secret123", "newPassword": "NewSecret1", "confirmNewPassword": "NewSecret2"}
	status, env := s.do(http.MethodPut, "/users/change-password/1", mismatch, tok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Confirmation does not match", env.Message)

	status, _ = s.do(http.MethodPut, "/users/change-password/1", change, tok)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, s.mail.to("alice@x.com"), 3)

	status, _ = s.do(http.MethodPut, "/users/change-password/1", map[string]string{
		"oldPassword": "NewSecret1", "newPassword": "NewSecret1", "confirmNewPassword": "NewSecret1",
	}, tok)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodPut, "/users/change-email/1", map[string]string{
		"newEmail": "bob@x.com", "confirmNewEmail": "bob@x.com", "password": "NewSecret1",
	}, tok)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(http.MethodPut, "/users/change-email/1", map[string]string{
		"newEmail": "alice2@x.com", "confirmNewEmail": "alice2@x.com", "password": "NewSecret1",
	}, tok)
	require.Equal(t, http.StatusOK, status)

	// The old token's subject no longer resolves.
	status, _ = s.do(http.MethodGet, "/v1/forms", nil, tok)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodPost, "/auth/login", map[string]string{"email": "alice2@x.com", "password": "NewSecret1"}, "")
	assert.Equal(t, http.StatusForbidden, status)

	// A new account taking the released address does not inherit the old token.
	status, _ = s.do(http.MethodPost, "/auth/signup", map[string]string{
		"username": "mallory", "email": "alice@x.com", "password": "Secret123",
	}, "")
	require.Equal(t, http.StatusCreated, status)

	status, _ = s.do(http.MethodGet, "/v1/forms", nil, tok)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSurveyRoutes(t *testing.T) {
	s := newServer(t)

	status, _ := s.do(http.MethodGet, "/v1/forms", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodPost, "/auth/signup", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "Secret123",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	status, _ = s.do(http.MethodPost, "/auth/verify", map[string]string{"email": "alice@x.com", "verificationCode": s.code}, "")
	require.Equal(t, http.StatusOK, status)
	tok := s.login("alice@x.com", "Secret123")

	status, env := s.do(http.MethodPost, "/v1/forms", map[string]any{"name": "Quiz"}, tok)
	require.Equal(t, http.StatusCreated, status)
	form := decode[struct {
		ID int64 `json:"id"`
	}](t, env.Data)

	status, env = s.do(http.MethodPost, "/v1/question", map[string]any{"form_id": form.ID, "content": "2+2?", "required": true}, tok)
	require.Equal(t, http.StatusCreated, status)
	question := decode[struct {
		ID int64 `json:"id"`
	}](t, env.Data)

	status, env = s.do(http.MethodPost, "/v1/answers", map[string]any{"question_id": question.ID, "content": "4", "is_correct": true}, tok)
	require.Equal(t, http.StatusCreated, status)
	answer := decode[struct {
		ID int64 `json:"id"`
	}](t, env.Data)

	status, _ = s.do(http.MethodPost, "/v1/user-answers", map[string]any{
		"form_id": form.ID, "question_id": question.ID, "answer_id": answer.ID,
	}, tok)
	require.Equal(t, http.StatusCreated, status)

	status, env = s.do(http.MethodGet, fmt.Sprintf("/v1/user-answers/by-answer/%d?page=1&per_page=5", answer.ID), nil, tok)
	require.Equal(t, http.StatusOK, status)
	page := decode[struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Total   int64 `json:"total"`
			PerPage int   `json:"per_page"`
		} `json:"pagination"`
	}](t, env.Data)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, 5, page.Pagination.PerPage)

	status, _ = s.do(http.MethodGet, "/v1/forms/abc", nil, tok)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodGet, "/v1/forms/999", nil, tok)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodDelete, fmt.Sprintf("/v1/forms/%d", form.ID), nil, tok)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
