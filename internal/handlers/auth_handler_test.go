package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harborlight/backend/internal/auth"
	"github.com/harborlight/backend/internal/middleware"
	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/services"
	"github.com/harborlight/backend/internal/storage"
)

const testCookie = "hl_session"

type fakeUsers struct {
	users  map[string]*models.User // by hex id
	logins int
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return storage.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID.Hex()] = user
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID.Hex()]; !ok {
		return storage.ErrNotFound
	}
	f.users[user.ID.Hex()] = user
	return nil
}

func (f *fakeUsers) Deactivate(ctx context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Active = false
	return nil
}

func (f *fakeUsers) RecordLogin(ctx context.Context, id string, at time.Time) error {
	f.logins++
	return nil
}

func (f *fakeUsers) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type authFixture struct {
	app    *fiber.App
	users  *fakeUsers
	tokens *auth.TokenManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := &fakeUsers{users: map[string]*models.User{}}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	sessions := auth.NewSessions(testCookie, time.Hour)
	authn := middleware.NewAuthenticator(users, tokens, sessions)
	svc := services.NewAuthService(users, tokens)
	h := NewAuthHandler(svc, sessions, authn)

	app := fiber.New()
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/logout", h.Logout)
	app.Get("/api/auth/me", h.Me)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &models.User{
		Email:        "admin@x.org",
		Name:         "Admin",
		Role:         models.RoleAdmin,
		PasswordHash: hash,
		Active:       true,
	}))

	return &authFixture{app: app, users: users, tokens: tokens}
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func doRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

func TestLoginSuccess(t *testing.T) {
	fx := newAuthFixture(t)

	resp := postJSON(t, fx.app, "/api/auth/login", map[string]string{
		"email":    "admin@x.org",
		"password": "s3cret-pass",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "admin@x.org", user["email"])
	assert.Equal(t, models.RoleAdmin, user["role"])

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "login must set the session cookie")
	assert.True(t, cookie.HttpOnly)

	claims, err := fx.tokens.Validate(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.UserID)
	assert.Equal(t, "admin@x.org", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	assert.Equal(t, 1, fx.users.logins, "successful login records last-login")
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	fx := newAuthFixture(t)

	resp := postJSON(t, fx.app, "/api/auth/login", map[string]string{
		"email":    "Admin@X.org",
		"password": "s3cret-pass",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	fx := newAuthFixture(t)

	wrongPass := postJSON(t, fx.app, "/api/auth/login", map[string]string{
		"email":    "admin@x.org",
		"password": "wrong",
	})
	unknown := postJSON(t, fx.app, "/api/auth/login", map[string]string{
		"email":    "nobody@x.org",
		"password": "wrong",
	})

	require.Equal(t, fiber.StatusUnauthorized, wrongPass.StatusCode)
	require.Equal(t, fiber.StatusUnauthorized, unknown.StatusCode)

	bodyA := decodeBody(t, wrongPass)
	bodyB := decodeBody(t, unknown)
	assert.Equal(t, "Invalid email or password", bodyA["error"])
	assert.Equal(t, bodyA, bodyB, "unknown email and wrong password must look identical")
}

func TestLoginInactiveUser(t *testing.T) {
	fx := newAuthFixture(t)
	for _, u := range fx.users.users {
		u.Active = false
	}

	resp := postJSON(t, fx.app, "/api/auth/login", map[string]string{
		"email":    "admin@x.org",
		"password": "s3cret-pass",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", decodeBody(t, resp)["error"])
}

func TestLoginMissingFields(t *testing.T) {
	fx := newAuthFixture(t)

	resp := postJSON(t, fx.app, "/api/auth/login", map[string]string{"email": "admin@x.org"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMeWithoutCookie(t *testing.T) {
	fx := newAuthFixture(t)

	resp, err := fx.app.Test(httptest.NewRequest("GET", "/api/auth/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authenticated", decodeBody(t, resp)["error"])
}

func TestMeWithSession(t *testing.T) {
	fx := newAuthFixture(t)

	login := postJSON(t, fx.app, "/api/auth/login", map[string]string{
		"email":    "admin@x.org",
		"password": "s3cret-pass",
	})
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: cookie.Value})
	resp, err := fx.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	user := body["user"].(map[string]any)
	assert.Equal(t, "admin@x.org", user["email"])
}

func TestLogoutClearsCookie(t *testing.T) {
	fx := newAuthFixture(t)

	resp := postJSON(t, fx.app, "/api/auth/logout", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
}
