package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roundandgo/sessionkit/models"
	"github.com/roundandgo/sessionkit/session"
	"github.com/roundandgo/sessionkit/store"
	utilscontext "github.com/roundandgo/sessionkit/utils/context"
)

func bearer(payload string) string {
	return "header." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func run(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(handler)(c)
	require.NoError(t, err)
	return rec
}

func TestRequireSession_RejectsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	rec := run(t, RequireSession(store.NewMemory(), session.Generic()), req,
		func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestRequireSession_AcceptsCookieToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	req.AddCookie(&http.Cookie{Name: "authToken", Value: bearer(`{}`)})

	rec := run(t, RequireSession(store.NewMemory(), session.Generic()), req,
		func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSession_AcceptsOpaqueSessionCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	req.AddCookie(&http.Cookie{Name: "JSESSIONID", Value: "0F2A7C"})

	rec := run(t, RequireSession(store.NewMemory(), session.Generic()), req,
		func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetPrincipalFromSession_CookieBacked(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/mypage", nil)
	req.AddCookie(&http.Cookie{Name: "emailAuthToken", Value: bearer(`{}`)})
	req.AddCookie(&http.Cookie{Name: "emailUser", Value: `{"type":"email","email":"golfer@roundandgo.shop"}`})

	var fromEchoCtx, fromRequestCtx models.Principal
	rec := run(t, SetPrincipalFromSession(store.NewMemory(), session.Email()), req,
		func(c echo.Context) error {
			fromEchoCtx = c.Get(PrincipalKey).(models.Principal)
			fromRequestCtx = utilscontext.GetPrincipalFromContext(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "golfer@roundandgo.shop", fromEchoCtx.Email)
	assert.Equal(t, fromEchoCtx, fromRequestCtx)
}

func TestSetPrincipalFromSession_BearerHeaderWithUserClaim(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/mypage", nil)
	req.Header.Set(Authorization, "Bearer "+bearer(`{"user":{"type":"email","email":"a@b.c"}}`))

	var got models.Principal
	rec := run(t, SetPrincipalFromSession(store.NewMemory(), session.Email()), req,
		func(c echo.Context) error {
			got = c.Get(PrincipalKey).(models.Principal)
			return c.NoContent(http.StatusOK)
		})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@b.c", got.Email)
}

func TestSetPrincipalFromSession_AnonymousPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/courses", nil)

	rec := run(t, SetPrincipalFromSession(store.NewMemory(), session.Generic()), req,
		func(c echo.Context) error {
			assert.Nil(t, c.Get(PrincipalKey))
			return c.NoContent(http.StatusOK)
		})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetPrincipalFromSession_ExpiredCookieTearsDown(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/mypage", nil)
	req.AddCookie(&http.Cookie{Name: "authToken", Value: bearer(`{"exp": 1000000000}`)})

	rec := run(t, SetPrincipalFromSession(store.NewMemory(), session.Generic()), req,
		func(c echo.Context) error {
			assert.Nil(t, c.Get(PrincipalKey))
			return c.NoContent(http.StatusOK)
		})

	// teardown reached the response as expired set-cookies
	cleared := false
	for _, sc := range rec.Header().Values("Set-Cookie") {
		if strings.HasPrefix(sc, "authToken=") && strings.Contains(sc, "1970") {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected an expired authToken set-cookie")
}

func TestLogoutHandler(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Set(context.Background(), "authToken", bearer(`{}`)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "authToken", Value: bearer(`{}`)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, Logout(mem, session.Generic())(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, mem.Len())
	assert.NotEmpty(t, rec.Header().Values("Set-Cookie"))
}
