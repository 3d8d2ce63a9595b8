package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// echoJar adapts one request's cookies to the store.CookieJar the resolver
// reads. Clears go out as expired set-cookies on the response and are
// masked locally so later reads within the same request see them gone.
type echoJar struct {
	c       echo.Context
	cleared map[string]bool
}

func newEchoJar(c echo.Context) *echoJar {
	return &echoJar{c: c, cleared: make(map[string]bool)}
}

func (j *echoJar) Get(name string) (string, bool) {
	if j.cleared[name] {
		return "", false
	}
	cookie, err := j.c.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (j *echoJar) Set(cookie *http.Cookie) {
	j.c.SetCookie(cookie)
}

func (j *echoJar) Clear(name, path string) {
	j.cleared[name] = true
	j.c.SetCookie(&http.Cookie{
		Name:    name,
		Value:   "",
		Path:    path,
		Expires: time.Unix(0, 0).UTC(),
		MaxAge:  -1,
	})
}
