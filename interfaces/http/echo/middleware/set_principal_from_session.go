package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/tidwall/gjson"
	"golang.org/x/net/context"

	"github.com/roundandgo/sessionkit/models"
	"github.com/roundandgo/sessionkit/session"
	"github.com/roundandgo/sessionkit/store"
	"github.com/roundandgo/sessionkit/token"
	"github.com/roundandgo/sessionkit/utils"
)

// SetPrincipalFromSession resolves the request's session for one flavor and,
// when authenticated, puts the display principal into the request context.
// An Authorization bearer header wins over cookie- or store-held state; its
// payload may embed the principal directly under "user". Unauthenticated
// requests pass through untouched; pair with RequireSession on routes that
// must reject them.
func SetPrincipalFromSession(st store.Store, flavor session.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := bearerFrom(c); raw != "" {
				c.Set(TokenKey, raw)
				c.SetRequest(c.Request().WithContext(
					context.WithValue(c.Request().Context(), TokenKey, raw)))
				claims, err := token.Decode(raw)
				if err != nil {
					log.Errorf("ignoring malformed bearer header: %v", err)
				} else if !claims.ExpiredAt(time.Now()) {
					if embedded := gjson.GetBytes(claims.Payload, "user").String(); embedded != "" {
						var principal models.Principal
						if err := utils.BytesToStruct([]byte(embedded), &principal); err == nil {
							return next(withPrincipal(c, principal))
						}
						log.Errorf("unreadable user claim in bearer header")
					}
				}
			}

			resolver := session.NewResolver(st, newEchoJar(c), flavor)
			ctx := c.Request().Context()
			if !resolver.Resolve(ctx) {
				return next(c)
			}

			principal, ok := resolver.Principal(ctx)
			if !ok {
				return next(c)
			}
			return next(withPrincipal(c, *principal))
		}
	}
}

// RequireSession rejects with 401 when the flavor resolves unauthenticated.
func RequireSession(st store.Store, flavor session.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			resolver := session.NewResolver(st, newEchoJar(c), flavor)
			if !resolver.Resolve(c.Request().Context()) {
				body, _ := utils.StructToBytes(map[string]string{"message": "authentication required"})
				return c.JSONBlob(401, body)
			}
			return next(c)
		}
	}
}

// Logout tears the flavor down and sends the expired cookies downstream so
// the browser forgets them too.
func Logout(st store.Store, flavor session.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		resolver := session.NewResolver(st, newEchoJar(c), flavor)
		resolver.Logout(c.Request().Context())
		return c.NoContent(204)
	}
}

func withPrincipal(c echo.Context, principal models.Principal) echo.Context {
	c.Set(PrincipalKey, principal)
	newContext := context.WithValue(c.Request().Context(), PrincipalKey, principal)
	c.SetRequest(c.Request().WithContext(newContext))
	return c
}

func bearerFrom(c echo.Context) string {
	header := c.Request().Header.Get(Authorization)
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
