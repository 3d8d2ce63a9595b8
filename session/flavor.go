package session

import "github.com/roundandgo/sessionkit/enums"

// Config describes one session flavor: an independent authentication
// namespace with its own storage keys, cookie aliases and logout routine.
// Flavors never share state; the generic and email namespaces in the web
// app coexist without interacting.
type Config struct {
	Tag enums.Flavor

	// TokenKeys are the persistent-store keys holding the access token,
	// first is primary. Login writes all of them, resolution reads in order.
	TokenKeys []string
	// RefreshKey holds the refresh token, when the flavor has one.
	RefreshKey string
	// PrincipalKey holds the JSON principal record.
	PrincipalKey string
	// LoginFlagKey is the legacy boolean login flag kept for old readers.
	LoginFlagKey string
	// EmailKey is the bare auxiliary email key, generic flavor only.
	EmailKey string

	// CookieAliases are checked left to right when the store has no token.
	// Historical deployments used several names, first non-empty wins.
	CookieAliases []string
	// PrincipalCookies mirror PrincipalKey on the cookie side.
	PrincipalCookies []string
	// SessionCookie is the opaque server-session indicator. Its presence
	// alone counts as an active session; the client never inspects it and
	// never clears it, the server owns its lifecycle.
	SessionCookie string
	// CookiePath is the path every flavor cookie was set with. Clearing
	// with any other path leaves the cookie behind.
	CookiePath string

	// Placeholder is the display name used when no principal is cached.
	Placeholder string
}

// Generic is the legacy session namespace (social/Kakao logins and older
// deployments).
func Generic() Config {
	return Config{
		Tag:              enums.FlavorGeneric,
		TokenKeys:        []string{"authToken", "accessToken"},
		RefreshKey:       "refreshToken",
		PrincipalKey:     "user",
		LoginFlagKey:     "isLoggedIn",
		EmailKey:         "email",
		CookieAliases:    []string{"authToken", "accessToken", "JWT"},
		PrincipalCookies: []string{"user"},
		SessionCookie:    "JSESSIONID",
		CookiePath:       "/",
		Placeholder:      "user",
	}
}

// Email is the email-registration namespace, fully separate from Generic.
func Email() Config {
	return Config{
		Tag:              enums.FlavorEmail,
		TokenKeys:        []string{"emailAuthToken", "emailAccessToken"},
		RefreshKey:       "emailRefreshToken",
		PrincipalKey:     "emailUser",
		LoginFlagKey:     "emailIsLoggedIn",
		CookieAliases:    []string{"emailAuthToken", "emailAccessToken"},
		PrincipalCookies: []string{"emailUser"},
		SessionCookie:    "JSESSIONID",
		CookiePath:       "/",
		Placeholder:      "email user",
	}
}

// storageKeys lists every persistent key the flavor owns; teardown removes
// all of them.
func (c Config) storageKeys() []string {
	keys := make([]string, 0, len(c.TokenKeys)+4)
	keys = append(keys, c.TokenKeys...)
	for _, k := range []string{c.RefreshKey, c.PrincipalKey, c.LoginFlagKey, c.EmailKey} {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
