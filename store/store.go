package store

import (
	"context"
	"net/http"
)

// Store abstracts the persistent key-value side of a browser session
// (localStorage in the SPA, redis when a BFF mirrors it server-side).
// Get returns ok=false for a missing key; that is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// CookieJar abstracts the cookie side. Clear re-sets the cookie with an
// already-expired timestamp; the path must match the one used at set time
// or the cookie survives, same as in a real browser.
type CookieJar interface {
	Get(name string) (string, bool)
	Set(cookie *http.Cookie)
	Clear(name, path string)
}
