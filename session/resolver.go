package session

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/roundandgo/sessionkit/enums"
	"github.com/roundandgo/sessionkit/events"
	"github.com/roundandgo/sessionkit/models"
	"github.com/roundandgo/sessionkit/store"
	"github.com/roundandgo/sessionkit/token"
	"github.com/roundandgo/sessionkit/utils"
	"github.com/roundandgo/sessionkit/utils/logger"
)

// Resolver answers "is there a valid session" and "who is the user" for one
// flavor, and tears the flavor down on logout or on a bad credential.
type Resolver struct {
	store   store.Store
	jar     store.CookieJar
	flavor  Config
	now     func() time.Time
	emitter events.Publisher
}

func NewResolver(s store.Store, jar store.CookieJar, flavor Config) *Resolver {
	return &Resolver{
		store:  s,
		jar:    jar,
		flavor: flavor,
		now:    time.Now,
	}
}

// WithClock substitutes the time source. Tests freeze it.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// WithEvents attaches a lifecycle-event publisher. Optional; publish
// failures are logged, never surfaced.
func (r *Resolver) WithEvents(p events.Publisher) *Resolver {
	r.emitter = p
	return r
}

// Resolve reports whether a currently valid authenticated session exists.
//
// Lookup order: persistent token keys, then cookie aliases left to right,
// then the opaque session-indicator cookie. A candidate token that fails to
// decode or is past its expiry forces a teardown and resolves to false; a
// bare session-indicator cookie resolves to true without inspection since
// only the server can judge it. Decode problems never escape to the caller.
func (r *Resolver) Resolve(ctx context.Context) bool {
	candidate, found := r.lookupToken(ctx)
	if !found {
		if r.flavor.SessionCookie != "" {
			if _, ok := r.jar.Get(r.flavor.SessionCookie); ok {
				return true
			}
		}
		return false
	}

	claims, err := token.Decode(candidate)
	if err != nil {
		logger.LogWarn("discarding malformed session token",
			zap.String("flavor", string(r.flavor.Tag)), zap.Error(err))
		r.teardown(ctx, enums.TeardownReasonMalformed)
		return false
	}

	if claims.ExpiredAt(r.now()) {
		logger.LogInfo("session token expired",
			zap.String("flavor", string(r.flavor.Tag)), zap.Int64("exp", claims.Exp))
		r.teardown(ctx, enums.TeardownReasonExpired)
		return false
	}

	return true
}

// Principal returns the cached display record, or ok=false when it is
// absent or unreadable. Absence is normal, callers fall back to the
// flavor placeholder.
func (r *Resolver) Principal(ctx context.Context) (*models.Principal, bool) {
	raw, found := r.lookupFirst(ctx, []string{r.flavor.PrincipalKey}, r.flavor.PrincipalCookies)
	if !found {
		return nil, false
	}

	var p models.Principal
	if err := utils.BytesToStruct([]byte(raw), &p); err != nil {
		logger.LogWarn("unreadable principal record",
			zap.String("flavor", string(r.flavor.Tag)), zap.Error(err))
		return nil, false
	}
	return &p, true
}

// DisplayName derives the name shown in the UI. Email-registered users get
// their email, then their userId; everyone else gets the flavor
// placeholder. Never empty.
func (r *Resolver) DisplayName(ctx context.Context) string {
	p, ok := r.Principal(ctx)
	if !ok {
		return r.flavor.Placeholder
	}
	if p.Type != enums.PrincipalTypeEmail {
		return r.flavor.Placeholder
	}
	if p.Email != "" {
		return p.Email
	}
	if p.UserID != "" {
		return p.UserID
	}
	return r.flavor.Placeholder
}

// Logout removes every storage key and cookie alias the flavor owns.
// Idempotent; logging out an empty session is a no-op. All removals
// complete before return so the next read sees a logged-out state.
func (r *Resolver) Logout(ctx context.Context) {
	r.teardown(ctx, enums.TeardownReasonExplicit)
}

// PersistLogin writes the token and principal record back to back, with the
// legacy login flag and auxiliary keys the old web clients still read. On
// any write failure the flavor is torn down so no half-written session is
// ever visible.
func (r *Resolver) PersistLogin(ctx context.Context, accessToken, refreshToken string, p *models.Principal) error {
	if p != nil && p.LoginTime == 0 {
		p.LoginTime = utils.TimeToTimestamp(r.now())
	}

	writes := make([][2]string, 0, len(r.flavor.TokenKeys)+4)
	for _, key := range r.flavor.TokenKeys {
		writes = append(writes, [2]string{key, accessToken})
	}
	if refreshToken != "" && r.flavor.RefreshKey != "" {
		writes = append(writes, [2]string{r.flavor.RefreshKey, refreshToken})
	}
	if p != nil {
		body, err := utils.StructToBytes(p)
		if err != nil {
			return err
		}
		writes = append(writes, [2]string{r.flavor.PrincipalKey, string(body)})
		if r.flavor.EmailKey != "" && p.Email != "" {
			writes = append(writes, [2]string{r.flavor.EmailKey, p.Email})
		}
	}
	if r.flavor.LoginFlagKey != "" {
		writes = append(writes, [2]string{r.flavor.LoginFlagKey, "true"})
	}

	for _, w := range writes {
		if err := r.store.Set(ctx, w[0], w[1]); err != nil {
			r.teardown(ctx, enums.TeardownReasonMalformed)
			return err
		}
	}

	r.emit(ctx, events.Event{
		Kind:    events.KindLogin,
		Flavor:  r.flavor.Tag,
		Subject: subjectOf(p),
		At:      r.now().Unix(),
	})
	return nil
}

func (r *Resolver) lookupToken(ctx context.Context) (string, bool) {
	return r.lookupFirst(ctx, r.flavor.TokenKeys, r.flavor.CookieAliases)
}

// lookupFirst applies the store-before-cookies precedence: every store key
// in order, then every cookie alias in order, first non-empty value wins.
func (r *Resolver) lookupFirst(ctx context.Context, storeKeys, cookieNames []string) (string, bool) {
	for _, key := range storeKeys {
		v, ok, err := r.store.Get(ctx, key)
		if err != nil {
			logger.LogWarn("session store read failed", zap.String("key", key), zap.Error(err))
			continue
		}
		if ok && v != "" {
			return v, true
		}
	}
	for _, name := range cookieNames {
		if v, ok := r.jar.Get(name); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func (r *Resolver) teardown(ctx context.Context, reason enums.TeardownReason) {
	subject := ""
	if p, ok := r.Principal(ctx); ok {
		subject = subjectOf(p)
	}

	for _, key := range r.flavor.storageKeys() {
		if err := r.store.Del(ctx, key); err != nil {
			logger.LogWarn("session store delete failed", zap.String("key", key), zap.Error(err))
		}
	}
	for _, name := range r.flavor.CookieAliases {
		r.jar.Clear(name, r.flavor.CookiePath)
	}
	for _, name := range r.flavor.PrincipalCookies {
		r.jar.Clear(name, r.flavor.CookiePath)
	}

	r.emit(ctx, events.Event{
		Kind:    events.KindTeardown,
		Flavor:  r.flavor.Tag,
		Subject: subject,
		At:      r.now().Unix(),
		Reason:  reason,
	})
}

func (r *Resolver) emit(ctx context.Context, e events.Event) {
	if r.emitter == nil {
		return
	}
	if err := r.emitter.Publish(ctx, e); err != nil {
		logger.LogWarn("session event publish failed", zap.String("kind", string(e.Kind)), zap.Error(err))
	}
}

func subjectOf(p *models.Principal) string {
	if p == nil {
		return ""
	}
	if p.Email != "" {
		return p.Email
	}
	return p.UserID
}

// ClearCookie builds the expired set-cookie a handler sends downstream to
// clear one flavor cookie in the browser itself.
func ClearCookie(name, path string) *http.Cookie {
	return &http.Cookie{
		Name:    name,
		Value:   "",
		Path:    path,
		Expires: time.Unix(0, 0).UTC(),
		MaxAge:  -1,
	}
}
