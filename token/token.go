package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var (
	ErrMalformed = errors.New("token: not a three-segment bearer token")
	ErrEncoding  = errors.New("token: payload is not valid base64url")
	ErrPayload   = errors.New("token: payload is not a JSON object")
)

// Claims is the decoded middle segment of a bearer token. The signature is
// never checked here; servers own verification, the client only needs the
// expiry hint.
type Claims struct {
	Payload []byte
	Exp     int64 // Unix seconds; 0 when the token carries no expiry
	HasExp  bool
}

// Decode splits raw into its three segments and decodes the payload.
// Any structural problem is an error; callers treat that as an invalid
// credential, never as a crash.
func Decode(raw string) (*Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, ErrEncoding
	}

	if !gjson.ValidBytes(payload) {
		return nil, ErrPayload
	}
	parsed := gjson.ParseBytes(payload)
	if !parsed.IsObject() {
		return nil, ErrPayload
	}

	claims := &Claims{Payload: payload}
	if exp := parsed.Get("exp"); exp.Exists() {
		if exp.Type != gjson.Number {
			return nil, ErrPayload
		}
		claims.Exp = exp.Int()
		claims.HasExp = true
	}
	return claims, nil
}

// ExpiredAt reports whether the token's expiry is strictly in the past.
// A token without an exp claim does not expire client-side.
func (c *Claims) ExpiredAt(now time.Time) bool {
	if !c.HasExp {
		return false
	}
	return c.Exp < now.Unix()
}

// Field probes the payload for a top-level string field, e.g. "sub" or "email".
func (c *Claims) Field(name string) string {
	return gjson.GetBytes(c.Payload, name).String()
}
