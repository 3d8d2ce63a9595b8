package token

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(payload string) string {
	return "header." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"plain string", "not-a-token", ErrMalformed},
		{"two segments", "a.b", ErrMalformed},
		{"four segments", "a.b.c.d", ErrMalformed},
		{"empty string", "", ErrMalformed},
		{"payload not base64", "a.$$$$.c", ErrEncoding},
		{"payload not json", segment("garbage"), ErrPayload},
		{"payload json array", segment(`[1,2]`), ErrPayload},
		{"exp not a number", segment(`{"exp":"soon"}`), ErrPayload},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := Decode(tc.raw)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDecode_Expiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		payload string
		hasExp  bool
		expired bool
	}{
		{"year 2001 exp", `{"exp": 1000000000}`, true, true},
		{"no exp claim", `{}`, false, false},
		{"future exp", `{"exp": 4102444800}`, true, false},
		{"exp exactly now", `{"exp": 1717243200}`, true, false},
		{"exp one second ago", `{"exp": 1717243199}`, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := Decode(segment(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.hasExp, claims.HasExp)
			assert.Equal(t, tc.expired, claims.ExpiredAt(now))
		})
	}
}

func TestDecode_SignedToken(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-42",
		"email": "golfer@roundandgo.shop",
		"exp":   exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, err := Decode(signed)
	require.NoError(t, err)
	assert.True(t, claims.HasExp)
	assert.Equal(t, exp.Unix(), claims.Exp)
	assert.False(t, claims.ExpiredAt(time.Now()))
	assert.Equal(t, "user-42", claims.Field("sub"))
	assert.Equal(t, "golfer@roundandgo.shop", claims.Field("email"))
}

func TestDecode_PaddedPayload(t *testing.T) {
	// Some issuers pad the middle segment; the decoder tolerates it.
	padded := "header." + base64.URLEncoding.EncodeToString([]byte(`{"exp":4102444800}`)) + ".sig"
	claims, err := Decode(padded)
	require.NoError(t, err)
	assert.True(t, claims.HasExp)
}
