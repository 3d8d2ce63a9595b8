package context

import (
	"context"
)

// GetTokenFromContext returns the raw bearer token the middleware saw, or
// an empty string.
func GetTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value("requestToken").(string)
	return token
}
