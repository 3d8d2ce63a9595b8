package context

import (
	"github.com/roundandgo/sessionkit/models"
	"golang.org/x/net/context"
)

// GetPrincipalFromContext returns the principal the session middleware put
// in the request context. Zero value when the request is anonymous.
func GetPrincipalFromContext(ctx context.Context) models.Principal {
	principal, _ := ctx.Value("sessionPrincipal").(models.Principal)
	return principal
}
