package middleware

import (
	"context"

	"github.com/acemedformatics/acemed/internal/pkg/auth"
	"github.com/acemedformatics/acemed/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Context keys set by AdminGate
const (
	AdminClaimsKey = "adminClaims"
	AdminEmailKey  = "adminEmail"
)

// Authorizer checks an Authorization header value
type Authorizer interface {
	Authorize(ctx context.Context, authHeader string) (*auth.Claims, error)
}

// AdminGate lets a request through only with a valid admin bearer token
func AdminGate(authorizer Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authorizer.Authorize(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug().Err(err).Str("path", c.FullPath()).Msg("Admin gate denied request")
			HandleAPIError(c, err)
			return
		}

		c.Set(AdminClaimsKey, claims)
		c.Set(AdminEmailKey, claims.Email)
		c.Next()
	}
}

// AdminClaims returns the claims stored by AdminGate
func AdminClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(AdminClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
