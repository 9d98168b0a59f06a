package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const principalKey = "auth.principal"

// Middleware resolves the current principal from the Authorization header and
// stores it in the gin context. Resolution failure is never a hard error: the
// request proceeds anonymous and each handler decides whether anonymity is
// acceptable.
func Middleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.Next()
			return
		}

		principal, err := jwtService.ParseToken(strings.TrimSpace(tokenString))
		if err != nil {
			log.Debug().Err(err).Msg("Token rejected, treating request as anonymous")
			c.Next()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal, or nil for anonymous
// requests.
func CurrentPrincipal(c *gin.Context) *Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*Principal)
	if !ok {
		return nil
	}
	return principal
}
