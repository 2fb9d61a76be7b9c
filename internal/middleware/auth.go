package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
	"github.com/alexandreDinis/sistema-comi-platform/internal/auth"
	"github.com/alexandreDinis/sistema-comi-platform/internal/config"
	"github.com/alexandreDinis/sistema-comi-platform/internal/utils"
)

const principalKey = "principal"

// AuthMiddleware valida o token de sessão e injeta o Principal canônico no
// contexto. Ausência de token é tratada como não autenticado e o chamador
// redireciona para o login.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthenticated(c, "invalid authorization format")
			return
		}

		claims, err := utils.ValidateSessionToken(parts[1], cfg)
		if err != nil {
			abortUnauthenticated(c, "invalid or expired token")
			return
		}

		c.Set(principalKey, auth.Resolve(claims.Session()))
		c.Next()
	}
}

// GetPrincipal extrai o principal resolvido do contexto; nil quando a rota
// não passou pelo AuthMiddleware
func GetPrincipal(c *gin.Context) *auth.Principal {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": msg,
		"code":  apperr.CodeUnauthenticated,
	})
	c.Abort()
}
