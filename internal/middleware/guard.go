package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
	"github.com/alexandreDinis/sistema-comi-platform/internal/auth"
)

// RequireRole admite apenas principals aprovados pelo guard de perfil.
// A negação é visível (403 com a regra e o motivo), não um redirect mudo:
// o operador precisa entender o porquê.
func RequireRole(log *zap.Logger, role string) gin.HandlerFunc {
	return requireGuard(log, auth.Guard{RequiredRole: role})
}

// RequireFeature admite apenas principals aprovados pelo guard de feature.
// Checagens de feature têm precedência sobre checagens de perfil.
func RequireFeature(log *zap.Logger, feature string) gin.HandlerFunc {
	return requireGuard(log, auth.Guard{RequiredFeature: feature})
}

func requireGuard(log *zap.Logger, g auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)

		decision := auth.Decide(p, g)
		if decision.Allowed() {
			c.Next()
			return
		}

		if p == nil {
			abortUnauthenticated(c, "authentication required")
			return
		}

		log.Info("acesso negado",
			zap.String("rule", decision.Rule),
			zap.String("reason", decision.Reason),
			zap.String("role", p.Role),
			zap.String("path", c.FullPath()))

		c.JSON(http.StatusForbidden, gin.H{
			"error": decision.Reason,
			"code":  apperr.CodeAccessDenied,
			"rule":  decision.Rule,
		})
		c.Abort()
	}
}
