package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alexandreDinis/sistema-comi-platform/internal/auth"
	"github.com/alexandreDinis/sistema-comi-platform/internal/config"
)

// SessionClaims são os claims emitidos pelo colaborador de autenticação.
// Este serviço apenas valida e consome: emissão de credenciais, hashing de
// senha e assinatura de tokens ficam fora do núcleo.
type SessionClaims struct {
	Role     string               `json:"role"`
	Roles    []string             `json:"roles,omitempty"`
	Features []string             `json:"features,omitempty"`
	Empresa  *auth.SessionEmpresa `json:"empresa,omitempty"`
	jwt.RegisteredClaims
}

// Session converte os claims no formato bruto de sessão do resolvedor
func (c *SessionClaims) Session() *auth.Session {
	return &auth.Session{
		Role:     c.Role,
		Roles:    c.Roles,
		Features: c.Features,
		Empresa:  c.Empresa,
	}
}

// ValidateSessionToken valida um token de sessão HS256 e retorna os claims
func ValidateSessionToken(tokenString string, cfg *config.Config) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
