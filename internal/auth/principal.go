package auth

import (
	"strings"

	"github.com/google/uuid"

	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

// Session é o formato bruto consumido da sessão autenticada, como emitido
// pelo colaborador de autenticação. Perfis podem chegar com ou sem o
// prefixo "ROLE_".
type Session struct {
	Role     string          `json:"role"`
	Roles    []string        `json:"roles,omitempty"`
	Features []string        `json:"features,omitempty"`
	Empresa  *SessionEmpresa `json:"empresa,omitempty"`
}

// SessionEmpresa é a afiliação de empresa presente na sessão
type SessionEmpresa struct {
	ID   uuid.UUID `json:"id"`
	Nome string    `json:"nome,omitempty"`
}

// Principal é o ator autenticado em forma canônica: perfil normalizado,
// conjunto de features e afiliação opcional de empresa. Todas as decisões
// de política operam sobre este formato, recebido por parâmetro.
type Principal struct {
	Role      string
	Roles     []string
	Features  map[string]struct{}
	EmpresaID *uuid.UUID
}

// HasFeature informa se a feature pertence ao conjunto do principal
func (p *Principal) HasFeature(code string) bool {
	_, ok := p.Features[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// HasRole informa se o perfil normalizado consta na lista multi-perfil
func (p *Principal) HasRole(role string) bool {
	role = NormalizeRole(role)
	if p.Role == role {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeRole remove o prefixo textual "ROLE_" quando presente e compara
// sem diferenciar maiúsculas
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(role, "ROLE_")
}

// Resolve normaliza uma sessão bruta em um Principal canônico.
// Invariante do modelo: SUPER_ADMIN nunca carrega afiliação de empresa;
// uma afiliação presente na sessão é descartada na resolução.
func Resolve(s *Session) *Principal {
	if s == nil {
		return nil
	}

	p := &Principal{
		Role:     NormalizeRole(s.Role),
		Features: make(map[string]struct{}, len(s.Features)),
	}

	for _, r := range s.Roles {
		p.Roles = append(p.Roles, NormalizeRole(r))
	}

	for _, f := range s.Features {
		f = strings.ToUpper(strings.TrimSpace(f))
		if f != "" {
			p.Features[f] = struct{}{}
		}
	}

	if s.Empresa != nil && p.Role != shared.RoleSuperAdmin {
		id := s.Empresa.ID
		p.EmpresaID = &id
	}

	return p
}
