package auth

import (
	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

// Guard descreve a exigência de admissão de uma rota ou ação: um perfil
// requerido, uma feature requerida, ou nenhum dos dois (apenas autenticação).
type Guard struct {
	RequiredRole    string
	RequiredFeature string
}

// Effect é o resultado de uma decisão de política
type Effect int

const (
	EffectDeny Effect = iota
	EffectAllow
)

// Decision carrega o efeito e o nome da regra que o produziu, para que a
// tela de acesso negado explique o porquê ao operador. Negação é um retorno
// normal, não uma exceção; não há retry.
type Decision struct {
	Effect Effect
	Rule   string
	Reason string
}

// Allowed é açúcar sobre o efeito
func (d Decision) Allowed() bool {
	return d.Effect == EffectAllow
}

// rule é um predicado puro nomeado. Match falso passa a vez para a próxima
// regra; a primeira regra que casa encerra a avaliação.
type rule struct {
	name string
	eval func(p *Principal, g Guard) (Decision, bool)
}

// A precedência é uma tabela explícita e ordenada, avaliada de cima para
// baixo. Checagens de feature precedem checagens de perfil: quando o guard
// traz RequiredFeature, o RequiredRole é ignorado.
var rules = []rule{
	{name: "deny-unauthenticated", eval: denyUnauthenticated},
	{name: "feature-admin-bypass", eval: featureAdminBypass},
	{name: "feature-empty-set", eval: featureEmptySet},
	{name: "feature-membership", eval: featureMembership},
	{name: "allow-unguarded", eval: allowUnguarded},
	{name: "super-admin", eval: superAdmin},
	{name: "two-worlds", eval: twoWorlds},
	{name: "tenant-admin-affiliation", eval: tenantAdminAffiliation},
	{name: "role-match", eval: roleMatch},
}

// Decide avalia o guard contra o principal. Função pura: sem efeitos
// colaterais, sem estado ambiente; pode ser avaliada livremente em paralelo.
func Decide(p *Principal, g Guard) Decision {
	for _, r := range rules {
		if d, ok := r.eval(p, g); ok {
			d.Rule = r.name
			return d
		}
	}
	// tabela cobre todos os casos; role-match é terminal
	return Decision{Effect: EffectDeny, Rule: "no-rule", Reason: "nenhuma regra aplicável"}
}

func denyUnauthenticated(p *Principal, _ Guard) (Decision, bool) {
	if p == nil {
		return Decision{Effect: EffectDeny, Reason: "sessão ausente ou expirada"}, true
	}
	return Decision{}, false
}

// Bypass administrativo: empresas provisionadas antes do sistema de features
// não têm features atribuídas, então ADMIN_EMPRESA e SUPER_ADMIN passam por
// qualquer checagem de feature. Compatibilidade intencional, preservada
// inclusive na assimetria com feature-empty-set.
func featureAdminBypass(p *Principal, g Guard) (Decision, bool) {
	if g.RequiredFeature == "" {
		return Decision{}, false
	}
	if p.Role == shared.RoleAdminEmpresa || p.Role == shared.RoleSuperAdmin {
		return Decision{Effect: EffectAllow, Reason: "perfil administrativo dispensa checagem de feature"}, true
	}
	return Decision{}, false
}

// Conjunto vazio de features é tratado como erro de configuração: nega
// fechado para qualquer perfil não administrativo.
func featureEmptySet(p *Principal, g Guard) (Decision, bool) {
	if g.RequiredFeature == "" {
		return Decision{}, false
	}
	if len(p.Features) == 0 {
		return Decision{Effect: EffectDeny, Reason: "nenhuma feature atribuída ao principal"}, true
	}
	return Decision{}, false
}

func featureMembership(p *Principal, g Guard) (Decision, bool) {
	if g.RequiredFeature == "" {
		return Decision{}, false
	}
	if p.HasFeature(g.RequiredFeature) {
		return Decision{Effect: EffectAllow, Reason: "feature presente no conjunto do principal"}, true
	}
	return Decision{Effect: EffectDeny, Reason: "feature " + g.RequiredFeature + " não atribuída"}, true
}

func allowUnguarded(_ *Principal, g Guard) (Decision, bool) {
	if g.RequiredRole == "" && g.RequiredFeature == "" {
		return Decision{Effect: EffectAllow, Reason: "rota sem guard, autenticado"}, true
	}
	return Decision{}, false
}

// SUPER_ADMIN é admitido incondicionalmente em qualquer guard de perfil;
// nunca carrega afiliação de empresa (invariante do Resolve).
func superAdmin(p *Principal, _ Guard) (Decision, bool) {
	if p.Role == shared.RoleSuperAdmin {
		return Decision{Effect: EffectAllow, Reason: "SUPER_ADMIN subsume qualquer perfil"}, true
	}
	return Decision{}, false
}

// Separação de dois mundos: telas de plataforma nunca são alcançáveis por
// quem tem afiliação de empresa, ainda que carregue nominalmente o perfil.
// Vale também para um ADMIN_PLATAFORMA afiliado a uma empresa, em qualquer
// guard: configuração inválida, nega fechado.
func twoWorlds(p *Principal, g Guard) (Decision, bool) {
	req := NormalizeRole(g.RequiredRole)
	if req != shared.RoleAdminPlataforma && p.Role != shared.RoleAdminPlataforma {
		return Decision{}, false
	}
	if p.EmpresaID != nil {
		return Decision{Effect: EffectDeny, Reason: "principal afiliado a empresa não acessa o mundo da plataforma"}, true
	}
	return Decision{}, false
}

// Telas de administração de empresa exigem afiliação: um ADMIN_EMPRESA sem
// empresa é configuração inválida.
func tenantAdminAffiliation(p *Principal, g Guard) (Decision, bool) {
	req := NormalizeRole(g.RequiredRole)
	if req != shared.RoleAdminEmpresa && p.Role != shared.RoleAdminEmpresa {
		return Decision{}, false
	}
	if p.EmpresaID == nil {
		return Decision{Effect: EffectDeny, Reason: "perfil de empresa sem afiliação de empresa"}, true
	}
	return Decision{}, false
}

// Regra terminal: igualdade de perfis normalizados, lista multi-perfil, ou
// subsunção SUPER_ADMIN ⊇ ADMIN_PLATAFORMA (já coberta pela regra super-admin,
// mantida aqui para a tabela ser completa por si só).
func roleMatch(p *Principal, g Guard) (Decision, bool) {
	req := NormalizeRole(g.RequiredRole)
	match := p.HasRole(req) ||
		(req == shared.RoleAdminPlataforma && p.Role == shared.RoleSuperAdmin)
	if match {
		return Decision{Effect: EffectAllow, Reason: "perfil requerido presente"}, true
	}
	return Decision{Effect: EffectDeny, Reason: "perfil " + req + " ausente"}, true
}
