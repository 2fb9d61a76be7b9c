package shared

// LicencaStatus representa os status possíveis de uma licença de revenda
type LicencaStatus string

const (
	LicencaStatusAtiva     LicencaStatus = "ATIVA"
	LicencaStatusSuspensa  LicencaStatus = "SUSPENSA"
	LicencaStatusCancelada LicencaStatus = "CANCELADA"
)

// CanTransitionTo informa se a transição de status é permitida pelo ciclo de vida.
// CANCELADA é terminal: nenhuma transição sai dela, nem para ela mesma.
func (s LicencaStatus) CanTransitionTo(target LicencaStatus) bool {
	switch s {
	case LicencaStatusAtiva:
		return target == LicencaStatusSuspensa || target == LicencaStatusCancelada
	case LicencaStatusSuspensa:
		return target == LicencaStatusAtiva || target == LicencaStatusCancelada
	default:
		return false
	}
}

// IsValid verifica se o status é conhecido
func (s LicencaStatus) IsValid() bool {
	switch s {
	case LicencaStatusAtiva, LicencaStatusSuspensa, LicencaStatusCancelada:
		return true
	}
	return false
}

// PlanoTier representa os níveis de plano disponíveis para empresas
type PlanoTier string

const (
	PlanoTierBronze PlanoTier = "BRONZE"
	PlanoTierPrata  PlanoTier = "PRATA"
	PlanoTierOuro   PlanoTier = "OURO"
)

// IsValid verifica se o tier é conhecido
func (t PlanoTier) IsValid() bool {
	switch t {
	case PlanoTierBronze, PlanoTierPrata, PlanoTierOuro:
		return true
	}
	return false
}

// Perfis (roles) reconhecidos pelo motor de autorização.
// Strings arbitrárias também são aceitas para compatibilidade futura.
const (
	RoleSuperAdmin      = "SUPER_ADMIN"
	RoleAdminPlataforma = "ADMIN_PLATAFORMA"
	RoleAdminEmpresa    = "ADMIN_EMPRESA"
	RoleFuncionario     = "FUNCIONARIO"
)

// Catálogo de features (bits de permissão independentes, não hierárquicos)
const (
	FeatureDashboardView           = "DASHBOARD_VIEW"
	FeatureOSRead                  = "OS_READ"
	FeatureOSWrite                 = "OS_WRITE"
	FeatureClienteRead             = "CLIENTE_READ"
	FeatureClienteWrite            = "CLIENTE_WRITE"
	FeatureProdutoRead             = "PRODUTO_READ"
	FeatureProdutoWrite            = "PRODUTO_WRITE"
	FeatureAdminUserRead           = "ADMIN_USER_READ"
	FeatureAdminUserWrite          = "ADMIN_USER_WRITE"
	FeatureAdminConfig             = "ADMIN_CONFIG"
	FeatureRelatorioFinanceiroView = "RELATORIO_FINANCEIRO_VIEW"
	FeatureRelatorioComissaoView   = "RELATORIO_COMISSAO_VIEW"
)

// FeatureCatalog lista todas as features conhecidas, na ordem de exibição do console.
var FeatureCatalog = []string{
	FeatureDashboardView,
	FeatureOSRead,
	FeatureOSWrite,
	FeatureClienteRead,
	FeatureClienteWrite,
	FeatureProdutoRead,
	FeatureProdutoWrite,
	FeatureAdminUserRead,
	FeatureAdminUserWrite,
	FeatureAdminConfig,
	FeatureRelatorioFinanceiroView,
	FeatureRelatorioComissaoView,
}
