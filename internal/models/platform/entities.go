package platform

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

// Licenca representa o contrato de uma revenda com a plataforma (Control Plane).
// Uma licença é dona de zero ou mais empresas; o Owner da plataforma é
// implícito e não é modelado separadamente.
type Licenca struct {
	ID              uuid.UUID            `json:"id"`
	RazaoSocial     string               `json:"razao_social"`
	Status          shared.LicencaStatus `json:"status"`
	PlanoID         uuid.UUID            `json:"plano_id"`
	MotivoSuspensao string               `json:"motivo_suspensao,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// Empresa representa uma empresa cliente (tenant) no Master DB.
// LicencaID == nil significa posse direta pela plataforma: estado seguro e
// intencional, não um erro ("órfã" apenas em relação às revendas).
type Empresa struct {
	ID         uuid.UUID        `json:"id"`
	Nome       string           `json:"nome"`
	CNPJ       string           `json:"cnpj"`
	Plano      shared.PlanoTier `json:"plano"`
	Ativo      bool             `json:"ativo"`
	LicencaID  *uuid.UUID       `json:"licenca_id,omitempty"`
	AdminEmail string           `json:"admin_email,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Orfa informa se a empresa é de posse direta da plataforma
func (e *Empresa) Orfa() bool {
	return e.LicencaID == nil
}

// Plano representa um plano de assinatura (catálogo somente leitura)
type Plano struct {
	ID        uuid.UUID        `json:"id"`
	Nome      string           `json:"nome"`
	Tier      shared.PlanoTier `json:"tier"`
	Preco     float64          `json:"preco"`
	Features  []string         `json:"features"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// LicencaStats agrega métricas de uma licença para o painel da plataforma
type LicencaStats struct {
	LicencaID        uuid.UUID `json:"licenca_id"`
	TotalEmpresas    int       `json:"total_empresas"`
	EmpresasAtivas   int       `json:"empresas_ativas"`
	EmpresasInativas int       `json:"empresas_inativas"`
}

// PlatformStats agrega métricas globais da plataforma
type PlatformStats struct {
	TotalEmpresas      int `json:"total_empresas"`
	EmpresasAtivas     int `json:"empresas_ativas"`
	EmpresasOrfas      int `json:"empresas_orfas"`
	EmpresasEmRisco    int `json:"empresas_em_risco"`
	TotalLicencas      int `json:"total_licencas"`
	LicencasAtivas     int `json:"licencas_ativas"`
	LicencasSuspensas  int `json:"licencas_suspensas"`
	LicencasCanceladas int `json:"licencas_canceladas"`
}
