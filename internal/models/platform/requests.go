package platform

import (
	"github.com/google/uuid"

	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

// ===== Empresa Requests/Responses =====

type CreateEmpresaRequest struct {
	Nome       string           `json:"nome" binding:"required,min=2"`
	CNPJ       string           `json:"cnpj" binding:"required"`
	Plano      shared.PlanoTier `json:"plano" binding:"required,oneof=BRONZE PRATA OURO"`
	AdminEmail string           `json:"admin_email" binding:"omitempty,email"`
	LicencaID  *uuid.UUID       `json:"licenca_id,omitempty"` // nil = posse direta da plataforma
}

type UpdateEmpresaRequest struct {
	Nome       string           `json:"nome" binding:"required,min=2"`
	CNPJ       string           `json:"cnpj" binding:"required"`
	Plano      shared.PlanoTier `json:"plano" binding:"required,oneof=BRONZE PRATA OURO"`
	AdminEmail string           `json:"admin_email" binding:"omitempty,email"`
}

type EmpresaListResponse struct {
	Empresas []Empresa `json:"empresas"`
	Total    int       `json:"total"`
}

// ===== Licenca Requests/Responses =====

type CreateLicencaRequest struct {
	RazaoSocial string    `json:"razao_social" binding:"required,min=2"`
	PlanoID     uuid.UUID `json:"plano_id" binding:"required"`
}

type SuspenderLicencaRequest struct {
	Motivo string `json:"motivo" binding:"required"`
}

type LicencaListResponse struct {
	Licencas []Licenca `json:"licencas"`
	Total    int       `json:"total"`
}

// ===== Migração =====

// MigrarEmpresaRequest carrega uma migração de posse com trilha de auditoria.
// NovaLicencaID nulo devolve a empresa à posse direta da plataforma.
type MigrarEmpresaRequest struct {
	EmpresaID     uuid.UUID  `json:"empresaId" binding:"required"`
	NovaLicencaID *uuid.UUID `json:"novaLicencaId"`
	Motivo        string     `json:"motivo" binding:"required"`
}

// ===== Planos =====

type PlanoListResponse struct {
	Planos []Plano `json:"planos"`
	Total  int     `json:"total"`
}
