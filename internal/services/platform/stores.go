package platform

import (
	"context"

	"github.com/google/uuid"

	platformModels "github.com/alexandreDinis/sistema-comi-platform/internal/models/platform"
	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

// Os serviços operam sobre interfaces de store: o estado chega por parâmetro
// e os testes usam fakes determinísticos em memória. As implementações reais
// estão em internal/repository/platform.

type LicencaStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*platformModels.Licenca, error)
	List(ctx context.Context) ([]platformModels.Licenca, error)
	Create(ctx context.Context, razaoSocial string, planoID uuid.UUID) (*platformModels.Licenca, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status shared.LicencaStatus, motivo string) (*platformModels.Licenca, error)
	Rescindir(ctx context.Context, id uuid.UUID) (*platformModels.Licenca, error)
	Stats(ctx context.Context, id uuid.UUID) (*platformModels.LicencaStats, error)
}

type EmpresaStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*platformModels.Empresa, error)
	List(ctx context.Context) ([]platformModels.Empresa, error)
	ListByLicenca(ctx context.Context, licencaID uuid.UUID) ([]platformModels.Empresa, error)
	Create(ctx context.Context, req platformModels.CreateEmpresaRequest) (*platformModels.Empresa, error)
	Update(ctx context.Context, id uuid.UUID, req platformModels.UpdateEmpresaRequest) (*platformModels.Empresa, error)
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) (*platformModels.Empresa, error)
	SetLicenca(ctx context.Context, id uuid.UUID, licencaID *uuid.UUID) (*platformModels.Empresa, error)
	PlatformStats(ctx context.Context) (*platformModels.PlatformStats, error)
}

type PlanoStore interface {
	List(ctx context.Context) ([]platformModels.Plano, error)
	GetByID(ctx context.Context, id uuid.UUID) (*platformModels.Plano, error)
}
