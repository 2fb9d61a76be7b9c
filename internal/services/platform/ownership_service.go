package platform

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
	"github.com/alexandreDinis/sistema-comi-platform/internal/cache"
	platformModels "github.com/alexandreDinis/sistema-comi-platform/internal/models/platform"
	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

const (
	planosCacheTTL = 10 * time.Minute
	statsCacheTTL  = 30 * time.Second
)

// OwnershipService expõe o grafo de posse da plataforma: empresas, órfãs,
// em risco, métricas globais e o catálogo de planos.
type OwnershipService struct {
	empresas EmpresaStore
	licencas LicencaStore
	planos   PlanoStore
	cache    *cache.Client
	log      *zap.Logger
}

func NewOwnershipService(empresas EmpresaStore, licencas LicencaStore, planos PlanoStore, cacheClient *cache.Client, log *zap.Logger) *OwnershipService {
	return &OwnershipService{
		empresas: empresas,
		licencas: licencas,
		planos:   planos,
		cache:    cacheClient,
		log:      log,
	}
}

// ListEmpresas retorna todas as empresas
func (s *OwnershipService) ListEmpresas(ctx context.Context) ([]platformModels.Empresa, error) {
	return s.empresas.List(ctx)
}

// GetEmpresa retorna uma empresa pelo id
func (s *OwnershipService) GetEmpresa(ctx context.Context, id uuid.UUID) (*platformModels.Empresa, error) {
	return s.empresas.GetByID(ctx, id)
}

// ListEmpresasByLicenca retorna as empresas vinculadas a uma licença.
// A licença precisa existir; lista vazia é resultado normal.
func (s *OwnershipService) ListEmpresasByLicenca(ctx context.Context, licencaID uuid.UUID) ([]platformModels.Empresa, error) {
	if _, err := s.licencas.GetByID(ctx, licencaID); err != nil {
		return nil, err
	}
	return s.empresas.ListByLicenca(ctx, licencaID)
}

// OnboardEmpresa cria uma empresa nova. Sem licença informada, a posse é
// direta da plataforma desde o início.
func (s *OwnershipService) OnboardEmpresa(ctx context.Context, req platformModels.CreateEmpresaRequest) (*platformModels.Empresa, error) {
	if !req.Plano.IsValid() {
		return nil, apperr.Newf(apperr.CodeValidation, "plano %q não existe no catálogo", req.Plano)
	}
	if req.LicencaID != nil {
		if _, err := s.licencas.GetByID(ctx, *req.LicencaID); err != nil {
			return nil, err
		}
	}

	e, err := s.empresas.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info("empresa criada",
		zap.String("empresa_id", e.ID.String()),
		zap.String("nome", e.Nome),
		zap.Bool("orfa", e.Orfa()))
	return e, nil
}

// UpdateEmpresa altera os dados cadastrais de uma empresa
func (s *OwnershipService) UpdateEmpresa(ctx context.Context, id uuid.UUID, req platformModels.UpdateEmpresaRequest) (*platformModels.Empresa, error) {
	if !req.Plano.IsValid() {
		return nil, apperr.Newf(apperr.CodeValidation, "plano %q não existe no catálogo", req.Plano)
	}
	e, err := s.empresas.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return e, nil
}

// ToggleStatus liga/desliga o acesso da empresa (kill switch da plataforma,
// independente do status da licença)
func (s *OwnershipService) ToggleStatus(ctx context.Context, id uuid.UUID) (*platformModels.Empresa, error) {
	e, err := s.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	toggled, err := s.empresas.SetAtivo(ctx, id, !e.Ativo)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info("empresa togglada",
		zap.String("empresa_id", id.String()),
		zap.Bool("ativo", toggled.Ativo))
	return toggled, nil
}

// ListOrphans retorna as empresas de posse direta da plataforma.
// Estado seguro e intencional, não um erro.
func (s *OwnershipService) ListOrphans(ctx context.Context) ([]platformModels.Empresa, error) {
	empresas, err := s.empresas.List(ctx)
	if err != nil {
		return nil, err
	}
	return platformModels.Orphans(empresas), nil
}

// ListAtRisk deriva o conjunto de empresas em risco: vinculadas a uma
// licença com status diferente de ATIVA. Visão recomputada sob demanda do
// estado corrente; nunca inclui órfãs.
func (s *OwnershipService) ListAtRisk(ctx context.Context) ([]platformModels.Empresa, error) {
	empresas, err := s.empresas.List(ctx)
	if err != nil {
		return nil, err
	}
	licencas, err := s.licencas.List(ctx)
	if err != nil {
		return nil, err
	}
	return platformModels.AtRisk(empresas, licencas), nil
}

// PlatformStats retorna as métricas globais, com cache curto derrubado a
// cada mutação de posse
func (s *OwnershipService) PlatformStats(ctx context.Context) (*platformModels.PlatformStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetPlatformStats(ctx); err == nil && cached != "" {
			stats := &platformModels.PlatformStats{}
			if err := json.Unmarshal([]byte(cached), stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.empresas.PlatformStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.SetPlatformStats(ctx, string(payload), statsCacheTTL); err != nil {
				s.log.Warn("failed to cache platform stats", zap.Error(err))
			}
		}
	}
	return stats, nil
}

// ListPlanos retorna o catálogo de planos com cache
func (s *OwnershipService) ListPlanos(ctx context.Context) ([]platformModels.Plano, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetPlanos(ctx); err == nil && cached != "" {
			var planos []platformModels.Plano
			if err := json.Unmarshal([]byte(cached), &planos); err == nil {
				return planos, nil
			}
		}
	}

	planos, err := s.planos.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(planos); err == nil {
			if err := s.cache.SetPlanos(ctx, string(payload), planosCacheTTL); err != nil {
				s.log.Warn("failed to cache planos", zap.Error(err))
			}
		}
	}
	return planos, nil
}

// FeatureCatalog retorna as features conhecidas pelo console
func (s *OwnershipService) FeatureCatalog() []string {
	return shared.FeatureCatalog
}

func (s *OwnershipService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOwnership(ctx); err != nil {
		s.log.Warn("failed to invalidate ownership cache", zap.Error(err))
	}
}
