package platform

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
	"github.com/alexandreDinis/sistema-comi-platform/internal/cache"
	platformModels "github.com/alexandreDinis/sistema-comi-platform/internal/models/platform"
	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

// LicencaService governa o ciclo de vida das licenças de revenda:
// ATIVA → SUSPENSA (com motivo), SUSPENSA → ATIVA (reativação) e
// {ATIVA,SUSPENSA} → CANCELADA (rescisão, definitiva).
type LicencaService struct {
	licencas LicencaStore
	planos   PlanoStore
	cache    *cache.Client
	log      *zap.Logger
}

func NewLicencaService(licencas LicencaStore, planos PlanoStore, cacheClient *cache.Client, log *zap.Logger) *LicencaService {
	return &LicencaService{
		licencas: licencas,
		planos:   planos,
		cache:    cacheClient,
		log:      log,
	}
}

// Onboard cria uma nova licença de revenda com status ATIVA
func (s *LicencaService) Onboard(ctx context.Context, req platformModels.CreateLicencaRequest) (*platformModels.Licenca, error) {
	if _, err := s.planos.GetByID(ctx, req.PlanoID); err != nil {
		return nil, err
	}

	l, err := s.licencas.Create(ctx, strings.TrimSpace(req.RazaoSocial), req.PlanoID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info("licenca criada",
		zap.String("licenca_id", l.ID.String()),
		zap.String("razao_social", l.RazaoSocial))
	return l, nil
}

// List retorna todas as licenças
func (s *LicencaService) List(ctx context.Context) ([]platformModels.Licenca, error) {
	return s.licencas.List(ctx)
}

// ListByStatus retorna as licenças em um status específico, para as telas
// que filtram a carteira (ex.: só as suspensas)
func (s *LicencaService) ListByStatus(ctx context.Context, status shared.LicencaStatus) ([]platformModels.Licenca, error) {
	if !status.IsValid() {
		return nil, apperr.Newf(apperr.CodeValidation, "status %q não existe", status)
	}

	licencas, err := s.licencas.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]platformModels.Licenca, 0, len(licencas))
	for _, l := range licencas {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

// Get retorna uma licença pelo id
func (s *LicencaService) Get(ctx context.Context, id uuid.UUID) (*platformModels.Licenca, error) {
	return s.licencas.GetByID(ctx, id)
}

// Stats agrega as métricas de uma licença. Disponível inclusive para
// licenças suspensas ou canceladas.
func (s *LicencaService) Stats(ctx context.Context, id uuid.UUID) (*platformModels.LicencaStats, error) {
	if _, err := s.licencas.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.licencas.Stats(ctx, id)
}

// Suspender coloca a licença em SUSPENSA. Exige motivo não vazio; não
// desvincula empresas (uma licença suspensa pode ser reativada), mas todas
// as empresas vinculadas passam imediatamente a "em risco".
func (s *LicencaService) Suspender(ctx context.Context, id uuid.UUID, motivo string) (*platformModels.Licenca, error) {
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		return nil, apperr.New(apperr.CodeValidation, "motivo de suspensão é obrigatório")
	}

	l, err := s.licencas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.Status.CanTransitionTo(shared.LicencaStatusSuspensa) {
		return nil, apperr.Newf(apperr.CodeConflict, "licença %s não pode ser suspensa", l.Status)
	}

	updated, err := s.licencas.UpdateStatus(ctx, id, shared.LicencaStatusSuspensa, motivo)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Warn("licenca suspensa",
		zap.String("licenca_id", id.String()),
		zap.String("motivo", motivo))
	return updated, nil
}

// Reativar devolve uma licença suspensa para ATIVA e limpa o motivo
func (s *LicencaService) Reativar(ctx context.Context, id uuid.UUID) (*platformModels.Licenca, error) {
	l, err := s.licencas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.Status.CanTransitionTo(shared.LicencaStatusAtiva) {
		return nil, apperr.Newf(apperr.CodeConflict, "licença %s não pode ser reativada", l.Status)
	}

	updated, err := s.licencas.UpdateStatus(ctx, id, shared.LicencaStatusAtiva, "")
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info("licenca reativada", zap.String("licenca_id", id.String()))
	return updated, nil
}

// Rescindir cancela a licença em definitivo. Todas as empresas vinculadas
// são desvinculadas para posse direta na mesma operação lógica; o
// cancelamento parcial nunca é observável. Empresas nunca são destruídas.
func (s *LicencaService) Rescindir(ctx context.Context, id uuid.UUID) (*platformModels.Licenca, error) {
	l, err := s.licencas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.Status.CanTransitionTo(shared.LicencaStatusCancelada) {
		return nil, apperr.Newf(apperr.CodeConflict, "licença %s não pode ser rescindida", l.Status)
	}

	cancelled, err := s.licencas.Rescindir(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Warn("licenca rescindida, empresas desvinculadas para posse direta",
		zap.String("licenca_id", id.String()))
	return cancelled, nil
}

func (s *LicencaService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOwnership(ctx); err != nil {
		s.log.Warn("failed to invalidate ownership cache", zap.Error(err))
	}
}
