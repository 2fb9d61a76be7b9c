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

// Exigência de trilha de auditoria: toda mudança de posse registra quem
// mandou e por quê. Política de negócio, não validação de entrada.
const minMotivoLen = 10

// MigracaoService move uma empresa de uma licença para outra, ou de volta
// à posse direta da plataforma. Ações confirmadas pelo operador, one-shot,
// sem retry automático.
type MigracaoService struct {
	empresas EmpresaStore
	licencas LicencaStore
	cache    *cache.Client
	log      *zap.Logger
}

func NewMigracaoService(empresas EmpresaStore, licencas LicencaStore, cacheClient *cache.Client, log *zap.Logger) *MigracaoService {
	return &MigracaoService{
		empresas: empresas,
		licencas: licencas,
		cache:    cacheClient,
		log:      log,
	}
}

// Migrate executa a migração.
//   - motivo precisa de ao menos 10 caracteres úteis;
//   - o destino precisa existir e estar ATIVA (a origem não é restrita:
//     migrar para fora de uma licença suspensa é permitido);
//   - novaLicencaID nulo devolve a empresa à posse direta;
//   - migrar para a licença que já é dona é sucesso idempotente, sem mutação.
func (s *MigracaoService) Migrate(ctx context.Context, empresaID uuid.UUID, novaLicencaID *uuid.UUID, motivo string) (*platformModels.Empresa, error) {
	motivo = strings.TrimSpace(motivo)
	if len([]rune(motivo)) < minMotivoLen {
		return nil, apperr.Newf(apperr.CodeValidation,
			"motivo da migração precisa de ao menos %d caracteres", minMotivoLen)
	}

	empresa, err := s.empresas.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}

	// O curto-circuito idempotente vem antes da validação de destino: o
	// estado final é idêntico ao atual, então o status da licença dona não
	// importa (uma empresa pode "migrar" para a própria licença suspensa).
	if sameOwner(empresa.LicencaID, novaLicencaID) {
		s.log.Info("migracao idempotente, posse inalterada",
			zap.String("empresa_id", empresaID.String()),
			zap.String("motivo", motivo))
		return empresa, nil
	}

	if novaLicencaID != nil {
		destino, err := s.licencas.GetByID(ctx, *novaLicencaID)
		if err != nil {
			return nil, err
		}
		if destino.Status != shared.LicencaStatusAtiva {
			return nil, apperr.Newf(apperr.CodeInvalidDestination,
				"licença de destino está %s; migração exige destino ATIVA", destino.Status)
		}
	}

	migrated, err := s.empresas.SetLicenca(ctx, empresaID, novaLicencaID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info("empresa migrada",
		zap.String("empresa_id", empresaID.String()),
		zap.Any("licenca_origem", empresa.LicencaID),
		zap.Any("licenca_destino", novaLicencaID),
		zap.String("motivo", motivo))
	return migrated, nil
}

func sameOwner(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *MigracaoService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOwnership(ctx); err != nil {
		s.log.Warn("failed to invalidate ownership cache", zap.Error(err))
	}
}
