package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
	platformModels "github.com/alexandreDinis/sistema-comi-platform/internal/models/platform"
	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

type EmpresaRepository struct {
	pool *pgxpool.Pool
}

func NewEmpresaRepository(pool *pgxpool.Pool) *EmpresaRepository {
	return &EmpresaRepository{pool: pool}
}

const empresaColumns = "id, nome, cnpj, plano, ativo, licenca_id, admin_email, created_at, updated_at"

func scanEmpresa(row pgx.Row) (*platformModels.Empresa, error) {
	e := &platformModels.Empresa{}
	var adminEmail *string
	err := row.Scan(
		&e.ID,
		&e.Nome,
		&e.CNPJ,
		&e.Plano,
		&e.Ativo,
		&e.LicencaID,
		&adminEmail,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if adminEmail != nil {
		e.AdminEmail = *adminEmail
	}
	return e, nil
}

// GetByID retorna uma empresa pelo id
func (r *EmpresaRepository) GetByID(ctx context.Context, id uuid.UUID) (*platformModels.Empresa, error) {
	query := fmt.Sprintf("SELECT %s FROM empresas WHERE id = $1", empresaColumns)

	e, err := scanEmpresa(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeNotFound, "empresa %s não encontrada", id)
		}
		return nil, fmt.Errorf("failed to get empresa: %w", err)
	}
	return e, nil
}

// List retorna todas as empresas
func (r *EmpresaRepository) List(ctx context.Context) ([]platformModels.Empresa, error) {
	query := fmt.Sprintf("SELECT %s FROM empresas ORDER BY created_at DESC", empresaColumns)
	return r.queryMany(ctx, query)
}

// ListByLicenca retorna as empresas vinculadas a uma licença
func (r *EmpresaRepository) ListByLicenca(ctx context.Context, licencaID uuid.UUID) ([]platformModels.Empresa, error) {
	query := fmt.Sprintf("SELECT %s FROM empresas WHERE licenca_id = $1 ORDER BY created_at DESC", empresaColumns)
	return r.queryMany(ctx, query, licencaID)
}

func (r *EmpresaRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]platformModels.Empresa, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list empresas: %w", err)
	}
	defer rows.Close()

	var empresas []platformModels.Empresa
	for rows.Next() {
		e, err := scanEmpresa(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan empresa: %w", err)
		}
		empresas = append(empresas, *e)
	}
	return empresas, rows.Err()
}

// Create insere uma nova empresa (onboarding). LicencaID nulo = posse direta.
func (r *EmpresaRepository) Create(ctx context.Context, req platformModels.CreateEmpresaRequest) (*platformModels.Empresa, error) {
	query := fmt.Sprintf(`
		INSERT INTO empresas (id, nome, cnpj, plano, ativo, licenca_id, admin_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, NULLIF($6, ''), $7, $7)
		RETURNING %s
	`, empresaColumns)

	e, err := scanEmpresa(r.pool.QueryRow(ctx, query,
		uuid.New(), req.Nome, req.CNPJ, req.Plano, req.LicencaID, req.AdminEmail, time.Now()))
	if err != nil {
		return nil, mapPgError("failed to create empresa", err)
	}
	return e, nil
}

// Update altera os dados cadastrais de uma empresa
func (r *EmpresaRepository) Update(ctx context.Context, id uuid.UUID, req platformModels.UpdateEmpresaRequest) (*platformModels.Empresa, error) {
	query := fmt.Sprintf(`
		UPDATE empresas
		SET nome = $2, cnpj = $3, plano = $4, admin_email = NULLIF($5, ''), updated_at = $6
		WHERE id = $1
		RETURNING %s
	`, empresaColumns)

	e, err := scanEmpresa(r.pool.QueryRow(ctx, query, id, req.Nome, req.CNPJ, req.Plano, req.AdminEmail, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeNotFound, "empresa %s não encontrada", id)
		}
		return nil, mapPgError("failed to update empresa", err)
	}
	return e, nil
}

// SetAtivo liga/desliga o acesso da empresa independentemente da licença
// (kill switch da plataforma)
func (r *EmpresaRepository) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) (*platformModels.Empresa, error) {
	query := fmt.Sprintf(`
		UPDATE empresas
		SET ativo = $2, updated_at = $3
		WHERE id = $1
		RETURNING %s
	`, empresaColumns)

	e, err := scanEmpresa(r.pool.QueryRow(ctx, query, id, ativo, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeNotFound, "empresa %s não encontrada", id)
		}
		return nil, mapPgError("failed to toggle empresa", err)
	}
	return e, nil
}

// SetLicenca muda a posse da empresa em uma única operação. licencaID nulo
// devolve a empresa à posse direta da plataforma.
func (r *EmpresaRepository) SetLicenca(ctx context.Context, id uuid.UUID, licencaID *uuid.UUID) (*platformModels.Empresa, error) {
	query := fmt.Sprintf(`
		UPDATE empresas
		SET licenca_id = $2, updated_at = $3
		WHERE id = $1
		RETURNING %s
	`, empresaColumns)

	e, err := scanEmpresa(r.pool.QueryRow(ctx, query, id, licencaID, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeNotFound, "empresa %s não encontrada", id)
		}
		return nil, mapPgError("failed to reassign empresa", err)
	}
	return e, nil
}

// PlatformStats agrega as métricas globais da plataforma
func (r *EmpresaRepository) PlatformStats(ctx context.Context) (*platformModels.PlatformStats, error) {
	stats := &platformModels.PlatformStats{}

	query := `
		SELECT
			(SELECT COUNT(*) FROM empresas),
			(SELECT COUNT(*) FROM empresas WHERE ativo),
			(SELECT COUNT(*) FROM empresas WHERE licenca_id IS NULL),
			(SELECT COUNT(*) FROM empresas e JOIN licencas l ON e.licenca_id = l.id WHERE l.status <> $1),
			(SELECT COUNT(*) FROM licencas),
			(SELECT COUNT(*) FROM licencas WHERE status = $1),
			(SELECT COUNT(*) FROM licencas WHERE status = $2),
			(SELECT COUNT(*) FROM licencas WHERE status = $3)
	`

	err := r.pool.QueryRow(ctx, query,
		shared.LicencaStatusAtiva, shared.LicencaStatusSuspensa, shared.LicencaStatusCancelada).Scan(
		&stats.TotalEmpresas,
		&stats.EmpresasAtivas,
		&stats.EmpresasOrfas,
		&stats.EmpresasEmRisco,
		&stats.TotalLicencas,
		&stats.LicencasAtivas,
		&stats.LicencasSuspensas,
		&stats.LicencasCanceladas,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform stats: %w", err)
	}
	return stats, nil
}
