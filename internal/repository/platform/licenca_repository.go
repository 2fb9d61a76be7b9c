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

type LicencaRepository struct {
	pool *pgxpool.Pool
}

func NewLicencaRepository(pool *pgxpool.Pool) *LicencaRepository {
	return &LicencaRepository{pool: pool}
}

const licencaColumns = "id, razao_social, status, plano_id, motivo_suspensao, created_at, updated_at"

func scanLicenca(row pgx.Row) (*platformModels.Licenca, error) {
	l := &platformModels.Licenca{}
	var motivo *string
	err := row.Scan(
		&l.ID,
		&l.RazaoSocial,
		&l.Status,
		&l.PlanoID,
		&motivo,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if motivo != nil {
		l.MotivoSuspensao = *motivo
	}
	return l, nil
}

// GetByID retorna uma licença pelo id
func (r *LicencaRepository) GetByID(ctx context.Context, id uuid.UUID) (*platformModels.Licenca, error) {
	query := fmt.Sprintf("SELECT %s FROM licencas WHERE id = $1", licencaColumns)

	l, err := scanLicenca(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeNotFound, "licença %s não encontrada", id)
		}
		return nil, fmt.Errorf("failed to get licenca: %w", err)
	}
	return l, nil
}

// List retorna todas as licenças
func (r *LicencaRepository) List(ctx context.Context) ([]platformModels.Licenca, error) {
	query := fmt.Sprintf("SELECT %s FROM licencas ORDER BY created_at DESC", licencaColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list licencas: %w", err)
	}
	defer rows.Close()

	var licencas []platformModels.Licenca
	for rows.Next() {
		l, err := scanLicenca(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan licenca: %w", err)
		}
		licencas = append(licencas, *l)
	}
	return licencas, rows.Err()
}

// Create insere uma nova licença com status ATIVA
func (r *LicencaRepository) Create(ctx context.Context, razaoSocial string, planoID uuid.UUID) (*platformModels.Licenca, error) {
	query := fmt.Sprintf(`
		INSERT INTO licencas (id, razao_social, status, plano_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING %s
	`, licencaColumns)

	now := time.Now()
	l, err := scanLicenca(r.pool.QueryRow(ctx, query, uuid.New(), razaoSocial, shared.LicencaStatusAtiva, planoID, now))
	if err != nil {
		return nil, mapPgError("failed to create licenca", err)
	}
	return l, nil
}

// UpdateStatus atualiza o status e o motivo de suspensão de uma licença.
// A validação da transição é do serviço de ciclo de vida; aqui só persiste.
func (r *LicencaRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.LicencaStatus, motivo string) (*platformModels.Licenca, error) {
	query := fmt.Sprintf(`
		UPDATE licencas
		SET status = $2, motivo_suspensao = NULLIF($3, ''), updated_at = $4
		WHERE id = $1
		RETURNING %s
	`, licencaColumns)

	l, err := scanLicenca(r.pool.QueryRow(ctx, query, id, status, motivo, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeNotFound, "licença %s não encontrada", id)
		}
		return nil, mapPgError("failed to update licenca status", err)
	}
	return l, nil
}

// Rescindir cancela a licença e desvincula todas as suas empresas na mesma
// transação. Posse nunca degrada para referência pendente: ou a licença vira
// CANCELADA com todas as empresas em licenca_id nulo, ou nada é aplicado.
func (r *LicencaRepository) Rescindir(ctx context.Context, id uuid.UUID) (*platformModels.Licenca, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin rescisao: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	query := fmt.Sprintf(`
		UPDATE licencas
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING %s
	`, licencaColumns)

	l, err := scanLicenca(tx.QueryRow(ctx, query, id, shared.LicencaStatusCancelada, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeNotFound, "licença %s não encontrada", id)
		}
		return nil, mapPgError("failed to cancel licenca", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE empresas
		SET licenca_id = NULL, updated_at = $2
		WHERE licenca_id = $1
	`, id, now)
	if err != nil {
		return nil, mapPgError("failed to detach empresas", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapPgError("failed to commit rescisao", err)
	}
	return l, nil
}

// Stats agrega as métricas de uma licença
func (r *LicencaRepository) Stats(ctx context.Context, id uuid.UUID) (*platformModels.LicencaStats, error) {
	stats := &platformModels.LicencaStats{LicencaID: id}

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE ativo),
			COUNT(*) FILTER (WHERE NOT ativo)
		FROM empresas
		WHERE licenca_id = $1
	`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&stats.TotalEmpresas,
		&stats.EmpresasAtivas,
		&stats.EmpresasInativas,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get licenca stats: %w", err)
	}
	return stats, nil
}
