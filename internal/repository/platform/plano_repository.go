package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
	platformModels "github.com/alexandreDinis/sistema-comi-platform/internal/models/platform"
)

// PlanoRepository lê o catálogo de planos (dados de referência, consumidos
// mas não possuídos por este núcleo)
type PlanoRepository struct {
	pool *pgxpool.Pool
}

func NewPlanoRepository(pool *pgxpool.Pool) *PlanoRepository {
	return &PlanoRepository{pool: pool}
}

// List retorna o catálogo de planos com seus pacotes de features
func (r *PlanoRepository) List(ctx context.Context) ([]platformModels.Plano, error) {
	query := `
		SELECT p.id, p.nome, p.tier, p.preco,
		       COALESCE(array_agg(pf.feature_code) FILTER (WHERE pf.feature_code IS NOT NULL), '{}'),
		       p.created_at, p.updated_at
		FROM planos p
		LEFT JOIN plano_features pf ON pf.plano_id = p.id
		GROUP BY p.id
		ORDER BY p.preco
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list planos: %w", err)
	}
	defer rows.Close()

	var planos []platformModels.Plano
	for rows.Next() {
		var p platformModels.Plano
		if err := rows.Scan(&p.ID, &p.Nome, &p.Tier, &p.Preco, &p.Features, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plano: %w", err)
		}
		planos = append(planos, p)
	}
	return planos, rows.Err()
}

// GetByID retorna um plano pelo id
func (r *PlanoRepository) GetByID(ctx context.Context, id uuid.UUID) (*platformModels.Plano, error) {
	query := `
		SELECT p.id, p.nome, p.tier, p.preco,
		       COALESCE(array_agg(pf.feature_code) FILTER (WHERE pf.feature_code IS NOT NULL), '{}'),
		       p.created_at, p.updated_at
		FROM planos p
		LEFT JOIN plano_features pf ON pf.plano_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`

	p := &platformModels.Plano{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Nome, &p.Tier, &p.Preco, &p.Features, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeNotFound, "plano %s não encontrado", id)
		}
		return nil, fmt.Errorf("failed to get plano: %w", err)
	}
	return p, nil
}

// mapPgError converte erros do Postgres para a taxonomia da aplicação.
// Conflitos detectados pelo store (unicidade, serialização, FK) são
// repassados ao operador com a mensagem do servidor, sem modificação.
func mapPgError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503", "40001", "40P01":
			return apperr.Wrap(apperr.CodeConflict, pgErr.Message, err)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
