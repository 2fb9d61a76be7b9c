package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexandreDinis/sistema-comi-platform/internal/config"
)

// Manager mantém o pool de conexões com o Master DB (grafo de posse:
// licenças, empresas, planos).
type Manager struct {
	masterPool *pgxpool.Pool
	cfg        *config.Config
	mu         sync.Mutex
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg}
}

// InitMasterPool inicializa o pool do Master DB e valida a conexão
func (m *Manager) InitMasterPool(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.masterPool != nil {
		return nil
	}

	poolConfig, err := pgxpool.ParseConfig(m.cfg.MasterDB.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to parse master db config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create master pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping master db: %w", err)
	}

	m.masterPool = pool
	return nil
}

// GetMasterPool retorna o pool do Master DB
func (m *Manager) GetMasterPool() *pgxpool.Pool {
	return m.masterPool
}

// Close encerra as conexões
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.masterPool != nil {
		m.masterPool.Close()
		m.masterPool = nil
	}
}
