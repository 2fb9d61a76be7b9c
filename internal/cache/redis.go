package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexandreDinis/sistema-comi-platform/internal/config"
)

// Chaves de cache do console. Toda mutação de posse invalida as chaves
// relacionadas na mesma requisição; decisões nunca se baseiam em estado
// anterior à última mutação confirmada.
const (
	keyPlanos        = "platform:planos"
	keyPlatformStats = "platform:stats"
)

type Client struct {
	Client *redis.Client
}

// NewClient cria o cliente Redis e valida a conexão
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// Get retrieves a value from Redis
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

// Set sets a value in Redis with expiration
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Client.Set(ctx, key, value, expiration).Err()
}

// Delete removes keys from Redis
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// GetPlanos retorna o catálogo de planos serializado, se em cache
func (c *Client) GetPlanos(ctx context.Context) (string, error) {
	return c.Get(ctx, keyPlanos)
}

// SetPlanos guarda o catálogo de planos serializado
func (c *Client) SetPlanos(ctx context.Context, payload string, expiration time.Duration) error {
	return c.Set(ctx, keyPlanos, payload, expiration)
}

// GetPlatformStats retorna as métricas globais serializadas, se em cache
func (c *Client) GetPlatformStats(ctx context.Context) (string, error) {
	return c.Get(ctx, keyPlatformStats)
}

// SetPlatformStats guarda as métricas globais serializadas
func (c *Client) SetPlatformStats(ctx context.Context, payload string, expiration time.Duration) error {
	return c.Set(ctx, keyPlatformStats, payload, expiration)
}

// InvalidateOwnership derruba as visões derivadas do grafo de posse após
// qualquer mutação (suspensão, rescisão, migração, toggle)
func (c *Client) InvalidateOwnership(ctx context.Context) error {
	return c.Delete(ctx, keyPlatformStats)
}

// Close encerra o cliente Redis
func (c *Client) Close() error {
	return c.Client.Close()
}
