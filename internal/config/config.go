package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	MasterDB DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	App      AppConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig guarda apenas o segredo de validação: emissão de tokens é do
// colaborador de autenticação, este serviço só valida e consome a sessão.
type JWTConfig struct {
	Secret string
}

type AppConfig struct {
	Env string
}

type LogConfig struct {
	Level string
}

// Load carrega a configuração de um .env opcional com override por
// variáveis de ambiente
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		// .env é opcional; variáveis de ambiente bastam. Com SetConfigFile
		// o viper não devolve ConfigFileNotFoundError, então a ausência do
		// arquivo aparece como fs.ErrNotExist.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			GinMode: v.GetString("GIN_MODE"),
		},
		MasterDB: DatabaseConfig{
			Host:     v.GetString("MASTER_DB_HOST"),
			Port:     v.GetString("MASTER_DB_PORT"),
			User:     v.GetString("MASTER_DB_USER"),
			Password: v.GetString("MASTER_DB_PASSWORD"),
			DBName:   v.GetString("MASTER_DB_NAME"),
			SSLMode:  v.GetString("MASTER_DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		App: AppConfig{
			Env: v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")

	v.SetDefault("MASTER_DB_HOST", "localhost")
	v.SetDefault("MASTER_DB_PORT", "5432")
	v.SetDefault("MASTER_DB_USER", "comi_platform")
	v.SetDefault("MASTER_DB_PASSWORD", "comi_platform_password")
	v.SetDefault("MASTER_DB_NAME", "comi_master")
	v.SetDefault("MASTER_DB_SSLMODE", "disable")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "change-me-in-production")

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
