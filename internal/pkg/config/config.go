package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Backend selects the durable store implementation.
const (
	BackendMySQL = "mysql"
	BackendFile  = "file"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Storage StorageConfig
	MySQL   MySQLConfig
	Redis   RedisConfig
	AMQP    AMQPConfig
}

type StorageConfig struct {
	// Backend is "mysql" or "file".
	Backend     string `env:"STORAGE_BACKEND, default=file"`
	UsersFile   string `env:"USERS_FILE,      default=usuarios.txt"`
	TicketsFile string `env:"TICKETS_FILE,    default=tickets.txt"`
}

type MySQLConfig struct {
	User     string `env:"MYSQL_USER,     default=root"`
	Password string `env:"MYSQL_PASSWORD"`
	Host     string `env:"MYSQL_HOST,     default=localhost"`
	Port     string `env:"MYSQL_PORT,     default=3306"`
	Database string `env:"MYSQL_DB,       default=ticketec"`
}

type RedisConfig struct {
	// Addr empty means sessions are kept in process memory.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type AMQPConfig struct {
	// URL empty disables ticket event publishing.
	URL string `env:"AMQP_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Storage.Backend != BackendMySQL && cfg.Storage.Backend != BackendFile {
		return nil, fmt.Errorf("config: unknown storage backend %q", cfg.Storage.Backend)
	}
	return &cfg, nil
}
