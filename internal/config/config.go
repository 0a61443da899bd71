// Package config loads service configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every knob the service reads from the environment.
type Config struct {
	Port     string `env:"PORT"      envDefault:"8080"`
	GRPCPort string `env:"GRPC_PORT" envDefault:"50051"`

	// Environment selects wiring: "production" uses external NATS and
	// real auth, "development" runs an embedded NATS server, "local"
	// uses in-process mocks only.
	Environment string `env:"ENVIRONMENT" envDefault:"local"`

	// DBDriver selects the rankings store: memory, sqlite, or postgres.
	DBDriver    string `env:"DB_DRIVER"    envDefault:"memory"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLiteFile  string `env:"SQLITE_FILE"  envDefault:"rankings.db"`

	NATSURL     string `env:"NATS_URL"     envDefault:"nats://localhost:4222"`
	NATSSubject string `env:"NATS_SUBJECT" envDefault:"draft.events"`

	ClickHouseAddr     string `env:"CLICKHOUSE_ADDR"`
	ClickHouseDB       string `env:"CLICKHOUSE_DB"       envDefault:"default"`
	ClickHouseUser     string `env:"CLICKHOUSE_USER"     envDefault:"default"`
	ClickHousePassword string `env:"CLICKHOUSE_PASSWORD"`

	AuthentikBaseURL      string `env:"AUTHENTIK_BASE_URL"`
	AuthentikClientID     string `env:"AUTHENTIK_CLIENT_ID"`
	AuthentikClientSecret string `env:"AUTHENTIK_CLIENT_SECRET"`
	AuthentikRedirectURL  string `env:"AUTHENTIK_REDIRECT_URL"`

	// PoolLimit caps how many ranked candidates a draft pulls in by
	// default when no explicit pool is supplied.
	PoolLimit int `env:"POOL_LIMIT" envDefault:"50"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
