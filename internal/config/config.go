package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"dealflow/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection. Environment variables
	// prefixed with PSQL_ will populate this struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	Redis      configs.Redis      `envPrefix:"REDIS_"`
	Kafka      configs.Kafka      `envPrefix:"KAFKA_"`
	Payment    configs.Payment    `envPrefix:"PAYMENT_"`
	Settlement configs.Settlement `envPrefix:"SETTLEMENT_"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, an error is returned. All fields are loaded with their
// specified defaults when no environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Settlement.SiblingPolicy {
	case "keep", "cancel":
	default:
		return fmt.Errorf("SETTLEMENT_SIBLING_POLICY must be keep or cancel, got %q", c.Settlement.SiblingPolicy)
	}
	if c.Settlement.MinScore < 0 || c.Settlement.MinScore > 1 {
		return fmt.Errorf("SETTLEMENT_MIN_SCORE must be within [0,1], got %v", c.Settlement.MinScore)
	}
	if c.Redis.Addr != "" && c.Redis.LockTTL <= c.Settlement.PaymentTimeout {
		return fmt.Errorf("REDIS_LOCK_TTL (%s) must exceed SETTLEMENT_PAYMENT_TIMEOUT (%s)", c.Redis.LockTTL, c.Settlement.PaymentTimeout)
	}
	return nil
}
