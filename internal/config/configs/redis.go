package configs

import "time"

// Redis configures the optional Redis connection. When Addr is empty the
// service runs single-instance with an in-process settlement lock and logs
// contract transitions instead of publishing them.
type Redis struct {
	Addr     string `env:"ADDRESS"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	// Channel receives contract transition events as JSON.
	Channel string `env:"CHANNEL" envDefault:"dealflow.contract.transitions"`
	// LockTTL bounds how long a crashed instance can hold a contract lock.
	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"30s"`
}
