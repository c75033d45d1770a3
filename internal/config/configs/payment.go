package configs

import "time"

// Payment holds the payment rail credentials. Without an API key every
// payout fails in the request phase, before any state is touched.
type Payment struct {
	APIKey  string        `env:"API_KEY"`
	Network string        `env:"NETWORK" envDefault:"sandbox"`
	Latency time.Duration `env:"LATENCY" envDefault:"500ms"`
}
