package configs

import "time"

// Settlement holds the business constants of the settlement engine.
type Settlement struct {
	MinScore       float64       `env:"MIN_SCORE" envDefault:"0.5"`
	Currency       string        `env:"CURRENCY" envDefault:"USD"`
	PaymentTimeout time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"10s"`
	// SiblingPolicy is "keep" or "cancel" and decides what happens to the
	// other open bids of a campaign once a winner is selected.
	SiblingPolicy string `env:"SIBLING_POLICY" envDefault:"keep"`
}
