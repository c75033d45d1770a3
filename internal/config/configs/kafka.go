package configs

import "time"

// Kafka configures the optional Kafka transition stream. When Brokers is
// empty no Kafka writer is created.
type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"dealflow.contract.transitions"`
	// BatchTimeout bounds how long a synchronous publish waits for its batch
	// to fill. Transitions are published one at a time, so it stays short.
	BatchTimeout time.Duration `env:"BATCH_TIMEOUT" envDefault:"10ms"`
}
