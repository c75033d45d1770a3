package port

import (
	"context"

	"dealflow/internal/core/domain"
)

// EventPublisher is notified after every persisted contract transition.
// Callers that prefer pull can ignore it and query the contract instead.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.ContractEvent) error
}
