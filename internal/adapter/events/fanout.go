package events

import (
	"context"
	"errors"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// Fanout publishes every event to all of its publishers. A failing
// publisher does not stop the others; their errors are joined.
type Fanout []port.EventPublisher

func (f Fanout) Publish(ctx context.Context, ev domain.ContractEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
