package events

import (
	"context"
	"log/slog"

	"dealflow/internal/core/domain"
)

// LogPublisher implements port.EventPublisher by writing each contract
// transition to the structured logger. It is the default hook when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, ev domain.ContractEvent) error {
	attrs := []slog.Attr{
		slog.String("contract_id", ev.ContractID),
		slog.String("from", string(ev.From)),
		slog.String("to", string(ev.To)),
		slog.Time("at", ev.At),
	}
	if ev.Reason != "" {
		attrs = append(attrs, slog.String("reason", ev.Reason))
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "contract transition", attrs...)
	return nil
}
