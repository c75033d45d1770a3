package redisadapter

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"dealflow/internal/core/domain"
)

// Publisher implements port.EventPublisher over Redis pub/sub. Each
// transition is published as JSON on the configured channel.
type Publisher struct {
	client  *redis.Client
	channel string
}

func NewPublisher(client *redis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, ev domain.ContractEvent) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, raw).Err()
}
