package kafkaadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"dealflow/internal/config/configs"
	"dealflow/internal/core/domain"
)

// Publisher implements port.EventPublisher on a Kafka topic. Messages are
// keyed by contract id, so all transitions of one contract land on the same
// partition in order.
type Publisher struct {
	writer *kafka.Writer
}

// defaultBatchTimeout replaces kafka-go's one second default. Publishes are
// synchronous and happen under the contract lock.
const defaultBatchTimeout = 10 * time.Millisecond

func NewPublisher(cfg configs.Kafka) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher requires at least one broker")
	}
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = defaultBatchTimeout
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
			BatchTimeout: batchTimeout,
		},
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, ev domain.ContractEvent) error {
	msg, err := message(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func message(ev domain.ContractEvent) (kafka.Message, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(ev.ContractID),
		Value: raw,
		Time:  ev.At,
		Headers: []kafka.Header{
			{Key: "transition", Value: []byte(string(ev.From) + ">" + string(ev.To))},
		},
	}, nil
}
