package reminder

import (
	"context"
	"encoding/json"
	"fmt"

	"tradegate/internal/platform/kafka"
)

// Publisher hands a reminder fact to an advisor channel.
type Publisher interface {
	Publish(ctx context.Context, fact Fact) error
}

// KafkaPublisher emits reminder facts as JSON records keyed by license
// number, so rescans of the same license land on the same partition.
type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, fact Fact) error {
	payload, err := json.Marshal(fact)
	if err != nil {
		return fmt.Errorf("encode reminder: %w", err)
	}
	return p.producer.Publish(ctx, fact.LicenseNumber, payload)
}
