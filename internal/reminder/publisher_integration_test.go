//go:build integration

package reminder_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"tradegate/internal/platform/config"
	"tradegate/internal/platform/kafka"
	"tradegate/internal/reminder"
	"tradegate/pkg/testutil/containers"
)

func TestKafkaPublisher(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	redpanda := containers.NewRedpandaContainer(t)

	const topic = "license-renewal-reminders-test"
	producer, err := kafka.NewProducer(config.KafkaConfig{
		Brokers: []string{redpanda.Broker},
		Topic:   topic,
	})
	require.NoError(t, err)
	require.NotNil(t, producer)
	defer producer.Close()

	publisher := reminder.NewKafkaPublisher(producer)

	fact := reminder.Fact{
		LicenseNumber: "IND-2026-10000",
		ExporterID:    7,
		RemainingDays: 10,
		ExpiryDate:    time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.Publish(ctx, fact))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "IND-2026-10000", string(records[0].Key))

	var got reminder.Fact
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, fact.LicenseNumber, got.LicenseNumber)
	assert.Equal(t, fact.ExporterID, got.ExporterID)
	assert.Equal(t, fact.RemainingDays, got.RemainingDays)
	assert.True(t, fact.ExpiryDate.Equal(got.ExpiryDate))
}
