package kafka

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-keybatch/pkg/mq/batcher"
	"github.com/huynhanx03/go-keybatch/pkg/settings"
	"github.com/huynhanx03/go-keybatch/pkg/timer"
)

type stockEvent struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

func TestNewPublisher_NoTopic(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()

	_, err := NewPublisher[stockEvent](producer, "", nil)
	assert.ErrorIs(t, err, ErrNoTopic)
}

func TestPublisher_Consume(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "stock" {
			return errors.New("wrong topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "order1" {
			return errors.New("wrong key " + string(key))
		}
		if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != "2" {
			return errors.New("missing event-count header")
		}

		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var got batcher.Batch[stockEvent]
		if err := json.Unmarshal(raw, &got); err != nil {
			return err
		}
		if got.Key != "order1" || len(got.Events) != 2 || got.Events[1].Quantity != 0 {
			return errors.New("unexpected payload " + string(raw))
		}
		return nil
	})

	pub, err := NewPublisher[stockEvent](producer, "stock", nil)
	require.NoError(t, err)

	err = pub.Consume(&batcher.Batch[stockEvent]{
		Key:    "order1",
		Events: []stockEvent{{ID: "1", Quantity: 15}, {ID: "1", Quantity: 0}},
	})
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestPublisher_ConsumeFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

	pub, err := NewPublisher[stockEvent](producer, "stock", nil)
	require.NoError(t, err)

	err = pub.Consume(&batcher.Batch[stockEvent]{Key: "order2", Events: []stockEvent{{ID: "2"}}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPublishFailed)
	assert.Contains(t, err.Error(), "order2")
	require.NoError(t, pub.Close())
}

func TestPublisher_AsBatcherConsumer(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndSucceed()
	producer.ExpectSendMessageAndSucceed()

	pub, err := NewPublisher[stockEvent](producer, "stock", nil)
	require.NoError(t, err)

	clk := timer.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := batcher.NewKeyed[stockEvent](pub, batcher.Config{WaitFor: 100 * time.Millisecond, Clock: clk})

	b.Add("order1", stockEvent{ID: "1", Quantity: 15})
	b.Add("order2", stockEvent{ID: "2", Quantity: 11})
	b.Add("order1", stockEvent{ID: "1", Quantity: 0})
	clk.Advance(100 * time.Millisecond)

	require.NoError(t, pub.Close())
}

func TestNewSyncProducer_NoBrokers(t *testing.T) {
	_, err := NewSyncProducer(&settings.Kafka{})
	assert.ErrorIs(t, err, ErrNoBrokers)
}

func TestNewConfig(t *testing.T) {
	cfg := &settings.Kafka{Brokers: []string{"localhost:9092"}, MaxRetries: 7}
	c := newConfig(cfg)

	assert.True(t, c.Producer.Return.Successes)
	assert.Equal(t, sarama.WaitForAll, c.Producer.RequiredAcks)
	assert.Equal(t, 7, c.Producer.Retry.Max)
	assert.Equal(t, defaultRetryBackoff*time.Millisecond, c.Producer.Retry.Backoff)
	assert.Equal(t, defaultTimeout*time.Second, c.Producer.Timeout)
	assert.Equal(t, defaultMaxMessageBytes, c.Producer.MaxMessageBytes)
	assert.NoError(t, c.Validate())
}
