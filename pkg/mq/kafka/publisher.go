package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-keybatch/pkg/mq/batcher"
)

// HeaderEventCount carries the number of events in the published batch.
const HeaderEventCount = "event-count"

// Publisher is a batcher.Consumer that writes each delivered batch as one
// JSON message. The batch key is the message key, so batches for a key land
// on the same partition in delivery order.
type Publisher[T any] struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

var _ batcher.Consumer[any] = (*Publisher[any])(nil)

// NewPublisher wraps producer. A nil log disables logging.
func NewPublisher[T any](producer sarama.SyncProducer, topic string, log *zap.Logger) (*Publisher[T], error) {
	if topic == "" {
		return nil, ErrNoTopic
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher[T]{
		producer: producer,
		topic:    topic,
		log:      log,
	}, nil
}

// Consume publishes batch and waits for the broker acknowledgement.
func (p *Publisher[T]) Consume(batch *batcher.Batch[T]) error {
	value, err := json.Marshal(batch)
	if err != nil {
		return errors.Wrapf(err, "encode batch %q", batch.Key)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(batch.Key),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventCount), Value: []byte(strconv.Itoa(batch.Len()))},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return errors.WithStack(fmt.Errorf("%w: key %q: %v", ErrPublishFailed, batch.Key, err))
	}

	p.log.Debug("batch published",
		zap.String("topic", p.topic),
		zap.String("batch_key", batch.Key),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// Close closes the underlying producer.
func (p *Publisher[T]) Close() error {
	return p.producer.Close()
}
