package kafka

import (
	"fmt"

	"github.com/IBM/sarama"

	"github.com/huynhanx03/go-keybatch/pkg/settings"
	"github.com/huynhanx03/go-keybatch/pkg/utils"
)

const (
	defaultTimeout         = 10 // seconds
	defaultMaxRetries      = 3
	defaultRetryBackoff    = 100 // millis
	defaultMaxMessageBytes = 1000000
)

// NewSyncProducer creates a SyncProducer for cfg. Every publish waits for all
// in-sync replicas to acknowledge.
func NewSyncProducer(cfg *settings.Kafka) (sarama.SyncProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, newConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProducerFailed, err)
	}
	return producer, nil
}

// newConfig maps settings onto a sarama producer configuration
func newConfig(cfg *settings.Kafka) *sarama.Config {
	setDefaultConfig(cfg)

	c := sarama.NewConfig()
	c.Producer.Return.Successes = true
	c.Producer.Return.Errors = true
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Partitioner = sarama.NewHashPartitioner
	c.Producer.Idempotent = false
	c.Producer.MaxMessageBytes = cfg.MaxMessageBytes
	c.Producer.Retry.Max = cfg.MaxRetries
	c.Producer.Retry.Backoff = utils.ToDurationMs(cfg.RetryBackoff)
	c.Producer.Timeout = utils.ToDuration(cfg.Timeout)
	c.Net.DialTimeout = utils.ToDuration(cfg.Timeout)
	return c
}

// setDefaultConfig sets default values for Kafka configuration
func setDefaultConfig(cfg *settings.Kafka) {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	if cfg.MaxMessageBytes == 0 {
		cfg.MaxMessageBytes = defaultMaxMessageBytes
	}
}
