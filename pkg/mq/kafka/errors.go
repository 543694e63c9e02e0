package kafka

import "errors"

var (
	ErrNoBrokers      = errors.New("kafka: no brokers configured")
	ErrNoTopic        = errors.New("kafka: no topic configured")
	ErrProducerFailed = errors.New("kafka: failed to create producer")
	ErrPublishFailed  = errors.New("kafka: failed to publish batch")
)
