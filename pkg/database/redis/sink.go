package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	redisV9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-keybatch/pkg/mq/batcher"
	"github.com/huynhanx03/go-keybatch/pkg/settings"
	"github.com/huynhanx03/go-keybatch/pkg/utils"
)

const defaultWriteDeadline = 5 * time.Second

// ListSink is a batcher.Consumer that appends every delivered batch, JSON
// encoded, to the Redis list named KeyPrefix + batch key.
type ListSink[T any] struct {
	client redisV9.Cmdable
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

var _ batcher.Consumer[any] = (*ListSink[any])(nil)

// NewListSink creates a sink writing through client. A nil log disables logging.
func NewListSink[T any](client redisV9.Cmdable, cfg *settings.Redis, log *zap.Logger) *ListSink[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &ListSink[T]{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    utils.ToDuration(cfg.TTL),
		log:    log,
	}
}

// ListKey returns the list a batch with batchKey is pushed to.
func (s *ListSink[T]) ListKey(batchKey string) string {
	return s.prefix + batchKey
}

// Consume pushes batch onto its list, refreshing the list TTL when one is configured.
func (s *ListSink[T]) Consume(batch *batcher.Batch[T]) error {
	value, err := json.Marshal(batch)
	if err != nil {
		return errors.Wrapf(err, "encode batch %q", batch.Key)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultWriteDeadline)
	defer cancel()

	key := s.ListKey(batch.Key)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.WithStack(fmt.Errorf("%w: key %q: %v", ErrPushFailed, key, err))
	}

	s.log.Debug("batch pushed",
		zap.String("list", key),
		zap.Int("events", batch.Len()),
	)
	return nil
}

// Batches reads back every batch stored for batchKey, oldest first.
func (s *ListSink[T]) Batches(ctx context.Context, batchKey string) ([]*batcher.Batch[T], error) {
	raw, err := s.client.LRange(ctx, s.ListKey(batchKey), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "read batches %q", batchKey)
	}

	out := make([]*batcher.Batch[T], 0, len(raw))
	for _, item := range raw {
		b := &batcher.Batch[T]{}
		if err := json.Unmarshal([]byte(item), b); err != nil {
			return nil, errors.Wrapf(err, "decode batch %q", batchKey)
		}
		out = append(out, b)
	}
	return out, nil
}
