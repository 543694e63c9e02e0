package batcher

import (
	"time"

	"go.uber.org/zap"

	"github.com/huynhanx03/go-keybatch/pkg/settings"
	"github.com/huynhanx03/go-keybatch/pkg/timer"
	"github.com/huynhanx03/go-keybatch/pkg/utils"
)

// DefaultWaitFor is the quiet period used when Config.WaitFor is not positive.
const DefaultWaitFor = 100 * time.Millisecond

// Consumer is the interface that must be implemented by users of the Batcher.
// It is responsible for processing a completed batch.
type Consumer[T any] interface {
	// Consume processes a delivered batch. The batch must be treated as
	// read-only. A returned error is logged; the batch is not redelivered.
	Consume(batch *Batch[T]) error
}

// ConsumerFunc adapts an ordinary function to the Consumer interface.
type ConsumerFunc[T any] func(batch *Batch[T]) error

// Consume calls f(batch).
func (f ConsumerFunc[T]) Consume(batch *Batch[T]) error {
	return f(batch)
}

// Config holds configuration for the Keyed batcher.
type Config struct {
	// WaitFor is the quiet period: a batch is delivered once no event for
	// its key has been added for this long.
	WaitFor time.Duration

	// Shards is the number of lock shards of the key store.
	Shards int

	// Clock schedules delivery timers. Defaults to timer.Real().
	Clock timer.Clock

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// OnError receives internal-consistency violations raised when a
	// delivery timer fires. The default handler logs and panics.
	OnError func(err error)
}

// FromSettings converts file configuration into a Config. Clock, Logger and
// OnError are left for the caller.
func FromSettings(s settings.Batcher) Config {
	return Config{
		WaitFor: utils.ToDurationMs(s.WaitForMs),
		Shards:  s.Shards,
	}
}

func (c *Config) setDefaultConfig() {
	if c.WaitFor <= 0 {
		c.WaitFor = DefaultWaitFor
	}
	if c.Clock == nil {
		c.Clock = timer.Real()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.OnError == nil {
		log := c.Logger
		c.OnError = func(err error) {
			log.Error("batcher invariant violated", zap.Error(err))
			panic(err)
		}
	}
}
