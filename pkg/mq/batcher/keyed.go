package batcher

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-keybatch/pkg/datastructs/shardedmap"
	"github.com/huynhanx03/go-keybatch/pkg/hash"
)

// Keyed accumulates events per key and hands each key's batch to the
// Consumer once the key has been quiet for Config.WaitFor.
//
// Behavior:
//   - Add never blocks on delivery and never fails.
//   - Each Add for a key cancels the key's pending delivery and schedules a new one.
//   - Delivery runs on the timer goroutine. Once a batch is handed off, Add opens
//     the next batch for the key, but that batch is not consumed until the
//     previous Consume for the key has returned. Batches for one key are never
//     consumed concurrently.
//   - Stop discards every open batch and waits for deliveries already in progress.
type Keyed[T any] struct {
	cons     Consumer[T]
	cfg      Config
	log      *zap.Logger
	store    *shardedmap.Map[string, *keyState[T]]
	stopped  atomic.Bool
	inflight sync.WaitGroup
}

// NewKeyed creates a Keyed batcher delivering to cons.
func NewKeyed[T any](cons Consumer[T], cfg Config) *Keyed[T] {
	cfg.setDefaultConfig()

	return &Keyed[T]{
		cons:  cons,
		cfg:   cfg,
		log:   cfg.Logger,
		store: shardedmap.New[string, *keyState[T]](cfg.Shards, hash.String),
	}
}

// NewFunc returns the Add function of a Keyed batcher that calls fn with each
// delivered batch. It suits callers that never need to stop the batcher.
func NewFunc[T any](fn func(batch *Batch[T]), cfg Config) func(key string, data T) {
	b := NewKeyed[T](ConsumerFunc[T](func(batch *Batch[T]) error {
		fn(batch)
		return nil
	}), cfg)
	return b.Add
}

// Add appends data to the batch for key, opening one if needed, and restarts
// the key's quiet period.
func (b *Keyed[T]) Add(key string, data T) {
	now := b.cfg.Clock.Now()

	dropped := false
	b.store.Compute(key, func(st *keyState[T], loaded bool) (*keyState[T], bool) {
		// Checked under the shard lock so an Add racing Stop cannot survive the drain.
		if b.stopped.Load() {
			dropped = true
			return st, loaded
		}

		if !loaded {
			st = &keyState[T]{}
		}
		if st.open == nil {
			st.open = newRecord(key, data, now)
		} else {
			st.open.pending.cancel()
			st.open.append(data, now)
		}
		st.open.pending = b.schedule(key)
		return st, true
	})

	if dropped {
		b.log.Warn("event added to stopped batcher", zap.String("batch_key", key))
	}
}

// Len returns the number of keys with an open batch.
func (b *Keyed[T]) Len() int {
	n := 0
	b.store.Do(func(_ string, st *keyState[T]) {
		if st.open != nil {
			n++
		}
	})
	return n
}

// Keys returns the keys with an open batch, in no particular order.
func (b *Keyed[T]) Keys() []string {
	var keys []string
	b.store.Do(func(key string, st *keyState[T]) {
		if st.open != nil {
			keys = append(keys, key)
		}
	})
	return keys
}

// Stop cancels all pending deliveries and discards their batches, then waits
// for deliveries that had already started. It returns the number of batches
// dropped. Later calls to Add are ignored. Stop must not be called from Consume.
func (b *Keyed[T]) Stop() int {
	b.stopped.Store(true)

	dropped := 0
	b.store.Drain(func(key string, st *keyState[T]) {
		if st.open == nil {
			return
		}
		dropped++
		st.open.pending.cancel()
		b.log.Debug("batch discarded",
			zap.String("batch_key", key),
			zap.Int("events", st.open.batch.Len()),
		)
	})

	b.inflight.Wait()

	if dropped > 0 {
		b.log.Info("batcher stopped", zap.Int("dropped_batches", dropped))
	}
	return dropped
}

// schedule arms a delivery timer for key. Callers must hold the key's shard lock.
func (b *Keyed[T]) schedule(key string) *pendingTimer {
	p := &pendingTimer{}
	p.handle = b.cfg.Clock.AfterFunc(b.cfg.WaitFor, func() {
		b.fire(key, p)
	})
	return p
}

// fire is the timer callback for p. It hands off the open batch for key and
// delivers it after any earlier delivery for the key, or reports a violation
// if the store no longer matches p.
func (b *Keyed[T]) fire(key string, p *pendingTimer) {
	var (
		batch *Batch[T]
		prev  chan struct{}
		done  chan struct{}
		err   error
	)

	b.store.Compute(key, func(st *keyState[T], loaded bool) (*keyState[T], bool) {
		if p.cancelled {
			return st, loaded
		}
		if !loaded || st.open == nil {
			err = errors.Wrapf(ErrMissingBatch, "batch key %q", key)
			return st, loaded
		}
		if st.open.pending != p {
			err = errors.Wrapf(ErrOrphanTimer, "batch key %q", key)
			return st, true
		}

		batch = st.open.batch
		prev = st.delivering
		done = make(chan struct{})
		st.open = nil
		st.delivering = done
		b.inflight.Add(1)
		return st, true
	})

	if err != nil {
		b.cfg.OnError(err)
		return
	}
	if batch == nil {
		return
	}

	defer b.inflight.Done()
	defer b.finish(key, done)

	if prev != nil {
		<-prev
	}
	b.deliver(batch)
}

// finish releases the delivery slot taken by done and forgets key when it
// has nothing left in flight.
func (b *Keyed[T]) finish(key string, done chan struct{}) {
	b.store.Compute(key, func(st *keyState[T], loaded bool) (*keyState[T], bool) {
		if !loaded {
			return st, false
		}
		if st.delivering == done {
			st.delivering = nil
		}
		return st, !st.idle()
	})
	close(done)
}

func (b *Keyed[T]) deliver(batch *Batch[T]) {
	if err := b.cons.Consume(batch); err != nil {
		b.log.Error("batch consumer failed",
			zap.String("batch_key", batch.Key),
			zap.Int("events", batch.Len()),
			zap.Error(err),
		)
		return
	}

	b.log.Debug("batch delivered",
		zap.String("batch_key", batch.Key),
		zap.Int("events", batch.Len()),
		zap.Duration("open_for", batch.LastEventAt.Sub(batch.OpenedAt)),
	)
}
