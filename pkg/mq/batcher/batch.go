package batcher

import (
	"time"

	"github.com/huynhanx03/go-keybatch/pkg/timer"
)

// Batch is the accumulated state of one key, handed to the Consumer on delivery.
type Batch[T any] struct {
	Key         string    `json:"batch_key"`
	Events      []T       `json:"events"`
	OpenedAt    time.Time `json:"opened_at"`
	LastEventAt time.Time `json:"last_event_at"`
}

// Len returns the number of events in the batch.
func (b *Batch[T]) Len() int {
	return len(b.Events)
}

// keyState is the store entry for a key. It lives while the key has an open
// batch, a delivery in progress, or both.
type keyState[T any] struct {
	// open is the batch still accepting events, nil once it is handed off.
	open *record[T]

	// delivering is closed when the most recent handed-off batch for the key
	// has been consumed. The next delivery for the key waits on it.
	delivering chan struct{}
}

func (s *keyState[T]) idle() bool {
	return s.open == nil && s.delivering == nil
}

// record is an open batch and its pending delivery timer.
// It is only touched while the store shard owning its key is locked.
type record[T any] struct {
	batch   *Batch[T]
	pending *pendingTimer
}

// pendingTimer is one scheduled delivery. cancelled is guarded by the shard
// lock of the key, which lets a timer that already fired but lost the race
// against Add or Stop recognise itself as stale.
type pendingTimer struct {
	handle    timer.Handle
	cancelled bool
}

func (p *pendingTimer) cancel() {
	p.cancelled = true
	p.handle.Stop()
}

func newRecord[T any](key string, data T, now time.Time) *record[T] {
	return &record[T]{
		batch: &Batch[T]{
			Key:         key,
			Events:      []T{data},
			OpenedAt:    now,
			LastEventAt: now,
		},
	}
}

// append adds data to the batch, preserving arrival order.
func (r *record[T]) append(data T, now time.Time) {
	r.batch.Events = append(r.batch.Events, data)
	r.batch.LastEventAt = now
}
