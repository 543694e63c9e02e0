package shardedmap

import (
	"sync"

	"github.com/huynhanx03/go-keybatch/pkg/utils"
)

const defaultShards = 256

// Map is a thread-safe map that uses sharding to minimize lock contention.
// It supports any comparable key type K and any value type V.
type Map[K comparable, V any] struct {
	shards []*lockedShard[K, V]
	mask   uint64
	hasher func(K) uint64
}

type lockedShard[K comparable, V any] struct {
	sync.RWMutex
	data map[K]V

	// Keeps each shard on its own cache line.
	pad [64]byte
}

// New creates a new Sharded Map.
// shards: Number of shards to use. Will be rounded up to the nearest power of 2.
// hashFn: Function to hash the key K into a uint64.
func New[K comparable, V any](shards int, hashFn func(K) uint64) *Map[K, V] {
	if shards <= 0 {
		shards = defaultShards
	}
	numShards := utils.CeilToPowerOfTwo(shards)
	m := &Map[K, V]{
		shards: make([]*lockedShard[K, V], numShards),
		mask:   uint64(numShards - 1),
		hasher: hashFn,
	}

	for i := range m.shards {
		m.shards[i] = &lockedShard[K, V]{
			data: make(map[K]V),
		}
	}
	return m
}

func (m *Map[K, V]) shardFor(key K) *lockedShard[K, V] {
	return m.shards[m.hasher(key)&m.mask]
}

// Get retrieves a value from the map.
func (m *Map[K, V]) Get(key K) (V, bool) {
	shard := m.shardFor(key)

	shard.RLock()
	val, ok := shard.data[key]
	shard.RUnlock()
	return val, ok
}

// Set adds or updates a value in the map.
func (m *Map[K, V]) Set(key K, value V) {
	shard := m.shardFor(key)

	shard.Lock()
	shard.data[key] = value
	shard.Unlock()
}

// Del removes a value from the map.
func (m *Map[K, V]) Del(key K) {
	shard := m.shardFor(key)

	shard.Lock()
	delete(shard.data, key)
	shard.Unlock()
}

// Compute atomically reads, transforms and stores the entry for key.
// fn receives the current value and whether it was present; it returns the
// value to store and whether to keep it. Returning keep=false removes the key.
// The shard stays write-locked while fn runs, so fn must not call back into
// the map for keys that may share the shard.
func (m *Map[K, V]) Compute(key K, fn func(old V, loaded bool) (V, bool)) {
	shard := m.shardFor(key)

	shard.Lock()
	defer shard.Unlock()

	old, loaded := shard.data[key]
	val, keep := fn(old, loaded)
	if keep {
		shard.data[key] = val
		return
	}
	delete(shard.data, key)
}

// Len returns the total number of items in the map.
// Note: This iterates over all shards and locks them individually, so it's not atomic across the whole map.
func (m *Map[K, V]) Len() int {
	total := 0
	for _, shard := range m.shards {
		shard.RLock()
		total += len(shard.data)
		shard.RUnlock()
	}
	return total
}

// Drain removes every item from the map, calling fn for each one while its
// shard is write-locked. It returns the number of items removed.
func (m *Map[K, V]) Drain(fn func(K, V)) int {
	removed := 0
	for _, shard := range m.shards {
		shard.Lock()
		for k, v := range shard.data {
			fn(k, v)
		}
		removed += len(shard.data)
		shard.data = make(map[K]V)
		shard.Unlock()
	}
	return removed
}

// Do iterates over all items in the map and executes fn.
// It locks one shard at a time.
func (m *Map[K, V]) Do(fn func(K, V)) {
	for _, shard := range m.shards {
		shard.RLock()
		for k, v := range shard.data {
			fn(k, v)
		}
		shard.RUnlock()
	}
}
