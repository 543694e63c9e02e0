package batcher

import "errors"

var (
	// ErrMissingBatch is raised when a delivery timer fires and its key has no batch.
	ErrMissingBatch = errors.New("batcher: no batch found on trigger")

	// ErrOrphanTimer is raised when a delivery timer fires for a batch that
	// is owned by a different timer.
	ErrOrphanTimer = errors.New("batcher: delivery timer does not own batch")
)
