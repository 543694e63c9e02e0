// Package batcher groups keyed events into batches and delivers each batch
// once its key has been quiet for a configured period.
//
// Every call to Add for a key resets that key's countdown, so a batch only
// closes after WaitFor elapses with no new event for the key. Keys are
// independent of each other and deliveries for different keys may arrive in
// any order. Once a batch is handed to the consumer the next Add for its key
// opens a fresh batch; batches for one key are consumed one at a time, in the
// order they closed.
//
// State is in memory only: batches that have not been delivered are lost when
// the process exits or the Batcher is stopped.
package batcher
