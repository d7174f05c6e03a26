package audit

import (
	"context"
	"log"
	"sync"
	"time"

	"sangam-backend/internal/domain/activity"
	"sangam-backend/internal/metrics"
)

// Store is the persistence boundary of the worker. The gorm-backed repository
// satisfies it; each Append gets a fresh context and draws its own connection
// from the pool.
type Store interface {
	Append(ctx context.Context, r *activity.Record) error
}

// Worker drains a bounded queue of entries into the store. One goroutine, one
// write at a time; at-most-once, best-effort. Failed writes are logged and
// counted, never retried, never surfaced.
type Worker struct {
	store        Store
	ch           chan Entry
	done         chan struct{}
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool
}

func NewWorker(store Store, queueSize int, writeTimeout time.Duration) *Worker {
	if queueSize <= 0 {
		queueSize = 1024
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &Worker{
		store:        store,
		ch:           make(chan Entry, queueSize),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
	}
}

// Start launches the writer goroutine. Call once.
func (w *Worker) Start() {
	go func() {
		defer close(w.done)
		for e := range w.ch {
			w.write(e)
			metrics.AuditQueueDepth.Set(float64(len(w.ch)))
		}
	}()
}

// Enqueue hands off one entry without blocking. Full queue or a closed worker
// drops the entry.
func (w *Worker) Enqueue(e Entry) bool {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		metrics.AuditDropped.Inc()
		return false
	}
	select {
	case w.ch <- e:
		metrics.AuditQueueDepth.Set(float64(len(w.ch)))
		return true
	default:
		metrics.AuditDropped.Inc()
		return false
	}
}

// Close stops intake and waits for the queue to drain, or for ctx.
func (w *Worker) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.ch)
	}
	w.mu.Unlock()
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) write(e Entry) {
	defer func() {
		if r := recover(); r != nil {
			metrics.AuditWriteFailures.Inc()
			log.Printf("audit: panic during write: %v", r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
	defer cancel()
	if err := w.store.Append(ctx, e.toRecord()); err != nil {
		metrics.AuditWriteFailures.Inc()
		log.Printf("audit: write failed (action=%s actor=%d): %v", e.Action, e.ActorID, err)
	}
}
