package thumbs

import (
	"context"
	"log/slog"
	"sync"
)

type job struct {
	assetID    string
	sourcePath string
}

// Queue decouples thumbnail generation from the writes that trigger it.
// Enqueue never blocks the caller; generation happens on a single background
// worker and completion is observed by polling Service.GetExisting.
type Queue struct {
	svc       *Service
	jobs      chan job
	done      chan struct{}
	logger    *slog.Logger
	closeOnce sync.Once
	startOnce sync.Once
	started   bool
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(svc *Service, size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{
		svc:    svc,
		jobs:   make(chan job, size),
		done:   make(chan struct{}),
		logger: slog.Default(),
	}
}

// Start launches the background worker. The worker stops when ctx is
// cancelled or the queue is closed.
func (q *Queue) Start(ctx context.Context) {
	q.startOnce.Do(func() {
		q.started = true
		go q.run(ctx)
	})
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case j, ok := <-q.jobs:
			if !ok {
				return
			}
			q.svc.Generate(ctx, j.assetID, j.sourcePath)
		case <-ctx.Done():
			return
		}
	}
}

// Enqueue schedules generation for an asset. When the buffer is full the job
// is dropped with a warning; the cache stays reconstructible, a later
// re-enqueue produces the same deterministic output.
func (q *Queue) Enqueue(assetID, sourcePath string) {
	select {
	case q.jobs <- job{assetID: assetID, sourcePath: sourcePath}:
	default:
		q.logger.Warn("thumbnail queue full, skipping generation", "asset_id", assetID)
	}
}

// Close stops accepting jobs and waits for the worker to drain.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.jobs)
	})
	if q.started {
		<-q.done
	}
}
