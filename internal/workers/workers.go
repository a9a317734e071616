package workers

import (
	"context"
	"sync"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and returns immediately.
// Use Wait to block until all of them have returned.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Go(func() {
			worker.Run(ctx)
		})
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
