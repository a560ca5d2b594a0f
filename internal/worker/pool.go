// Package worker bounds concurrency across a batch of records. Within
// one record the stage calls are strictly sequential; across records
// processing is independent, so a fixed-size pool suffices.
package worker

import (
	"context"
	"sync"

	"halluclean/internal/model"
)

// Func processes one record in place, attaching its result or error
type Func func(ctx context.Context, rec *model.Record)

// Pool processes records under a bounded worker count. Results land in
// the records themselves, which keeps output order identical to input
// order regardless of completion order.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers returns the configured worker count
func (p *Pool) Workers() int {
	return p.workers
}

// Process runs fn over every record. Cancellation stops dispatching new
// records; records never dispatched are marked with the context error so
// they are not emitted as if complete. In-flight records finish or
// observe ctx themselves.
func (p *Pool) Process(ctx context.Context, records []*model.Record, fn Func) {
	jobs := make(chan *model.Record)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range jobs {
				fn(ctx, rec)
			}
		}()
	}

	for i, rec := range records {
		select {
		case <-ctx.Done():
			// Mark everything not yet dispatched; it must not be
			// emitted as if complete.
			for _, rest := range records[i:] {
				rest.Err = ctx.Err()
				rest.ErrStage = "dispatch"
			}
			close(jobs)
			wg.Wait()
			return
		case jobs <- rec:
		}
	}
	close(jobs)
	wg.Wait()
}
