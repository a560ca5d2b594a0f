package worker

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"halluclean/internal/model"
)

func makeRecords(n int) []*model.Record {
	records := make([]*model.Record, n)
	for i := range records {
		records[i] = &model.Record{
			Index:  i,
			Fields: map[string]any{"text": "record"},
		}
	}
	return records
}

func TestNewPool(t *testing.T) {
	if p := NewPool(5); p.Workers() != 5 {
		t.Errorf("expected 5 workers, got %d", p.Workers())
	}
	if p := NewPool(0); p.Workers() != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p.Workers())
	}
	if p := NewPool(-1); p.Workers() != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p.Workers())
	}
}

func TestPoolProcessesAll(t *testing.T) {
	records := makeRecords(25)
	var processed int32

	pool := NewPool(4)
	pool.Process(context.Background(), records, func(ctx context.Context, rec *model.Record) {
		atomic.AddInt32(&processed, 1)
	})

	if got := atomic.LoadInt32(&processed); got != 25 {
		t.Errorf("processed %d records, want 25", got)
	}
}

func TestPoolPreservesInputOrder(t *testing.T) {
	// Randomized per-record latencies: completion order scrambles, the
	// slice order must not
	records := makeRecords(50)
	rng := rand.New(rand.NewSource(42))
	delays := make([]time.Duration, len(records))
	for i := range delays {
		delays[i] = time.Duration(rng.Intn(10)) * time.Millisecond
	}

	pool := NewPool(8)
	pool.Process(context.Background(), records, func(ctx context.Context, rec *model.Record) {
		time.Sleep(delays[rec.Index])
		rec.Revision = &model.RevisionResult{RevisedAnswer: "done"}
	})

	for i, rec := range records {
		if rec.Index != i {
			t.Fatalf("record at position %d has index %d", i, rec.Index)
		}
		if rec.Revision == nil {
			t.Fatalf("record %d not processed", i)
		}
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 3
	records := makeRecords(30)

	var mu sync.Mutex
	current, peak := 0, 0

	pool := NewPool(workers)
	pool.Process(context.Background(), records, func(ctx context.Context, rec *model.Record) {
		mu.Lock()
		current++
		if current > peak {
			peak = current
		}
		mu.Unlock()

		time.Sleep(2 * time.Millisecond)

		mu.Lock()
		current--
		mu.Unlock()
	})

	if peak > workers {
		t.Errorf("observed %d concurrent executions, bound is %d", peak, workers)
	}
}

func TestPoolRecordFailureDoesNotStopBatch(t *testing.T) {
	records := makeRecords(10)

	pool := NewPool(2)
	pool.Process(context.Background(), records, func(ctx context.Context, rec *model.Record) {
		if rec.Index == 3 {
			rec.Err = context.DeadlineExceeded
			rec.ErrStage = "plan"
			return
		}
		rec.Revision = &model.RevisionResult{RevisedAnswer: "ok"}
	})

	for i, rec := range records {
		if i == 3 {
			if rec.Err == nil {
				t.Error("record 3 should carry its error")
			}
			continue
		}
		if rec.Err != nil || rec.Revision == nil {
			t.Errorf("record %d should have completed: err=%v", i, rec.Err)
		}
	}
}

func TestPoolCancellationMarksUndispatched(t *testing.T) {
	records := makeRecords(40)
	ctx, cancel := context.WithCancel(context.Background())

	var processed int32
	pool := NewPool(2)
	pool.Process(ctx, records, func(ctx context.Context, rec *model.Record) {
		if atomic.AddInt32(&processed, 1) == 4 {
			cancel()
		}
		time.Sleep(time.Millisecond)
		rec.Revision = &model.RevisionResult{RevisedAnswer: "ok"}
	})

	// Every record is accounted for: either processed or marked with
	// the cancellation error
	incomplete := 0
	for _, rec := range records {
		if rec.Revision == nil {
			if rec.Err == nil {
				t.Fatalf("record %d neither processed nor marked cancelled", rec.Index)
			}
			incomplete++
		}
	}
	if incomplete == 0 {
		t.Error("expected some records to be cancelled before dispatch")
	}
}
