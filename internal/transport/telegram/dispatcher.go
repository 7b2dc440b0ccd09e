package telegram

import (
	"context"
	"sync"
	"time"

	"equeue-slip-bot/pkg/metrics"
)

// Job is one unit of work for a single user.
type Job func(ctx context.Context)

type worker struct {
	jobs    chan Job
	pending int
}

// Dispatcher runs jobs for the same user strictly in submission order and
// jobs for different users concurrently. A user's worker exits after
// idleTimeout without work and is recreated on the next submit.
type Dispatcher struct {
	mu          sync.Mutex
	workers     map[int64]*worker
	idleTimeout time.Duration
	queueLength int
	wg          sync.WaitGroup
}

func NewDispatcher(idleTimeout time.Duration, queueLength int) *Dispatcher {
	if idleTimeout <= 0 {
		idleTimeout = time.Minute
	}
	if queueLength <= 0 {
		queueLength = 1
	}
	return &Dispatcher{
		workers:     make(map[int64]*worker),
		idleTimeout: idleTimeout,
		queueLength: queueLength,
	}
}

// Submit queues job behind the user's earlier jobs and never blocks. It
// returns false when the user's queue is full or ctx is done; the job is
// dropped in both cases. Submits for one user must come from one goroutine
// for the order to be meaningful.
func (d *Dispatcher) Submit(ctx context.Context, userID int64, job Job) bool {
	if ctx.Err() != nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.workers[userID]
	if !ok {
		w = &worker{jobs: make(chan Job, d.queueLength)}
		d.workers[userID] = w
		d.wg.Add(1)
		go d.run(ctx, userID, w)
	}

	select {
	case w.jobs <- job:
		w.pending++
		return true
	default:
		return false
	}
}

func (d *Dispatcher) run(ctx context.Context, userID int64, w *worker) {
	defer d.wg.Done()
	metrics.WorkerStarted()
	defer metrics.WorkerStopped()

	timer := time.NewTimer(d.idleTimeout)
	defer timer.Stop()

	for {
		select {
		case job := <-w.jobs:
			job(ctx)
			d.mu.Lock()
			w.pending--
			d.mu.Unlock()
			timer.Reset(d.idleTimeout)
		case <-timer.C:
			d.mu.Lock()
			if w.pending == 0 {
				delete(d.workers, userID)
				d.mu.Unlock()
				return
			}
			d.mu.Unlock()
			timer.Reset(d.idleTimeout)
		case <-ctx.Done():
			d.mu.Lock()
			delete(d.workers, userID)
			d.mu.Unlock()
			return
		}
	}
}

// Active returns the number of live workers.
func (d *Dispatcher) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.workers)
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
