package raster

import (
	"context"
	"sync"
)

// bandJob shades every triangle overlapping rows [y0, y1).
type bandJob struct {
	y0, y1 int
	tris   []triangle
	shader fragmentShader
	done   *sync.WaitGroup
}

// WorkerPool runs band jobs. Bands never overlap, so workers write disjoint
// pixels and need no locking.
type WorkerPool struct {
	ctx      *Context
	jobQueue chan bandJob
	workers  int
	cancel   context.CancelFunc
	done     context.Context
	wg       sync.WaitGroup

	// closed guards jobQueue sends against shutdown's final drain
	mu     sync.RWMutex
	closed bool
}

func newWorkerPool(c *Context, workers int) *WorkerPool {
	done, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		ctx:      c,
		jobQueue: make(chan bandJob, workers*2),
		workers:  workers,
		cancel:   cancel,
		done:     done,
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// submit queues a job, giving up if either the draw or the pool is done.
func (p *WorkerPool) submit(ctx context.Context, job bandJob) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-ctx.Done():
		return false
	case <-p.done.Done():
		return false
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.ctx.rasterizeBand(job)
			job.done.Done()
		case <-p.done.Done():
			return
		}
	}
}

// stopped reports whether shutdown has begun.
func (p *WorkerPool) stopped() bool {
	return p.done.Err() != nil
}

// shutdown stops the workers and waits for them to exit. Jobs still queued
// are released unshaded so a concurrent Draw can return.
func (p *WorkerPool) shutdown() {
	p.cancel()
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
	for {
		select {
		case job := <-p.jobQueue:
			job.done.Done()
		default:
			return
		}
	}
}
