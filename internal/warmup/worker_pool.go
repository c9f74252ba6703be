package warmup

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

// WorkerPool runs submitted tasks on a fixed number of goroutines, optionally paced to
// a number of task starts per second.
type WorkerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
	limiter *rate.Limiter
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

// SetRateLimit paces task starts to rps per second. It must be called before Run.
func (p *WorkerPool) SetRateLimit(rps int) {
	if rps <= 0 {
		p.limiter = nil
		return
	}
	p.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

// Submit blocks while the buffer is full. It must not be called after Close.
func (p *WorkerPool) Submit(t Task) {
	if t == nil {
		return
	}
	p.tasks <- t
}

// Close stops accepting tasks; Run's channel closes once queued tasks are done.
func (p *WorkerPool) Close() {
	close(p.tasks)
}

func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if p.limiter != nil {
						if err := p.limiter.Wait(ctx); err != nil {
							return
						}
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
