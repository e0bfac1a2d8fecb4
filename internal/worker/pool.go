package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrJobPanicked wraps the value recovered from a panicking Map function
var ErrJobPanicked = errors.New("job panicked")

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool manages a pool of workers that execute jobs concurrently.
// Results are drained as they arrive, so any number of jobs may be submitted
// before Wait is called.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	collector  *ResultCollector
	collected  chan struct{}
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a new worker pool bound to ctx
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		collector:  NewResultCollector(),
		collected:  make(chan struct{}),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the workers and the result collector
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	go func() {
		defer close(p.collected)
		for result := range p.results {
			p.collector.Add(result)
		}
	}()
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.results <- job.Execute(p.ctx)
		}
	}
}

// Submit queues a job. It returns false if the pool was cancelled first.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Wait waits for all submitted jobs and returns their results in completion order
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	<-p.collected
	p.cancelFunc()
	return p.collector.Results()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// ResultCollector accumulates results from concurrent producers
type ResultCollector struct {
	results []Result
	mu      sync.Mutex
}

// NewResultCollector creates a new result collector
func NewResultCollector() *ResultCollector {
	return &ResultCollector{
		results: make([]Result, 0),
	}
}

// Add adds a result to the collector (thread-safe)
func (c *ResultCollector) Add(result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

// Results returns all collected results
func (c *ResultCollector) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}

type indexedJob[T any] struct {
	index int
	fn    func(ctx context.Context, i int) (T, error)
}

type indexedResult[T any] struct {
	index int
	value T
	err   error
}

func (r *indexedResult[T]) GetError() error { return r.err }

// Execute runs fn on the worker goroutine; a panic becomes the job's error
// since callers cannot recover it from there
func (j *indexedJob[T]) Execute(ctx context.Context) (result Result) {
	if err := ctx.Err(); err != nil {
		return &indexedResult[T]{index: j.index, err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			result = &indexedResult[T]{index: j.index, err: fmt.Errorf("%w: %v", ErrJobPanicked, r)}
		}
	}()
	v, err := j.fn(ctx, j.index)
	return &indexedResult[T]{index: j.index, value: v, err: err}
}

// Map runs fn for every index in [0, n) on a pool of workers and returns the
// values in index order. The first failing index (in index order) wins.
func Map[T any](ctx context.Context, workers, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	out := make([]T, n)
	if n == 0 {
		return out, nil
	}

	pool := NewPool(ctx, min(workers, n))
	pool.Start()
	for i := 0; i < n; i++ {
		if !pool.Submit(&indexedJob[T]{index: i, fn: fn}) {
			break
		}
	}

	done := make([]bool, n)
	errs := make([]error, n)
	for _, r := range pool.Wait() {
		ir := r.(*indexedResult[T])
		out[ir.index] = ir.value
		errs[ir.index] = ir.err
		done[ir.index] = true
	}

	for i := range out {
		if errs[i] != nil {
			return nil, fmt.Errorf("item %d: %w", i, errs[i])
		}
		if !done[i] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("item %d: not executed", i)
		}
	}
	return out, nil
}
