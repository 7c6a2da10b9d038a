package async

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "newsroom/async"

type job struct {
	ctx  context.Context
	task func()
	done chan error
}

// Pool is a fixed-size worker pool for blocking work. The zero value is not
// usable; create pools with NewPool.
type Pool struct {
	workers    int
	queueSize  int
	tracer     trace.Tracer
	registerer prometheus.Registerer
	logger     *slog.Logger
	metrics    *poolMetrics

	jobs     chan job
	mu       sync.RWMutex
	closed   bool
	stopping atomic.Bool
	wg       sync.WaitGroup
}

// NewPool starts the workers and returns the pool.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		workers: runtime.NumCPU(),
		tracer:  otel.Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	p.queueSize = -1
	for _, opt := range opts {
		opt(p)
	}
	if p.queueSize < 0 {
		p.queueSize = p.workers * 16
	}
	p.metrics = newPoolMetrics(p.registerer)

	p.jobs = make(chan job, p.queueSize)
	p.wg.Add(p.workers)
	for range p.workers {
		go p.work()
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Do implements Offloader. It blocks until task returns, the pool is closed
// or ctx is done.
func (p *Pool) Do(ctx context.Context, name string, task func()) (err error) {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "async.run", trace.WithAttributes(attribute.String("async.task", name)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.String("async.outcome", outcome(err)))
		span.End()
		p.metrics.observe(name, err, time.Since(start))
	}()

	j := job{ctx: ctx, task: task, done: make(chan error, 1)}
	if err := p.enqueue(ctx, j); err != nil {
		return err
	}

	select {
	case err := <-j.done:
		if errors.Is(err, ErrWorkerFailed) {
			p.logger.ErrorContext(ctx, "blocking task panicked", slog.String("task", name), slog.String("error", err.Error()))
		}
		return err
	case <-ctx.Done():
		return errors.Join(ErrCancelled, ctx.Err())
	}
}

func (p *Pool) enqueue(ctx context.Context, j job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return errors.Join(ErrCancelled, ErrPoolClosed)
	}
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrCancelled, err)
	}
	select {
	case p.jobs <- j:
		return nil
	case <-ctx.Done():
		return errors.Join(ErrCancelled, ctx.Err())
	}
}

// Close stops accepting tasks, cancels queued tasks that have not started and
// waits for running ones. It is safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.stopping.Store(true)
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) work() {
	defer p.wg.Done()

	for j := range p.jobs {
		switch {
		case p.stopping.Load():
			j.done <- errors.Join(ErrCancelled, ErrPoolClosed)
		case j.ctx.Err() != nil:
			j.done <- errors.Join(ErrCancelled, j.ctx.Err())
		default:
			j.done <- safeCall(j.task)
		}
	}
}
