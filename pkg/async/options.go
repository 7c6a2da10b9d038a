package async

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below 1 are ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithQueueSize sets how many tasks may wait for a free worker.
func WithQueueSize(n int) PoolOption {
	return func(p *Pool) {
		if n >= 0 {
			p.queueSize = n
		}
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) PoolOption {
	return func(p *Pool) {
		if t != nil {
			p.tracer = t
		}
	}
}

// WithRegisterer enables task counters and durations on reg.
func WithRegisterer(reg prometheus.Registerer) PoolOption {
	return func(p *Pool) {
		p.registerer = reg
	}
}

// WithLogger sets the logger used to report task panics.
func WithLogger(l *slog.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
