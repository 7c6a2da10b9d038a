// Package async moves CPU-bound work off request goroutines and provides a
// small generic Future for fanning out I/O.
//
// # Worker pool
//
// Pool runs submitted tasks on a fixed set of worker goroutines. Run is the
// typed entry point:
//
//	pool := async.NewPool(async.WithWorkers(4))
//	defer pool.Close()
//
//	verifyErr, err := async.Run(ctx, pool, "password.verify", func() error {
//	    return hasher.Verify(pw, hash)
//	})
//
// Run reports ErrCancelled when the pool is closed or ctx ends before the
// task finishes, and ErrWorkerFailed when the task panics. A task that is
// already running when ctx ends keeps running to completion; its result is
// discarded. Every task gets its own trace span named after the task and,
// when a prometheus.Registerer is supplied, is counted by outcome.
//
// Inline runs tasks on the calling goroutine with the same error contract and
// is meant for tests.
//
// # Futures
//
// Async starts a function in its own goroutine and returns a *Future.
// WaitAll waits for a batch of futures and joins their errors.
package async
