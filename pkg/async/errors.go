package async

import "errors"

var (
	ErrCancelled    = errors.New("async: task cancelled")
	ErrWorkerFailed = errors.New("async: worker failed")
	ErrPoolClosed   = errors.New("async: pool closed")
)
