package domain

import (
	"context"
	"errors"
)

// ErrLockNotAcquired is returned when a lock is still held elsewhere after waiting.
var ErrLockNotAcquired = errors.New("lock not acquired")

// Locker provides short-lived mutual exclusion across processes.
type Locker interface {
	// Acquire retries until key is locked. It gives up with ErrLockNotAcquired
	// once the locker's wait budget is spent or ctx ends. The returned release
	// function unlocks key if it is still held by this caller.
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}
