package port

import "context"

// Locker linearizes work on a single key, typically a contract id. Lock
// blocks until the lock is held or ctx is done; the returned function
// releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
